package config

import (
	"fmt"
	"strconv"

	"attnviz-go/internal/attention"
)

const (
	EnvData          = "ATTNVIZ_DATA"
	EnvMode          = "ATTNVIZ_MODE"
	EnvStrict        = "ATTNVIZ_STRICT"
	EnvCacheRowStats = "ATTNVIZ_CACHE_ROW_STATS"
	EnvBOS           = "ATTNVIZ_BOS"
	EnvLogLevel      = "ATTNVIZ_LOG_LEVEL"
	EnvWidth         = "ATTNVIZ_WIDTH"
)

// ApplyEnv overrides fields from variables returned by getenv. Unset or
// empty variables leave the field alone.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvData); v != "" {
		c.Data = v
	}
	if v := getenv(EnvMode); v != "" {
		m, err := attention.ParseMode(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMode, err)
		}
		c.Mode = m
	}
	c.Strict = envBool(getenv, EnvStrict, c.Strict)
	c.CacheRowStats = envBool(getenv, EnvCacheRowStats, c.CacheRowStats)
	if v := getenv(EnvBOS); v != "" {
		c.BOSToken = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	c.Width = envInt(getenv, EnvWidth, c.Width)
	return nil
}

func envInt(getenv func(string) string, name string, fallback int) int {
	raw := getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envBool(getenv func(string) string, name string, fallback bool) bool {
	raw := getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}
