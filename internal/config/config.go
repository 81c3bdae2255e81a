// Package config handles attnviz configuration loading.
//
// Values come from, in increasing precedence: built-in defaults, a YAML
// file, a .env file and ATTNVIZ_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"attnviz-go/internal/attention"
	"attnviz-go/internal/logutil"
	"attnviz-go/internal/tokens"
)

const DefaultFile = "attnviz.yaml"

// Config is the root configuration structure.
type Config struct {
	// Data is the attention file shown when a command gets no path argument.
	Data string `yaml:"data"`

	Mode attention.Mode `yaml:"mode"`

	// Strict rejects files whose score block disagrees with the header.
	Strict bool `yaml:"strict"`

	// CacheRowStats precomputes per-row statistics at load time.
	CacheRowStats bool `yaml:"cache_row_stats"`

	BOSToken string `yaml:"bos_token"`
	Color    Color  `yaml:"color"`
	LogLevel string `yaml:"log_level"`

	// Width caps rendered line width; 0 uses the terminal width.
	Width int `yaml:"width"`
}

// Color is the heat-map highlight colour.
type Color struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Data:          "attention_data.bin",
		Mode:          attention.ModeRaw,
		CacheRowStats: true,
		BOSToken:      tokens.DefaultBOS,
		Color:         Color{R: 100, G: 214, B: 92},
		LogLevel:      "info",
	}
}

// Load loads configuration from a file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads config from path, or returns default if not found.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return Load(path)
}

// Save saves configuration to a file.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if !c.Mode.Valid() {
		return fmt.Errorf("invalid mode %s", c.Mode)
	}
	if c.Width < 0 {
		return fmt.Errorf("width must be >= 0, got %d", c.Width)
	}
	if _, err := logutil.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// LoadDotEnv loads variables from a .env file if one exists. Variables
// already set in the environment win.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("could not load %s: %w", path, err)
	}
	return nil
}

// Resolve is the full lookup used by the CLI.
func Resolve(path, dotenv string) (*Config, error) {
	if err := LoadDotEnv(dotenv); err != nil {
		return nil, err
	}
	cfg, err := LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
