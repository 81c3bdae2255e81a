package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attnviz-go/internal/attention"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "attention_data.bin", cfg.Data)
	assert.Equal(t, attention.ModeRaw, cfg.Mode)
	assert.Equal(t, Color{R: 100, G: 214, B: 92}, cfg.Color)
	assert.Equal(t, "<s>", cfg.BOSToken)
	assert.True(t, cfg.CacheRowStats)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attnviz.yaml")
	yml := `
data: /tmp/scores.bin
mode: amplified
strict: true
color:
  r: 255
  g: 0
  b: 0
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/scores.bin", cfg.Data)
	assert.Equal(t, attention.ModeAmplified, cfg.Mode)
	assert.True(t, cfg.Strict)
	assert.Equal(t, Color{R: 255}, cfg.Color)
	// Unset keys keep their defaults.
	assert.Equal(t, "<s>", cfg.BOSToken)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadBadMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attnviz.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: softmax\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestLoadOrDefaultMissing(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "attnviz.yaml")
	cfg := Default()
	cfg.Mode = attention.ModeNormalized
	cfg.Width = 80
	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mode: normalized")

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvData:          "other.bin",
		EnvMode:          "norm",
		EnvStrict:        "true",
		EnvCacheRowStats: "0",
		EnvBOS:           "<|begin_of_text|>",
		EnvLogLevel:      "debug",
		EnvWidth:         "120",
	}
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, "other.bin", cfg.Data)
	assert.Equal(t, attention.ModeNormalized, cfg.Mode)
	assert.True(t, cfg.Strict)
	assert.False(t, cfg.CacheRowStats)
	assert.Equal(t, "<|begin_of_text|>", cfg.BOSToken)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 120, cfg.Width)
}

func TestApplyEnvIgnoresGarbage(t *testing.T) {
	env := map[string]string{
		EnvStrict: "maybe",
		EnvWidth:  "wide",
	}
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))
	assert.False(t, cfg.Strict)
	assert.Equal(t, 0, cfg.Width)

	err := cfg.ApplyEnv(func(k string) string {
		if k == EnvMode {
			return "softmax"
		}
		return ""
	})
	assert.ErrorContains(t, err, EnvMode)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Width = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Mode = attention.Mode(9)
	assert.Error(t, cfg.Validate())
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "attnviz.yaml")
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(cfgPath, []byte("mode: normalized\nwidth: 40\n"), 0o644))
	require.NoError(t, os.WriteFile(envPath, []byte("ATTNVIZ_WIDTH=64\n"), 0o644))
	t.Setenv(EnvWidth, "")
	os.Unsetenv(EnvWidth)

	cfg, err := Resolve(cfgPath, envPath)
	require.NoError(t, err)
	assert.Equal(t, attention.ModeNormalized, cfg.Mode)
	assert.Equal(t, 64, cfg.Width)
}

func TestLoadDotEnvMissing(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}
