package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*configService, string) {
	t.Helper()
	dir := t.TempDir()
	return &configService{
		filePath: filepath.Join(dir, "config.toml"),
		envFile:  filepath.Join(dir, ".env"),
	}, dir
}

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	cs, _ := newTestService(t)

	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromPathRequiresFile(t *testing.T) {
	cs, dir := newTestService(t)

	_, err := cs.LoadFromPath(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestFileOverridesDefaults(t *testing.T) {
	cs, _ := newTestService(t)
	content := `
[store]
url = "http://inventory.local:9000"
timeout = "5s"

[ui]
currency = "EUR"
`
	require.NoError(t, os.WriteFile(cs.filePath, []byte(content), 0644))

	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://inventory.local:9000", cfg.Store.URL)
	assert.Equal(t, Duration(5*time.Second), cfg.Store.Timeout)
	assert.Equal(t, "EUR", cfg.UISettings.Currency)
	// Untouched keys keep their defaults
	assert.Equal(t, uint32(5), cfg.Store.Breaker.Failures)
	assert.True(t, cfg.Validation.Strict)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	cs, _ := newTestService(t)
	require.NoError(t, os.WriteFile(cs.filePath, []byte("[store]\nurl = \"http://from-file:1\"\n"), 0644))

	t.Setenv("INVTRACK_STORE_URL", "http://from-env:2")
	t.Setenv("INVTRACK_VALIDATION_STRICT", "false")
	t.Setenv("INVTRACK_STORE_BREAKER_FAILURES", "0")

	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:2", cfg.Store.URL)
	assert.False(t, cfg.Validation.Strict)
	assert.Equal(t, uint32(0), cfg.Store.Breaker.Failures)
}

func TestDotEnvFileIsApplied(t *testing.T) {
	cs, _ := newTestService(t)
	envContent := "INVTRACK_LOG_LEVEL=debug\nUNRELATED=1\n"
	require.NoError(t, os.WriteFile(cs.envFile, []byte(envContent), 0644))

	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestSaveThenLoadKeepsValues(t *testing.T) {
	cs, _ := newTestService(t)
	cfg := DefaultConfig()
	cfg.Store.URL = "http://saved:8080"
	cfg.Store.Timeout = Duration(1500 * time.Millisecond)
	cfg.UISettings.ShowDescription = false

	require.NoError(t, cs.Save(cfg))

	loaded, err := cs.LoadFromPath(cs.filePath)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveWritesReadableDurations(t *testing.T) {
	cs, _ := newTestService(t)
	require.NoError(t, cs.Save(DefaultConfig()))

	data, err := os.ReadFile(cs.filePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "30s")
	assert.NotContains(t, string(data), "30000000000")

	loaded, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, Duration(30*time.Second), loaded.Store.Breaker.OpenTimeout)
}

func TestLoadAcceptsNanosecondDurations(t *testing.T) {
	cs, _ := newTestService(t)
	content := "[store.breaker]\nopentimeout = 30000000000\n"
	require.NoError(t, os.WriteFile(cs.filePath, []byte(content), 0644))

	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, Duration(30*time.Second), cfg.Store.Breaker.OpenTimeout)
}

func TestDurationText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	assert.Equal(t, Duration(90*time.Second), d)

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(text))

	assert.Error(t, d.UnmarshalText([]byte("soon")))
}

func TestSaveCreatesDirectory(t *testing.T) {
	cs, dir := newTestService(t)
	path := filepath.Join(dir, "nested", "deeper", "config.toml")

	require.NoError(t, cs.SaveToPath(DefaultConfig(), path))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	cs, _ := newTestService(t)
	require.NoError(t, os.WriteFile(cs.filePath, []byte("[store\nurl="), 0644))

	_, err := cs.Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"missing url", func(c *Config) { c.Store.URL = "" }, true},
		{"not a url", func(c *Config) { c.Store.URL = "inventory" }, true},
		{"negative timeout", func(c *Config) { c.Store.Timeout = Duration(-time.Second) }, true},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"breaker disabled", func(c *Config) {
			c.Store.Breaker.Failures = 0
			c.Store.Breaker.OpenTimeout = 0
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "store.url", envKey("INVTRACK_STORE_URL"))
	assert.Equal(t, "store.breaker.opentimeout", envKey("INVTRACK_STORE_BREAKER_OPENTIMEOUT"))
	assert.Equal(t, "ui.showdescription", envKey("INVTRACK_UI_SHOWDESCRIPTION"))
}
