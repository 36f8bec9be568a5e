package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "https://eodhd.com/api", config.Clients.EODHD.BaseURL)
	assert.Equal(t, "AAPL", config.Compare.DefaultTicker1)
	assert.Equal(t, "MSFT", config.Compare.DefaultTicker2)
	assert.Equal(t, "2023-01-01", config.Compare.DefaultFrom)
	assert.Equal(t, "2025-01-01", config.Compare.DefaultTo)
	assert.Equal(t, "USD", config.Compare.DefaultCurrency)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stockcompare.toml")
	content := `
environment = "production"

[server]
port = 9090

[clients.eodhd]
api_key = "file-key"
timeout = "45s"

[compare]
default_ticker1 = "NVDA"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.True(t, config.IsProduction())
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "file-key", config.Clients.EODHD.APIKey)
	assert.Equal(t, 45*time.Second, config.Clients.EODHD.GetTimeout())
	assert.Equal(t, "NVDA", config.Compare.DefaultTicker1)

	// Unset fields keep their defaults.
	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, "MSFT", config.Compare.DefaultTicker2)
}

func TestLoadConfigMissingFileIsSkipped(t *testing.T) {
	config, err := LoadConfig("/nonexistent/stockcompare.toml")
	require.NoError(t, err)
	assert.Equal(t, 8080, config.Server.Port)
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("STOCKCOMPARE_ENV", "production")
	t.Setenv("STOCKCOMPARE_HOST", "127.0.0.1")
	t.Setenv("STOCKCOMPARE_PORT", "7070")
	t.Setenv("STOCKCOMPARE_LOG_LEVEL", "debug")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.Equal(t, "127.0.0.1", config.Server.Host)
	assert.Equal(t, 7070, config.Server.Port)
	assert.Equal(t, "debug", config.Logging.Level)
}

func TestGetTimeoutFallback(t *testing.T) {
	cfg := EODHDConfig{Timeout: "garbage"}
	assert.Equal(t, 30*time.Second, cfg.GetTimeout())
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("EODHD_API_KEY", "")
	t.Setenv("STOCKCOMPARE_EODHD_API_KEY", "")

	_, err := ResolveAPIKey("")
	assert.Error(t, err)

	key, err := ResolveAPIKey("from-config")
	require.NoError(t, err)
	assert.Equal(t, "from-config", key)

	t.Setenv("EODHD_API_KEY", "from-env")
	key, err = ResolveAPIKey("from-config")
	require.NoError(t, err)
	assert.Equal(t, "from-env", key, "environment wins over config")
}
