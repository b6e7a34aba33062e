package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every env var that Load() reads.
var allConfigKeys = []string{
	"PASSCHECK_LISTEN_ADDR",
	"PASSCHECK_DB_PATH",
	"PASSCHECK_KEY_PATH",
	"PASSCHECK_BREACH_API_URL",
	"PASSCHECK_BREACH_TIMEOUT",
	"PORT",
}

// isolateConfigEnv saves and unsets all config env vars so tests don't
// inherit values from the host environment, and moves into an empty working
// directory so no stray .env file is picked up.
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
	t.Chdir(t.TempDir())
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("PASSCHECK_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("PASSCHECK_DB_PATH", "/tmp/test.db")
	t.Setenv("PASSCHECK_KEY_PATH", "/tmp/test.key")
	t.Setenv("PASSCHECK_BREACH_API_URL", "http://localhost:1234")
	t.Setenv("PASSCHECK_BREACH_TIMEOUT", "2s")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "/tmp/test.key", cfg.KeyPath)
	assert.Equal(t, "http://localhost:1234", cfg.BreachAPIURL)
	assert.Equal(t, 2*time.Second, cfg.BreachTimeout)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:5500", cfg.ListenAddr)
	assert.Equal(t, "passcheck.db", cfg.DBPath)
	assert.Equal(t, "secret.key", cfg.KeyPath)
	assert.Equal(t, "https://api.pwnedpasswords.com", cfg.BreachAPIURL)
	assert.Equal(t, 5*time.Second, cfg.BreachTimeout)
}

func TestLoad_PortOverridesListenPort(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("PASSCHECK_LISTEN_ADDR", "0.0.0.0:8080")
	t.Setenv("PORT", "7000")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:7000", cfg.ListenAddr)
}

func TestLoad_InvalidBreachTimeout(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("PASSCHECK_BREACH_TIMEOUT", "soon")

	_, err := Load()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "PASSCHECK_BREACH_TIMEOUT")
}

func TestLoad_NonPositiveBreachTimeout(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("PASSCHECK_BREACH_TIMEOUT", "0s")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoad_DotEnvFile(t *testing.T) {
	isolateConfigEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(".", ".env"),
		[]byte("PASSCHECK_DB_PATH=from-dotenv.db\nPASSCHECK_KEY_PATH=from-dotenv.key\n"), 0o600))
	t.Setenv("PASSCHECK_KEY_PATH", "from-env.key")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.db", cfg.DBPath)
	assert.Equal(t, "from-env.key", cfg.KeyPath, "real environment wins over .env")
}
