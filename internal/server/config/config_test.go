package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	saved := os.Args
	os.Args = append([]string{"credo-server"}, args...)
	t.Cleanup(func() { os.Args = saved })
}

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":6330", cfg.EndpointAddrHTTP)
	assert.Equal(t, 24*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, 6, cfg.PasswordMinLength)
	assert.NotEmpty(t, cfg.DatabaseDSN)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	withArgs(t, "-a", ":7000", "-s", "flag-secret", "-t", "60", "-l", "8")

	cfg := LoadConfig()

	assert.Equal(t, ":7000", cfg.EndpointAddrHTTP)
	assert.Equal(t, "flag-secret", cfg.SecretKey)
	assert.Equal(t, time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, 8, cfg.PasswordMinLength)
}

func TestLoadConfig_JsonOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		"endpoint_addr_http": ":8088",
		"secret_key": "json-secret",
		"token_validity_duration": "48h",
		"password_min_length": 8
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	withArgs(t, "-c", path)

	cfg := LoadConfig()

	assert.Equal(t, ":8088", cfg.EndpointAddrHTTP)
	assert.Equal(t, "json-secret", cfg.SecretKey)
	assert.Equal(t, 48*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, 8, cfg.PasswordMinLength)
}

func TestLoadConfig_FlagsBeatJson(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"secret_key":"json-secret"}`), 0o600))

	withArgs(t, "-c", path, "-s", "flag-secret")

	cfg := LoadConfig()
	assert.Equal(t, "flag-secret", cfg.SecretKey)
}
