package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.NotEmpty(t, cfg.DatabaseDSN)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenValidityDuration)
	assert.Equal(t, 12, cfg.BcryptCost)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("ADDRESS", ":9999")
	t.Setenv("DATABASE_DSN", "postgres://u:p@db:5432/x")
	t.Setenv("ACCESS_TOKEN_VALIDITY_MINUTES", "5")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example,https://b.example")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DatabaseDSN)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
}

func TestParseEnv_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_VALIDITY_MINUTES", "soon")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
}

func TestParseJson_File(t *testing.T) {
	content := `{
		"addr": ":7070",
		"secret_key": "json-secret",
		"access_token_validity_duration": "30m"
	}`
	f, err := os.CreateTemp(t.TempDir(), "cfg*.json")
	require.NoError(t, err)
	_, err = f.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	origArgs := os.Args
	os.Args = []string{"server", "-c", f.Name()}
	t.Cleanup(func() { os.Args = origArgs })

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "json-secret", cfg.SecretKey)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
	// untouched fields keep their defaults
	assert.Equal(t, 12, cfg.BcryptCost)
}
