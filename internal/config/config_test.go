package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into an empty directory so a developer's .env is not picked up.
func chdir(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("DATABASE_URL", "file:test.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, "bcrypt", cfg.PasswordMode)
	assert.Equal(t, 10*time.Second, cfg.EncryptionTimeout)
	assert.Equal(t, 587, cfg.MailPort)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Environment(t *testing.T) {
	chdir(t)
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/med")
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "prod-secret")
	t.Setenv("PASSWORD_MODE", "remote")
	t.Setenv("ENCRYPTION_SERVICE_URL", "http://cipher:8000")
	t.Setenv("ENCRYPTION_KEY", "k")
	t.Setenv("ENCRYPTION_TIMEOUT", "3s")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "remote", cfg.PasswordMode)
	assert.Equal(t, 3*time.Second, cfg.EncryptionTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_DotEnv(t *testing.T) {
	chdir(t)
	for _, k := range []string{"DATABASE_URL", "APP_BASE_URL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	require.NoError(t, os.WriteFile(filepath.Join(".", ".env"),
		[]byte("DATABASE_URL=sqlite://from-dotenv.db\nAPP_BASE_URL=https://med.example\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite://from-dotenv.db", cfg.DatabaseURL)
	assert.Equal(t, "https://med.example", cfg.AppBaseURL)
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	chdir(t)
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{Env: "development", JWTSecret: "s", JWTAlgorithm: "HS256", PasswordMode: "bcrypt"}
	}
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"production default secret", func(c *Config) { c.Env = "production"; c.JWTSecret = "medrecords-dev-secret" }, "JWT_SECRET"},
		{"asymmetric alg", func(c *Config) { c.JWTAlgorithm = "RS256" }, "JWT_ALGORITHM"},
		{"remote without url", func(c *Config) { c.PasswordMode = "remote"; c.EncryptionKey = "k" }, "ENCRYPTION_SERVICE_URL"},
		{"unknown mode", func(c *Config) { c.PasswordMode = "plain" }, "PASSWORD_MODE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
	assert.NoError(t, base().Validate())
}
