package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "db"
dbname = "hub"
user = "hub"
password = "from-file"

[logs]
level = "debug"

[auth]
jwt_secret = "file-secret"
admin_emails = ["Owner@Example.com"]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaultsAndFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "gemini-1.5-flash", cfg.Verifier.Model)
	assert.Equal(t, "host=db port=5432 user=hub password=from-file dbname=hub sslmode=disable", cfg.Database.DSN())
	assert.True(t, cfg.IsAdminEmail("owner@example.com"))
	assert.False(t, cfg.IsAdminEmail("rider@example.com"))
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DB_PASSWORD", "env-password")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "env-password", cfg.Database.Password)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeConfig(t, "[server]\nhttp_port = 8080\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestValidate_MailerNeedsKey(t *testing.T) {
	cfg := defaults()
	cfg.Auth.JWTSecret = "x"
	cfg.Mailer.Enabled = true

	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
