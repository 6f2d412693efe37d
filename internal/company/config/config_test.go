package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
HTTP_PORT: 9090
DEBUG: true
DB_DRIVER: postgres
DB_HOST: dbhost
DB_PORT: 5432
DB_USER: svc
DB_PASSWORD: filepass
DB_NAME: companies
DB_SSLMODE: disable
KAFKA_BROKERS:
  - broker1:9092
  - broker2:9092
TOPIC: company-events
JWT_SECRET: filesecret
ADMIN_USER: root
ADMIN_PASSWORD: rootpass
APP_ROOT: /srv/companyboard
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "dbhost", cfg.DBHost)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "filesecret", cfg.JWTSecret)
	assert.Equal(t, "/srv/companyboard", cfg.AppRoot)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "JWT_SECRET: s\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "companyboard.db", cfg.SQLitePath)
	assert.Equal(t, "company-events", cfg.Topic)
	assert.False(t, cfg.Debug)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, cfg.AppRoot, "app root defaults to the working directory")
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
JWT_SECRET: filesecret
ADMIN_PASSWORD: filepass
DB_PASSWORD: filedb
`)

	t.Setenv("JWT_SECRET", "envsecret")
	t.Setenv("ADMIN_PASSWORD", "envpass")
	t.Setenv("DB_PASSWORD", "envdb")
	t.Setenv("DEBUG", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "envsecret", cfg.JWTSecret)
	assert.Equal(t, "envpass", cfg.AdminPassword)
	assert.Equal(t, "envdb", cfg.DBPassword)
	assert.True(t, cfg.Debug)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "HTTP_PORT: [not a number\n")
	_, err := Load(path)
	assert.Error(t, err)
}
