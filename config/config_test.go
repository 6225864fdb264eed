package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
server:
  port: 8080
  read_timeout: 15
  write_timeout: 15
database:
  host: localhost
  port: 5432
  user: postgres
  password: postgres
  name: kb_cms
  sslmode: disable
  max_open_conns: 20
  max_idle_conns: 5
redis:
  enabled: false
  addr: localhost:6379
  channel: kb-cms.articles
translator:
  enabled: false
  source_lang: en
  timeout: 10
log:
  level: info
jwt:
  secret: config-test-secret
  expiration: 86400
`

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadReadsYAMLFile(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "kb_cms", cfg.Database.Name)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)

	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "kb-cms.articles", cfg.Redis.Channel)

	assert.Equal(t, "en", cfg.Translator.SourceLang)
	assert.Equal(t, 10*time.Second, cfg.Translator.Timeout)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(writeConfigFile(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadAppliesJWTSettings(t *testing.T) {
	_, err := Load(writeConfigFile(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, []byte("config-test-secret"), JWTSecret)
	assert.Equal(t, 24*time.Hour, JWTExpiration)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
