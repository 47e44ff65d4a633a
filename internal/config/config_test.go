package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigToml = `
[development]
host = "localhost"
port = 9000
log_level = "trace"
log_to_stdout = true
postgres_host = "localhost"
postgres_port = "5432"
postgres_db_name = "traintally_dev"
redis_host = "localhost"
redis_port = "6379"
assistant_model = "gpt-4o-mini"
assistant_max_tokens = 900
chat_rate_limit_allowed_per_min = 20

[production]
host = "0.0.0.0"
port = 8080
log_level = "debug"
sentry_enabled = true
postgres_host = "db"
postgres_port = "5432"
postgres_db_name = "traintally"
redis_host = "redis"
redis_port = "6379"
assistant_model = "gpt-4o-mini"
assistant_max_tokens = 900
chat_rate_limit_allowed_per_min = 20
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigToml), 0o600))

	cfg, err := Load("development", path)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "traintally_dev", cfg.PostgresDBName)
	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.LogToStdout)

	cfg, err = Load("production", path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.SentryEnabled)

	_, err = Load("staging", path)
	assert.Error(t, err)

	_, err = Load("development", filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
