package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("DB_AUTO_MIGRATE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.True(t, cfg.Database.AutoMigrate)
}

func TestLoad_ProductionRequiresPassword(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	assert.ErrorContains(t, err, "DB_PASSWORD")
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("FLAG", "false")
	assert.False(t, getEnvBool("FLAG", true))

	t.Setenv("FLAG", "not-a-bool")
	assert.True(t, getEnvBool("FLAG", true))
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_RETRY_DELAY", "250ms")

	cfg, err := LoadDatabaseConfig()
	require.NoError(t, err)
	assert.Equal(t, 6543, cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
}

func TestLoadDatabaseConfig_InvalidDuration(t *testing.T) {
	t.Setenv("DB_CONNECT_TIMEOUT", "soon")

	_, err := LoadDatabaseConfig()
	assert.ErrorContains(t, err, "DB_CONNECT_TIMEOUT")
}
