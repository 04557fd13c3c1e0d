package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "booksdb", cfg.DB.Database)
	assert.Equal(t, 30*time.Second, cfg.DB.QueryTimeout)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 60*time.Second, cfg.Cache.DefaultTTL)
	assert.Equal(t, "localhost:6379", cfg.Cache.GetAddr())
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_NAME", "library")
	t.Setenv("DB_QUERY_TIMEOUT", "5s")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "library", cfg.DB.Database)
	assert.Equal(t, 5*time.Second, cfg.DB.QueryTimeout)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadRejectsInvalidDatabaseConfig(t *testing.T) {
	t.Setenv("DB_PORT", "0")

	_, err := Load()
	assert.Error(t, err)
}
