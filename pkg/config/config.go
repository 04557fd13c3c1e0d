package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/bookvault/bookvault/pkg/cache"
	"github.com/bookvault/bookvault/pkg/db"
	"github.com/bookvault/bookvault/pkg/logger"
)

// Config is the process-wide application configuration, loaded once at
// startup from environment variables.
type Config struct {
	Port   int
	DB     *db.Config
	Cache  *cache.Config
	Logger logger.Config
}

// Load reads configuration from the environment with sensible local-dev
// defaults. Variable names follow the deployment convention (PORT, DB_*,
// REDIS_*, CACHE_*, LOG_*).
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", 9000)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_NAME", "booksdb")
	v.SetDefault("DB_USERNAME", "root")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_QUERY_TIMEOUT", "30s")
	v.SetDefault("DB_LOG_LEVEL", "error")

	v.SetDefault("CACHE_ENABLED", true)
	v.SetDefault("CACHE_TTL", "60s")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	dbCfg := db.DefaultConfig()
	dbCfg.Host = v.GetString("DB_HOST")
	dbCfg.Port = v.GetInt("DB_PORT")
	dbCfg.Database = v.GetString("DB_NAME")
	dbCfg.Username = v.GetString("DB_USERNAME")
	dbCfg.Password = v.GetString("DB_PASSWORD")
	dbCfg.MaxOpenConns = v.GetInt("DB_MAX_OPEN_CONNS")
	dbCfg.MaxIdleConns = v.GetInt("DB_MAX_IDLE_CONNS")
	dbCfg.QueryTimeout = v.GetDuration("DB_QUERY_TIMEOUT")
	dbCfg.LogLevel = v.GetString("DB_LOG_LEVEL")
	if err := dbCfg.Validate(); err != nil {
		return nil, err
	}

	cacheCfg := cache.DefaultConfig()
	cacheCfg.Enabled = v.GetBool("CACHE_ENABLED")
	cacheCfg.DefaultTTL = v.GetDuration("CACHE_TTL")
	cacheCfg.Host = v.GetString("REDIS_HOST")
	cacheCfg.Port = v.GetInt("REDIS_PORT")
	cacheCfg.Password = v.GetString("REDIS_PASSWORD")
	cacheCfg.Database = v.GetInt("REDIS_DB")
	if cacheCfg.DefaultTTL < time.Second {
		cacheCfg.DefaultTTL = time.Second
	}
	if err := cacheCfg.Validate(); err != nil {
		return nil, err
	}

	return &Config{
		Port:  v.GetInt("PORT"),
		DB:    dbCfg,
		Cache: cacheCfg,
		Logger: logger.Config{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}, nil
}
