package cache

import (
	"fmt"
	"time"
)

// Config holds Redis cache configuration.
type Config struct {
	// Enabled toggles the cache as a whole. With the cache disabled every
	// read goes straight to the store and invalidation becomes a no-op.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// DefaultTTL is applied to every cached entry unless a call overrides it.
	DefaultTTL time.Duration `json:"default_ttl" yaml:"default_ttl"`

	// Connection
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Password string `json:"password" yaml:"password"`
	Database int    `json:"database" yaml:"database"`

	// Connection pool
	PoolSize     int           `json:"pool_size" yaml:"pool_size"`
	MinIdleConns int           `json:"min_idle_conns" yaml:"min_idle_conns"`
	PoolTimeout  time.Duration `json:"pool_timeout" yaml:"pool_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout" yaml:"idle_timeout"`

	// Timeouts
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
	DialTimeout  time.Duration `json:"dial_timeout" yaml:"dial_timeout"`
}

// DefaultConfig returns a cache configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		DefaultTTL:   60 * time.Second,
		Host:         "localhost",
		Port:         6379,
		Database:     0,
		PoolSize:     10,
		MinIdleConns: 3,
		PoolTimeout:  4 * time.Second,
		IdleTimeout:  5 * time.Minute,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		DialTimeout:  5 * time.Second,
	}
}

// Validate checks if the cache configuration is valid.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil // Nothing to validate when the cache is off
	}
	if c.Host == "" {
		return fmt.Errorf("redis host is required when cache is enabled")
	}
	if c.Port <= 0 {
		return fmt.Errorf("redis port must be positive")
	}
	if c.DefaultTTL <= 0 {
		return fmt.Errorf("default_ttl must be positive when cache is enabled")
	}
	if c.PoolSize < 1 {
		return fmt.Errorf("pool_size must be at least 1")
	}
	return nil
}

// GetAddr returns the Redis connection address.
func (c *Config) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
