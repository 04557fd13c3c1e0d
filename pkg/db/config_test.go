package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing host", func(c *Config) { c.Host = "" }},
		{"port out of range", func(c *Config) { c.Port = 0 }},
		{"missing database", func(c *Config) { c.Database = "" }},
		{"missing username", func(c *Config) { c.Username = "" }},
		{"zero open conns", func(c *Config) { c.MaxOpenConns = 0 }},
		{"idle above open", func(c *Config) { c.MaxIdleConns = c.MaxOpenConns + 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGetDSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "db.internal"
	cfg.Port = 3307
	cfg.Database = "books"
	cfg.Username = "svc"
	cfg.Password = "secret"

	dsn := cfg.GetDSN()
	assert.Contains(t, dsn, "svc:secret@tcp(db.internal:3307)/books")
	assert.Contains(t, dsn, "parseTime=true")
}
