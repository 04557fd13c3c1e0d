package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

// Manager manages the Redis connection and cache operations. Values are
// serialized with msgpack. A disabled cache returns ErrCacheDisabled from
// every operation; callers treat that the same as a miss.
type Manager struct {
	config  *Config
	client  *redis.Client
	metrics *Metrics
}

// NewManager creates a new cache manager.
func NewManager(config *Config) (*Manager, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cache config: %w", err)
	}

	m := &Manager{
		config:  config,
		metrics: NewMetrics(),
	}

	if config.Enabled {
		m.client = redis.NewClient(&redis.Options{
			Addr:            config.GetAddr(),
			Password:        config.Password,
			DB:              config.Database,
			PoolSize:        config.PoolSize,
			MinIdleConns:    config.MinIdleConns,
			PoolTimeout:     config.PoolTimeout,
			ConnMaxIdleTime: config.IdleTimeout,
			ReadTimeout:     config.ReadTimeout,
			WriteTimeout:    config.WriteTimeout,
			DialTimeout:     config.DialTimeout,
		})
	}

	return m, nil
}

// Config returns the manager's configuration.
func (m *Manager) Config() *Config {
	return m.config
}

// Metrics returns the manager's metrics collector.
func (m *Manager) Metrics() *Metrics {
	return m.metrics
}

// Close closes the Redis connection.
func (m *Manager) Close() error {
	if m.client != nil {
		return m.client.Close()
	}
	return nil
}

// Ping tests the Redis connection. A disabled cache is a valid configuration
// state, not an error.
func (m *Manager) Ping(ctx context.Context) error {
	if !m.config.Enabled {
		return nil
	}
	if m.client == nil {
		return ErrClientNotInitialized
	}
	if err := m.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	return nil
}

// checkClient validates that the cache is enabled and the client is initialized.
func (m *Manager) checkClient() error {
	if !m.config.Enabled {
		return ErrCacheDisabled
	}
	if m.client == nil {
		return ErrClientNotInitialized
	}
	return nil
}

// Get retrieves raw bytes from the cache.
func (m *Manager) Get(ctx context.Context, key string) ([]byte, error) {
	if err := m.checkClient(); err != nil {
		return nil, err
	}

	start := time.Now()
	result := m.client.Get(ctx, key)
	m.metrics.RecordGet(time.Since(start))

	if result.Err() == redis.Nil {
		m.metrics.RecordCacheMiss()
		return nil, ErrKeyNotFound
	}
	if result.Err() != nil {
		m.metrics.RecordCacheError()
		return nil, fmt.Errorf("redis get error: %w", result.Err())
	}

	m.metrics.RecordCacheHit()
	return []byte(result.Val()), nil
}

// Set stores raw bytes with the default TTL.
func (m *Manager) Set(ctx context.Context, key string, value []byte) error {
	return m.SetWithTTL(ctx, key, value, m.config.DefaultTTL)
}

// SetWithTTL stores raw bytes with a custom TTL.
func (m *Manager) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := m.checkClient(); err != nil {
		return err
	}

	start := time.Now()
	err := m.client.Set(ctx, key, value, ttl).Err()
	m.metrics.RecordSet(time.Since(start))
	if err != nil {
		m.metrics.RecordCacheError()
		return fmt.Errorf("redis set error: %w", err)
	}
	return nil
}

// GetValue retrieves a msgpack-encoded value into target.
func (m *Manager) GetValue(ctx context.Context, key string, target interface{}) error {
	data, err := m.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := msgpack.Unmarshal(data, target); err != nil {
		m.metrics.RecordCacheError()
		return fmt.Errorf("cache unmarshal error for key %s: %w", key, err)
	}
	return nil
}

// SetValue stores a value msgpack-encoded with the default TTL.
func (m *Manager) SetValue(ctx context.Context, key string, value interface{}) error {
	return m.SetValueWithTTL(ctx, key, value, m.config.DefaultTTL)
}

// SetValueWithTTL stores a value msgpack-encoded with a custom TTL.
func (m *Manager) SetValueWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if err := m.checkClient(); err != nil {
		return err
	}
	data, err := msgpack.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error for key %s: %w", key, err)
	}
	return m.SetWithTTL(ctx, key, data, ttl)
}

// Delete removes a key from the cache. Deleting a missing key is a no-op.
func (m *Manager) Delete(ctx context.Context, key string) error {
	if err := m.checkClient(); err != nil {
		return err
	}

	start := time.Now()
	err := m.client.Del(ctx, key).Err()
	m.metrics.RecordDelete(time.Since(start))
	if err != nil {
		m.metrics.RecordCacheError()
		return fmt.Errorf("redis del error: %w", err)
	}
	return nil
}

// DeleteKeys removes multiple keys from the cache.
func (m *Manager) DeleteKeys(ctx context.Context, keys []string) error {
	if err := m.checkClient(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return m.client.Del(ctx, keys...).Err()
}

// InvalidatePattern removes keys matching a pattern using SCAN instead of
// KEYS. SCAN is non-blocking and production-safe; KEYS blocks the server.
func (m *Manager) InvalidatePattern(ctx context.Context, pattern string) error {
	if err := m.checkClient(); err != nil {
		return err
	}

	const scanBatchSize = 100

	var cursor uint64
	for {
		batch, next, err := m.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			m.metrics.RecordCacheError()
			return fmt.Errorf("failed to scan keys with pattern %s: %w", pattern, err)
		}

		if len(batch) > 0 {
			if err := m.client.Del(ctx, batch...).Err(); err != nil {
				m.metrics.RecordCacheError()
				return fmt.Errorf("failed to delete batch: %w", err)
			}
			m.metrics.RecordInvalidation()
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return nil
}

// Exists checks if a key exists in the cache.
func (m *Manager) Exists(ctx context.Context, key string) (bool, error) {
	if err := m.checkClient(); err != nil {
		return false, err
	}
	n, err := m.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
