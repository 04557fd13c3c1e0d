package cache_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookvault/bookvault/pkg/cache"
)

func newTestManager(t *testing.T) (*cache.Manager, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := cache.DefaultConfig()
	cfg.Host = mr.Host()
	cfg.Port = port

	m, err := cache.NewManager(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })

	return m, mr
}

func TestGetMissingKey(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)
	assert.True(t, cache.IsKeyNotFound(err))
}

func TestSetGetRoundTrip(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("v")))

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	exists, err := m.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestValueRoundTrip(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	type payload struct {
		Name  string   `msgpack:"name"`
		Count int64    `msgpack:"count"`
		Tags  []string `msgpack:"tags"`
	}

	in := payload{Name: "dune", Count: 3, Tags: []string{"scifi"}}
	require.NoError(t, m.SetValue(ctx, "p", in))

	var out payload
	require.NoError(t, m.GetValue(ctx, "p", &out))
	assert.Equal(t, in, out)
}

func TestTTLExpiry(t *testing.T) {
	m, mr := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.SetWithTTL(ctx, "short", []byte("v"), time.Second))

	mr.FastForward(2 * time.Second)

	_, err := m.Get(ctx, "short")
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)
}

func TestDeleteMissingKeyIsNoop(t *testing.T) {
	m, _ := newTestManager(t)
	assert.NoError(t, m.Delete(context.Background(), "absent"))
}

func TestInvalidatePattern(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "book:page:aaaa", []byte("1")))
	require.NoError(t, m.Set(ctx, "book:page:bbbb", []byte("2")))
	require.NoError(t, m.Set(ctx, "book:all", []byte("3")))

	require.NoError(t, m.InvalidatePattern(ctx, "book:page:*"))

	_, err := m.Get(ctx, "book:page:aaaa")
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)
	_, err = m.Get(ctx, "book:page:bbbb")
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)

	// Keys outside the pattern survive.
	got, err := m.Get(ctx, "book:all")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), got)
}

func TestInvalidatePatternNoMatches(t *testing.T) {
	m, _ := newTestManager(t)
	assert.NoError(t, m.InvalidatePattern(context.Background(), "book:page:*"))
}

func TestDisabledCache(t *testing.T) {
	cfg := cache.DefaultConfig()
	cfg.Enabled = false

	m, err := cache.NewManager(cfg)
	require.NoError(t, err)

	ctx := context.Background()

	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrCacheDisabled)
	assert.True(t, cache.IsCacheDisabled(err))

	assert.ErrorIs(t, m.Set(ctx, "k", []byte("v")), cache.ErrCacheDisabled)
	assert.ErrorIs(t, m.Delete(ctx, "k"), cache.ErrCacheDisabled)
	assert.ErrorIs(t, m.InvalidatePattern(ctx, "*"), cache.ErrCacheDisabled)

	// A disabled cache is a valid configuration, not a failed dependency.
	assert.NoError(t, m.Ping(ctx))
	assert.NoError(t, m.Close())
}

func TestMetricsCounters(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	_, _ = m.Get(ctx, "absent")
	require.NoError(t, m.Set(ctx, "k", []byte("v")))
	_, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.NoError(t, m.Delete(ctx, "k"))

	snap := m.Metrics().Snapshot()
	assert.Equal(t, uint64(1), snap.CacheHits)
	assert.Equal(t, uint64(1), snap.CacheMisses)
	assert.Equal(t, uint64(2), snap.Gets)
	assert.Equal(t, uint64(1), snap.Sets)
	assert.Equal(t, uint64(1), snap.Deletes)
	assert.Zero(t, snap.CacheErrors)
}
