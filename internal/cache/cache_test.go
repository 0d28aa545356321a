package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ctpsync/internal/testutil"
)

func TestKeyCache_FetchOnMissThenHit(t *testing.T) {
	backend := testutil.NewFakeBackend("type", map[string]string{"myTypeKey": "typeId"})
	c := New()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		id, found, err := c.FetchCachedID(ctx, "type", "myTypeKey", backend.Lookup)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "typeId", id)
	}
	assert.Equal(t, 1, backend.Lookups("myTypeKey"))
	assert.Equal(t, 1, c.Len())
}

func TestKeyCache_AbsenceIsNotCached(t *testing.T) {
	backend := testutil.NewFakeBackend("category", nil)
	c := New()
	ctx := context.Background()

	_, found, err := c.FetchCachedID(ctx, "category", "parent", backend.Lookup)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, c.Len())

	// The parent shows up later in the run.
	_, err = backend.Create(ctx, "parent")
	require.NoError(t, err)

	id, found, err := c.FetchCachedID(ctx, "category", "parent", backend.Lookup)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "category-1", id)
}

func TestKeyCache_TransportErrorPassesThrough(t *testing.T) {
	boom := errors.New("i/o timeout")
	backend := testutil.NewFakeBackend("type", nil)
	backend.LookupErr = boom
	c := New()

	_, found, err := c.FetchCachedID(context.Background(), "type", "k", backend.Lookup)
	assert.Same(t, boom, err)
	assert.False(t, found)
	assert.Zero(t, c.Len())
}

func TestKeyCache_ResourceTypesAreSeparate(t *testing.T) {
	c := New()
	c.Put("category", "k", "category-id")
	c.Put("channel", "k", "channel-id")

	id, ok := c.Get("category", "k")
	require.True(t, ok)
	assert.Equal(t, "category-id", id)

	id, ok = c.Get("channel", "k")
	require.True(t, ok)
	assert.Equal(t, "channel-id", id)

	_, ok = c.Get("type", "k")
	assert.False(t, ok)
}

func TestKeyCache_PutIsWriteOnce(t *testing.T) {
	c := New()
	assert.Equal(t, "first", c.Put("type", "k", "first"))
	assert.Equal(t, "first", c.Put("type", "k", "second"))

	id, _ := c.Get("type", "k")
	assert.Equal(t, "first", id)
}

func TestKeyCache_ConcurrentAccess(t *testing.T) {
	backend := testutil.NewFakeBackend("type", map[string]string{"a": "1", "b": "2", "c": "3"})
	c := New()
	lookup := c.Lookup("type", backend.Lookup)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, key := range []string{"a", "b", "c", "missing"} {
				_, _, err := lookup(context.Background(), key)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, c.Len())
	id, _ := c.Get("type", "b")
	assert.Equal(t, "2", id)
}

func TestKeyCache_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(WithMetrics(NewMetrics(reg)))
	backend := testutil.NewFakeBackend("type", map[string]string{"k": "id"})
	ctx := context.Background()

	_, _, _ = c.FetchCachedID(ctx, "type", "k", backend.Lookup)
	_, _, _ = c.FetchCachedID(ctx, "type", "k", backend.Lookup)
	_, _, _ = c.FetchCachedID(ctx, "type", "k", backend.Lookup)

	expected := `
# HELP ctpsync_key_cache_hits_total Number of key lookups answered from the cache.
# TYPE ctpsync_key_cache_hits_total counter
ctpsync_key_cache_hits_total{resource_type="type"} 2
# HELP ctpsync_key_cache_misses_total Number of key lookups that had to query the backend.
# TYPE ctpsync_key_cache_misses_total counter
ctpsync_key_cache_misses_total{resource_type="type"} 1
`
	require.NoError(t, promtestutil.GatherAndCompare(reg, strings.NewReader(expected),
		"ctpsync_key_cache_hits_total", "ctpsync_key_cache_misses_total"))
}
