package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFeed counts fetches and serves canned rows, optionally failing first.
type stubFeed struct {
	calls   atomic.Int64
	fail    atomic.Bool
	rows    []FeedProduct
	latency time.Duration
}

func (f *stubFeed) Fetch(ctx context.Context) ([]FeedProduct, error) {
	f.calls.Add(1)
	if f.latency > 0 {
		time.Sleep(f.latency)
	}
	if f.fail.Load() {
		return nil, errors.New("feed unavailable")
	}
	return f.rows, nil
}

func writeSnapshot(t *testing.T, dir string, snap snapshot) {
	t.Helper()
	data, err := json.Marshal(snap)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, snapshotFile), data, 0644))
}

func testRows() []FeedProduct {
	return []FeedProduct{
		{ProductID: "a", ProductNumber: "100", ProductNameBold: "Öl A", Country: "Sverige"},
		{ProductID: "b", ProductNumber: "200", ProductNameBold: "Vin B", Country: "Chile"},
	}
}

func TestCache_LoadsAndNormalizes(t *testing.T) {
	t.Parallel()

	feed := &stubFeed{rows: testRows()}
	cache := NewCache(feed, t.TempDir(), DefaultTTL)
	t.Cleanup(cache.Wait)

	products, err := cache.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "öl a   sverige 100", products[0].SearchText)
	assert.Equal(t, "100", products[0].ProductNumber)
	assert.Equal(t, int64(1), feed.calls.Load())

	// Second call is served from memory.
	_, err = cache.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), feed.calls.Load())
}

func TestCache_ConcurrentCallersShareOneFetch(t *testing.T) {
	t.Parallel()

	feed := &stubFeed{rows: testRows(), latency: 50 * time.Millisecond}
	cache := NewCache(feed, t.TempDir(), DefaultTTL)
	t.Cleanup(cache.Wait)

	const callers = 16
	results := make([][]CachedProduct, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cache.Products(context.Background())
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), feed.calls.Load(), "concurrent callers must share a single upstream fetch")
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.Len(t, results[i], 2)
		assert.Equal(t, results[0][0].ID, results[i][0].ID)
	}
}

func TestCache_AdoptsFreshSnapshot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSnapshot(t, dir, snapshot{
		Timestamp: time.Now().UnixMilli(),
		Products: []CachedProduct{
			{Product: Product{ID: "snap", Name: "Snapshotöl"}, ProductNumber: "1"},
		},
	})

	feed := &stubFeed{rows: testRows()}
	cache := NewCache(feed, dir, DefaultTTL)

	products, err := cache.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "snap", products[0].ID)
	assert.Equal(t, int64(0), feed.calls.Load(), "fresh snapshot must skip the network fetch")
}

func TestCache_StaleSnapshotRefetches(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSnapshot(t, dir, snapshot{
		Timestamp: time.Now().Add(-25 * time.Hour).UnixMilli(),
		Products: []CachedProduct{
			{Product: Product{ID: "stale"}, ProductNumber: "1"},
		},
	})

	feed := &stubFeed{rows: testRows()}
	cache := NewCache(feed, dir, DefaultTTL)
	t.Cleanup(cache.Wait)

	products, err := cache.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(1), feed.calls.Load())
}

func TestCache_CorruptSnapshotIsCacheMiss(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, snapshotFile), []byte("{garbage"), 0644))

	feed := &stubFeed{rows: testRows()}
	cache := NewCache(feed, dir, DefaultTTL)
	t.Cleanup(cache.Wait)

	products, err := cache.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
}

func TestCache_WritesSnapshotAfterFetch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	feed := &stubFeed{rows: testRows()}
	cache := NewCache(feed, dir, DefaultTTL)

	_, err := cache.Products(context.Background())
	require.NoError(t, err)
	cache.Wait()

	data, err := os.ReadFile(filepath.Join(dir, snapshotFile))
	require.NoError(t, err)

	var snap snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Len(t, snap.Products, 2)
	assert.Greater(t, snap.Timestamp, int64(0))
}

func TestCache_FetchFailureKeepsPriorData(t *testing.T) {
	t.Parallel()

	feed := &stubFeed{rows: testRows()}
	// Tiny TTL so the second call sees stale data and refreshes.
	cache := NewCache(feed, t.TempDir(), time.Millisecond)
	t.Cleanup(cache.Wait)

	first, err := cache.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)
	cache.Wait()

	time.Sleep(5 * time.Millisecond)
	feed.fail.Store(true)

	// Snapshot on disk is also stale by now, so the refresh hits the feed
	// and fails; the error propagates but prior data stays for retries.
	_, err = cache.Products(context.Background())
	require.Error(t, err)

	status := cache.Status()
	assert.True(t, status.IsLoaded, "previous catalog must survive a failed refresh")
	assert.Equal(t, 2, status.ProductCount)
	require.NotNil(t, status.Error)
	assert.Contains(t, *status.Error, "feed unavailable")

	// Upstream recovers; the next request succeeds again.
	feed.fail.Store(false)
	recovered, err := cache.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, recovered, 2)
	assert.Nil(t, cache.Status().Error)
}

func TestCache_StatusEmpty(t *testing.T) {
	t.Parallel()

	cache := NewCache(&stubFeed{}, t.TempDir(), DefaultTTL)
	status := cache.Status()

	assert.False(t, status.IsLoaded)
	assert.False(t, status.IsLoading)
	assert.Zero(t, status.ProductCount)
	assert.Nil(t, status.CacheAge)
	assert.Nil(t, status.Error)
}

func TestCache_StatusAfterLoad(t *testing.T) {
	t.Parallel()

	cache := NewCache(&stubFeed{rows: testRows()}, t.TempDir(), DefaultTTL)
	t.Cleanup(cache.Wait)
	_, err := cache.Products(context.Background())
	require.NoError(t, err)

	status := cache.Status()
	assert.True(t, status.IsLoaded)
	assert.False(t, status.IsLoading)
	assert.Equal(t, 2, status.ProductCount)
	require.NotNil(t, status.CacheAge)
	assert.GreaterOrEqual(t, *status.CacheAge, int64(0))
}
