package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is the freshness window: cached data older than this is stale
// and triggers a refresh on the next request.
const DefaultTTL = 24 * time.Hour

// fetcher pulls the raw product feed. Satisfied by *FeedClient.
type fetcher interface {
	Fetch(ctx context.Context) ([]FeedProduct, error)
}

// Status describes the cache for the /status endpoint.
type Status struct {
	IsLoaded     bool    `json:"isLoaded"`
	IsLoading    bool    `json:"isLoading"`
	ProductCount int     `json:"productCount"`
	CacheAge     *int64  `json:"cacheAge"`
	Error        *string `json:"error"`
}

// Cache holds the normalized catalog in memory, backed by a durable disk
// snapshot. A refresh replaces the whole product slice atomically; readers
// only ever observe a complete old or complete new catalog. Concurrent
// refreshes collapse into a single upstream fetch.
type Cache struct {
	feed fetcher
	snap *snapshotStore
	ttl  time.Duration

	group singleflight.Group
	wg    sync.WaitGroup

	mu        sync.RWMutex
	products  []CachedProduct
	fetchedAt time.Time
	loading   bool
	lastErr   string
}

// NewCache creates a catalog cache persisting its snapshot under cacheDir.
// A non-positive ttl selects DefaultTTL.
func NewCache(feed fetcher, cacheDir string, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		feed: feed,
		snap: newSnapshotStore(cacheDir),
		ttl:  ttl,
	}
}

// Products returns the cached catalog, refreshing it first when empty or
// stale. All concurrent callers of an in-flight refresh share its outcome.
func (c *Cache) Products(ctx context.Context) ([]CachedProduct, error) {
	if products, ok := c.fresh(); ok {
		return products, nil
	}

	v, err, _ := c.group.Do("catalog", func() (any, error) {
		// A caller queued behind a finished refresh reuses its result.
		if products, ok := c.fresh(); ok {
			return products, nil
		}
		return c.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]CachedProduct), nil
}

// Status reports the current cache state. Always succeeds.
func (c *Cache) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	status := Status{
		IsLoaded:     c.products != nil,
		IsLoading:    c.loading,
		ProductCount: len(c.products),
	}
	if !c.fetchedAt.IsZero() {
		status.CacheAge = lo.ToPtr(time.Since(c.fetchedAt).Milliseconds())
	}
	if c.lastErr != "" {
		status.Error = lo.ToPtr(c.lastErr)
	}
	return status
}

// Wait blocks until all background snapshot writes have finished. Used by
// graceful shutdown and tests.
func (c *Cache) Wait() {
	c.wg.Wait()
}

func (c *Cache) fresh() ([]CachedProduct, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.products != nil && time.Since(c.fetchedAt) < c.ttl {
		return c.products, true
	}
	return nil, false
}

// refresh repopulates the cache: a fresh disk snapshot wins outright,
// otherwise the feed is fetched and normalized, and the new snapshot is
// written in the background. On failure the previous catalog is kept so a
// later request can retry.
func (c *Cache) refresh(ctx context.Context) ([]CachedProduct, error) {
	c.setLoading(true)

	if snap, err := c.snap.load(); err == nil {
		fetchedAt := time.UnixMilli(snap.Timestamp)
		if time.Since(fetchedAt) < c.ttl {
			slog.InfoContext(ctx, "loaded catalog from snapshot", "products", len(snap.Products))
			snapshotLoads.Inc()
			c.adopt(snap.Products, fetchedAt)
			return snap.Products, nil
		}
		slog.InfoContext(ctx, "catalog snapshot expired")
	}

	raw, err := c.feed.Fetch(ctx)
	if err != nil {
		refreshErrors.Inc()
		c.fail(err)
		return nil, err
	}

	products := lo.Map(raw, func(item FeedProduct, _ int) CachedProduct {
		return normalize(item)
	})
	fetchedAt := time.Now()
	c.adopt(products, fetchedAt)
	refreshes.Inc()
	slog.InfoContext(ctx, "fetched catalog from feed", "products", len(products))

	// Snapshot persistence is best effort and must not delay the caller.
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.snap.save(products, fetchedAt); err != nil {
			snapshotWriteErrors.Inc()
			slog.Error("failed to save catalog snapshot", "error", err)
			return
		}
		slog.Info("saved catalog snapshot", "products", len(products))
	}()

	return products, nil
}

func (c *Cache) setLoading(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = v
	if v {
		c.lastErr = ""
	}
}

func (c *Cache) adopt(products []CachedProduct, fetchedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = products
	c.fetchedAt = fetchedAt
	c.loading = false
	c.lastErr = ""
}

func (c *Cache) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	c.lastErr = err.Error()
}
