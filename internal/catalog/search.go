package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/samber/lo"
)

const (
	// DefaultSearchLimit is used when a caller passes a non-positive limit.
	DefaultSearchLimit = 20
	maxSearchLimit     = 100
)

// productSource provides the catalog a searcher operates over.
// Satisfied by *Cache.
type productSource interface {
	Products(ctx context.Context) ([]CachedProduct, error)
}

// Searcher answers substring search and exact barcode lookups against the
// cached catalog.
type Searcher struct {
	source productSource
}

func NewSearcher(source productSource) *Searcher {
	return &Searcher{source: source}
}

// Search returns up to limit products whose search text contains every
// whitespace-separated term of the query. Products whose name starts with
// the full query rank first; within each group the catalog order is kept.
// An empty or whitespace-only query returns nothing without touching the
// cache.
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]CachedProduct, error) {
	lowerQuery := strings.ToLower(strings.TrimSpace(query))
	if lowerQuery == "" {
		return []CachedProduct{}, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	products, err := s.source.Products(ctx)
	if err != nil {
		return nil, err
	}

	terms := strings.Fields(lowerQuery)
	matches := lo.Filter(products, func(p CachedProduct, _ int) bool {
		for _, term := range terms {
			if !strings.Contains(p.SearchText, term) {
				return false
			}
		}
		return true
	})

	sort.SliceStable(matches, func(i, j int) bool {
		return startsWithRank(matches[i], lowerQuery) < startsWithRank(matches[j], lowerQuery)
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func startsWithRank(p CachedProduct, lowerQuery string) int {
	if strings.HasPrefix(strings.ToLower(p.Name), lowerQuery) {
		return 0
	}
	return 1
}

// ByBarcode resolves a scanned code to a product: exact match on the
// upstream product number first, then on the canonical id. Anything less
// than an exact match returns ErrNotFound; guessing serves the wrong bottle.
func (s *Searcher) ByBarcode(ctx context.Context, code string) (*CachedProduct, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrNotFound
	}

	products, err := s.source.Products(ctx)
	if err != nil {
		return nil, err
	}

	if p, ok := lo.Find(products, func(p CachedProduct) bool { return p.ProductNumber == code }); ok {
		return &p, nil
	}
	if p, ok := lo.Find(products, func(p CachedProduct) bool { return p.ID == code }); ok {
		return &p, nil
	}
	return nil, ErrNotFound
}
