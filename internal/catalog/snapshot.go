package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const snapshotFile = "products.json"

// snapshot is the durable on-disk form of the catalog: one JSON document,
// overwritten wholesale on every successful refresh.
type snapshot struct {
	// Timestamp is epoch milliseconds of the fetch that produced Products.
	Timestamp int64           `json:"timestamp"`
	Products  []CachedProduct `json:"products"`
}

// snapshotStore reads and writes the catalog snapshot under a cache
// directory. The catalog cache is its only writer.
type snapshotStore struct {
	path string
}

func newSnapshotStore(dir string) *snapshotStore {
	return &snapshotStore{path: filepath.Join(dir, snapshotFile)}
}

// load reads the snapshot. A missing or corrupt file is an error; callers
// treat any load error as a cache miss.
func (s *snapshotStore) load() (*snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

func (s *snapshotStore) save(products []CachedProduct, fetchedAt time.Time) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	data, err := json.Marshal(snapshot{
		Timestamp: fetchedAt.UnixMilli(),
		Products:  products,
	})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
