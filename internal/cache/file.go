package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileStore keeps one JSON file per key under a base directory. Writes go
// through a tmp file + rename so a crashed write never leaves a truncated
// entry; concurrent refreshes may both write, which is fine because every
// write is an idempotent snapshot of the same upstream data.
type FileStore struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// NewFileStore constructs a file-backed store rooted at dir.
func NewFileStore(dir string, ttl time.Duration) *FileStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &FileStore{dir: dir, ttl: ttl, now: time.Now}
}

// Load reads the entry for key. Absent, stale, or undecodable files are all
// reported as ErrMiss so the caller falls through to a refetch.
func (s *FileStore) Load(_ context.Context, key string) (Snapshot, error) {
	f, err := os.Open(s.path(key))
	if err != nil {
		cacheMisses.WithLabelValues("file").Inc()
		return Snapshot{}, ErrMiss
	}
	defer f.Close()

	var snap Snapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		cacheMisses.WithLabelValues("file").Inc()
		return Snapshot{}, ErrMiss
	}
	if snap.Stale(s.ttl, s.now()) {
		cacheMisses.WithLabelValues("file").Inc()
		return Snapshot{}, ErrMiss
	}

	cacheHits.WithLabelValues("file").Inc()
	return snap, nil
}

// Save writes the snapshot for key, creating the base directory on first use.
func (s *FileStore) Save(_ context.Context, key string, snap Snapshot) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("cache dir: %w", err)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return os.Rename(tmp, path)
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
