// Package cache stores fetched upstream snapshots for a fixed freshness
// window so repeated requests do not hammer the FPL API. It is a single-key
// (well, tiny-keyspace) cache with overwrite-on-refresh semantics, not a
// general-purpose store.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/fplcentral/recommender-api/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultTTL is the snapshot freshness window.
const DefaultTTL = 15 * time.Minute

// ErrMiss signals that no fresh entry exists and the caller must refetch.
// Corrupt or unreadable entries are reported as misses, never as fatal
// errors.
var ErrMiss = errors.New("cache: miss")

// Prometheus metrics
var (
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fpl_cache_hits_total",
		Help: "Total number of fresh cache reads by backend",
	}, []string{"backend"})

	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fpl_cache_misses_total",
		Help: "Total number of cache misses (absent, stale or corrupt) by backend",
	}, []string{"backend"})
)

// Snapshot is the cached unit: the normalized player set plus the time it
// was fetched upstream.
type Snapshot struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Players   []models.Player `json:"players"`
}

// Stale reports whether the snapshot has outlived the freshness window.
func (s Snapshot) Stale(ttl time.Duration, now time.Time) bool {
	return now.Sub(s.FetchedAt) >= ttl
}

// Store is the snapshot cache contract. Load returns ErrMiss when the entry
// is absent, stale or unreadable; Save overwrites unconditionally.
type Store interface {
	Load(ctx context.Context, key string) (Snapshot, error)
	Save(ctx context.Context, key string, snap Snapshot) error
}
