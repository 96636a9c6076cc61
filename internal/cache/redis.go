package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps snapshots in Redis with the TTL enforced server-side.
// Used when REDIS_URL is configured; the staleness check still runs on the
// embedded timestamp so a backend with a longer TTL behaves identically.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisStore constructs a Redis-backed store from a parsed client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl, now: time.Now}
}

// Load reads the entry for key. Missing keys, Redis errors and undecodable
// payloads are all reported as ErrMiss.
func (s *RedisStore) Load(ctx context.Context, key string) (Snapshot, error) {
	data, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if err != nil {
		cacheMisses.WithLabelValues("redis").Inc()
		return Snapshot{}, ErrMiss
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		cacheMisses.WithLabelValues("redis").Inc()
		return Snapshot{}, ErrMiss
	}
	if snap.Stale(s.ttl, s.now()) {
		cacheMisses.WithLabelValues("redis").Inc()
		return Snapshot{}, ErrMiss
	}

	cacheHits.WithLabelValues("redis").Inc()
	return snap, nil
}

// Save writes the snapshot for key with the freshness window as expiry.
func (s *RedisStore) Save(ctx context.Context, key string, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.redisKey(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) redisKey(key string) string {
	return "fpl:snapshot:" + key
}
