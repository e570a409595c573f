package session

import (
	"context"
	"time"

	"foodcart/internal/cache"
)

const redisKeyPrefix = "session:"

// RedisStore keeps each session as a Redis hash with a sliding TTL.
type RedisStore struct {
	cache *cache.Client
	ttl   time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis backed store.
func NewRedisStore(cache *cache.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: cache, ttl: ttl}
}

// Load returns the session hash. Redis outages read as an empty session.
func (s *RedisStore) Load(ctx context.Context, sessionID string) (map[string]string, error) {
	return s.cache.HGetAll(ctx, redisKeyPrefix+sessionID), nil
}

// Set merges values into the session hash and refreshes its TTL.
func (s *RedisStore) Set(ctx context.Context, sessionID string, values map[string]string) error {
	return s.cache.HSet(ctx, redisKeyPrefix+sessionID, values, s.ttl)
}

// Delete removes fields of the session hash.
func (s *RedisStore) Delete(ctx context.Context, sessionID string, keys ...string) error {
	return s.cache.HDel(ctx, redisKeyPrefix+sessionID, keys...)
}

// Clear removes the session hash.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, redisKeyPrefix+sessionID)
}
