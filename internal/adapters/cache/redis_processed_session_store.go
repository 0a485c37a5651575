package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisProcessedSessionStore stores handled-payment markers with TTL.
// Marker loss is harmless; the order upsert stays idempotent without it.
type RedisProcessedSessionStore struct {
	client *redis.Client
}

// NewRedisProcessedSessionStore creates the payment replay-marker adapter.
func NewRedisProcessedSessionStore(client *redis.Client) *RedisProcessedSessionStore {
	return &RedisProcessedSessionStore{client: client}
}

func (s *RedisProcessedSessionStore) MarkProcessed(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return s.client.Set(ctx, "payments:processed:"+sessionID, "1", ttl).Err()
}

func (s *RedisProcessedSessionStore) IsProcessed(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, "payments:processed:"+sessionID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
