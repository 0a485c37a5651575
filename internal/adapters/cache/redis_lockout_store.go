package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/ports"
)

const lockoutKeyPrefix = "auth:lockout:"

// RedisLockoutStore implements sliding-window brute-force protection in
// Redis. Failures older than the window reset the counter; reaching the
// threshold sets blocked_until and every attempt until then is refused.
type RedisLockoutStore struct {
	client *redis.Client
}

// NewRedisLockoutStore creates a lockout store backed by Redis hashes.
func NewRedisLockoutStore(client *redis.Client) *RedisLockoutStore {
	return &RedisLockoutStore{client: client}
}

func (s *RedisLockoutStore) Get(ctx context.Context, key string) (ports.LockoutState, error) {
	data, err := s.client.HGetAll(ctx, lockoutKeyPrefix+key).Result()
	if err != nil {
		return ports.LockoutState{}, err
	}
	return parseState(data), nil
}

func (s *RedisLockoutStore) RecordFailure(ctx context.Context, key string, now time.Time, threshold int, window, blockFor time.Duration) (ports.LockoutState, error) {
	redisKey := lockoutKeyPrefix + key

	data, err := s.client.HGetAll(ctx, redisKey).Result()
	if err != nil {
		return ports.LockoutState{}, err
	}
	state := parseState(data)

	// Sliding window: a stale first attempt means this failure starts a new window.
	if state.FailedCount > 0 && now.Sub(state.WindowStart) > window {
		if err := s.client.Del(ctx, redisKey).Err(); err != nil {
			return ports.LockoutState{}, err
		}
		state = ports.LockoutState{}
	}

	if state.FailedCount == 0 {
		if err := s.client.HSet(ctx, redisKey, "window_start", now.Unix()).Err(); err != nil {
			return ports.LockoutState{}, err
		}
		state.WindowStart = now
	}

	count, err := s.client.HIncrBy(ctx, redisKey, "failed_count", 1).Result()
	if err != nil {
		return ports.LockoutState{}, err
	}
	state.FailedCount = int(count)

	if state.FailedCount >= threshold {
		blockedUntil := now.Add(blockFor).UTC()
		_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.HSet(ctx, redisKey, "blocked_until", blockedUntil.Unix())
			p.Expire(ctx, redisKey, blockFor+30*time.Minute)
			return nil
		})
		if err != nil {
			return ports.LockoutState{}, err
		}
		state.BlockedUntil = &blockedUntil
		return state, nil
	}

	_ = s.client.Expire(ctx, redisKey, window+time.Hour).Err()
	return state, nil
}

func (s *RedisLockoutStore) Clear(ctx context.Context, key string) error {
	return s.client.Del(ctx, lockoutKeyPrefix+key).Err()
}

func parseState(data map[string]string) ports.LockoutState {
	state := ports.LockoutState{}
	if raw, ok := data["failed_count"]; ok {
		if n, convErr := strconv.Atoi(raw); convErr == nil {
			state.FailedCount = n
		}
	}
	if raw, ok := data["window_start"]; ok && raw != "" {
		if unix, convErr := strconv.ParseInt(raw, 10, 64); convErr == nil && unix > 0 {
			state.WindowStart = time.Unix(unix, 0).UTC()
		}
	}
	if raw, ok := data["blocked_until"]; ok && raw != "" {
		if unix, convErr := strconv.ParseInt(raw, 10, 64); convErr == nil && unix > 0 {
			t := time.Unix(unix, 0).UTC()
			state.BlockedUntil = &t
		}
	}
	return state
}
