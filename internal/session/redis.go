package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fishtable/internal/model"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps sessions as JSON values that expire after ttl of inactivity.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "fishtable:session:"
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisStore) key(connID string) string {
	return r.prefix + connID
}

func (r *RedisStore) Get(ctx context.Context, connID string) (*Session, error) {
	val, err := r.client.Get(ctx, r.key(connID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, model.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", r.key(connID), err)
	}
	var s Session
	if err := json.Unmarshal(val, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

func (r *RedisStore) Put(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	if err := r.client.Set(ctx, r.key(s.ConnID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", r.key(s.ConnID), err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, connID string) error {
	if err := r.client.Del(ctx, r.key(connID)).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", r.key(connID), err)
	}
	return nil
}

// RedisAttempts is an INCR counter per key; the first failure starts the window.
type RedisAttempts struct {
	client redis.UniversalClient
	prefix string
	max    int
	window time.Duration
}

func NewRedisAttempts(client redis.UniversalClient, prefix string, max int, window time.Duration) *RedisAttempts {
	if prefix == "" {
		prefix = "fishtable:login_attempts:"
	}
	return &RedisAttempts{client: client, prefix: prefix, max: max, window: window}
}

func (r *RedisAttempts) Register(ctx context.Context, key string) (int, error) {
	k := r.prefix + key
	n, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to incr key %s: %w", k, err)
	}
	if n == 1 {
		if err := r.client.Expire(ctx, k, r.window).Err(); err != nil {
			return 0, fmt.Errorf("failed to expire key %s: %w", k, err)
		}
	}
	count := int(n)
	if count >= r.max {
		return count, fmt.Errorf("%w: %d failures", model.ErrTooManyAttempts, count)
	}
	return count, nil
}

func (r *RedisAttempts) Blocked(ctx context.Context, key string) (bool, error) {
	count, err := r.client.Get(ctx, r.prefix+key).Int()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get key %s: %w", r.prefix+key, err)
	}
	return count >= r.max, nil
}

func (r *RedisAttempts) Reset(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", r.prefix+key, err)
	}
	return nil
}
