package jackpot

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
)

// PoolStore persists pool amounts across restarts.
type PoolStore interface {
	Load(ctx context.Context, tableID int) (decimal.Decimal, bool, error)
	Save(ctx context.Context, tableID int, amount decimal.Decimal) error
}

type MemoryPoolStore struct {
	mu    sync.Mutex
	pools map[int]decimal.Decimal
}

func NewMemoryPoolStore() *MemoryPoolStore {
	return &MemoryPoolStore{pools: make(map[int]decimal.Decimal)}
}

func (s *MemoryPoolStore) Load(_ context.Context, tableID int) (decimal.Decimal, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.pools[tableID]
	return v, ok, nil
}

func (s *MemoryPoolStore) Save(_ context.Context, tableID int, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pools[tableID] = amount
	return nil
}

// RedisPoolStore keeps one string key per table holding the decimal amount.
type RedisPoolStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisPoolStore(client redis.UniversalClient, prefix string) *RedisPoolStore {
	if prefix == "" {
		prefix = "fishtable:jackpot:"
	}
	return &RedisPoolStore{client: client, prefix: prefix}
}

func (s *RedisPoolStore) key(tableID int) string {
	return fmt.Sprintf("%spool:%d", s.prefix, tableID)
}

func (s *RedisPoolStore) Load(ctx context.Context, tableID int) (decimal.Decimal, bool, error) {
	val, err := s.client.Get(ctx, s.key(tableID)).Result()
	if errors.Is(err, redis.Nil) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to get key %s: %w", s.key(tableID), err)
	}
	amount, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("parse pool amount %q: %w", val, err)
	}
	return amount, true, nil
}

func (s *RedisPoolStore) Save(ctx context.Context, tableID int, amount decimal.Decimal) error {
	if err := s.client.Set(ctx, s.key(tableID), amount.String(), 0).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", s.key(tableID), err)
	}
	return nil
}
