package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fishtable/internal/model"
)

// AttemptTracker counts failed logins per key inside a sliding window.
type AttemptTracker interface {
	// Register records one failure and returns ErrTooManyAttempts once the key
	// has reached the limit.
	Register(ctx context.Context, key string) (int, error)
	Blocked(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

type attempt struct {
	count   int
	expires time.Time
}

type MemoryAttempts struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	keys   map[string]attempt
	now    func() time.Time
}

func NewMemoryAttempts(max int, window time.Duration) *MemoryAttempts {
	return &MemoryAttempts{max: max, window: window, keys: make(map[string]attempt), now: time.Now}
}

func (m *MemoryAttempts) current(key string) attempt {
	a, ok := m.keys[key]
	if !ok || !m.now().Before(a.expires) {
		delete(m.keys, key)
		return attempt{}
	}
	return a
}

func (m *MemoryAttempts) Register(_ context.Context, key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a := m.current(key)
	if a.count == 0 {
		a.expires = m.now().Add(m.window)
	}
	a.count++
	m.keys[key] = a

	if a.count >= m.max {
		return a.count, fmt.Errorf("%w: %d failures", model.ErrTooManyAttempts, a.count)
	}
	return a.count, nil
}

func (m *MemoryAttempts) Blocked(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current(key).count >= m.max, nil
}

func (m *MemoryAttempts) Reset(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, key)
	return nil
}
