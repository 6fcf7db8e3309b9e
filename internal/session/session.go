// Package session keeps per-connection lobby state and the login attempt
// counters that gate repeated token failures.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fishtable/internal/model"

	"github.com/google/uuid"
)

type Session struct {
	ConnID    string          `json:"conn_id"`
	UserID    uuid.UUID       `json:"user_id"`
	Role      model.Role      `json:"role"`
	State     model.RoomState `json:"state"`
	TableID   int             `json:"table_id"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func New(connID string) *Session {
	return &Session{ConnID: connID, State: model.RoomLoggedOut, TableID: -1, UpdatedAt: time.Now()}
}

// Transition moves the session to next if the room state machine allows it.
func (s *Session) Transition(next model.RoomState) error {
	if s.State == next {
		return nil
	}
	if !s.State.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", model.ErrInvalidState, s.State, next)
	}
	s.State = next
	s.UpdatedAt = time.Now()
	return nil
}

type Store interface {
	Get(ctx context.Context, connID string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, connID string) error
}

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (m *MemoryStore) Get(_ context.Context, connID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[connID]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return &s, nil
}

func (m *MemoryStore) Put(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ConnID] = *s
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, connID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, connID)
	return nil
}
