// Package memory is an in-process implementation of every repository.
// Transactions are serialized and rolled back by restoring a snapshot, which
// keeps the all-or-nothing contract of the postgres driver for tests and
// local development.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"fishtable/internal/model"
	"fishtable/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var (
	_ repository.DBManager          = (*Store)(nil)
	_ repository.UserRepository     = (*Store)(nil)
	_ repository.WalletRepository   = (*Store)(nil)
	_ repository.QuotaRepository    = (*Store)(nil)
	_ repository.LedgerRepository   = (*Store)(nil)
	_ repository.StakeRepository    = (*Store)(nil)
	_ repository.CreditRepository   = (*Store)(nil)
	_ repository.FishTypeRepository = (*Store)(nil)
	_ repository.JackpotRepository  = (*Store)(nil)
)

type entryKey struct {
	refType model.RefType
	refID   uuid.UUID
	kind    model.EntryKind
}

type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	users     map[uuid.UUID]model.User
	wallets   map[uuid.UUID]model.Wallet
	quotas    map[uuid.UUID]model.AgentQuota
	entries   []model.LedgerEntry
	entryKeys map[entryKey]struct{}
	stakes    map[uuid.UUID]model.Stake
	hits      []model.HitResult
	credits   map[uuid.UUID]model.CreditRequest
	wins      []model.JackpotWin
	fishTypes []model.FishType
}

func NewStore() *Store {
	return &Store{
		users:     make(map[uuid.UUID]model.User),
		wallets:   make(map[uuid.UUID]model.Wallet),
		quotas:    make(map[uuid.UUID]model.AgentQuota),
		entryKeys: make(map[entryKey]struct{}),
		stakes:    make(map[uuid.UUID]model.Stake),
		credits:   make(map[uuid.UUID]model.CreditRequest),
	}
}

type snapshot struct {
	users   map[uuid.UUID]model.User
	wallets map[uuid.UUID]model.Wallet
	quotas  map[uuid.UUID]model.AgentQuota
	stakes  map[uuid.UUID]model.Stake
	credits map[uuid.UUID]model.CreditRequest
	entries int
	hits    int
	wins    int
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		users:   maps.Clone(s.users),
		wallets: maps.Clone(s.wallets),
		quotas:  maps.Clone(s.quotas),
		stakes:  maps.Clone(s.stakes),
		credits: maps.Clone(s.credits),
		entries: len(s.entries),
		hits:    len(s.hits),
		wins:    len(s.wins),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.wallets = snap.wallets
	s.quotas = snap.quotas
	s.stakes = snap.stakes
	s.credits = snap.credits
	for _, e := range s.entries[snap.entries:] {
		delete(s.entryKeys, entryKey{e.RefType, e.RefID, e.Kind})
	}
	s.entries = s.entries[:snap.entries]
	s.hits = s.hits[:snap.hits]
	s.wins = s.wins[:snap.wins]
}

// WithTransaction runs fn with a nil pgx.Tx. Any error restores the state seen before fn.
func (s *Store) WithTransaction(ctx context.Context, fn func(pgx.Tx) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snap := s.snapshot()
	if err := fn(nil); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// CreateUser seeds a user with its wallet.
func (s *Store) CreateUser(username string, role model.Role, agentID *uuid.UUID, balance decimal.Decimal) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	user := model.User{
		ID:        uuid.New(),
		Username:  username,
		Role:      role,
		WalletID:  uuid.New(),
		AgentID:   agentID,
		CreatedAt: now,
	}
	s.users[user.ID] = user
	s.wallets[user.WalletID] = model.Wallet{
		ID:             user.WalletID,
		UserID:         user.ID,
		Balance:        balance,
		OpeningBalance: balance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return &user
}

func (s *Store) SetQuota(agentID uuid.UUID, remaining decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotas[agentID] = model.AgentQuota{AgentID: agentID, Remaining: remaining, UpdatedAt: time.Now()}
}

func (s *Store) SetFishTypes(types []model.FishType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fishTypes = append([]model.FishType(nil), types...)
}

func (s *Store) HitResults() []model.HitResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.HitResult(nil), s.hits...)
}

func (s *Store) JackpotWins() []model.JackpotWin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.JackpotWin(nil), s.wins...)
}

func (s *Store) Quota(agentID uuid.UUID) (decimal.Decimal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.quotas[agentID]
	return q.Remaining, ok
}
