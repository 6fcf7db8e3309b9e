package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fishtable/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

func (s *Store) GetUser(_ context.Context, userID uuid.UUID, _ ...pgx.Tx) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return &u, nil
}

func (s *Store) GetWalletForUpdate(ctx context.Context, walletID uuid.UUID, _ pgx.Tx) (*model.Wallet, error) {
	return s.GetWallet(ctx, walletID)
}

func (s *Store) GetWallet(_ context.Context, walletID uuid.UUID, _ ...pgx.Tx) (*model.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.wallets[walletID]
	if !ok {
		return nil, model.ErrWalletNotFound
	}
	return &w, nil
}

func (s *Store) UpdateBalance(_ context.Context, walletID uuid.UUID, balance decimal.Decimal, _ pgx.Tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wallets[walletID]
	if !ok {
		return model.ErrWalletNotFound
	}
	if balance.IsNegative() {
		return model.ErrInsufficientFunds
	}
	w.Balance = balance
	w.Version++
	w.UpdatedAt = time.Now()
	s.wallets[walletID] = w
	return nil
}

func (s *Store) GetQuotaForUpdate(_ context.Context, agentID uuid.UUID, _ pgx.Tx) (*model.AgentQuota, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.quotas[agentID]
	if !ok {
		return nil, model.ErrAgentNotFound
	}
	return &q, nil
}

func (s *Store) UpsertQuota(_ context.Context, agentID uuid.UUID, remaining decimal.Decimal, _ pgx.Tx) (*model.AgentQuota, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[agentID]; !ok {
		return nil, model.ErrAgentNotFound
	}
	if remaining.IsNegative() {
		return nil, fmt.Errorf("%w: quota cannot be negative", model.ErrInvalidAmount)
	}
	q := s.quotas[agentID]
	q.AgentID = agentID
	q.Remaining = remaining
	q.Version++
	q.UpdatedAt = time.Now()
	s.quotas[agentID] = q
	return &q, nil
}

func (s *Store) UpdateQuota(_ context.Context, agentID uuid.UUID, remaining decimal.Decimal, _ pgx.Tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.quotas[agentID]
	if !ok {
		return model.ErrAgentNotFound
	}
	if remaining.IsNegative() {
		return model.ErrQuotaExceeded
	}
	q.Remaining = remaining
	q.Version++
	q.UpdatedAt = time.Now()
	s.quotas[agentID] = q
	return nil
}

func (s *Store) InsertEntry(_ context.Context, entry *model.LedgerEntry, _ pgx.Tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := entryKey{entry.RefType, entry.RefID, entry.Kind}
	if _, exists := s.entryKeys[key]; exists {
		return fmt.Errorf("%w: %s %s", model.ErrDuplicateEntry, entry.RefType, entry.RefID)
	}
	entry.CreatedAt = time.Now()
	s.entryKeys[key] = struct{}{}
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *Store) GetEntriesByWallet(_ context.Context, walletID uuid.UUID, _ ...pgx.Tx) ([]*model.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.LedgerEntry
	for i := range s.entries {
		if s.entries[i].WalletID == walletID {
			e := s.entries[i]
			out = append(out, &e)
		}
	}
	return out, nil
}

func (s *Store) InsertStake(_ context.Context, stake *model.Stake, _ pgx.Tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.stakes[stake.ID]; exists {
		return fmt.Errorf("%w: bullet %s", model.ErrDuplicateStake, stake.ID)
	}
	if stake.CreatedAt.IsZero() {
		stake.CreatedAt = time.Now()
	}
	s.stakes[stake.ID] = *stake
	return nil
}

func (s *Store) ClaimStake(_ context.Context, stakeID uuid.UUID, _ pgx.Tx) (*model.Stake, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stakes[stakeID]
	if !ok {
		return nil, model.ErrStakeNotFound
	}
	if st.Status != model.StakeOpen {
		return nil, fmt.Errorf("%w: bullet %s", model.ErrDuplicateStake, stakeID)
	}
	st.Status = model.StakeResolved
	s.stakes[stakeID] = st
	return &st, nil
}

func (s *Store) InsertHitResult(_ context.Context, result *model.HitResult, _ pgx.Tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.hits {
		if h.StakeID == result.StakeID {
			return fmt.Errorf("%w: bullet %s", model.ErrDuplicateStake, result.StakeID)
		}
	}
	result.CreatedAt = time.Now()
	s.hits = append(s.hits, *result)
	return nil
}

func (s *Store) GetHitResult(_ context.Context, stakeID uuid.UUID, _ ...pgx.Tx) (*model.HitResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.hits {
		if h.StakeID == stakeID {
			return &h, nil
		}
	}
	return nil, model.ErrStakeNotFound
}

func (s *Store) ListStaleStakes(_ context.Context, before time.Time, limit int) ([]*model.Stake, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.Stake
	for _, st := range s.stakes {
		if st.Status == model.StakeOpen && st.CreatedAt.Before(before) {
			st := st
			out = append(out, &st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) InsertRequest(_ context.Context, req *model.CreditRequest, _ pgx.Tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.credits {
		if c.OwnerID == req.OwnerID && c.Kind == req.Kind && c.Status == model.CreditPending {
			return fmt.Errorf("%w: %s", model.ErrPendingRequestExists, req.Kind)
		}
	}
	now := time.Now()
	req.CreatedAt, req.UpdatedAt = now, now
	s.credits[req.ID] = *req
	return nil
}

func (s *Store) GetRequest(_ context.Context, requestID uuid.UUID, _ ...pgx.Tx) (*model.CreditRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.credits[requestID]
	if !ok {
		return nil, model.ErrRequestNotFound
	}
	return &c, nil
}

func (s *Store) GetRequestForUpdate(ctx context.Context, requestID uuid.UUID, _ pgx.Tx) (*model.CreditRequest, error) {
	return s.GetRequest(ctx, requestID)
}

func (s *Store) GetPendingByOwner(_ context.Context, ownerID uuid.UUID, kind model.CreditKind, _ ...pgx.Tx) (*model.CreditRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.credits {
		if c.OwnerID == ownerID && c.Kind == kind && c.Status == model.CreditPending {
			return &c, nil
		}
	}
	return nil, model.ErrRequestNotFound
}

func (s *Store) ResolveRequest(_ context.Context, requestID uuid.UUID, status model.CreditStatus, approverID uuid.UUID, _ pgx.Tx) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.credits[requestID]
	if !ok || c.Status != model.CreditPending {
		return false, nil
	}
	now := time.Now()
	c.Status = status
	c.ApproverID = &approverID
	c.ResolvedAt = &now
	c.UpdatedAt = now
	s.credits[requestID] = c
	return true, nil
}

func (s *Store) ListFishTypes(_ context.Context) ([]model.FishType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.FishType(nil), s.fishTypes...), nil
}

func (s *Store) InsertWin(_ context.Context, win *model.JackpotWin, _ pgx.Tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	win.CreatedAt = time.Now()
	s.wins = append(s.wins, *win)
	return nil
}
