// Package ledger owns every wallet balance mutation. Operations on one wallet
// are strictly ordered by a per-wallet lock and each one commits its balance
// change together with its audit entries, or not at all.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"fishtable/internal/model"
	"fishtable/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Ref attributes a mutation to the business object that caused it.
type Ref struct {
	Type model.RefType
	ID   uuid.UUID
}

type Ledger struct {
	wallets   repository.WalletRepository
	quotas    repository.QuotaRepository
	entries   repository.LedgerRepository
	dbManager repository.DBManager
	locks     *KeyedMutex
	maxCredit decimal.Decimal
	logger    zerolog.Logger
}

func New(
	wallets repository.WalletRepository,
	quotas repository.QuotaRepository,
	entries repository.LedgerRepository,
	dbManager repository.DBManager,
	maxCredit decimal.Decimal,
	logger zerolog.Logger,
) *Ledger {
	return &Ledger{
		wallets:   wallets,
		quotas:    quotas,
		entries:   entries,
		dbManager: dbManager,
		locks:     NewKeyedMutex(),
		maxCredit: maxCredit,
		logger:    logger,
	}
}

// Tx is the view of one wallet inside Apply. Mutations are staged in memory
// and written when the callback returns nil.
type Tx struct {
	ctx     context.Context
	db      pgx.Tx
	ledger  *Ledger
	wallet  *model.Wallet
	balance decimal.Decimal
	entries []*model.LedgerEntry
}

// DB is the database transaction Apply runs in, for writes that must commit with the balance.
func (t *Tx) DB() pgx.Tx {
	return t.db
}

func (t *Tx) WalletID() uuid.UUID {
	return t.wallet.ID
}

func (t *Tx) Balance() decimal.Decimal {
	return t.balance
}

func (t *Tx) Debit(amount decimal.Decimal, ref Ref) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: debit must be positive", model.ErrInvalidAmount)
	}
	if amount.GreaterThan(t.balance) {
		return fmt.Errorf("%w: balance %s, requested %s", model.ErrInsufficientFunds, t.balance.StringFixed(2), amount.StringFixed(2))
	}
	t.balance = t.balance.Sub(amount)
	t.stage(model.EntryDebit, amount, ref)
	return nil
}

func (t *Tx) Credit(amount decimal.Decimal, ref Ref) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: credit must be positive", model.ErrInvalidAmount)
	}
	if amount.GreaterThan(t.ledger.maxCredit) {
		return fmt.Errorf("%w: %s > %s", model.ErrAmountTooLarge, amount.StringFixed(2), t.ledger.maxCredit.StringFixed(2))
	}
	t.balance = t.balance.Add(amount)
	t.stage(model.EntryCredit, amount, ref)
	return nil
}

// ConsumeQuota decrements an agent's remaining quota in the same transaction.
func (t *Tx) ConsumeQuota(agentID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	quota, err := t.ledger.quotas.GetQuotaForUpdate(t.ctx, agentID, t.db)
	if err != nil {
		return decimal.Zero, fmt.Errorf("get quota for update: %w", err)
	}
	remaining := quota.Remaining.Sub(amount)
	if remaining.IsNegative() {
		return quota.Remaining, fmt.Errorf("%w: remaining %s, requested %s", model.ErrQuotaExceeded, quota.Remaining.StringFixed(2), amount.StringFixed(2))
	}
	if err := t.ledger.quotas.UpdateQuota(t.ctx, agentID, remaining, t.db); err != nil {
		return quota.Remaining, fmt.Errorf("update quota: %w", err)
	}
	return remaining, nil
}

func (t *Tx) stage(kind model.EntryKind, amount decimal.Decimal, ref Ref) {
	t.entries = append(t.entries, &model.LedgerEntry{
		ID:           uuid.New(),
		WalletID:     t.wallet.ID,
		Kind:         kind,
		Amount:       amount,
		BalanceAfter: t.balance,
		RefType:      ref.Type,
		RefID:        ref.ID,
	})
}

// Apply runs fn under the wallet's exclusive lock and a row lock, then commits
// the staged balance and entries. Infrastructure errors come back wrapped in
// ErrPersistence and leave the balance untouched.
func (l *Ledger) Apply(ctx context.Context, walletID uuid.UUID, fn func(tx *Tx) error) (decimal.Decimal, error) {
	unlock := l.locks.Lock(walletID)
	defer unlock()

	var newBalance decimal.Decimal
	err := l.dbManager.WithTransaction(ctx, func(dbTx pgx.Tx) error {
		wallet, err := l.wallets.GetWalletForUpdate(ctx, walletID, dbTx)
		if err != nil {
			return fmt.Errorf("get wallet for update: %w", err)
		}

		tx := &Tx{ctx: ctx, db: dbTx, ledger: l, wallet: wallet, balance: wallet.Balance}
		if err := fn(tx); err != nil {
			return err
		}

		if len(tx.entries) > 0 {
			if err := l.wallets.UpdateBalance(ctx, walletID, tx.balance, dbTx); err != nil {
				return fmt.Errorf("update balance: %w", err)
			}
			for _, entry := range tx.entries {
				if err := l.entries.InsertEntry(ctx, entry, dbTx); err != nil {
					return fmt.Errorf("insert ledger entry: %w", err)
				}
			}
		}

		newBalance = tx.balance
		return nil
	})
	if err != nil {
		if model.IsDomain(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return decimal.Zero, err
		}
		l.logger.Error().Err(err).Str("wallet_id", walletID.String()).Msg("ledger commit failed")
		return decimal.Zero, fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}

	return newBalance, nil
}

func (l *Ledger) Debit(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal, ref Ref) (decimal.Decimal, error) {
	return l.Apply(ctx, walletID, func(tx *Tx) error {
		return tx.Debit(amount, ref)
	})
}

func (l *Ledger) Credit(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal, ref Ref) (decimal.Decimal, error) {
	return l.Apply(ctx, walletID, func(tx *Tx) error {
		return tx.Credit(amount, ref)
	})
}

// Transfer funds a wallet out of an agent's quota. Both sides move or neither does.
func (l *Ledger) Transfer(ctx context.Context, agentID, walletID uuid.UUID, amount decimal.Decimal, transferID uuid.UUID) (balance, quotaRemaining decimal.Decimal, err error) {
	if !amount.IsPositive() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: amount must be positive", model.ErrInvalidAmount)
	}

	balance, err = l.Apply(ctx, walletID, func(tx *Tx) error {
		remaining, err := tx.ConsumeQuota(agentID, amount)
		if err != nil {
			return err
		}
		quotaRemaining = remaining
		return tx.Credit(amount, Ref{Type: model.RefTransfer, ID: transferID})
	})
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	l.logger.Info().
		Str("agent_id", agentID.String()).
		Str("wallet_id", walletID.String()).
		Str("amount", amount.StringFixed(2)).
		Str("new_balance", balance.StringFixed(2)).
		Msg("wallet funded from agent quota")

	return balance, quotaRemaining, nil
}

// SetQuota replaces an agent's remaining funding allowance.
func (l *Ledger) SetQuota(ctx context.Context, agentID uuid.UUID, remaining decimal.Decimal) (*model.AgentQuota, error) {
	if remaining.IsNegative() {
		return nil, fmt.Errorf("%w: quota cannot be negative", model.ErrInvalidAmount)
	}

	var quota *model.AgentQuota
	err := l.dbManager.WithTransaction(ctx, func(dbTx pgx.Tx) error {
		q, err := l.quotas.UpsertQuota(ctx, agentID, remaining.Round(2), dbTx)
		if err != nil {
			return err
		}
		quota = q
		return nil
	})
	if err != nil {
		if model.IsDomain(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		l.logger.Error().Err(err).Str("agent_id", agentID.String()).Msg("quota update failed")
		return nil, fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}

	l.logger.Info().
		Str("agent_id", agentID.String()).
		Str("remaining", quota.Remaining.StringFixed(2)).
		Msg("agent quota set")
	return quota, nil
}

func (l *Ledger) Balance(ctx context.Context, walletID uuid.UUID) (decimal.Decimal, error) {
	wallet, err := l.wallets.GetWallet(ctx, walletID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("get wallet: %w", err)
	}
	return wallet.Balance, nil
}

// Reconcile replays the wallet's audit trail against its stored balance.
func (l *Ledger) Reconcile(ctx context.Context, walletID uuid.UUID) (*model.Reconciliation, error) {
	unlock := l.locks.Lock(walletID)
	defer unlock()

	wallet, err := l.wallets.GetWallet(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	entries, err := l.entries.GetEntriesByWallet(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("get ledger entries: %w", err)
	}

	rec := &model.Reconciliation{
		WalletID:       walletID,
		OpeningBalance: wallet.OpeningBalance,
		Credits:        decimal.Zero,
		Debits:         decimal.Zero,
		Balance:        wallet.Balance,
		Entries:        len(entries),
	}
	for _, e := range entries {
		switch e.Kind {
		case model.EntryCredit:
			rec.Credits = rec.Credits.Add(e.Amount)
		case model.EntryDebit:
			rec.Debits = rec.Debits.Add(e.Amount)
		}
	}
	rec.Expected = rec.OpeningBalance.Add(rec.Credits).Sub(rec.Debits)
	rec.Consistent = rec.Expected.Equal(rec.Balance)

	if !rec.Consistent {
		l.logger.Warn().
			Str("wallet_id", walletID.String()).
			Str("expected", rec.Expected.StringFixed(2)).
			Str("balance", rec.Balance.StringFixed(2)).
			Msg("wallet does not reconcile with its ledger")
	}
	return rec, nil
}
