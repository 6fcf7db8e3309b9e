package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"fishtable/internal/model"
	"fishtable/internal/repository/memory"
	mocks "fishtable/mocks/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var maxCredit = decimal.NewFromInt(1_000_000)

func newMemoryLedger(t *testing.T) (*Ledger, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return New(store, store, store, store, maxCredit, zerolog.Nop()), store
}

func stakeRef() Ref {
	return Ref{Type: model.RefStake, ID: uuid.New()}
}

func TestDebit_HappyPath(t *testing.T) {
	ctx := context.Background()
	l, store := newMemoryLedger(t)
	user := store.CreateUser("alice", model.RolePlayer, nil, decimal.NewFromInt(100))

	balance, err := l.Debit(ctx, user.WalletID, decimal.NewFromInt(30), stakeRef())

	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(70)))

	stored, err := l.Balance(ctx, user.WalletID)
	require.NoError(t, err)
	assert.True(t, stored.Equal(decimal.NewFromInt(70)))
}

func TestDebit_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	l, store := newMemoryLedger(t)
	user := store.CreateUser("bob", model.RolePlayer, nil, decimal.NewFromInt(10))

	_, err := l.Debit(ctx, user.WalletID, decimal.NewFromInt(20), stakeRef())

	assert.ErrorIs(t, err, model.ErrInsufficientFunds)
	balance, err := l.Balance(ctx, user.WalletID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(10)))
}

func TestDebit_NonPositiveAmount(t *testing.T) {
	l, store := newMemoryLedger(t)
	user := store.CreateUser("carol", model.RolePlayer, nil, decimal.NewFromInt(10))

	_, err := l.Debit(context.Background(), user.WalletID, decimal.Zero, stakeRef())

	assert.ErrorIs(t, err, model.ErrInvalidAmount)
}

func TestCredit_RejectsAmountAboveBound(t *testing.T) {
	l, store := newMemoryLedger(t)
	user := store.CreateUser("dave", model.RolePlayer, nil, decimal.Zero)

	_, err := l.Credit(context.Background(), user.WalletID, maxCredit.Add(decimal.NewFromInt(1)), Ref{Type: model.RefHit, ID: uuid.New()})

	assert.ErrorIs(t, err, model.ErrAmountTooLarge)
}

func TestCredit_DuplicateReferenceIsRejected(t *testing.T) {
	ctx := context.Background()
	l, store := newMemoryLedger(t)
	user := store.CreateUser("erin", model.RolePlayer, nil, decimal.Zero)
	ref := Ref{Type: model.RefHit, ID: uuid.New()}

	_, err := l.Credit(ctx, user.WalletID, decimal.NewFromInt(5), ref)
	require.NoError(t, err)

	_, err = l.Credit(ctx, user.WalletID, decimal.NewFromInt(5), ref)
	assert.ErrorIs(t, err, model.ErrDuplicateEntry)

	balance, _ := l.Balance(ctx, user.WalletID)
	assert.True(t, balance.Equal(decimal.NewFromInt(5)))
}

func TestDebit_ConcurrentNeverOverdraws(t *testing.T) {
	ctx := context.Background()
	l, store := newMemoryLedger(t)
	user := store.CreateUser("frank", model.RolePlayer, nil, decimal.NewFromInt(100))

	const workers = 50
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := l.Debit(ctx, user.WalletID, decimal.NewFromInt(7), stakeRef())
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else {
				assert.ErrorIs(t, err, model.ErrInsufficientFunds)
				rejected++
			}
		}()
	}
	close(start)
	wg.Wait()

	balance, err := l.Balance(ctx, user.WalletID)
	require.NoError(t, err)
	assert.Equal(t, 14, succeeded)
	assert.Equal(t, workers-14, rejected)
	assert.True(t, balance.Equal(decimal.NewFromInt(2)))
	assert.False(t, balance.IsNegative())
	assert.Equal(t, 0, l.locks.size())
}

func TestTransfer_QuotaExceededLeavesNoMutation(t *testing.T) {
	ctx := context.Background()
	l, store := newMemoryLedger(t)
	agent := store.CreateUser("agent", model.RoleAgent, nil, decimal.Zero)
	store.SetQuota(agent.ID, decimal.NewFromInt(5))
	user := store.CreateUser("grace", model.RolePlayer, &agent.ID, decimal.NewFromInt(3))

	_, _, err := l.Transfer(ctx, agent.ID, user.WalletID, decimal.NewFromInt(10), uuid.New())

	assert.ErrorIs(t, err, model.ErrQuotaExceeded)
	balance, _ := l.Balance(ctx, user.WalletID)
	assert.True(t, balance.Equal(decimal.NewFromInt(3)))
	quota, _ := store.Quota(agent.ID)
	assert.True(t, quota.Equal(decimal.NewFromInt(5)))
}

func TestTransfer_HappyPath(t *testing.T) {
	ctx := context.Background()
	l, store := newMemoryLedger(t)
	agent := store.CreateUser("agent", model.RoleAgent, nil, decimal.Zero)
	store.SetQuota(agent.ID, decimal.NewFromInt(50))
	user := store.CreateUser("heidi", model.RolePlayer, &agent.ID, decimal.Zero)

	balance, remaining, err := l.Transfer(ctx, agent.ID, user.WalletID, decimal.NewFromInt(20), uuid.New())

	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(20)))
	assert.True(t, remaining.Equal(decimal.NewFromInt(30)))
}

func TestSetQuota_CreatesThenReplaces(t *testing.T) {
	ctx := context.Background()
	l, store := newMemoryLedger(t)
	agent := store.CreateUser("agent", model.RoleAgent, nil, decimal.Zero)

	q, err := l.SetQuota(ctx, agent.ID, decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.True(t, q.Remaining.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 1, q.Version)

	user := store.CreateUser("ivan", model.RolePlayer, &agent.ID, decimal.Zero)
	_, remaining, err := l.Transfer(ctx, agent.ID, user.WalletID, decimal.NewFromInt(200), uuid.New())
	require.NoError(t, err)
	assert.True(t, remaining.Equal(decimal.NewFromInt(300)))

	q, err = l.SetQuota(ctx, agent.ID, decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.True(t, q.Remaining.Equal(decimal.NewFromInt(1000)))
	stored, ok := store.Quota(agent.ID)
	require.True(t, ok)
	assert.True(t, stored.Equal(decimal.NewFromInt(1000)))
}

func TestSetQuota_Rejections(t *testing.T) {
	ctx := context.Background()
	l, store := newMemoryLedger(t)
	agent := store.CreateUser("agent", model.RoleAgent, nil, decimal.Zero)
	store.SetQuota(agent.ID, decimal.NewFromInt(5))

	_, err := l.SetQuota(ctx, agent.ID, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, model.ErrInvalidAmount)

	_, err = l.SetQuota(ctx, uuid.New(), decimal.NewFromInt(10))
	assert.ErrorIs(t, err, model.ErrAgentNotFound)

	quota, _ := store.Quota(agent.ID)
	assert.True(t, quota.Equal(decimal.NewFromInt(5)))
}

func TestSetQuota_StoreFailureIsPersistenceError(t *testing.T) {
	ctx := context.Background()
	agentID := uuid.New()

	mockQuotas := mocks.NewQuotaRepository(t)
	mockDBManager := mocks.NewDBManager(t)
	mockDBManager.On("WithTransaction", ctx, mock.Anything).Return(func(ctx context.Context, fn func(pgx.Tx) error) error {
		return fn(nil)
	})
	mockQuotas.On("UpsertQuota", ctx, agentID, mock.MatchedBy(func(v decimal.Decimal) bool { return v.Equal(decimal.NewFromInt(75)) }), mock.Anything).Return(nil, errors.New("connection refused"))

	l := New(nil, mockQuotas, nil, mockDBManager, maxCredit, zerolog.Nop())

	_, err := l.SetQuota(ctx, agentID, decimal.NewFromInt(75))

	assert.ErrorIs(t, err, model.ErrPersistence)
}

func TestApply_CallbackErrorRollsBack(t *testing.T) {
	ctx := context.Background()
	l, store := newMemoryLedger(t)
	user := store.CreateUser("ivan", model.RolePlayer, nil, decimal.NewFromInt(50))
	boom := errors.New("boom")

	_, err := l.Apply(ctx, user.WalletID, func(tx *Tx) error {
		require.NoError(t, tx.Debit(decimal.NewFromInt(20), stakeRef()))
		return fmt.Errorf("%w: %v", model.ErrInvalidBet, boom)
	})

	assert.ErrorIs(t, err, model.ErrInvalidBet)
	balance, _ := l.Balance(ctx, user.WalletID)
	assert.True(t, balance.Equal(decimal.NewFromInt(50)))
	rec, err := l.Reconcile(ctx, user.WalletID)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Entries)
}

func TestApply_CommitFailureIsPersistenceError(t *testing.T) {
	ctx := context.Background()
	walletID := uuid.New()

	mockWallets := mocks.NewWalletRepository(t)
	mockQuotas := mocks.NewQuotaRepository(t)
	mockEntries := mocks.NewLedgerRepository(t)
	mockDBManager := mocks.NewDBManager(t)

	mockDBManager.On("WithTransaction", ctx, mock.Anything).Return(func(ctx context.Context, fn func(pgx.Tx) error) error {
		if err := fn(nil); err != nil {
			return err
		}
		return errors.New("failed to commit transaction: connection reset")
	})
	mockWallets.On("GetWalletForUpdate", ctx, walletID, mock.Anything).Return(&model.Wallet{
		ID:      walletID,
		Balance: decimal.NewFromInt(100),
	}, nil)
	mockWallets.On("UpdateBalance", ctx, walletID, decimal.NewFromInt(80), mock.Anything).Return(nil)
	mockEntries.On("InsertEntry", ctx, mock.MatchedBy(func(e *model.LedgerEntry) bool {
		return e.Kind == model.EntryDebit && e.Amount.Equal(decimal.NewFromInt(20)) && e.BalanceAfter.Equal(decimal.NewFromInt(80))
	}), mock.Anything).Return(nil)

	l := New(mockWallets, mockQuotas, mockEntries, mockDBManager, maxCredit, zerolog.Nop())

	_, err := l.Debit(ctx, walletID, decimal.NewFromInt(20), stakeRef())

	assert.ErrorIs(t, err, model.ErrPersistence)
}

func TestApply_CheckConstraintSurfacesAsInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	walletID := uuid.New()

	mockWallets := mocks.NewWalletRepository(t)
	mockEntries := mocks.NewLedgerRepository(t)
	mockDBManager := mocks.NewDBManager(t)

	mockDBManager.On("WithTransaction", ctx, mock.Anything).Return(func(ctx context.Context, fn func(pgx.Tx) error) error {
		return fn(nil)
	})
	mockWallets.On("GetWalletForUpdate", ctx, walletID, mock.Anything).Return(&model.Wallet{
		ID:      walletID,
		Balance: decimal.NewFromInt(100),
	}, nil)
	mockWallets.On("UpdateBalance", ctx, walletID, decimal.NewFromInt(60), mock.Anything).Return(model.ErrInsufficientFunds)

	l := New(mockWallets, mocks.NewQuotaRepository(t), mockEntries, mockDBManager, maxCredit, zerolog.Nop())

	_, err := l.Debit(ctx, walletID, decimal.NewFromInt(40), stakeRef())

	assert.ErrorIs(t, err, model.ErrInsufficientFunds)
	assert.NotErrorIs(t, err, model.ErrPersistence)
}

func TestReconcile_ReplaysEntries(t *testing.T) {
	ctx := context.Background()
	l, store := newMemoryLedger(t)
	user := store.CreateUser("judy", model.RolePlayer, nil, decimal.NewFromInt(100))

	for i := 0; i < 3; i++ {
		_, err := l.Debit(ctx, user.WalletID, decimal.NewFromInt(20), stakeRef())
		require.NoError(t, err)
	}
	_, err := l.Credit(ctx, user.WalletID, decimal.NewFromInt(50), Ref{Type: model.RefHit, ID: uuid.New()})
	require.NoError(t, err)

	rec, err := l.Reconcile(ctx, user.WalletID)

	require.NoError(t, err)
	assert.True(t, rec.Consistent)
	assert.Equal(t, 4, rec.Entries)
	assert.True(t, rec.Balance.Equal(decimal.NewFromInt(90)))
	assert.True(t, rec.Debits.Equal(decimal.NewFromInt(60)))
	assert.True(t, rec.Credits.Equal(decimal.NewFromInt(50)))
}
