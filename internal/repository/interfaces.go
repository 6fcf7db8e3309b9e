package repository

import (
	"context"
	"time"

	"fishtable/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// DBManager provides database transaction management
type DBManager interface {
	// WithTransaction executes a function within a database transaction
	WithTransaction(ctx context.Context, fn func(pgx.Tx) error) error
}

// UserRepository is the read side of the user directory
type UserRepository interface {
	GetUser(ctx context.Context, userID uuid.UUID, tx ...pgx.Tx) (*model.User, error)
}

// WalletRepository defines balance storage. Only the ledger writes through it.
type WalletRepository interface {
	// GetWalletForUpdate retrieves a wallet with row-level lock (must be in transaction)
	GetWalletForUpdate(ctx context.Context, walletID uuid.UUID, tx pgx.Tx) (*model.Wallet, error)

	GetWallet(ctx context.Context, walletID uuid.UUID, tx ...pgx.Tx) (*model.Wallet, error)

	// UpdateBalance fails with ErrInsufficientFunds if the balance would go negative
	UpdateBalance(ctx context.Context, walletID uuid.UUID, balance decimal.Decimal, tx pgx.Tx) error
}

// QuotaRepository stores the remaining funding allowance per agent
type QuotaRepository interface {
	GetQuotaForUpdate(ctx context.Context, agentID uuid.UUID, tx pgx.Tx) (*model.AgentQuota, error)

	// UpdateQuota fails with ErrQuotaExceeded if the remaining quota would go negative
	UpdateQuota(ctx context.Context, agentID uuid.UUID, remaining decimal.Decimal, tx pgx.Tx) error

	// UpsertQuota sets the remaining quota, creating the row for a new agent.
	// An unknown agent yields ErrAgentNotFound
	UpsertQuota(ctx context.Context, agentID uuid.UUID, remaining decimal.Decimal, tx pgx.Tx) (*model.AgentQuota, error)
}

// LedgerRepository is the append-only audit trail of balance mutations
type LedgerRepository interface {
	// InsertEntry fails with ErrDuplicateEntry when (ref_type, ref_id, kind) was already recorded
	InsertEntry(ctx context.Context, entry *model.LedgerEntry, tx pgx.Tx) error

	GetEntriesByWallet(ctx context.Context, walletID uuid.UUID, tx ...pgx.Tx) ([]*model.LedgerEntry, error)
}

// StakeRepository stores fired bullets and their resolutions
type StakeRepository interface {
	// InsertStake fails with ErrDuplicateStake when the bullet id was already used
	InsertStake(ctx context.Context, stake *model.Stake, tx pgx.Tx) error

	// ClaimStake moves an open stake to resolved and returns it.
	// A stake that is already resolved yields ErrDuplicateStake.
	ClaimStake(ctx context.Context, stakeID uuid.UUID, tx pgx.Tx) (*model.Stake, error)

	InsertHitResult(ctx context.Context, result *model.HitResult, tx pgx.Tx) error

	GetHitResult(ctx context.Context, stakeID uuid.UUID, tx ...pgx.Tx) (*model.HitResult, error)

	// ListStaleStakes returns open stakes created before the cutoff, oldest first
	ListStaleStakes(ctx context.Context, before time.Time, limit int) ([]*model.Stake, error)
}

// CreditRepository stores deposit/withdrawal requests
type CreditRepository interface {
	// InsertRequest fails with ErrPendingRequestExists when the owner already has a pending request of the same kind
	InsertRequest(ctx context.Context, req *model.CreditRequest, tx pgx.Tx) error

	GetRequest(ctx context.Context, requestID uuid.UUID, tx ...pgx.Tx) (*model.CreditRequest, error)

	GetRequestForUpdate(ctx context.Context, requestID uuid.UUID, tx pgx.Tx) (*model.CreditRequest, error)

	GetPendingByOwner(ctx context.Context, ownerID uuid.UUID, kind model.CreditKind, tx ...pgx.Tx) (*model.CreditRequest, error)

	// ResolveRequest transitions a pending request; it reports false if the request was no longer pending
	ResolveRequest(ctx context.Context, requestID uuid.UUID, status model.CreditStatus, approverID uuid.UUID, tx pgx.Tx) (bool, error)
}

// FishTypeRepository loads the static fish catalog
type FishTypeRepository interface {
	ListFishTypes(ctx context.Context) ([]model.FishType, error)
}

// JackpotRepository records jackpot payouts
type JackpotRepository interface {
	InsertWin(ctx context.Context, win *model.JackpotWin, tx pgx.Tx) error
}
