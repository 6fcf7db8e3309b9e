package service

import (
	"context"

	"fishtable/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GameService resolves shots against a table's fish pool
type GameService interface {
	// Shoot debits the stake for a bullet. On insufficient funds the returned
	// result carries the unchanged balance together with the error.
	Shoot(ctx context.Context, player model.Player, tableID int, stakeID uuid.UUID, bet decimal.Decimal) (*model.ShootResult, error)

	// Hit resolves a previously fired bullet against a fish. A fish that is gone is a miss.
	Hit(ctx context.Context, player model.Player, tableID int, stakeID uuid.UUID, fishID int64) (*model.HitOutcome, error)

	// ResolveShot is Shoot followed by Hit for a single client message.
	ResolveShot(ctx context.Context, player model.Player, tableID int, stakeID uuid.UUID, bet decimal.Decimal, fishID int64) (*model.HitOutcome, error)

	TableInit(ctx context.Context, player model.Player, tableID, seatID int) (*model.TableInit, error)
	Tables() []model.TableSummary
}

// CreditService runs the deposit/withdrawal approval workflow
type CreditService interface {
	Create(ctx context.Context, owner model.Principal, kind model.CreditKind, amount decimal.Decimal) (*model.CreditRequest, error)

	// Approve applies the balance change and the status transition atomically
	Approve(ctx context.Context, approver model.Principal, requestID uuid.UUID) (*model.CreditRequest, decimal.Decimal, error)

	Reject(ctx context.Context, approver model.Principal, requestID uuid.UUID) (*model.CreditRequest, error)
	Get(ctx context.Context, caller model.Principal, requestID uuid.UUID) (*model.CreditRequest, error)
}

// WalletService exposes balances and agent funding
type WalletService interface {
	GetBalance(ctx context.Context, caller model.Principal, userID uuid.UUID) (*model.BalanceResponse, error)
	Reconcile(ctx context.Context, caller model.Principal, userID uuid.UUID) (*model.Reconciliation, error)
	Fund(ctx context.Context, agent model.Principal, userID uuid.UUID, amount decimal.Decimal, transferID uuid.UUID) (*model.FundResponse, error)

	// SetQuota replaces an agent's funding allowance. Admins only.
	SetQuota(ctx context.Context, admin model.Principal, agentID uuid.UUID, remaining decimal.Decimal) (*model.QuotaResponse, error)
}

// Notifier pushes events to connected clients
type Notifier interface {
	Broadcast(tableID int, event model.Event) int
	SendToUser(userID uuid.UUID, event model.Event) int
}

// Lobby is the seat side of the tables
type Lobby interface {
	Notifier
	Snapshot() []model.TableSummary
}

// Jackpot accrues stakes into table pools and pays them out
type Jackpot interface {
	Contribute(tableID int, stake decimal.Decimal) decimal.Decimal
	Award(ctx context.Context, tableID int, player model.Player) (*model.JackpotWin, decimal.Decimal, error)
	Pool(tableID int) decimal.Decimal
}
