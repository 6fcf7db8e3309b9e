package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	Role      Role       `json:"role"`
	WalletID  uuid.UUID  `json:"wallet_id"`
	AgentID   *uuid.UUID `json:"agent_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Player is the identity a seated connection plays under.
type Player struct {
	UserID   uuid.UUID `json:"user_id"`
	WalletID uuid.UUID `json:"wallet_id"`
	Username string    `json:"username"`
}

func (u *User) Player() Player {
	return Player{UserID: u.ID, WalletID: u.WalletID, Username: u.Username}
}

type Wallet struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	Balance        decimal.Decimal `json:"balance"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Version        int             `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type AgentQuota struct {
	AgentID   uuid.UUID       `json:"agent_id"`
	Remaining decimal.Decimal `json:"remaining"`
	Version   int             `json:"version"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type LedgerEntry struct {
	ID           uuid.UUID       `json:"id"`
	WalletID     uuid.UUID       `json:"wallet_id"`
	Kind         EntryKind       `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	RefType      RefType         `json:"ref_type"`
	RefID        uuid.UUID       `json:"ref_id"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Stake is one fired bullet. Its ID is the client-supplied bullet id.
type Stake struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	WalletID  uuid.UUID       `json:"wallet_id"`
	TableID   int             `json:"table_id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    StakeStatus     `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

type HitResult struct {
	ID           uuid.UUID       `json:"id"`
	StakeID      uuid.UUID       `json:"stake_id"`
	WalletID     uuid.UUID       `json:"wallet_id"`
	TableID      int             `json:"table_id"`
	FishID       int64           `json:"fish_id"`
	FishTypeID   int             `json:"fish_type_id"`
	Killed       bool            `json:"killed"`
	Reward       decimal.Decimal `json:"reward"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	CreatedAt    time.Time       `json:"created_at"`
}

type CreditRequest struct {
	ID         uuid.UUID       `json:"id"`
	OwnerID    uuid.UUID       `json:"owner_id"`
	Kind       CreditKind      `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	Status     CreditStatus    `json:"status"`
	ApproverID *uuid.UUID      `json:"approver_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	ResolvedAt *time.Time      `json:"resolved_at,omitempty"`
}

type JackpotWin struct {
	ID        uuid.UUID       `json:"id"`
	TableID   int             `json:"table_id"`
	UserID    uuid.UUID       `json:"user_id"`
	WalletID  uuid.UUID       `json:"wallet_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// FishType is the static reward/spawn profile of a kind of fish.
type FishType struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Coin       decimal.Decimal `json:"coin"`
	OutPro     int             `json:"out_pro"`
	Difficulty int             `json:"difficulty"`
	PropID     int             `json:"prop_id,omitempty"`
	PropCount  int             `json:"prop_count,omitempty"`
	PropValue  decimal.Decimal `json:"prop_value"`
}

// Reward is the payout for killing this type with the given bet.
func (f FishType) Reward(bet decimal.Decimal) decimal.Decimal {
	reward := f.Coin.Mul(bet)
	if f.PropID > 0 && f.PropCount > 0 {
		reward = reward.Add(f.PropValue.Mul(decimal.NewFromInt(int64(f.PropCount))))
	}
	return reward
}

// Principal is the authenticated caller of an operation.
type Principal struct {
	UserID uuid.UUID `json:"user_id"`
	Role   Role      `json:"role"`
}

type Reconciliation struct {
	WalletID       uuid.UUID       `json:"wallet_id"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Credits        decimal.Decimal `json:"credits"`
	Debits         decimal.Decimal `json:"debits"`
	Expected       decimal.Decimal `json:"expected"`
	Balance        decimal.Decimal `json:"balance"`
	Entries        int             `json:"entries"`
	Consistent     bool            `json:"consistent"`
}

// HitOutcome is what a player sees after a shot is resolved against a fish.
type HitOutcome struct {
	StakeID uuid.UUID       `json:"stake_id"`
	FishID  int64           `json:"fish_id"`
	Killed  bool            `json:"killed"`
	Reward  decimal.Decimal `json:"reward"`
	Balance decimal.Decimal `json:"balance"`
	Jackpot *JackpotWin     `json:"jackpot,omitempty"`
}

type ShootResult struct {
	StakeID  uuid.UUID       `json:"stake_id"`
	Accepted bool            `json:"accepted"`
	Balance  decimal.Decimal `json:"balance"`
}

type TableSummary struct {
	TableID  int `json:"table_id"`
	Seats    int `json:"seats"`
	Occupied int `json:"occupied"`
	LiveFish int `json:"live_fish"`
}
