package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EventInit           = "init"
	EventFishSpawned    = "fishSpawned"
	EventFishKilled     = "fishKilled"
	EventFishRemoved    = "fishRemoved"
	EventJackpotWon     = "jackpotWon"
	EventPoolUpdated    = "poolUpdated"
	EventSeatChanged    = "seatChanged"
	EventShootResult    = "shootResult"
	EventHitResult      = "hitResult"
	EventCreditResolved = "creditResolved"
	EventLogin          = "login"
	EventError          = "error"
)

// Event is one outbound real-time message.
type Event struct {
	Type      string `json:"type"`
	TableID   int    `json:"table_id"`
	Timestamp int64  `json:"timestamp"`
	Payload   any    `json:"payload,omitempty"`
}

func NewEvent(typ string, tableID int, payload any) Event {
	return Event{Type: typ, TableID: tableID, Timestamp: time.Now().UnixMilli(), Payload: payload}
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type FishSpawned struct {
	FishID   int64   `json:"fish_id"`
	TypeID   int     `json:"type_id"`
	PathID   int     `json:"path_id"`
	Start    Point   `json:"start"`
	Middle   Point   `json:"middle"`
	End      Point   `json:"end"`
	Duration float64 `json:"duration"`
}

type FishKilled struct {
	FishID int64           `json:"fish_id"`
	TypeID int             `json:"type_id"`
	Reward decimal.Decimal `json:"reward"`
	ByUser uuid.UUID       `json:"by_user"`
	PropID int             `json:"prop_id,omitempty"`
}

type FishRemoved struct {
	FishID int64  `json:"fish_id"`
	Reason string `json:"reason"`
}

type JackpotWon struct {
	Amount decimal.Decimal `json:"amount"`
	ByUser uuid.UUID       `json:"by_user"`
}

type PoolUpdated struct {
	Pool decimal.Decimal `json:"pool"`
}

type SeatChanged struct {
	SeatID int       `json:"seat_id"`
	UserID uuid.UUID `json:"user_id"`
	Joined bool      `json:"joined"`
}

type ErrorEvent struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Balance string `json:"balance,omitempty"`
}

// TableInit is sent to a connection right after it takes a seat.
type TableInit struct {
	TableID int               `json:"table_id"`
	SeatID  int               `json:"seat_id"`
	Fish    []FishSpawned     `json:"fish"`
	Pool    decimal.Decimal   `json:"pool"`
	Balance decimal.Decimal   `json:"balance"`
	Bets    []decimal.Decimal `json:"bets"`
}

type CreditResolved struct {
	RequestID uuid.UUID       `json:"request_id"`
	Kind      CreditKind      `json:"kind"`
	Status    CreditStatus    `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	Balance   decimal.Decimal `json:"balance"`
}
