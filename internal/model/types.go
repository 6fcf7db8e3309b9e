package model

type Role string

const (
	RolePlayer Role = "player"
	RoleAgent  Role = "agent"
	RoleAdmin  Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch s {
	case string(RolePlayer):
		return RolePlayer, nil
	case string(RoleAgent):
		return RoleAgent, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string {
	return string(r)
}

type EntryKind string

const (
	EntryDebit  EntryKind = "debit"
	EntryCredit EntryKind = "credit"
)

// RefType names the business object a ledger entry is attributed to.
type RefType string

const (
	RefStake         RefType = "stake"
	RefHit           RefType = "hit"
	RefJackpot       RefType = "jackpot"
	RefCreditRequest RefType = "credit_request"
	RefTransfer      RefType = "transfer"
)

type StakeStatus string

const (
	StakeOpen     StakeStatus = "open"
	StakeResolved StakeStatus = "resolved"
)

type CreditKind string

const (
	CreditDeposit    CreditKind = "deposit"
	CreditWithdrawal CreditKind = "withdrawal"
)

func ParseCreditKind(s string) (CreditKind, error) {
	switch s {
	case string(CreditDeposit):
		return CreditDeposit, nil
	case string(CreditWithdrawal):
		return CreditWithdrawal, nil
	default:
		return "", ErrInvalidKind
	}
}

func (k CreditKind) String() string {
	return string(k)
}

type CreditStatus string

const (
	CreditPending  CreditStatus = "pending"
	CreditApproved CreditStatus = "approved"
	CreditRejected CreditStatus = "rejected"
)

func (s CreditStatus) Terminal() bool {
	return s == CreditApproved || s == CreditRejected
}

// RoomState is the lobby/login state of a single connection.
type RoomState string

const (
	RoomLoggedOut    RoomState = "logged_out"
	RoomSMSWait      RoomState = "sms_wait"
	RoomLoginSuccess RoomState = "login_success"
	RoomLoginFailure RoomState = "login_failure"
	RoomInGame       RoomState = "in_game"
)

var roomTransitions = map[RoomState][]RoomState{
	RoomLoggedOut:    {RoomSMSWait},
	RoomSMSWait:      {RoomLoginSuccess, RoomLoginFailure},
	RoomLoginFailure: {RoomSMSWait, RoomLoggedOut},
	RoomLoginSuccess: {RoomInGame, RoomLoggedOut},
	RoomInGame:       {RoomLoginSuccess, RoomLoggedOut},
}

// CanTransition reports whether a connection may move from s to next.
func (s RoomState) CanTransition(next RoomState) bool {
	for _, allowed := range roomTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
