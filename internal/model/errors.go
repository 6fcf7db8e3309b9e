package model

import "errors"

var (
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrQuotaExceeded          = errors.New("agent quota exceeded")
	ErrTableFull              = errors.New("no free seat available")
	ErrFishNotFound           = errors.New("fish not found")
	ErrDuplicateStake         = errors.New("stake already resolved or submitted")
	ErrDuplicateEntry         = errors.New("ledger entry already recorded")
	ErrRequestAlreadyResolved = errors.New("credit request already resolved")
	ErrPendingRequestExists   = errors.New("pending credit request already exists")
	ErrPersistence            = errors.New("persistence failure")

	ErrInvalidAmount  = errors.New("invalid amount")
	ErrAmountTooLarge = errors.New("amount exceeds maximum")
	ErrInvalidBet     = errors.New("bet is not a permitted denomination")
	ErrInvalidBullet  = errors.New("invalid bullet id")
	ErrInvalidKind    = errors.New("invalid credit request kind")
	ErrInvalidRole    = errors.New("invalid role")

	ErrUserNotFound    = errors.New("user not found")
	ErrWalletNotFound  = errors.New("wallet not found")
	ErrAgentNotFound   = errors.New("agent not found")
	ErrRequestNotFound = errors.New("credit request not found")
	ErrStakeNotFound   = errors.New("stake not found")
	ErrTableNotFound   = errors.New("table not found")
	ErrNotSeated       = errors.New("connection is not seated")
	ErrSessionNotFound = errors.New("session not found")

	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrTooManyAttempts = errors.New("too many login attempts")
	ErrInvalidState    = errors.New("invalid state transition")
)

// IsDomain reports whether err carries one of the expected, caller-facing outcomes
// rather than an infrastructure failure.
func IsDomain(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

var domainErrors = []error{
	ErrInsufficientFunds, ErrQuotaExceeded, ErrTableFull, ErrFishNotFound,
	ErrDuplicateStake, ErrDuplicateEntry, ErrRequestAlreadyResolved, ErrPendingRequestExists,
	ErrPersistence, ErrInvalidAmount, ErrAmountTooLarge, ErrInvalidBet, ErrInvalidBullet, ErrInvalidKind,
	ErrInvalidRole, ErrUserNotFound, ErrWalletNotFound, ErrAgentNotFound, ErrRequestNotFound,
	ErrStakeNotFound, ErrTableNotFound, ErrNotSeated, ErrSessionNotFound, ErrUnauthorized,
	ErrForbidden, ErrTooManyAttempts, ErrInvalidState,
}
