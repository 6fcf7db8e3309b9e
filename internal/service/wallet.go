package service

import (
	"context"
	"errors"
	"fmt"

	"fishtable/internal/ledger"
	"fishtable/internal/model"
	"fishtable/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type WalletServiceImpl struct {
	ledger   *ledger.Ledger
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

func NewWalletService(l *ledger.Ledger, userRepo repository.UserRepository, logger zerolog.Logger) WalletService {
	return &WalletServiceImpl{ledger: l, userRepo: userRepo, logger: logger}
}

// authorizeView loads the user when caller is that user, an admin, or the user's agent.
func (s *WalletServiceImpl) authorizeView(ctx context.Context, caller model.Principal, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !canManage(caller, user) {
		return nil, fmt.Errorf("%w: %s cannot view user %s", model.ErrForbidden, caller.UserID, userID)
	}
	return user, nil
}

func canManage(caller model.Principal, user *model.User) bool {
	switch {
	case caller.UserID == user.ID, caller.Role == model.RoleAdmin:
		return true
	case caller.Role == model.RoleAgent:
		return user.AgentID != nil && *user.AgentID == caller.UserID
	}
	return false
}

func (s *WalletServiceImpl) GetBalance(ctx context.Context, caller model.Principal, userID uuid.UUID) (*model.BalanceResponse, error) {
	user, err := s.authorizeView(ctx, caller, userID)
	if err != nil {
		return nil, err
	}
	balance, err := s.ledger.Balance(ctx, user.WalletID)
	if err != nil {
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &model.BalanceResponse{
		UserID:   user.ID.String(),
		WalletID: user.WalletID.String(),
		Balance:  balance.StringFixed(2),
	}, nil
}

func (s *WalletServiceImpl) Reconcile(ctx context.Context, caller model.Principal, userID uuid.UUID) (*model.Reconciliation, error) {
	user, err := s.authorizeView(ctx, caller, userID)
	if err != nil {
		return nil, err
	}
	return s.ledger.Reconcile(ctx, user.WalletID)
}

// Fund moves amount from the agent's quota into a managed user's wallet.
// transferID makes a retried request fail with ErrDuplicateEntry instead of paying twice.
func (s *WalletServiceImpl) Fund(ctx context.Context, agent model.Principal, userID uuid.UUID, amount decimal.Decimal, transferID uuid.UUID) (*model.FundResponse, error) {
	if agent.Role != model.RoleAgent {
		return nil, fmt.Errorf("%w: only agents fund wallets", model.ErrForbidden)
	}
	user, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user.AgentID == nil || *user.AgentID != agent.UserID {
		return nil, fmt.Errorf("%w: user %s is not managed by agent %s", model.ErrForbidden, userID, agent.UserID)
	}

	balance, remaining, err := s.ledger.Transfer(ctx, agent.UserID, user.WalletID, amount, transferID)
	if err != nil {
		return nil, err
	}

	return &model.FundResponse{
		UserID:         userID.String(),
		Balance:        balance.StringFixed(2),
		QuotaRemaining: remaining.StringFixed(2),
	}, nil
}

func (s *WalletServiceImpl) SetQuota(ctx context.Context, admin model.Principal, agentID uuid.UUID, remaining decimal.Decimal) (*model.QuotaResponse, error) {
	if admin.Role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: only admins set agent quotas", model.ErrForbidden)
	}
	agent, err := s.userRepo.GetUser(ctx, agentID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %s", model.ErrAgentNotFound, agentID)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if agent.Role != model.RoleAgent {
		return nil, fmt.Errorf("%w: user %s is not an agent", model.ErrAgentNotFound, agentID)
	}

	quota, err := s.ledger.SetQuota(ctx, agentID, remaining)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("admin_id", admin.UserID.String()).
		Str("agent_id", agentID.String()).
		Str("remaining", quota.Remaining.StringFixed(2)).
		Msg("admin set agent quota")

	return &model.QuotaResponse{
		AgentID:   agentID.String(),
		Remaining: quota.Remaining.StringFixed(2),
		Version:   quota.Version,
	}, nil
}
