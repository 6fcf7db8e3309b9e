package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fishtable/internal/events"
	"fishtable/internal/ledger"
	"fishtable/internal/model"
	"fishtable/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type CreditServiceImpl struct {
	ledger     *ledger.Ledger
	userRepo   repository.UserRepository
	creditRepo repository.CreditRepository
	dbManager  repository.DBManager
	notifier   Notifier
	publisher  events.Publisher
	logger     zerolog.Logger
}

func NewCreditService(
	l *ledger.Ledger,
	userRepo repository.UserRepository,
	creditRepo repository.CreditRepository,
	dbManager repository.DBManager,
	notifier Notifier,
	publisher events.Publisher,
	logger zerolog.Logger,
) CreditService {
	return &CreditServiceImpl{
		ledger:     l,
		userRepo:   userRepo,
		creditRepo: creditRepo,
		dbManager:  dbManager,
		notifier:   notifier,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *CreditServiceImpl) Create(ctx context.Context, owner model.Principal, kind model.CreditKind, amount decimal.Decimal) (*model.CreditRequest, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", model.ErrInvalidAmount)
	}
	if _, err := model.ParseCreditKind(string(kind)); err != nil {
		return nil, err
	}

	now := time.Now()
	req := &model.CreditRequest{
		ID:        uuid.New(),
		OwnerID:   owner.UserID,
		Kind:      kind,
		Amount:    amount,
		Status:    model.CreditPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.dbManager.WithTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := s.userRepo.GetUser(ctx, owner.UserID, tx); err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		pending, err := s.creditRepo.GetPendingByOwner(ctx, owner.UserID, kind, tx)
		if err != nil && !errors.Is(err, model.ErrRequestNotFound) {
			return fmt.Errorf("get pending request: %w", err)
		}
		if pending != nil {
			return fmt.Errorf("%w: %s request %s", model.ErrPendingRequestExists, kind, pending.ID)
		}

		// The unique index catches a concurrent create that passed the check above.
		if err := s.creditRepo.InsertRequest(ctx, req, tx); err != nil {
			return fmt.Errorf("insert credit request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("request_id", req.ID.String()).
		Str("user_id", owner.UserID.String()).
		Str("kind", kind.String()).
		Str("amount", amount.StringFixed(2)).
		Msg("credit request created")
	return req, nil
}

// authorizeApprover returns the request owner when approver may act on the
// request: admins on any user, agents only on the users they manage.
func (s *CreditServiceImpl) authorizeApprover(ctx context.Context, approver model.Principal, req *model.CreditRequest) (*model.User, error) {
	if approver.Role != model.RoleAdmin && approver.Role != model.RoleAgent {
		return nil, fmt.Errorf("%w: role %s cannot resolve credit requests", model.ErrForbidden, approver.Role)
	}
	owner, err := s.userRepo.GetUser(ctx, req.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("get request owner: %w", err)
	}
	if approver.Role == model.RoleAgent && (owner.AgentID == nil || *owner.AgentID != approver.UserID) {
		return nil, fmt.Errorf("%w: user %s is not managed by agent %s", model.ErrForbidden, owner.ID, approver.UserID)
	}
	return owner, nil
}

func (s *CreditServiceImpl) loadOpen(ctx context.Context, requestID uuid.UUID) (*model.CreditRequest, error) {
	req, err := s.creditRepo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("get credit request: %w", err)
	}
	if req.Status.Terminal() {
		return nil, fmt.Errorf("%w: request %s is %s", model.ErrRequestAlreadyResolved, requestID, req.Status)
	}
	return req, nil
}

func (s *CreditServiceImpl) Approve(ctx context.Context, approver model.Principal, requestID uuid.UUID) (*model.CreditRequest, decimal.Decimal, error) {
	req, err := s.loadOpen(ctx, requestID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	owner, err := s.authorizeApprover(ctx, approver, req)
	if err != nil {
		return nil, decimal.Zero, err
	}

	ref := ledger.Ref{Type: model.RefCreditRequest, ID: requestID}
	balance, err := s.ledger.Apply(ctx, owner.WalletID, func(tx *ledger.Tx) error {
		locked, err := s.creditRepo.GetRequestForUpdate(ctx, requestID, tx.DB())
		if err != nil {
			return fmt.Errorf("get credit request for update: %w", err)
		}
		if locked.Status.Terminal() {
			return fmt.Errorf("%w: request %s is %s", model.ErrRequestAlreadyResolved, requestID, locked.Status)
		}

		switch locked.Kind {
		case model.CreditDeposit:
			if approver.Role == model.RoleAgent {
				if _, err := tx.ConsumeQuota(approver.UserID, locked.Amount); err != nil {
					return err
				}
			}
			if err := tx.Credit(locked.Amount, ref); err != nil {
				return err
			}
		case model.CreditWithdrawal:
			if err := tx.Debit(locked.Amount, ref); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %s", model.ErrInvalidKind, locked.Kind)
		}

		ok, err := s.creditRepo.ResolveRequest(ctx, requestID, model.CreditApproved, approver.UserID, tx.DB())
		if err != nil {
			return fmt.Errorf("resolve credit request: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: request %s", model.ErrRequestAlreadyResolved, requestID)
		}
		return nil
	})
	if err != nil {
		return nil, decimal.Zero, err
	}

	resolved := s.markResolved(req, model.CreditApproved, approver.UserID)
	s.notify(resolved, balance)

	s.logger.Info().
		Str("request_id", requestID.String()).
		Str("approver_id", approver.UserID.String()).
		Str("kind", req.Kind.String()).
		Str("amount", req.Amount.StringFixed(2)).
		Str("new_balance", balance.StringFixed(2)).
		Msg("credit request approved")
	return resolved, balance, nil
}

func (s *CreditServiceImpl) Reject(ctx context.Context, approver model.Principal, requestID uuid.UUID) (*model.CreditRequest, error) {
	req, err := s.loadOpen(ctx, requestID)
	if err != nil {
		return nil, err
	}
	owner, err := s.authorizeApprover(ctx, approver, req)
	if err != nil {
		return nil, err
	}

	err = s.dbManager.WithTransaction(ctx, func(tx pgx.Tx) error {
		ok, err := s.creditRepo.ResolveRequest(ctx, requestID, model.CreditRejected, approver.UserID, tx)
		if err != nil {
			return fmt.Errorf("resolve credit request: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: request %s", model.ErrRequestAlreadyResolved, requestID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	balance, err := s.ledger.Balance(ctx, owner.WalletID)
	if err != nil {
		s.logger.Warn().Err(err).Str("wallet_id", owner.WalletID.String()).Msg("balance unavailable for rejection notice")
	}

	resolved := s.markResolved(req, model.CreditRejected, approver.UserID)
	s.notify(resolved, balance)

	s.logger.Info().
		Str("request_id", requestID.String()).
		Str("approver_id", approver.UserID.String()).
		Msg("credit request rejected")
	return resolved, nil
}

func (s *CreditServiceImpl) Get(ctx context.Context, caller model.Principal, requestID uuid.UUID) (*model.CreditRequest, error) {
	req, err := s.creditRepo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("get credit request: %w", err)
	}
	if caller.UserID == req.OwnerID || caller.Role == model.RoleAdmin {
		return req, nil
	}
	if _, err := s.authorizeApprover(ctx, caller, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *CreditServiceImpl) markResolved(req *model.CreditRequest, status model.CreditStatus, approverID uuid.UUID) *model.CreditRequest {
	now := time.Now()
	resolved := *req
	resolved.Status = status
	resolved.ApproverID = &approverID
	resolved.UpdatedAt = now
	resolved.ResolvedAt = &now
	return &resolved
}

func (s *CreditServiceImpl) notify(req *model.CreditRequest, balance decimal.Decimal) {
	ev := model.NewEvent(model.EventCreditResolved, -1, model.CreditResolved{
		RequestID: req.ID,
		Kind:      req.Kind,
		Status:    req.Status,
		Amount:    req.Amount,
		Balance:   balance,
	})
	s.notifier.SendToUser(req.OwnerID, ev)
	s.publisher.Publish(req.OwnerID.String(), ev)
}
