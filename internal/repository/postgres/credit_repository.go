package postgres

import (
	"context"
	"errors"
	"fmt"

	"fishtable/internal/model"
	"fishtable/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ repository.CreditRepository = (*CreditRepositoryImpl)(nil)

type CreditRepositoryImpl struct {
	*TransactionManager
}

func NewCreditRepository(pool *pgxpool.Pool) repository.CreditRepository {
	return &CreditRepositoryImpl{
		TransactionManager: NewTransactionManager(pool),
	}
}

const creditColumns = `id, owner_id, kind, amount, status, approver_id, created_at, updated_at, resolved_at`

func scanCredit(row pgx.Row) (*model.CreditRequest, error) {
	c := &model.CreditRequest{}
	err := row.Scan(&c.ID, &c.OwnerID, &c.Kind, &c.Amount, &c.Status, &c.ApproverID, &c.CreatedAt, &c.UpdatedAt, &c.ResolvedAt)
	return c, err
}

// InsertRequest relies on the partial unique index credit_requests_one_pending (owner_id, kind) WHERE status = 'pending'
func (r *CreditRepositoryImpl) InsertRequest(ctx context.Context, req *model.CreditRequest, tx pgx.Tx) error {
	query := `
        INSERT INTO credit_requests (id, owner_id, kind, amount, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`

	err := tx.QueryRow(ctx, query, req.ID, req.OwnerID, req.Kind, req.Amount, req.Status).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) && violates(err, "credit_requests_one_pending") {
			return fmt.Errorf("%w: %s", model.ErrPendingRequestExists, req.Kind)
		}
		return fmt.Errorf("failed to insert credit request: %w", err)
	}
	return nil
}

func (r *CreditRepositoryImpl) GetRequest(ctx context.Context, requestID uuid.UUID, tx ...pgx.Tx) (*model.CreditRequest, error) {
	query := `SELECT ` + creditColumns + ` FROM credit_requests WHERE id = $1`

	c, err := scanCredit(r.getExecutor(tx...).QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get credit request: %w", err)
	}
	return c, nil
}

func (r *CreditRepositoryImpl) GetRequestForUpdate(ctx context.Context, requestID uuid.UUID, tx pgx.Tx) (*model.CreditRequest, error) {
	query := `SELECT ` + creditColumns + ` FROM credit_requests WHERE id = $1 FOR UPDATE`

	c, err := scanCredit(tx.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get credit request for update: %w", err)
	}
	return c, nil
}

func (r *CreditRepositoryImpl) GetPendingByOwner(ctx context.Context, ownerID uuid.UUID, kind model.CreditKind, tx ...pgx.Tx) (*model.CreditRequest, error) {
	query := `SELECT ` + creditColumns + ` FROM credit_requests WHERE owner_id = $1 AND kind = $2 AND status = $3`

	c, err := scanCredit(r.getExecutor(tx...).QueryRow(ctx, query, ownerID, kind, model.CreditPending))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get pending credit request: %w", err)
	}
	return c, nil
}

func (r *CreditRepositoryImpl) ResolveRequest(ctx context.Context, requestID uuid.UUID, status model.CreditStatus, approverID uuid.UUID, tx pgx.Tx) (bool, error) {
	query := `
        UPDATE credit_requests
        SET status = $1,
            approver_id = $2,
            resolved_at = NOW(),
            updated_at = NOW()
        WHERE id = $3
          AND status = $4`

	result, err := tx.Exec(ctx, query, status, approverID, requestID, model.CreditPending)
	if err != nil {
		return false, fmt.Errorf("failed to resolve credit request: %w", err)
	}
	return result.RowsAffected() == 1, nil
}
