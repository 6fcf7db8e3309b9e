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
	"github.com/shopspring/decimal"
)

var _ repository.QuotaRepository = (*QuotaRepositoryImpl)(nil)

type QuotaRepositoryImpl struct {
	*TransactionManager
}

func NewQuotaRepository(pool *pgxpool.Pool) repository.QuotaRepository {
	return &QuotaRepositoryImpl{
		TransactionManager: NewTransactionManager(pool),
	}
}

func (r *QuotaRepositoryImpl) GetQuotaForUpdate(ctx context.Context, agentID uuid.UUID, tx pgx.Tx) (*model.AgentQuota, error) {
	query := `SELECT agent_id, remaining, version, updated_at FROM agent_quotas WHERE agent_id = $1 FOR UPDATE`

	q := &model.AgentQuota{}
	err := tx.QueryRow(ctx, query, agentID).Scan(&q.AgentID, &q.Remaining, &q.Version, &q.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAgentNotFound
		}
		return nil, fmt.Errorf("failed to get quota for update: %w", err)
	}
	return q, nil
}

func (r *QuotaRepositoryImpl) UpdateQuota(ctx context.Context, agentID uuid.UUID, remaining decimal.Decimal, tx pgx.Tx) error {
	query := `
        UPDATE agent_quotas
        SET remaining = $1, version = version + 1, updated_at = NOW()
        WHERE agent_id = $2`

	commandTag, err := tx.Exec(ctx, query, remaining, agentID)
	if err != nil {
		// CONSTRAINT quota_non_negative CHECK (remaining >= 0)
		if isCheckViolation(err) {
			return model.ErrQuotaExceeded
		}
		return fmt.Errorf("failed to update quota: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return model.ErrAgentNotFound
	}
	return nil
}

func (r *QuotaRepositoryImpl) UpsertQuota(ctx context.Context, agentID uuid.UUID, remaining decimal.Decimal, tx pgx.Tx) (*model.AgentQuota, error) {
	query := `
        INSERT INTO agent_quotas (agent_id, remaining, version, updated_at)
        VALUES ($1, $2, 1, NOW())
        ON CONFLICT (agent_id) DO UPDATE
        SET remaining = EXCLUDED.remaining, version = agent_quotas.version + 1, updated_at = NOW()
        RETURNING agent_id, remaining, version, updated_at`

	q := &model.AgentQuota{}
	err := r.getExecutor(tx).QueryRow(ctx, query, agentID, remaining).Scan(&q.AgentID, &q.Remaining, &q.Version, &q.UpdatedAt)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return nil, model.ErrAgentNotFound
		case isCheckViolation(err):
			return nil, fmt.Errorf("%w: quota cannot be negative", model.ErrInvalidAmount)
		}
		return nil, fmt.Errorf("failed to upsert quota: %w", err)
	}
	return q, nil
}
