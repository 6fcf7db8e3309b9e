package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fishtable/internal/model"
	"fishtable/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ repository.StakeRepository = (*StakeRepositoryImpl)(nil)

type StakeRepositoryImpl struct {
	*TransactionManager
}

func NewStakeRepository(pool *pgxpool.Pool) repository.StakeRepository {
	return &StakeRepositoryImpl{
		TransactionManager: NewTransactionManager(pool),
	}
}

func (r *StakeRepositoryImpl) InsertStake(ctx context.Context, stake *model.Stake, tx pgx.Tx) error {
	query := `
        INSERT INTO stakes (id, user_id, wallet_id, table_id, amount, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at`

	err := tx.QueryRow(ctx, query, stake.ID, stake.UserID, stake.WalletID, stake.TableID, stake.Amount, stake.Status).
		Scan(&stake.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: bullet %s", model.ErrDuplicateStake, stake.ID)
		}
		return fmt.Errorf("failed to insert stake: %w", err)
	}
	return nil
}

// ClaimStake resolves the stake only if it is still open
func (r *StakeRepositoryImpl) ClaimStake(ctx context.Context, stakeID uuid.UUID, tx pgx.Tx) (*model.Stake, error) {
	query := `
        UPDATE stakes
        SET status = $1
        WHERE id = $2
          AND status = $3
        RETURNING id, user_id, wallet_id, table_id, amount, status, created_at`

	s := &model.Stake{}
	err := tx.QueryRow(ctx, query, model.StakeResolved, stakeID, model.StakeOpen).
		Scan(&s.ID, &s.UserID, &s.WalletID, &s.TableID, &s.Amount, &s.Status, &s.CreatedAt)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to claim stake: %w", err)
	}

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM stakes WHERE id = $1)`, stakeID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check stake: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: bullet %s", model.ErrDuplicateStake, stakeID)
	}
	return nil, model.ErrStakeNotFound
}

func (r *StakeRepositoryImpl) InsertHitResult(ctx context.Context, result *model.HitResult, tx pgx.Tx) error {
	query := `
        INSERT INTO hit_results (id, stake_id, wallet_id, table_id, fish_id, fish_type_id, killed, reward, balance_after)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING created_at`

	err := tx.QueryRow(ctx, query, result.ID, result.StakeID, result.WalletID, result.TableID, result.FishID,
		result.FishTypeID, result.Killed, result.Reward, result.BalanceAfter).Scan(&result.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: bullet %s", model.ErrDuplicateStake, result.StakeID)
		}
		return fmt.Errorf("failed to insert hit result: %w", err)
	}
	return nil
}

func (r *StakeRepositoryImpl) GetHitResult(ctx context.Context, stakeID uuid.UUID, tx ...pgx.Tx) (*model.HitResult, error) {
	query := `
        SELECT id, stake_id, wallet_id, table_id, fish_id, fish_type_id, killed, reward, balance_after, created_at
        FROM hit_results WHERE stake_id = $1`

	h := &model.HitResult{}
	err := r.getExecutor(tx...).QueryRow(ctx, query, stakeID).
		Scan(&h.ID, &h.StakeID, &h.WalletID, &h.TableID, &h.FishID, &h.FishTypeID, &h.Killed, &h.Reward, &h.BalanceAfter, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrStakeNotFound
		}
		return nil, fmt.Errorf("failed to get hit result: %w", err)
	}
	return h, nil
}

func (r *StakeRepositoryImpl) ListStaleStakes(ctx context.Context, before time.Time, limit int) ([]*model.Stake, error) {
	query := `
        SELECT id, user_id, wallet_id, table_id, amount, status, created_at
        FROM stakes
        WHERE status = $1
          AND created_at < $2
        ORDER BY created_at
        LIMIT $3`

	rows, err := r.getExecutor().Query(ctx, query, model.StakeOpen, before, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale stakes: %w", err)
	}
	defer rows.Close()

	var stakes []*model.Stake
	for rows.Next() {
		s := &model.Stake{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.WalletID, &s.TableID, &s.Amount, &s.Status, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan stake: %w", err)
		}
		stakes = append(stakes, s)
	}
	return stakes, rows.Err()
}
