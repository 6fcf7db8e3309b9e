package postgres

import (
	"context"
	"fmt"

	"fishtable/internal/model"
	"fishtable/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ repository.JackpotRepository = (*JackpotRepositoryImpl)(nil)

type JackpotRepositoryImpl struct {
	*TransactionManager
}

func NewJackpotRepository(pool *pgxpool.Pool) repository.JackpotRepository {
	return &JackpotRepositoryImpl{
		TransactionManager: NewTransactionManager(pool),
	}
}

func (r *JackpotRepositoryImpl) InsertWin(ctx context.Context, win *model.JackpotWin, tx pgx.Tx) error {
	query := `
        INSERT INTO jackpot_wins (id, table_id, user_id, wallet_id, amount)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at`

	if err := tx.QueryRow(ctx, query, win.ID, win.TableID, win.UserID, win.WalletID, win.Amount).Scan(&win.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert jackpot win: %w", err)
	}
	return nil
}
