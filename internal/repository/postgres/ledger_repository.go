package postgres

import (
	"context"
	"fmt"

	"fishtable/internal/model"
	"fishtable/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ repository.LedgerRepository = (*LedgerRepositoryImpl)(nil)

type LedgerRepositoryImpl struct {
	*TransactionManager
}

func NewLedgerRepository(pool *pgxpool.Pool) repository.LedgerRepository {
	return &LedgerRepositoryImpl{
		TransactionManager: NewTransactionManager(pool),
	}
}

// InsertEntry appends an entry; (ref_type, ref_id, kind) is unique
func (r *LedgerRepositoryImpl) InsertEntry(ctx context.Context, entry *model.LedgerEntry, tx pgx.Tx) error {
	query := `
        INSERT INTO ledger_entries (id, wallet_id, kind, amount, balance_after, ref_type, ref_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at`

	err := tx.QueryRow(ctx, query, entry.ID, entry.WalletID, entry.Kind, entry.Amount, entry.BalanceAfter, entry.RefType, entry.RefID).
		Scan(&entry.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s %s", model.ErrDuplicateEntry, entry.RefType, entry.RefID)
		}
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	return nil
}

func (r *LedgerRepositoryImpl) GetEntriesByWallet(ctx context.Context, walletID uuid.UUID, tx ...pgx.Tx) ([]*model.LedgerEntry, error) {
	query := `
        SELECT id, wallet_id, kind, amount, balance_after, ref_type, ref_id, created_at
        FROM ledger_entries WHERE wallet_id = $1
        ORDER BY seq ASC`

	rows, err := r.getExecutor(tx...).Query(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.LedgerEntry
	for rows.Next() {
		e := &model.LedgerEntry{}
		if err := rows.Scan(&e.ID, &e.WalletID, &e.Kind, &e.Amount, &e.BalanceAfter, &e.RefType, &e.RefID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledger entries: %w", err)
	}
	return entries, nil
}
