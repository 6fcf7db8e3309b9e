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

var _ repository.WalletRepository = (*WalletRepositoryImpl)(nil)

type WalletRepositoryImpl struct {
	*TransactionManager
}

func NewWalletRepository(pool *pgxpool.Pool) repository.WalletRepository {
	return &WalletRepositoryImpl{
		TransactionManager: NewTransactionManager(pool),
	}
}

const walletColumns = `id, user_id, balance, opening_balance, version, created_at, updated_at`

func scanWallet(row pgx.Row) (*model.Wallet, error) {
	w := &model.Wallet{}
	err := row.Scan(&w.ID, &w.UserID, &w.Balance, &w.OpeningBalance, &w.Version, &w.CreatedAt, &w.UpdatedAt)
	return w, err
}

// GetWalletForUpdate retrieves a wallet with row-level lock
func (r *WalletRepositoryImpl) GetWalletForUpdate(ctx context.Context, walletID uuid.UUID, tx pgx.Tx) (*model.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1 FOR UPDATE`

	w, err := scanWallet(tx.QueryRow(ctx, query, walletID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet for update: %w", err)
	}
	return w, nil
}

func (r *WalletRepositoryImpl) GetWallet(ctx context.Context, walletID uuid.UUID, tx ...pgx.Tx) (*model.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1`

	w, err := scanWallet(r.getExecutor(tx...).QueryRow(ctx, query, walletID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return w, nil
}

func (r *WalletRepositoryImpl) UpdateBalance(ctx context.Context, walletID uuid.UUID, balance decimal.Decimal, tx pgx.Tx) error {
	query := `
        UPDATE wallets
        SET balance = $1, version = version + 1, updated_at = NOW()
        WHERE id = $2`

	commandTag, err := tx.Exec(ctx, query, balance, walletID)
	if err != nil {
		if isCheckViolation(err) && violates(err, "wallet_balance_non_negative") {
			return model.ErrInsufficientFunds
		}
		return fmt.Errorf("failed to update balance: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return model.ErrWalletNotFound
	}
	return nil
}
