package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionManager owns the pool and is embedded by every repository.
type TransactionManager struct {
	pool   *pgxpool.Pool
	txOpts pgx.TxOptions
}

func NewTransactionManager(pool *pgxpool.Pool) *TransactionManager {
	return &TransactionManager{
		pool:   pool,
		txOpts: pgx.TxOptions{IsoLevel: pgx.ReadCommitted},
	}
}

// WithTransaction runs fn in one read-committed transaction. Row locks taken
// with FOR UPDATE inside fn serialize concurrent writers. The transaction is
// rolled back when fn fails or panics.
func (m *TransactionManager) WithTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := m.pool.BeginTx(ctx, m.txOpts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Querier is satisfied by both the pool and a pgx.Tx.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// getExecutor prefers the caller's transaction over the pool.
func (m *TransactionManager) getExecutor(tx ...pgx.Tx) Querier {
	if len(tx) > 0 && tx[0] != nil {
		return tx[0]
	}
	return m.pool
}

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func pgCode(err error) string {
	if pgErr, ok := pgError(err); ok {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgCode(err) == pgerrcode.UniqueViolation
}

// isCheckViolation matches the non-negative CHECK constraints on balances and quotas.
func isCheckViolation(err error) bool {
	return pgCode(err) == pgerrcode.CheckViolation
}

func isForeignKeyViolation(err error) bool {
	return pgCode(err) == pgerrcode.ForeignKeyViolation
}

// violates reports whether err was raised by the named constraint.
func violates(err error, constraint string) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.ConstraintName == constraint
}
