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

// Ensure implementation satisfies interface at compile time
var _ repository.UserRepository = (*UserRepositoryImpl)(nil)

// UserRepositoryImpl is the PostgreSQL implementation of UserRepository
type UserRepositoryImpl struct {
	*TransactionManager
}

func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &UserRepositoryImpl{
		TransactionManager: NewTransactionManager(pool),
	}
}

// GetUser retrieves a user together with its wallet and managing agent
func (r *UserRepositoryImpl) GetUser(ctx context.Context, userID uuid.UUID, tx ...pgx.Tx) (*model.User, error) {
	query := `
        SELECT u.id, u.username, u.role, w.id, u.agent_id, u.created_at
        FROM users u
        JOIN wallets w ON w.user_id = u.id
        WHERE u.id = $1`

	user := &model.User{}
	executor := r.getExecutor(tx...)
	err := executor.QueryRow(ctx, query, userID).Scan(&user.ID, &user.Username, &user.Role, &user.WalletID, &user.AgentID, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
