package postgres

import (
	"context"
	"fmt"

	"fishtable/internal/model"
	"fishtable/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

var _ repository.FishTypeRepository = (*FishTypeRepositoryImpl)(nil)

type FishTypeRepositoryImpl struct {
	*TransactionManager
}

func NewFishTypeRepository(pool *pgxpool.Pool) repository.FishTypeRepository {
	return &FishTypeRepositoryImpl{
		TransactionManager: NewTransactionManager(pool),
	}
}

func (r *FishTypeRepositoryImpl) ListFishTypes(ctx context.Context) ([]model.FishType, error) {
	query := `
        SELECT id, name, coin, out_pro, difficulty, prop_id, prop_count, prop_value
        FROM fish_types
        ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fish types: %w", err)
	}
	defer rows.Close()

	var types []model.FishType
	for rows.Next() {
		var ft model.FishType
		if err := rows.Scan(&ft.ID, &ft.Name, &ft.Coin, &ft.OutPro, &ft.Difficulty, &ft.PropID, &ft.PropCount, &ft.PropValue); err != nil {
			return nil, fmt.Errorf("failed to scan fish type: %w", err)
		}
		types = append(types, ft)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate fish types: %w", err)
	}
	return types, nil
}
