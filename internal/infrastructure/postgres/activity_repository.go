package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo registro de actividad sobre la tabla activities.
type ActivityRepo struct {
	q Querier
}

func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

func (r *ActivityRepo) Create(ctx context.Context, a *entity.Activity) error {
	_, err := r.q.Exec(ctx, `INSERT INTO activities (id, type, message, created_at) VALUES ($1, $2, $3, $4)`,
		a.ID, a.Type, a.Message, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// ListRecent últimas limit entradas, más recientes primero.
func (r *ActivityRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Activity, error) {
	rows, err := r.q.Query(ctx, `SELECT id, type, message, created_at FROM activities ORDER BY created_at DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()
	var list []*entity.Activity
	for rows.Next() {
		var a entity.Activity
		if err := rows.Scan(&a.ID, &a.Type, &a.Message, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
