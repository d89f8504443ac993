package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// ActivityRepository define el puerto del registro de actividad.
type ActivityRepository interface {
	Create(ctx context.Context, activity *entity.Activity) error
	ListRecent(ctx context.Context, limit int) ([]*entity.Activity, error)
}
