package memory

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// ActivityRepository implementación en memoria de repository.ActivityRepository.
type ActivityRepository struct {
	sc scope
}

var _ repository.ActivityRepository = (*ActivityRepository)(nil)

func (r *ActivityRepository) Create(ctx context.Context, activity *entity.Activity) error {
	return r.sc.write(func(st *state) error {
		cp := *activity
		st.Activities = append(st.Activities, &cp)
		return nil
	})
}

// ListRecent últimas limit actividades, más recientes primero.
func (r *ActivityRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Activity, error) {
	var out []*entity.Activity
	err := r.sc.read(func(st *state) error {
		out = make([]*entity.Activity, 0, limit)
		for i := len(st.Activities) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
			cp := *st.Activities[i]
			out = append(out, &cp)
		}
		return nil
	})
	return out, err
}
