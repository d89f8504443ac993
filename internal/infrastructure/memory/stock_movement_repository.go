package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// StockMovementRepository implementación en memoria de repository.StockMovementRepository.
type StockMovementRepository struct {
	sc scope
}

var _ repository.StockMovementRepository = (*StockMovementRepository)(nil)

func (r *StockMovementRepository) Create(ctx context.Context, movement *entity.StockMovement) error {
	return r.sc.write(func(st *state) error {
		cp := *movement
		st.Movements = append(st.Movements, &cp)
		return nil
	})
}

// ListByProduct movimientos del producto, más recientes primero.
func (r *StockMovementRepository) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.sc.read(func(st *state) error {
		out = make([]*entity.StockMovement, 0)
		for i := len(st.Movements) - 1; i >= 0; i-- {
			if m := st.Movements[i]; m.ProductID == productID {
				cp := *m
				out = append(out, &cp)
			}
		}
		sortByCreatedDesc(out, func(m *entity.StockMovement) time.Time { return m.CreatedAt })
		out = paginate(out, limit, offset)
		return nil
	})
	return out, err
}
