package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// PurchaseOrderRepository implementación en memoria de repository.PurchaseOrderRepository.
type PurchaseOrderRepository struct {
	sc scope
}

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepository)(nil)

func copyPurchaseOrder(po *entity.PurchaseOrder) *entity.PurchaseOrder {
	if po == nil {
		return nil
	}
	cp := *po
	cp.Items = append([]entity.PurchaseOrderItem(nil), po.Items...)
	return &cp
}

func (r *PurchaseOrderRepository) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.PurchaseOrders[po.ID]; ok {
			return domain.ErrDuplicate
		}
		st.PurchaseOrders[po.ID] = copyPurchaseOrder(po)
		return nil
	})
}

func (r *PurchaseOrderRepository) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	err := r.sc.read(func(st *state) error {
		out = copyPurchaseOrder(st.PurchaseOrders[id])
		return nil
	})
	return out, err
}

func (r *PurchaseOrderRepository) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseOrderRepository) UpdateStatus(ctx context.Context, po *entity.PurchaseOrder) error {
	return r.sc.write(func(st *state) error {
		cur, ok := st.PurchaseOrders[po.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Status = po.Status
		cur.ReceivedAt = po.ReceivedAt
		cur.UpdatedAt = po.UpdatedAt
		return nil
	})
}

func (r *PurchaseOrderRepository) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	err := r.sc.read(func(st *state) error {
		out = make([]*entity.PurchaseOrder, 0, len(st.PurchaseOrders))
		for _, po := range st.PurchaseOrders {
			out = append(out, copyPurchaseOrder(po))
		}
		sortByCreatedDesc(out, func(po *entity.PurchaseOrder) time.Time { return po.CreatedAt })
		out = paginate(out, limit, offset)
		return nil
	})
	return out, err
}
