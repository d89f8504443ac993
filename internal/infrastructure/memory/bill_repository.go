package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// BillRepository implementación en memoria de repository.BillRepository.
// Las ventas no se modifican después de creadas.
type BillRepository struct {
	sc scope
}

var _ repository.BillRepository = (*BillRepository)(nil)

func copyBill(b *entity.Bill) *entity.Bill {
	if b == nil {
		return nil
	}
	cp := *b
	cp.Items = append([]entity.BillItem(nil), b.Items...)
	return &cp
}

func (r *BillRepository) Create(ctx context.Context, bill *entity.Bill) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.Bills[bill.ID]; ok {
			return domain.ErrDuplicate
		}
		st.Bills[bill.ID] = copyBill(bill)
		return nil
	})
}

func (r *BillRepository) GetByID(ctx context.Context, id string) (*entity.Bill, error) {
	var out *entity.Bill
	err := r.sc.read(func(st *state) error {
		out = copyBill(st.Bills[id])
		return nil
	})
	return out, err
}

// List ventas más recientes primero.
func (r *BillRepository) List(ctx context.Context, limit, offset int) ([]*entity.Bill, error) {
	var out []*entity.Bill
	err := r.sc.read(func(st *state) error {
		out = make([]*entity.Bill, 0, len(st.Bills))
		for _, b := range st.Bills {
			out = append(out, copyBill(b))
		}
		sortByCreatedDesc(out, func(b *entity.Bill) time.Time { return b.CreatedAt })
		out = paginate(out, limit, offset)
		return nil
	})
	return out, err
}

func (r *BillRepository) SalesTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.sc.read(func(st *state) error {
		for _, b := range st.Bills {
			if !b.CreatedAt.Before(from) && b.CreatedAt.Before(to) {
				total = total.Add(b.Total)
			}
		}
		return nil
	})
	return total, err
}
