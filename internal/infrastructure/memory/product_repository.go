package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// ProductRepository implementación en memoria de repository.ProductRepository.
type ProductRepository struct {
	sc scope
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

func copyProduct(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

func barcodeTaken(st *state, barcode, exceptID string) bool {
	if barcode == "" {
		return false
	}
	for _, p := range st.Products {
		if p.Barcode == barcode && p.ID != exceptID {
			return true
		}
	}
	return false
}

// Create inserta un producto. ErrDuplicate si el ID o el código de barras ya existen.
func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.Products[product.ID]; ok || barcodeTaken(st, product.Barcode, "") {
			return domain.ErrDuplicate
		}
		st.Products[product.ID] = copyProduct(product)
		return nil
	})
}

// GetByID obtiene un producto; (nil, nil) si no existe.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.sc.read(func(st *state) error {
		out = copyProduct(st.Products[id])
		return nil
	})
	return out, err
}

// GetForUpdate dentro de Run el lock de escritura ya está tomado; equivale a GetByID.
func (r *ProductRepository) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepository) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	if barcode == "" {
		return nil, nil
	}
	var out *entity.Product
	err := r.sc.read(func(st *state) error {
		for _, p := range st.Products {
			if p.Barcode == barcode {
				out = copyProduct(p)
				break
			}
		}
		return nil
	})
	return out, err
}

// Update modifica datos de catálogo; conserva Stock, CostPrice y CreatedAt.
func (r *ProductRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.sc.write(func(st *state) error {
		cur, ok := st.Products[product.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if barcodeTaken(st, product.Barcode, product.ID) {
			return domain.ErrDuplicate
		}
		next := copyProduct(product)
		next.Stock = cur.Stock
		next.CostPrice = cur.CostPrice
		next.CreatedAt = cur.CreatedAt
		st.Products[product.ID] = next
		return nil
	})
}

func (r *ProductRepository) UpdateStock(ctx context.Context, productID string, stock decimal.Decimal) error {
	return r.sc.write(func(st *state) error {
		p, ok := st.Products[productID]
		if !ok {
			return domain.ErrNotFound
		}
		p.Stock = stock
		p.UpdatedAt = time.Now()
		return nil
	})
}

func (r *ProductRepository) UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error {
	return r.sc.write(func(st *state) error {
		p, ok := st.Products[productID]
		if !ok {
			return domain.ErrNotFound
		}
		p.CostPrice = cost
		p.UpdatedAt = time.Now()
		return nil
	})
}

// List productos ordenados por nombre.
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.sc.read(func(st *state) error {
		out = r.filter(st, func(*entity.Product) bool { return true })
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Name != out[j].Name {
				return out[i].Name < out[j].Name
			}
			return out[i].ID < out[j].ID
		})
		out = paginate(out, limit, offset)
		return nil
	})
	return out, err
}

// ListLowStock productos con stock <= threshold, menor stock primero.
func (r *ProductRepository) ListLowStock(ctx context.Context, threshold decimal.Decimal) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.sc.read(func(st *state) error {
		out = r.filter(st, func(p *entity.Product) bool { return p.Stock.LessThanOrEqual(threshold) })
		sort.SliceStable(out, func(i, j int) bool {
			if !out[i].Stock.Equal(out[j].Stock) {
				return out[i].Stock.LessThan(out[j].Stock)
			}
			return out[i].Name < out[j].Name
		})
		return nil
	})
	return out, err
}

// ListExpiringBefore productos con fecha de vencimiento <= until, más próximos primero.
func (r *ProductRepository) ListExpiringBefore(ctx context.Context, until time.Time) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.sc.read(func(st *state) error {
		out = r.filter(st, func(p *entity.Product) bool { return p.ExpiryDate != nil && !p.ExpiryDate.After(until) })
		sort.SliceStable(out, func(i, j int) bool { return out[i].ExpiryDate.Before(*out[j].ExpiryDate) })
		return nil
	})
	return out, err
}

func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.sc.read(func(st *state) error {
		n = len(st.Products)
		return nil
	})
	return n, err
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.Products[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.Products, id)
		return nil
	})
}

func (r *ProductRepository) filter(st *state, keep func(*entity.Product) bool) []*entity.Product {
	out := make([]*entity.Product, 0, len(st.Products))
	for _, p := range st.Products {
		if keep(p) {
			out = append(out, copyProduct(p))
		}
	}
	return out
}
