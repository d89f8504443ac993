package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// CustomerRepository implementación en memoria de repository.CustomerRepository.
type CustomerRepository struct {
	sc scope
}

var _ repository.CustomerRepository = (*CustomerRepository)(nil)

func copyCustomer(c *entity.Customer) *entity.Customer {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func (r *CustomerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.Customers[customer.ID]; ok {
			return domain.ErrDuplicate
		}
		st.Customers[customer.ID] = copyCustomer(customer)
		return nil
	})
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.sc.read(func(st *state) error {
		out = copyCustomer(st.Customers[id])
		return nil
	})
	return out, err
}

// GetForUpdate dentro de Run el lock de escritura ya está tomado; equivale a GetByID.
func (r *CustomerRepository) GetForUpdate(ctx context.Context, id string) (*entity.Customer, error) {
	return r.GetByID(ctx, id)
}

func (r *CustomerRepository) GetByName(ctx context.Context, name string) (*entity.Customer, error) {
	name = strings.TrimSpace(name)
	var out *entity.Customer
	err := r.sc.read(func(st *state) error {
		for _, c := range st.Customers {
			if strings.EqualFold(c.Name, name) {
				out = copyCustomer(c)
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepository) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	return r.sc.write(func(st *state) error {
		c, ok := st.Customers[id]
		if !ok {
			return domain.ErrNotFound
		}
		c.BalanceDue = balance
		c.UpdatedAt = time.Now()
		return nil
	})
}

func (r *CustomerRepository) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	err := r.sc.read(func(st *state) error {
		out = make([]*entity.Customer, 0, len(st.Customers))
		for _, c := range st.Customers {
			out = append(out, copyCustomer(c))
		}
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

func (r *CustomerRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.sc.read(func(st *state) error {
		n = len(st.Customers)
		return nil
	})
	return n, err
}

func (r *CustomerRepository) TotalBalanceDue(ctx context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.sc.read(func(st *state) error {
		for _, c := range st.Customers {
			total = total.Add(c.BalanceDue)
		}
		return nil
	})
	return total, err
}
