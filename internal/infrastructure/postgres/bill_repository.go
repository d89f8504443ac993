package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo persiste ventas en bills y bill_items.
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

const billColumns = `id, COALESCE(customer_id, ''), customer_name, subtotal, discount_pct, discount,
	tax_pct, tax, total, payment_method, status, created_at, created_by`

func scanBill(row pgx.Row) (*entity.Bill, error) {
	var b entity.Bill
	err := row.Scan(
		&b.ID, &b.CustomerID, &b.CustomerName, &b.Subtotal, &b.DiscountPct, &b.Discount,
		&b.TaxPct, &b.Tax, &b.Total, &b.PaymentMethod, &b.Status, &b.CreatedAt, &b.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserta cabecera y líneas. Llamar dentro de una tx para que sea atómico.
func (r *BillRepo) Create(ctx context.Context, bill *entity.Bill) error {
	query := `
		INSERT INTO bills (id, customer_id, customer_name, subtotal, discount_pct, discount,
			tax_pct, tax, total, payment_method, status, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		bill.ID, nullIfEmpty(bill.CustomerID), bill.CustomerName, bill.Subtotal, bill.DiscountPct, bill.Discount,
		bill.TaxPct, bill.Tax, bill.Total, bill.PaymentMethod, bill.Status, bill.CreatedAt, bill.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bill: %w", err)
	}

	itemQuery := `
		INSERT INTO bill_items (bill_id, line_no, product_id, product_name, quantity, unit,
			display_quantity, unit_price, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for i, it := range bill.Items {
		_, err := r.q.Exec(ctx, itemQuery,
			bill.ID, i+1, it.ProductID, it.ProductName, it.Quantity, it.Unit,
			it.DisplayQuantity, it.UnitPrice, it.Total,
		)
		if err != nil {
			return fmt.Errorf("insert bill item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la venta con sus líneas.
func (r *BillRepo) GetByID(ctx context.Context, id string) (*entity.Bill, error) {
	b, err := scanBill(r.q.QueryRow(ctx, `SELECT `+billColumns+` FROM bills WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Bill{b}); err != nil {
		return nil, err
	}
	return b, nil
}

// List ventas más recientes primero.
func (r *BillRepo) List(ctx context.Context, limit, offset int) ([]*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	var list []*entity.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		list = append(list, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadItems carga las líneas de varias ventas en una sola consulta.
func (r *BillRepo) loadItems(ctx context.Context, bills []*entity.Bill) error {
	if len(bills) == 0 {
		return nil
	}
	ids := make([]string, len(bills))
	byID := make(map[string]*entity.Bill, len(bills))
	for i, b := range bills {
		ids[i] = b.ID
		byID[b.ID] = b
	}
	query := `
		SELECT bill_id, product_id, product_name, quantity, unit, display_quantity, unit_price, total
		FROM bill_items WHERE bill_id = ANY($1) ORDER BY bill_id, line_no`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list bill items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var billID string
		var it entity.BillItem
		if err := rows.Scan(&billID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Unit,
			&it.DisplayQuantity, &it.UnitPrice, &it.Total); err != nil {
			return fmt.Errorf("scan bill item: %w", err)
		}
		if b, ok := byID[billID]; ok {
			b.Items = append(b.Items, it)
		}
	}
	return rows.Err()
}

// SalesTotal suma de total con created_at en [from, to).
func (r *BillRepo) SalesTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(total), 0) FROM bills WHERE created_at >= $1 AND created_at < $2`
	if err := r.q.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum sales: %w", err)
	}
	return total, nil
}
