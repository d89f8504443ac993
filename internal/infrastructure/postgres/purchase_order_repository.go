package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo persiste órdenes de compra en purchase_orders y purchase_order_items.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const purchaseOrderColumns = `id, supplier_name, total, status, notes, created_at, updated_at, received_at`

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := row.Scan(&po.ID, &po.SupplierName, &po.Total, &po.Status, &po.Notes,
		&po.CreatedAt, &po.UpdatedAt, &po.ReceivedAt)
	if err != nil {
		return nil, err
	}
	return &po, nil
}

// Create inserta la orden y sus líneas.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, supplier_name, total, status, notes, created_at, updated_at, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		po.ID, po.SupplierName, po.Total, po.Status, po.Notes, po.CreatedAt, po.UpdatedAt, po.ReceivedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	itemQuery := `
		INSERT INTO purchase_order_items (purchase_order_id, line_no, product_id, quantity, unit, unit_cost)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i, it := range po.Items {
		if _, err := r.q.Exec(ctx, itemQuery, po.ID, i+1, it.ProductID, it.Quantity, it.Unit, it.UnitCost); err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.getOne(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la cabecera de la orden hasta el fin de la tx.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.getOne(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseOrderRepo) getOne(ctx context.Context, query, id string) (*entity.PurchaseOrder, error) {
	po, err := scanPurchaseOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.PurchaseOrder{po}); err != nil {
		return nil, err
	}
	return po, nil
}

func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `UPDATE purchase_orders SET status = $2, received_at = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, po.ID, po.Status, po.ReceivedAt, po.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List órdenes más recientes primero.
func (r *PurchaseOrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	var list []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, po)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PurchaseOrderRepo) loadItems(ctx context.Context, orders []*entity.PurchaseOrder) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	byID := make(map[string]*entity.PurchaseOrder, len(orders))
	for i, po := range orders {
		ids[i] = po.ID
		byID[po.ID] = po
	}
	query := `
		SELECT purchase_order_id, product_id, quantity, unit, unit_cost
		FROM purchase_order_items WHERE purchase_order_id = ANY($1) ORDER BY purchase_order_id, line_no`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var poID string
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&poID, &it.ProductID, &it.Quantity, &it.Unit, &it.UnitCost); err != nil {
			return fmt.Errorf("scan purchase order item: %w", err)
		}
		if po, ok := byID[poID]; ok {
			po.Items = append(po.Items, it)
		}
	}
	return rows.Err()
}
