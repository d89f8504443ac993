package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/internal/domain/units"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

var hundred = decimal.NewFromInt(100)

// CreateBillUseCase cotiza y crea ventas; el descuento de stock y la venta se guardan en una sola transacción.
type CreateBillUseCase struct {
	txRunner    BillingTxRunner
	stock       StockDeducter
	productRepo repository.ProductRepository
	billRepo    repository.BillRepository
	log         *logger.Logger
}

// NewCreateBillUseCase construye el caso de uso.
func NewCreateBillUseCase(
	txRunner BillingTxRunner,
	stock StockDeducter,
	productRepo repository.ProductRepository,
	billRepo repository.BillRepository,
	log *logger.Logger,
) *CreateBillUseCase {
	return &CreateBillUseCase{
		txRunner:    txRunner,
		stock:       stock,
		productRepo: productRepo,
		billRepo:    billRepo,
		log:         log,
	}
}

// pricedLine línea valorizada con su producto.
type pricedLine struct {
	item    entity.BillItem
	product *entity.Product
}

// QuoteBill valoriza las líneas y valida stock sin modificar nada.
// El stock se valida acumulando las líneas de un mismo producto.
func (uc *CreateBillUseCase) QuoteBill(ctx context.Context, in dto.CreateBillRequest) (*dto.BillQuoteResponse, error) {
	if err := uc.validateItems(in); err != nil {
		return nil, err
	}
	lines, err := uc.priceLines(ctx, in.Items)
	if err != nil {
		return nil, err
	}
	subtotal, discount, tax, total := computeTotals(lines, in.DiscountPct, in.TaxPct)
	out := &dto.BillQuoteResponse{
		Items:     make([]dto.BillLineQuote, 0, len(lines)),
		Subtotal:  subtotal,
		Discount:  discount,
		Tax:       tax,
		Total:     total,
		Available: true,
	}
	// cantidad acumulada por producto, en la unidad del producto
	cumulative := make(map[string]decimal.Decimal)
	for _, l := range lines {
		productUnit := l.product.Unit()
		qty, _ := units.Convert(l.item.Quantity, l.item.Unit, productUnit)
		cumulative[l.product.ID] = cumulative[l.product.ID].Add(qty)
		check, err := units.CheckStockAvailability(l.product, cumulative[l.product.ID], productUnit)
		if err != nil {
			return nil, err
		}
		if !check.Available {
			out.Available = false
		}
		out.Items = append(out.Items, dto.BillLineQuote{
			ProductID:       l.product.ID,
			ProductName:     l.product.Name,
			DisplayQuantity: l.item.DisplayQuantity,
			UnitPrice:       l.item.UnitPrice,
			Total:           l.item.Total,
			Stock:           check,
		})
	}
	return out, nil
}

// CreateBill valida, valoriza y en una transacción descuenta stock de cada línea, guarda la venta,
// actualiza el saldo del cliente (pago due/credit) y registra la actividad.
func (uc *CreateBillUseCase) CreateBill(ctx context.Context, userID string, in dto.CreateBillRequest) (*dto.BillResponse, error) {
	if err := uc.validate(in); err != nil {
		return nil, err
	}
	lines, err := uc.priceLines(ctx, in.Items)
	if err != nil {
		return nil, err
	}
	subtotal, discount, tax, total := computeTotals(lines, in.DiscountPct, in.TaxPct)

	now := time.Now()
	bill := &entity.Bill{
		ID:            uuid.New().String(),
		CustomerName:  strings.TrimSpace(in.CustomerName),
		Items:         make([]entity.BillItem, 0, len(lines)),
		Subtotal:      subtotal,
		DiscountPct:   in.DiscountPct,
		Discount:      discount,
		TaxPct:        in.TaxPct,
		Tax:           tax,
		Total:         total,
		PaymentMethod: in.PaymentMethod,
		Status:        entity.BillStatusCompleted,
		CreatedAt:     now,
		CreatedBy:     userID,
	}
	for _, l := range lines {
		bill.Items = append(bill.Items, l.item)
	}

	err = uc.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		// 1) Descontar stock de cada línea; cualquier error hace rollback de toda la venta.
		for _, it := range bill.Items {
			if _, err := uc.stock.DeductInTx(ctx, tx, inventory.StockChange{
				ProductID:     it.ProductID,
				Quantity:      it.Quantity,
				Unit:          it.Unit,
				TransactionID: bill.ID,
				Reference:     "venta",
				UserID:        userID,
				Now:           now,
			}); err != nil {
				return err
			}
		}
		// 2) Cliente
		customer, err := resolveCustomer(ctx, tx, in, now)
		if err != nil {
			return err
		}
		if customer != nil {
			bill.CustomerID = customer.ID
			bill.CustomerName = customer.Name
		}
		// 3) Venta
		if err := tx.Bills.Create(ctx, bill); err != nil {
			return err
		}
		// 4) Saldo a crédito
		if customer != nil && entity.IsCreditPayment(bill.PaymentMethod) {
			locked, err := tx.Customers.GetForUpdate(ctx, customer.ID)
			if err != nil {
				return err
			}
			if locked == nil {
				return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, customer.ID)
			}
			if err := tx.Customers.UpdateBalance(ctx, customer.ID, locked.BalanceDue.Add(bill.Total)); err != nil {
				return err
			}
		}
		return tx.Activities.Create(ctx, &entity.Activity{
			ID:        uuid.New().String(),
			Type:      entity.ActivityBillGenerated,
			Message:   fmt.Sprintf("Venta a %s por %s (%s)", bill.CustomerName, bill.Total.StringFixed(2), bill.PaymentMethod),
			CreatedAt: now,
		})
	})
	if err != nil {
		uc.log.Warn().Err(err).Int("items", len(bill.Items)).Msg("venta rechazada")
		return nil, err
	}
	uc.log.Info().
		Str("bill_id", bill.ID).
		Str("customer", bill.CustomerName).
		Str("payment_method", bill.PaymentMethod).
		Str("total", bill.Total.StringFixed(2)).
		Msg("venta registrada")
	out := ToBillResponse(bill)
	return &out, nil
}

// GetBill obtiene una venta por ID.
func (uc *CreateBillUseCase) GetBill(ctx context.Context, id string) (*dto.BillResponse, error) {
	bill, err := uc.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	out := ToBillResponse(bill)
	return &out, nil
}

// ListBills ventas paginadas, más recientes primero.
func (uc *CreateBillUseCase) ListBills(ctx context.Context, page dto.PageRequest) ([]dto.BillResponse, error) {
	page.DefaultPage()
	list, err := uc.billRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BillResponse, 0, len(list))
	for _, b := range list {
		out = append(out, ToBillResponse(b))
	}
	return out, nil
}

func (uc *CreateBillUseCase) validate(in dto.CreateBillRequest) error {
	if in.CustomerID == "" && strings.TrimSpace(in.CustomerName) == "" {
		return fmt.Errorf("%w: cliente requerido", domain.ErrInvalidInput)
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return fmt.Errorf("%w: método de pago %q", domain.ErrInvalidInput, in.PaymentMethod)
	}
	return uc.validateItems(in)
}

func (uc *CreateBillUseCase) validateItems(in dto.CreateBillRequest) error {
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: la venta no tiene líneas", domain.ErrInvalidInput)
	}
	if !validPct(in.DiscountPct) || !validPct(in.TaxPct) {
		return fmt.Errorf("%w: porcentaje fuera de rango", domain.ErrInvalidInput)
	}
	for _, it := range in.Items {
		if it.ProductID == "" || !it.Quantity.IsPositive() {
			return fmt.Errorf("%w: línea inválida", domain.ErrInvalidInput)
		}
		if err := uc.stock.ValidateUnit(it.Unit); err != nil {
			return err
		}
	}
	return nil
}

func validPct(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(hundred)
}

// priceLines valoriza cada línea con el motor de unidades (precio por unidad del producto).
func (uc *CreateBillUseCase) priceLines(ctx context.Context, items []dto.BillItemRequest) ([]pricedLine, error) {
	products := make(map[string]*entity.Product)
	lines := make([]pricedLine, 0, len(items))
	for _, it := range items {
		product, ok := products[it.ProductID]
		if !ok {
			var err error
			product, err = uc.productRepo.GetByID(ctx, it.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, it.ProductID)
			}
			products[it.ProductID] = product
		}
		unit := it.Unit
		if unit == "" {
			unit = product.Unit()
		}
		res, err := units.CalculatePriceWithUnitConversion(it.Quantity, unit, product.UnitPrice(), product.Unit())
		if err != nil {
			return nil, err
		}
		lineTotal := res.TotalPrice.Round(2)
		lines = append(lines, pricedLine{
			product: product,
			item: entity.BillItem{
				ProductID:       product.ID,
				ProductName:     product.Name,
				Quantity:        it.Quantity,
				Unit:            unit,
				DisplayQuantity: res.DisplayQuantity,
				UnitPrice:       res.TotalPrice.Div(it.Quantity).Round(2),
				Total:           lineTotal,
			},
		})
	}
	return lines, nil
}

// computeTotals subtotal, descuento sobre subtotal, impuesto sobre (subtotal - descuento) y total, a 2 decimales.
func computeTotals(lines []pricedLine, discountPct, taxPct decimal.Decimal) (subtotal, discount, tax, total decimal.Decimal) {
	for _, l := range lines {
		subtotal = subtotal.Add(l.item.Total)
	}
	discount = subtotal.Mul(discountPct).Div(hundred).Round(2)
	tax = subtotal.Sub(discount).Mul(taxPct).Div(hundred).Round(2)
	total = subtotal.Sub(discount).Add(tax)
	return subtotal, discount, tax, total
}

// resolveCustomer busca el cliente por ID o por nombre; en ventas a crédito lo crea si no existe.
// Retorna nil para ventas de contado a un nombre sin registro.
func resolveCustomer(ctx context.Context, tx repository.TxRepos, in dto.CreateBillRequest, now time.Time) (*entity.Customer, error) {
	if in.CustomerID != "" {
		c, err := tx.Customers.GetByID(ctx, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
		}
		return c, nil
	}
	name := strings.TrimSpace(in.CustomerName)
	c, err := tx.Customers.GetByName(ctx, name)
	if err != nil || c != nil {
		return c, err
	}
	if !entity.IsCreditPayment(in.PaymentMethod) {
		return nil, nil
	}
	c = &entity.Customer{
		ID:         uuid.New().String(),
		Name:       name,
		BalanceDue: decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := tx.Customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ToBillResponse mapea entidad a DTO.
func ToBillResponse(b *entity.Bill) dto.BillResponse {
	items := make([]dto.BillItemResponse, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, dto.BillItemResponse{
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			Quantity:        it.Quantity,
			Unit:            it.Unit,
			DisplayQuantity: it.DisplayQuantity,
			UnitPrice:       it.UnitPrice,
			Total:           it.Total,
		})
	}
	return dto.BillResponse{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		CustomerName:  b.CustomerName,
		PaymentMethod: b.PaymentMethod,
		Status:        b.Status,
		Subtotal:      b.Subtotal,
		DiscountPct:   b.DiscountPct,
		Discount:      b.Discount,
		TaxPct:        b.TaxPct,
		Tax:           b.Tax,
		Total:         b.Total,
		Items:         items,
		CreatedAt:     b.CreatedAt,
	}
}
