package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// CustomerUseCase casos de uso para clientes y sus abonos.
type CustomerUseCase struct {
	txRunner BillingTxRunner
	repo     repository.CustomerRepository
	log      *logger.Logger
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(txRunner BillingTxRunner, repo repository.CustomerRepository, log *logger.Logger) *CustomerUseCase {
	return &CustomerUseCase{txRunner: txRunner, repo: repo, log: log}
}

// Create crea un nuevo cliente. ErrDuplicate si ya existe otro con el mismo nombre.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:         uuid.New().String(),
		Name:       name,
		Phone:      in.Phone,
		Email:      in.Email,
		Address:    in.Address,
		BalanceDue: decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	out := ToCustomerResponse(customer)
	return &out, nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	out := ToCustomerResponse(c)
	return &out, nil
}

// List lista clientes ordenados por nombre.
func (uc *CustomerUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.CustomerResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ToCustomerResponse(c))
	}
	return out, nil
}

// RecordPayment registra un abono: reduce BalanceDue sin bajar de cero.
func (uc *CustomerUseCase) RecordPayment(ctx context.Context, id string, amount decimal.Decimal) (*dto.CustomerResponse, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	var customer *entity.Customer
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		var err error
		customer, err = tx.Customers.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}
		balance := customer.BalanceDue.Sub(amount)
		if balance.IsNegative() {
			balance = decimal.Zero
		}
		if err := tx.Customers.UpdateBalance(ctx, id, balance); err != nil {
			return err
		}
		customer.BalanceDue = balance
		return tx.Activities.Create(ctx, &entity.Activity{
			ID:        uuid.New().String(),
			Type:      entity.ActivityPaymentReceived,
			Message:   fmt.Sprintf("Abono de %s por %s", customer.Name, amount.StringFixed(2)),
			CreatedAt: time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("customer_id", id).Str("amount", amount.StringFixed(2)).Str("balance_due", customer.BalanceDue.StringFixed(2)).Msg("abono registrado")
	out := ToCustomerResponse(customer)
	return &out, nil
}

// ToCustomerResponse mapea entidad a DTO.
func ToCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:         c.ID,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		Address:    c.Address,
		BalanceDue: c.BalanceDue,
		CreatedAt:  c.CreatedAt,
	}
}
