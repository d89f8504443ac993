package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// RegisterMovementUseCase registra movimientos de inventario de forma transaccional
// (IN, OUT, ADJUSTMENT) con bloqueo de fila y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository
	stock    *StockUseCase
	log      *logger.Logger
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	movRepo repository.StockMovementRepository,
	stock *StockUseCase,
	log *logger.Logger,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner: txRunner,
		movRepo:  movRepo,
		stock:    stock,
		log:      log,
	}
}

// RegisterMovement valida la entrada y aplica el movimiento en una sola transacción.
// ADJUSTMENT positivo se comporta como IN (costo opcional) y negativo como OUT.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.StockMovementResponse, error) {
	if in.ProductID == "" || in.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.MovementTypeIN:
		if in.UnitCost == nil || in.UnitCost.IsNegative() || in.Quantity.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovementTypeOUT:
		if in.Quantity.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovementTypeADJUSTMENT:
	default:
		return nil, domain.ErrInvalidInput
	}
	if err := uc.stock.ValidateUnit(in.Unit); err != nil {
		return nil, err
	}

	change := StockChange{
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		Unit:          in.Unit,
		UnitCost:      in.UnitCost,
		MovementType:  in.Type,
		TransactionID: uuid.New().String(),
		Reference:     in.Reference,
		UserID:        userID,
		Now:           time.Now(),
	}

	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		var err error
		switch {
		case in.Type == entity.MovementTypeOUT:
			mov, err = uc.stock.DeductInTx(ctx, tx, change)
		case in.Type == entity.MovementTypeADJUSTMENT && in.Quantity.IsNegative():
			change.Quantity = in.Quantity.Neg()
			mov, err = uc.stock.DeductInTx(ctx, tx, change)
		default:
			mov, err = uc.stock.AddInTx(ctx, tx, change)
		}
		if err != nil {
			return err
		}
		if in.Type != entity.MovementTypeADJUSTMENT {
			return nil
		}
		return tx.Activities.Create(ctx, &entity.Activity{
			ID:        uuid.New().String(),
			Type:      entity.ActivityStockAdjusted,
			Message:   fmt.Sprintf("Ajuste de stock %s %s (producto %s)", in.Quantity.String(), mov.Unit, in.ProductID),
			CreatedAt: change.Now,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("transaction_id", mov.TransactionID).
		Str("product_id", mov.ProductID).
		Str("type", mov.Type).
		Str("quantity", mov.Quantity.String()).
		Str("unit", mov.Unit).
		Str("stock_after", mov.StockAfter.String()).
		Msg("movimiento de inventario registrado")
	out := ToMovementResponse(mov)
	return &out, nil
}

// ListMovements historial de movimientos de un producto, más recientes primero.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, productID string, page dto.PageRequest) ([]dto.StockMovementResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.movRepo.ListByProduct(ctx, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return out, nil
}

// ToMovementResponse mapea entidad a DTO.
func ToMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:              m.ID,
		TransactionID:   m.TransactionID,
		ProductID:       m.ProductID,
		Type:            m.Type,
		Quantity:        m.Quantity,
		Unit:            m.Unit,
		ProductQuantity: m.ProductQuantity,
		UnitCost:        m.UnitCost,
		StockAfter:      m.StockAfter,
		Reference:       m.Reference,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
	}
}
