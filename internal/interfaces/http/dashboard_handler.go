package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/usecase"
)

// DashboardHandler maneja los endpoints del Dashboard.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen de la tienda.
// GET /api/dashboard
//
// Respuesta: DashboardSummaryDTO (conteos, ventas del día y del mes, saldo por cobrar,
// stock bajo, próximos a vencer y actividad reciente).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), time.Now())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
