package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
)

// UnitsHandler expone el motor de conversión de unidades.
type UnitsHandler struct {
	uc *usecase.UnitsUseCase
}

// NewUnitsHandler construye el handler.
func NewUnitsHandler(uc *usecase.UnitsUseCase) *UnitsHandler {
	return &UnitsHandler{uc: uc}
}

// List godoc
// @Summary      Listar unidades reconocidas
// @Tags         units
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  units.Unit
// @Router       /api/units [get]
func (h *UnitsHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.ListUnits())
}

// Convert godoc
// @Summary      Convertir cantidad entre unidades de la misma familia
// @Tags         units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConvertRequest  true  "quantity, from, to"
// @Success      200   {object}  dto.ConvertResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/units/convert [post]
func (h *UnitsHandler) Convert(c *fiber.Ctx) error {
	var in dto.ConvertRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Convert(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Quote godoc
// @Summary      Precio y disponibilidad de un producto en la unidad pedida
// @Tags         units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QuoteRequest  true  "product_id, quantity, unit"
// @Success      200   {object}  dto.QuoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/units/quote [post]
func (h *UnitsHandler) Quote(c *fiber.Ctx) error {
	var in dto.QuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Quote(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
