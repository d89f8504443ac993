package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// Errores del motor de unidades.
	ErrUnitMismatch     = errors.New("unidades incompatibles")
	ErrUnrecognizedUnit = errors.New("unidad no reconocida")
	ErrInvalidQuantity  = errors.New("cantidad inválida")
)
