package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrMissingPaymentMethod = errors.New("se requiere un método de pago activo")
	ErrInvoiceLocked        = errors.New("una factura pagada no es editable")
	ErrIllegalTransition    = errors.New("transición de estado no permitida")
)
