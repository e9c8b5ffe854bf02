package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrForbidden    = errors.New("acceso denegado")
	ErrArchived     = errors.New("la orden está archivada")

	// Flujo de compras.
	ErrInvalidTransition      = errors.New("transición de estado no permitida")
	ErrOverReceipt            = errors.New("cantidades fuera del invariante de recepción")
	ErrInsufficientCredit     = errors.New("crédito insuficiente del proveedor")
	ErrConcurrentModification = errors.New("la orden fue modificada por otra operación")

	// ErrFieldNotEditable se usa cuando el payload trae un campo que la etapa destino no admite.
	ErrFieldNotEditable = fmt.Errorf("%w: campo no editable en esta etapa", ErrInvalidInput)
)
