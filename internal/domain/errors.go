package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// Errores del motor de facturación e impuestos.
var (
	ErrInvalidQuantity   = errors.New("cantidad inválida: debe ser un entero mayor o igual a 1")
	ErrInvalidPrice      = errors.New("precio unitario inválido: no puede ser negativo")
	ErrInvalidTaxType    = errors.New("tipo de impuesto desconocido")
	ErrEmptyInvoice      = errors.New("la factura debe tener al menos una línea")
	ErrInvalidLineItem   = errors.New("línea de factura inválida")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrInvoiceLocked     = errors.New("la factura ya no admite modificaciones en su estado actual")
	ErrAmountOverflow    = errors.New("monto fuera de rango: excede el máximo representable")
)

// LineItemError envuelve la falla de una línea con su posición (base 0).
// errors.Is funciona tanto contra ErrInvalidLineItem como contra la causa.
type LineItemError struct {
	Index int
	Err   error
}

func (e *LineItemError) Error() string {
	return fmt.Sprintf("%s (índice %d): %v", ErrInvalidLineItem.Error(), e.Index, e.Err)
}

func (e *LineItemError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrInvalidLineItem).
func (e *LineItemError) Is(target error) bool { return target == ErrInvalidLineItem }

// TransitionError describe un cambio de estado ilegal (from → to).
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s → %s", ErrInvalidTransition.Error(), e.From, e.To)
}

// Is permite errors.Is(err, ErrInvalidTransition).
func (e *TransitionError) Is(target error) bool { return target == ErrInvalidTransition }
