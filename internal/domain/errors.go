package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrConcurrentModification = errors.New("los lotes cambiaron entre planificación y commit")
	ErrAlreadyVoided          = errors.New("la venta ya está anulada")
	ErrInvariantViolation     = errors.New("el stock no concilia con los lotes")
	ErrProductoConStock       = errors.New("el producto aún tiene stock disponible")
)

// InsufficientStockError reporta el total disponible para que el caller pueda
// mostrar un mensaje útil. errors.Is(err, ErrInsufficientStock) == true.
type InsufficientStockError struct {
	ProductoID string
	Solicitado int64
	Disponible int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente en los lotes del producto %s: solicitado %d, disponible %d",
		e.ProductoID, e.Solicitado, e.Disponible)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InvariantViolationError detalla una discrepancia stock vs suma de lotes.
// Nunca debe ocurrir en código correcto; se verifica y se reporta en voz alta
// en lugar de aceptarse en silencio.
type InvariantViolationError struct {
	ProductoID string
	Stock      int64
	SumaLotes  int64
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariante violada en producto %s: stock=%d, suma de lotes=%d",
		e.ProductoID, e.Stock, e.SumaLotes)
}

func (e *InvariantViolationError) Unwrap() error { return ErrInvariantViolation }
