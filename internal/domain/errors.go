package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Los errores con detalle
// (RuleViolationError, InsufficientStockError) envuelven estos centinelas
// para que el caller pueda clasificar con errors.Is y además mostrar la causa.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrWarehouseNotFound = errors.New("bodega no encontrada")
	ErrItemNotFound      = errors.New("ítem no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrRuleViolation     = errors.New("movimiento no permitido")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrFinancialBridge   = errors.New("fallo al crear el registro financiero")
	ErrConflict          = errors.New("conflicto de concurrencia")
	ErrPersistence       = errors.New("fallo de persistencia")
)

// RuleViolationError detalla por qué el motor de reglas rechazó un movimiento:
// clase desconocida, extremo faltante o tipo de bodega no permitido.
type RuleViolationError struct {
	Kind   string // clase de movimiento
	Reason string // motivo legible (español)
}

func (e *RuleViolationError) Error() string {
	return fmt.Sprintf("movimiento %s no permitido: %s", e.Kind, e.Reason)
}

func (e *RuleViolationError) Unwrap() error { return ErrRuleViolation }

// InsufficientStockError identifica la línea que no pasó la verificación de
// disponibilidad. Para paquetes, ItemID es el componente que falló.
type InsufficientStockError struct {
	ItemID      string
	WarehouseID string
	Requested   int64
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente de %s en bodega %s: solicitado %d, disponible %d",
		e.ItemID, e.WarehouseID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ValidationError señala un campo de entrada inválido antes de cualquier I/O.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
