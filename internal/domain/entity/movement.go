package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clases de movimiento de inventario de la editorial.
const (
	MovementKindIngreso     = "INGRESO"     // entrada de mercancía a bodega
	MovementKindRemision    = "REMISION"    // envío de bodega a punto de venta
	MovementKindDevolucion  = "DEVOLUCION"  // retorno desde punto de venta
	MovementKindLiquidacion = "LIQUIDACION" // baja/salida definitiva
)

// Subclases de movimiento.
const (
	MovementSubKindCompra = "COMPRA" // ingreso por compra: genera registro financiero
)

// MovementLine es una línea del movimiento. ItemID puede referir a un paquete;
// en ese caso el libro de stock solo registra los componentes expandidos.
type MovementLine struct {
	ItemID   string
	Quantity int64 // > 0
}

// Movement es el registro de auditoría inmutable de un movimiento de stock.
// Una vez aplicados los efectos sobre el inventario no se modifica ni se
// elimina; la única corrección posible es un movimiento compensatorio.
type Movement struct {
	ID                 string
	Consecutive        int64 // asignado por la capa de persistencia, único y creciente
	Kind               string
	SubKind            string
	Date               time.Time
	FromWarehouseID    string
	ToWarehouseID      string
	Lines              []MovementLine
	FinancialReference string          // ID opaco del registro financiero externo
	InvoiceRef         string          // referencia de factura del proveedor
	TotalAmount        decimal.Decimal // valor declarado (ingresos por compra)
	Observations       string
	CreatedBy          string
	CreatedAt          time.Time
}

// ValidMovementKind valida la clase de movimiento.
func ValidMovementKind(k string) bool {
	switch k {
	case MovementKindIngreso, MovementKindRemision, MovementKindDevolucion, MovementKindLiquidacion:
		return true
	}
	return false
}
