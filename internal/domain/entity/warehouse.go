package entity

import "time"

// Tipos de bodega. El tipo restringe qué clases de movimiento pueden usarla
// como origen o destino (ver paquete rules).
const (
	WarehouseTypeEditorial  = "editorial"   // planta/fondo editorial
	WarehouseTypePuntoVenta = "punto_venta" // librería o punto de venta
	WarehouseTypeGeneral    = "general"     // almacenamiento general
)

// Estados de una bodega. Una bodega inactiva no participa en movimientos.
const (
	WarehouseStatusActiva   = "activa"
	WarehouseStatusInactiva = "inactiva"
)

// Warehouse representa una bodega de la editorial. El tipo es inmutable
// durante la vida de las operaciones del libro de inventario; la gestión
// (crear/editar) es un flujo administrativo aparte.
type Warehouse struct {
	ID        string
	Name      string
	Type      string
	Status    string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si la bodega puede participar en movimientos.
func (w *Warehouse) IsActive() bool {
	return w.Status == WarehouseStatusActiva
}

// ValidWarehouseType valida el tipo al crear/editar bodegas.
func ValidWarehouseType(t string) bool {
	switch t {
	case WarehouseTypeEditorial, WarehouseTypePuntoVenta, WarehouseTypeGeneral:
		return true
	}
	return false
}
