package repository

import "github.com/editorialarcadia/almacen-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para bodegas (DIP).
// El motor de movimientos solo lee; la gestión es un flujo administrativo.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	List(limit, offset int) ([]*entity.Warehouse, error)
}
