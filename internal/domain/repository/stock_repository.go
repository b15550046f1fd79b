package repository

import "github.com/editorialarcadia/almacen-api/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar existencias por
// (bodega, libro físico). Es el único componente autorizado a mutar filas de
// stock; las mutaciones ocurren siempre dentro de una transacción (TxRunner).
type StockRepository interface {
	// Get devuelve la fila de stock; si no existe, una fila con cantidad 0.
	Get(warehouseID, itemID string) (*entity.StockEntry, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE) de modo que
	// la verificación de disponibilidad y la aplicación vean el mismo snapshot.
	GetForUpdate(warehouseID, itemID string) (*entity.StockEntry, error)
	// Upsert inserta o actualiza la cantidad. La fila se crea perezosamente la
	// primera vez que la bodega recibe el ítem.
	Upsert(entry *entity.StockEntry) error
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockEntry, error)
}
