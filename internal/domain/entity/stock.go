package entity

import "time"

// StockEntry representa la existencia actual de un libro físico en una bodega.
// La fila se crea de forma perezosa la primera vez que la bodega recibe el
// ítem; la ausencia de fila se lee como cantidad 0. Invariante: Quantity >= 0.
type StockEntry struct {
	WarehouseID string
	ItemID      string
	Quantity    int64
	MinStock    *int64 // umbral informativo, no se aplica como restricción dura
	MaxStock    *int64
	UpdatedAt   time.Time
}
