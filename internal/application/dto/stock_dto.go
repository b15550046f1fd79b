package dto

import "time"

// StockEntryResponse existencia de un libro físico en una bodega.
type StockEntryResponse struct {
	WarehouseID string    `json:"warehouse_id"`
	ItemID      string    `json:"item_id"`
	Quantity    int64     `json:"quantity"`
	MinStock    *int64    `json:"min_stock,omitempty"`
	MaxStock    *int64    `json:"max_stock,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemStockResponse stock de un ítem (físico o paquete derivado) en una bodega.
type ItemStockResponse struct {
	ItemID      string `json:"item_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int64  `json:"quantity"`
	Derived     bool   `json:"derived"` // true si es un paquete (mínimo de componentes)
}
