package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/editorialarcadia/almacen-api/internal/domain/entity"
	"github.com/editorialarcadia/almacen-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con
// pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la existencia actual de un libro en una bodega; si no hay fila,
// devuelve una con cantidad 0.
func (r *StockRepo) Get(warehouseID, itemID string) (*entity.StockEntry, error) {
	query := `
		SELECT bodega_id, item_id, cantidad, min_stock, max_stock, updated_at
		FROM stock WHERE bodega_id = $1 AND item_id = $2`
	var s entity.StockEntry
	err := r.q.QueryRow(context.Background(), query, warehouseID, itemID).Scan(
		&s.WarehouseID, &s.ItemID, &s.Quantity, &s.MinStock, &s.MaxStock, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockEntry{WarehouseID: warehouseID, ItemID: itemID}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate materializa la fila si no existe (cantidad 0) y la bloquea
// (SELECT FOR UPDATE). Bloquear siempre una fila real evita la carrera de dos
// transacciones que no encuentran nada que bloquear y se pisan el upsert; la
// fila a cero de una transacción fallida se revierte con el rollback.
func (r *StockRepo) GetForUpdate(warehouseID, itemID string) (*entity.StockEntry, error) {
	ensure := `
		INSERT INTO stock (bodega_id, item_id, cantidad, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (bodega_id, item_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), ensure, warehouseID, itemID); err != nil {
		return nil, fmt.Errorf("ensure stock row: %w", err)
	}
	query := `
		SELECT bodega_id, item_id, cantidad, min_stock, max_stock, updated_at
		FROM stock WHERE bodega_id = $1 AND item_id = $2
		FOR UPDATE`
	var s entity.StockEntry
	err := r.q.QueryRow(context.Background(), query, warehouseID, itemID).Scan(
		&s.WarehouseID, &s.ItemID, &s.Quantity, &s.MinStock, &s.MaxStock, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad (por bodega e ítem).
func (r *StockRepo) Upsert(entry *entity.StockEntry) error {
	query := `
		INSERT INTO stock (bodega_id, item_id, cantidad, min_stock, max_stock, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (bodega_id, item_id)
		DO UPDATE SET cantidad = EXCLUDED.cantidad, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		entry.WarehouseID, entry.ItemID, entry.Quantity, entry.MinStock, entry.MaxStock,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByWarehouse lista las existencias de una bodega.
func (r *StockRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockEntry, error) {
	query := `
		SELECT bodega_id, item_id, cantidad, min_stock, max_stock, updated_at
		FROM stock WHERE bodega_id = $1
		ORDER BY item_id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockEntry
	for rows.Next() {
		var s entity.StockEntry
		if err := rows.Scan(&s.WarehouseID, &s.ItemID, &s.Quantity, &s.MinStock, &s.MaxStock, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
