package memory

import (
	"sort"
	"strings"

	"github.com/editorialarcadia/almacen-api/internal/domain/entity"
	"github.com/editorialarcadia/almacen-api/internal/domain/repository"
)

var (
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.ItemRepository      = (*ItemRepo)(nil)
	_ repository.StockRepository     = (*StockRepo)(nil)
	_ repository.MovementRepository  = (*MovementRepo)(nil)
)

// WarehouseRepo bodegas en memoria.
type WarehouseRepo struct {
	s    *Store
	inTx bool
}

// NewWarehouseRepository construye el adaptador sobre el store.
func NewWarehouseRepository(s *Store) *WarehouseRepo {
	return &WarehouseRepo{s: s}
}

func (r *WarehouseRepo) Create(warehouse *entity.Warehouse) error {
	r.s.do(r.inTx, func() {
		cp := *warehouse
		r.s.warehouses[warehouse.ID] = &cp
	})
	return nil
}

func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	r.s.do(r.inTx, func() {
		if w, ok := r.s.warehouses[id]; ok {
			cp := *w
			out = &cp
		}
	})
	return out, nil
}

func (r *WarehouseRepo) Update(warehouse *entity.Warehouse) error {
	r.s.do(r.inTx, func() {
		cp := *warehouse
		r.s.warehouses[warehouse.ID] = &cp
	})
	return nil
}

func (r *WarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	r.s.do(r.inTx, func() {
		all := make([]*entity.Warehouse, 0, len(r.s.warehouses))
		for _, w := range r.s.warehouses {
			cp := *w
			all = append(all, &cp)
		}
		sort.Slice(all, func(i, j int) bool { return strings.Compare(all[i].Name, all[j].Name) < 0 })
		out = page(all, limit, offset)
	})
	return out, nil
}

// ItemRepo catálogo en memoria (solo lectura; se alimenta con SeedItems).
type ItemRepo struct {
	s    *Store
	inTx bool
}

// NewItemRepository construye el adaptador sobre el store.
func NewItemRepository(s *Store) *ItemRepo {
	return &ItemRepo{s: s}
}

func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	var out *entity.Item
	r.s.do(r.inTx, func() {
		if it, ok := r.s.items[id]; ok {
			cp := *it
			out = &cp
		}
	})
	return out, nil
}

func (r *ItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	var out []*entity.Item
	r.s.do(r.inTx, func() {
		all := make([]*entity.Item, 0, len(r.s.items))
		for _, it := range r.s.items {
			cp := *it
			all = append(all, &cp)
		}
		sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
		out = page(all, limit, offset)
	})
	return out, nil
}

// StockRepo existencias en memoria. El mutex global del store hace que
// GetForUpdate equivalga a Get: la transacción entera corre serializada.
type StockRepo struct {
	s    *Store
	inTx bool
}

// NewStockRepository construye el adaptador sobre el store.
func NewStockRepository(s *Store) *StockRepo {
	return &StockRepo{s: s}
}

func (r *StockRepo) Get(warehouseID, itemID string) (*entity.StockEntry, error) {
	var out *entity.StockEntry
	r.s.do(r.inTx, func() {
		out = r.get(warehouseID, itemID)
	})
	return out, nil
}

func (r *StockRepo) GetForUpdate(warehouseID, itemID string) (*entity.StockEntry, error) {
	return r.Get(warehouseID, itemID)
}

func (r *StockRepo) get(warehouseID, itemID string) *entity.StockEntry {
	if e, ok := r.s.stock[stockKey{warehouseID, itemID}]; ok {
		cp := *e
		return &cp
	}
	return &entity.StockEntry{WarehouseID: warehouseID, ItemID: itemID}
}

func (r *StockRepo) Upsert(entry *entity.StockEntry) error {
	r.s.do(r.inTx, func() {
		cp := *entry
		r.s.stock[stockKey{entry.WarehouseID, entry.ItemID}] = &cp
	})
	return nil
}

func (r *StockRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockEntry, error) {
	var out []*entity.StockEntry
	r.s.do(r.inTx, func() {
		all := make([]*entity.StockEntry, 0)
		for k, e := range r.s.stock {
			if k.warehouseID == warehouseID {
				cp := *e
				all = append(all, &cp)
			}
		}
		sort.Slice(all, func(i, j int) bool { return all[i].ItemID < all[j].ItemID })
		out = page(all, limit, offset)
	})
	return out, nil
}

// MovementRepo movimientos en memoria, inserción y lectura únicamente.
type MovementRepo struct {
	s    *Store
	inTx bool
}

// NewMovementRepository construye el adaptador sobre el store.
func NewMovementRepository(s *Store) *MovementRepo {
	return &MovementRepo{s: s}
}

func (r *MovementRepo) Create(movement *entity.Movement) error {
	r.s.do(r.inTx, func() {
		cp := *movement
		cp.Lines = append([]entity.MovementLine(nil), movement.Lines...)
		r.s.movements = append(r.s.movements, &cp)
		r.s.movByID[cp.ID] = &cp
	})
	return nil
}

func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	var out *entity.Movement
	r.s.do(r.inTx, func() {
		if m, ok := r.s.movByID[id]; ok {
			cp := *m
			out = &cp
		}
	})
	return out, nil
}

func (r *MovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	r.s.do(r.inTx, func() {
		all := make([]*entity.Movement, 0, len(r.s.movements))
		for _, m := range r.s.movements {
			if filter.Kind != "" && m.Kind != filter.Kind {
				continue
			}
			if filter.WarehouseID != "" && m.FromWarehouseID != filter.WarehouseID && m.ToWarehouseID != filter.WarehouseID {
				continue
			}
			cp := *m
			all = append(all, &cp)
		}
		// Más recientes primero: el consecutivo crece con cada movimiento.
		sort.Slice(all, func(i, j int) bool { return all[i].Consecutive > all[j].Consecutive })
		out = page(all, filter.Limit, filter.Offset)
	})
	return out, nil
}

func (r *MovementRepo) NextConsecutive() (int64, error) {
	var n int64
	r.s.do(r.inTx, func() {
		r.s.consecutive++
		n = r.s.consecutive
	})
	return n, nil
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}
