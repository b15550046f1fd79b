// Package memory implementa los puertos de persistencia sobre un almacén en
// proceso. Se usa en los tests y en modo desarrollo (APP_STORE=memory); la
// semántica transaccional (bloqueo + snapshot/rollback) replica la del
// adaptador PostgreSQL.
package memory

import (
	"sync"

	"github.com/editorialarcadia/almacen-api/internal/domain/entity"
)

type stockKey struct {
	warehouseID string
	itemID      string
}

// Store estado compartido: bodegas, catálogo, stock, movimientos y contador.
// Un mutex global serializa las transacciones; los repos fuera de transacción
// toman el mismo mutex por operación.
type Store struct {
	mu          sync.Mutex
	warehouses  map[string]*entity.Warehouse
	items       map[string]*entity.Item
	stock       map[stockKey]*entity.StockEntry
	movements   []*entity.Movement
	movByID     map[string]*entity.Movement
	consecutive int64
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		warehouses: make(map[string]*entity.Warehouse),
		items:      make(map[string]*entity.Item),
		stock:      make(map[stockKey]*entity.StockEntry),
		movByID:    make(map[string]*entity.Movement),
	}
}

// SeedItems carga ítems de catálogo (colaborador externo en producción).
func (s *Store) SeedItems(items ...*entity.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range items {
		cp := *it
		s.items[it.ID] = &cp
	}
}

// do ejecuta fn bajo el mutex del store, salvo que el caller ya lo tenga
// (repos atados a una transacción).
func (s *Store) do(inTx bool, fn func()) {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	fn()
}

// snapshot copia el estado mutable por transacciones para poder restaurarlo
// en un rollback. Bodegas y catálogo no se mutan dentro de transacciones.
type snapshot struct {
	stock       map[stockKey]*entity.StockEntry
	movements   []*entity.Movement
	consecutive int64
}

func (s *Store) takeSnapshot() snapshot {
	stock := make(map[stockKey]*entity.StockEntry, len(s.stock))
	for k, v := range s.stock {
		cp := *v
		stock[k] = &cp
	}
	movements := make([]*entity.Movement, len(s.movements))
	copy(movements, s.movements)
	return snapshot{stock: stock, movements: movements, consecutive: s.consecutive}
}

func (s *Store) restore(sn snapshot) {
	s.stock = sn.stock
	s.movements = sn.movements
	s.consecutive = sn.consecutive
	s.movByID = make(map[string]*entity.Movement, len(sn.movements))
	for _, m := range sn.movements {
		s.movByID[m.ID] = m
	}
}
