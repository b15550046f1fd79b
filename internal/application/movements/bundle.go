package movements

import (
	"fmt"

	"github.com/editorialarcadia/almacen-api/internal/domain"
	"github.com/editorialarcadia/almacen-api/internal/domain/entity"
	"github.com/editorialarcadia/almacen-api/internal/domain/repository"
)

// ExpandedLine es una línea ya resuelta a libro físico. Las líneas de paquete
// se expanden a una línea por componente con la misma cantidad: una unidad de
// paquete es una unidad de cada componente.
type ExpandedLine struct {
	ItemID   string
	Quantity int64
}

// Resolver resuelve ítems del catálogo (libro físico o paquete) y deriva el
// stock de los paquetes. La misma expansión alimenta la verificación de
// disponibilidad y la aplicación, para que nunca diverjan.
type Resolver struct {
	itemRepo  repository.ItemRepository
	stockRepo repository.StockRepository
}

// NewResolver construye el resolver con los repositorios de lectura.
func NewResolver(itemRepo repository.ItemRepository, stockRepo repository.StockRepository) *Resolver {
	return &Resolver{itemRepo: itemRepo, stockRepo: stockRepo}
}

// Resolve obtiene el ítem del catálogo o domain.ErrItemNotFound.
func (r *Resolver) Resolve(itemID string) (*entity.Item, error) {
	item, err := r.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	return item, nil
}

// Expand expande las líneas del movimiento a líneas de libro físico. Una línea
// física pasa sin cambios; una línea de paquete produce una línea por
// componente con la cantidad original. Nunca devuelve el ID del paquete.
func (r *Resolver) Expand(lines []entity.MovementLine) ([]ExpandedLine, error) {
	expanded := make([]ExpandedLine, 0, len(lines))
	for _, line := range lines {
		item, err := r.Resolve(line.ItemID)
		if err != nil {
			return nil, err
		}
		comps := item.Components()
		if comps == nil {
			expanded = append(expanded, ExpandedLine{ItemID: item.ID, Quantity: line.Quantity})
			continue
		}
		if len(comps) == 0 {
			return nil, fmt.Errorf("paquete %s sin componentes: %w", item.ID, domain.ErrInvalidInput)
		}
		for _, compID := range comps {
			expanded = append(expanded, ExpandedLine{ItemID: compID, Quantity: line.Quantity})
		}
	}
	return expanded, nil
}

// CurrentStock devuelve el stock actual de un ítem en una bodega. Para un
// libro físico es la cantidad de la fila (0 si no existe); para un paquete,
// el mínimo sobre sus componentes. Es un valor derivado de solo lectura:
// nunca se materializa como fila de stock.
func (r *Resolver) CurrentStock(itemID, warehouseID string) (int64, error) {
	item, err := r.Resolve(itemID)
	if err != nil {
		return 0, err
	}
	comps := item.Components()
	if comps == nil {
		entry, err := r.stockRepo.Get(warehouseID, item.ID)
		if err != nil {
			return 0, err
		}
		return entry.Quantity, nil
	}
	var min int64
	for i, compID := range comps {
		entry, err := r.stockRepo.Get(warehouseID, compID)
		if err != nil {
			return 0, err
		}
		if i == 0 || entry.Quantity < min {
			min = entry.Quantity
		}
	}
	return min, nil
}
