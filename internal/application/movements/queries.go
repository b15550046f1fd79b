package movements

import (
	"fmt"

	"github.com/editorialarcadia/almacen-api/internal/domain"
	"github.com/editorialarcadia/almacen-api/internal/domain/entity"
	"github.com/editorialarcadia/almacen-api/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura: listado de movimientos y existencias
// (incluido el stock derivado de paquetes).
type QueryUseCase struct {
	movRepo       repository.MovementRepository
	stockRepo     repository.StockRepository
	warehouseRepo repository.WarehouseRepository
	resolver      *Resolver
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	warehouseRepo repository.WarehouseRepository,
	resolver *Resolver,
) *QueryUseCase {
	return &QueryUseCase{
		movRepo:       movRepo,
		stockRepo:     stockRepo,
		warehouseRepo: warehouseRepo,
		resolver:      resolver,
	}
}

// ListMovements lista movimientos del más reciente al más antiguo, filtrados
// por clase y/o bodega (origen o destino).
func (uc *QueryUseCase) ListMovements(filter repository.MovementFilter) ([]*entity.Movement, error) {
	if filter.Kind != "" && !entity.ValidMovementKind(filter.Kind) {
		return nil, &domain.ValidationError{Field: "kind", Reason: "clase de movimiento desconocida"}
	}
	return uc.movRepo.List(filter)
}

// GetMovement obtiene un movimiento por ID.
func (uc *QueryUseCase) GetMovement(id string) (*entity.Movement, error) {
	mov, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, id)
	}
	return mov, nil
}

// WarehouseStock lista las existencias de una bodega.
func (uc *QueryUseCase) WarehouseStock(warehouseID string, limit, offset int) ([]*entity.StockEntry, error) {
	wh, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrWarehouseNotFound, warehouseID)
	}
	return uc.stockRepo.ListByWarehouse(warehouseID, limit, offset)
}

// ItemStock devuelve el stock de un ítem en una bodega; para paquetes es el
// mínimo derivado sobre sus componentes.
func (uc *QueryUseCase) ItemStock(itemID, warehouseID string) (int64, error) {
	qty, _, err := uc.ItemStockDetail(itemID, warehouseID)
	return qty, err
}

// ItemStockDetail es ItemStock más la marca de derivación: derived indica que
// el ítem es un paquete y la cantidad es el mínimo sobre sus componentes.
func (uc *QueryUseCase) ItemStockDetail(itemID, warehouseID string) (quantity int64, derived bool, err error) {
	wh, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return 0, false, err
	}
	if wh == nil {
		return 0, false, fmt.Errorf("%w: %s", domain.ErrWarehouseNotFound, warehouseID)
	}
	item, err := uc.resolver.Resolve(itemID)
	if err != nil {
		return 0, false, err
	}
	qty, err := uc.resolver.CurrentStock(itemID, warehouseID)
	if err != nil {
		return 0, false, err
	}
	return qty, item.IsBundle, nil
}
