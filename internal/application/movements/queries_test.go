package movements_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/editorialarcadia/almacen-api/internal/application/movements"
	"github.com/editorialarcadia/almacen-api/internal/domain"
	"github.com/editorialarcadia/almacen-api/internal/domain/entity"
	"github.com/editorialarcadia/almacen-api/internal/domain/repository"
	"github.com/editorialarcadia/almacen-api/internal/infrastructure/memory"
)

// queryEnv env de creación más el caso de uso de consultas sobre el mismo store.
type queryEnv struct {
	*env
	queries *movements.QueryUseCase
}

func newQueryEnv(t *testing.T) *queryEnv {
	t.Helper()
	e := newEnv(t)
	itemRepo := memory.NewItemRepository(e.store)
	resolver := movements.NewResolver(itemRepo, e.stockRepo)
	return &queryEnv{
		env:     e,
		queries: movements.NewQueryUseCase(e.movRepo, e.stockRepo, e.whRepo, resolver),
	}
}

func (e *queryEnv) ingreso(t *testing.T, warehouseID, itemID string, qty int) {
	t.Helper()
	_, err := e.uc.Execute(context.Background(), movements.CreateMovementInput{
		Kind:          entity.MovementKindIngreso,
		ToWarehouseID: warehouseID,
		Lines:         lines(itemID, qty),
		CreatedBy:     "usuario-1",
	})
	require.NoError(t, err)
}

// Clase desconocida en el filtro → entrada inválida, sin tocar el repositorio.
func TestListMovements_ClaseDesconocida(t *testing.T) {
	e := newQueryEnv(t)
	_, err := e.queries.ListMovements(repository.MovementFilter{Kind: "TRASLADO"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El filtro por bodega incluye movimientos donde es origen o destino.
func TestListMovements_FiltraPorBodega(t *testing.T) {
	e := newQueryEnv(t)
	e.addWarehouse(t, "editorial-1", entity.WarehouseTypeEditorial)
	e.addWarehouse(t, "pv-1", entity.WarehouseTypePuntoVenta)
	e.store.SeedItems(&entity.Item{ID: "libro-x"})
	e.ingreso(t, "editorial-1", "libro-x", 10)

	_, err := e.uc.Execute(context.Background(), movements.CreateMovementInput{
		Kind:            entity.MovementKindRemision,
		FromWarehouseID: "editorial-1",
		ToWarehouseID:   "pv-1",
		Lines:           lines("libro-x", 4),
		CreatedBy:       "usuario-1",
	})
	require.NoError(t, err)

	list, err := e.queries.ListMovements(repository.MovementFilter{WarehouseID: "pv-1"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.MovementKindRemision, list[0].Kind)

	list, err = e.queries.ListMovements(repository.MovementFilter{WarehouseID: "editorial-1"})
	require.NoError(t, err)
	assert.Len(t, list, 2, "la editorial participa como destino del ingreso y origen de la remisión")
}

// GetMovement con ID inexistente → ErrNotFound.
func TestGetMovement_NoExiste(t *testing.T) {
	e := newQueryEnv(t)
	_, err := e.queries.GetMovement("mov-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// WarehouseStock de una bodega inexistente → ErrWarehouseNotFound.
func TestWarehouseStock_BodegaNoExiste(t *testing.T) {
	e := newQueryEnv(t)
	_, err := e.queries.WarehouseStock("bodega-fantasma", 20, 0)
	assert.ErrorIs(t, err, domain.ErrWarehouseNotFound)
}

// ItemStockDetail: un libro físico reporta la fila sin marca de derivación; un
// paquete reporta el mínimo de sus componentes con derived=true.
func TestItemStockDetail_FisicoYPaquete(t *testing.T) {
	e := newQueryEnv(t)
	e.addWarehouse(t, "editorial-1", entity.WarehouseTypeEditorial)
	e.store.SeedItems(
		&entity.Item{ID: "libro-x"},
		&entity.Item{ID: "libro-y"},
		&entity.Item{ID: "paquete-1", IsBundle: true, ComponentIDs: []string{"libro-x", "libro-y"}},
	)
	e.ingreso(t, "editorial-1", "libro-x", 7)
	e.ingreso(t, "editorial-1", "libro-y", 3)

	qty, derived, err := e.queries.ItemStockDetail("libro-x", "editorial-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), qty)
	assert.False(t, derived)

	qty, derived, err = e.queries.ItemStockDetail("paquete-1", "editorial-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), qty)
	assert.True(t, derived)
}
