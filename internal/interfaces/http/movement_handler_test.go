package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/editorialarcadia/almacen-api/internal/application/dto"
	"github.com/editorialarcadia/almacen-api/internal/application/movements"
	"github.com/editorialarcadia/almacen-api/internal/application/usecase"
	"github.com/editorialarcadia/almacen-api/internal/domain/entity"
	"github.com/editorialarcadia/almacen-api/internal/infrastructure/memory"
	apphttp "github.com/editorialarcadia/almacen-api/internal/interfaces/http"
	"github.com/editorialarcadia/almacen-api/pkg/logger"
)

// stubLedger puente financiero de prueba.
type stubLedger struct {
	created int
}

func (s *stubLedger) CreateRecord(ctx context.Context, in movements.FinancialRecordInput) (string, error) {
	s.created++
	return fmt.Sprintf("fin-%04d", s.created), nil
}

func (s *stubLedger) VoidRecord(ctx context.Context, reference string) error { return nil }

// apiEnv aplicación completa sobre el almacén en memoria, con bodegas y
// catálogo sembrados.
type apiEnv struct {
	app         *fiber.App
	store       *memory.Store
	editorialID string
	puntoID     string
	punto2ID    string
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	store.SeedItems(
		&entity.Item{ID: "libro-x", SKU: "LX-001", Title: "Libro X", CreatedAt: now},
		&entity.Item{ID: "libro-y", SKU: "LY-001", Title: "Libro Y", CreatedAt: now},
		&entity.Item{ID: "paquete-1", SKU: "PQ-001", Title: "Paquete X+Y", IsBundle: true, ComponentIDs: []string{"libro-x", "libro-y"}, CreatedAt: now},
	)

	warehouseRepo := memory.NewWarehouseRepository(store)
	itemRepo := memory.NewItemRepository(store)
	stockRepo := memory.NewStockRepository(store)
	movRepo := memory.NewMovementRepository(store)
	txRunner := memory.NewTxRunner(store)

	env := &apiEnv{store: store, editorialID: "bod-editorial", puntoID: "bod-punto-1", punto2ID: "bod-punto-2"}
	for _, w := range []*entity.Warehouse{
		{ID: env.editorialID, Name: "Bodega Editorial", Type: entity.WarehouseTypeEditorial, Status: entity.WarehouseStatusActiva, CreatedAt: now, UpdatedAt: now},
		{ID: env.puntoID, Name: "Librería Centro", Type: entity.WarehouseTypePuntoVenta, Status: entity.WarehouseStatusActiva, CreatedAt: now, UpdatedAt: now},
		{ID: env.punto2ID, Name: "Librería Norte", Type: entity.WarehouseTypePuntoVenta, Status: entity.WarehouseStatusActiva, CreatedAt: now, UpdatedAt: now},
	} {
		require.NoError(t, warehouseRepo.Create(w))
	}

	resolver := movements.NewResolver(itemRepo, stockRepo)
	createUC := movements.NewCreateMovementUseCase(txRunner, warehouseRepo, stockRepo, resolver, &stubLedger{}, logger.Nop())
	queryUC := movements.NewQueryUseCase(movRepo, stockRepo, warehouseRepo, resolver)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		WarehouseUC:    usecase.NewWarehouseUseCase(warehouseRepo),
		ItemUC:         usecase.NewItemUseCase(itemRepo),
		CreateMovement: createUC,
		MovementQuery:  queryUC,
		JWTSecret:      testJWTSecret,
	})
	env.app = app
	return env
}

func (e *apiEnv) request(t *testing.T, method, path string, body any, authed bool) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", testToken(t))
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func ingresoBody(warehouseID, itemID string, qty int64) dto.CreateMovementRequest {
	return dto.CreateMovementRequest{
		Kind:          entity.MovementKindIngreso,
		ToWarehouseID: warehouseID,
		Lines:         []dto.MovementLineRequest{{ItemID: itemID, Quantity: qty}},
	}
}

// POST /api/movimientos sin token → 401.
func TestMovimientos_SinToken_Retorna401(t *testing.T) {
	env := newAPIEnv(t)
	resp := env.request(t, http.MethodPost, "/api/movimientos", ingresoBody(env.editorialID, "libro-x", 5), false)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Un INGRESO válido crea el movimiento (201) con consecutivo y created_by del
// token, y el stock queda visible en la bodega.
func TestMovimientos_IngresoValido_CreaYActualizaStock(t *testing.T) {
	env := newAPIEnv(t)
	resp := env.request(t, http.MethodPost, "/api/movimientos", ingresoBody(env.editorialID, "libro-x", 10), true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	mov := decodeJSON[dto.MovementResponse](t, resp)

	assert.Equal(t, int64(1), mov.Consecutive)
	assert.Equal(t, entity.MovementKindIngreso, mov.Kind)
	assert.Equal(t, env.editorialID, mov.ToWarehouseID)
	assert.Equal(t, testUserID, mov.CreatedBy)
	require.Len(t, mov.Lines, 1)
	assert.Equal(t, int64(10), mov.Lines[0].Quantity)

	stockResp := env.request(t, http.MethodGet, "/api/bodegas/"+env.editorialID+"/stock", nil, true)
	require.Equal(t, http.StatusOK, stockResp.StatusCode)
	entries := decodeJSON[[]dto.StockEntryResponse](t, stockResp)
	require.Len(t, entries, 1)
	assert.Equal(t, "libro-x", entries[0].ItemID)
	assert.Equal(t, int64(10), entries[0].Quantity)
}

// REMISION entre dos puntos de venta → 422 RULE_VIOLATION.
func TestMovimientos_RemisionEntrePuntosVenta_Retorna422(t *testing.T) {
	env := newAPIEnv(t)
	body := dto.CreateMovementRequest{
		Kind:            entity.MovementKindRemision,
		FromWarehouseID: env.puntoID,
		ToWarehouseID:   env.punto2ID,
		Lines:           []dto.MovementLineRequest{{ItemID: "libro-x", Quantity: 1}},
	}
	resp := env.request(t, http.MethodPost, "/api/movimientos", body, true)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	errBody := decodeJSON[dto.ErrorResponse](t, resp)
	assert.Equal(t, "RULE_VIOLATION", errBody.Code)
}

// REMISION sin existencias suficientes → 422 INSUFFICIENT_STOCK.
func TestMovimientos_StockInsuficiente_Retorna422(t *testing.T) {
	env := newAPIEnv(t)
	resp := env.request(t, http.MethodPost, "/api/movimientos", ingresoBody(env.editorialID, "libro-x", 3), true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	body := dto.CreateMovementRequest{
		Kind:            entity.MovementKindRemision,
		FromWarehouseID: env.editorialID,
		ToWarehouseID:   env.puntoID,
		Lines:           []dto.MovementLineRequest{{ItemID: "libro-x", Quantity: 5}},
	}
	remResp := env.request(t, http.MethodPost, "/api/movimientos", body, true)
	require.Equal(t, http.StatusUnprocessableEntity, remResp.StatusCode)
	errBody := decodeJSON[dto.ErrorResponse](t, remResp)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)
}

// Bodega inexistente → 404.
func TestMovimientos_BodegaInexistente_Retorna404(t *testing.T) {
	env := newAPIEnv(t)
	resp := env.request(t, http.MethodPost, "/api/movimientos", ingresoBody("no-existe", "libro-x", 1), true)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// Cuerpo sin líneas → 400 por el validador.
func TestMovimientos_SinLineas_Retorna400(t *testing.T) {
	env := newAPIEnv(t)
	body := dto.CreateMovementRequest{Kind: entity.MovementKindIngreso, ToWarehouseID: env.editorialID}
	resp := env.request(t, http.MethodPost, "/api/movimientos", body, true)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// El listado devuelve los movimientos más recientes primero y filtra por clase.
func TestMovimientos_Listado_FiltraYOrdena(t *testing.T) {
	env := newAPIEnv(t)
	resp := env.request(t, http.MethodPost, "/api/movimientos", ingresoBody(env.editorialID, "libro-x", 10), true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	remBody := dto.CreateMovementRequest{
		Kind:            entity.MovementKindRemision,
		FromWarehouseID: env.editorialID,
		ToWarehouseID:   env.puntoID,
		Lines:           []dto.MovementLineRequest{{ItemID: "libro-x", Quantity: 4}},
	}
	remResp := env.request(t, http.MethodPost, "/api/movimientos", remBody, true)
	require.Equal(t, http.StatusCreated, remResp.StatusCode)
	remResp.Body.Close()

	listResp := env.request(t, http.MethodGet, "/api/movimientos", nil, true)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	list := decodeJSON[dto.MovementListResponse](t, listResp)
	require.Len(t, list.Items, 2)
	assert.Equal(t, entity.MovementKindRemision, list.Items[0].Kind, "el más reciente primero")
	assert.Equal(t, int64(2), list.Items[0].Consecutive)

	filtered := env.request(t, http.MethodGet, "/api/movimientos?kind=INGRESO", nil, true)
	require.Equal(t, http.StatusOK, filtered.StatusCode)
	ingresos := decodeJSON[dto.MovementListResponse](t, filtered)
	require.Len(t, ingresos.Items, 1)
	assert.Equal(t, entity.MovementKindIngreso, ingresos.Items[0].Kind)
}

// El stock de un paquete se deriva como mínimo de sus componentes.
func TestStock_PaqueteDerivado(t *testing.T) {
	env := newAPIEnv(t)
	resp := env.request(t, http.MethodPost, "/api/movimientos", ingresoBody(env.editorialID, "libro-x", 7), true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	resp = env.request(t, http.MethodPost, "/api/movimientos", ingresoBody(env.editorialID, "libro-y", 3), true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	stockResp := env.request(t, http.MethodGet, "/api/stock/items/paquete-1?warehouse_id="+env.editorialID, nil, true)
	require.Equal(t, http.StatusOK, stockResp.StatusCode)
	out := decodeJSON[dto.ItemStockResponse](t, stockResp)
	assert.Equal(t, int64(3), out.Quantity)
	assert.True(t, out.Derived)
}

// CRUD de bodegas por HTTP: crear, obtener, actualizar estado.
func TestBodegas_CRUD(t *testing.T) {
	env := newAPIEnv(t)
	createResp := env.request(t, http.MethodPost, "/api/bodegas", dto.CreateWarehouseRequest{
		Name: "Bodega General", Type: entity.WarehouseTypeGeneral, Address: "Calle 10 #5-20",
	}, true)
	require.Equal(t, http.StatusCreated, createResp.StatusCode)
	created := decodeJSON[dto.WarehouseResponse](t, createResp)
	assert.Equal(t, entity.WarehouseStatusActiva, created.Status)

	getResp := env.request(t, http.MethodGet, "/api/bodegas/"+created.ID, nil, true)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	got := decodeJSON[dto.WarehouseResponse](t, getResp)
	assert.Equal(t, "Bodega General", got.Name)

	inactiva := entity.WarehouseStatusInactiva
	updResp := env.request(t, http.MethodPut, "/api/bodegas/"+created.ID, dto.UpdateWarehouseRequest{Status: &inactiva}, true)
	require.Equal(t, http.StatusOK, updResp.StatusCode)
	updated := decodeJSON[dto.WarehouseResponse](t, updResp)
	assert.Equal(t, entity.WarehouseStatusInactiva, updated.Status)
}

// Tipo de bodega desconocido → 400 por las tags del validador.
func TestBodegas_TipoInvalido_Retorna400(t *testing.T) {
	env := newAPIEnv(t)
	resp := env.request(t, http.MethodPost, "/api/bodegas", dto.CreateWarehouseRequest{
		Name: "Bodega Rara", Type: "sucursal",
	}, true)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// Catálogo: listado y detalle de un paquete con componentes.
func TestItems_ListadoYDetalle(t *testing.T) {
	env := newAPIEnv(t)
	listResp := env.request(t, http.MethodGet, "/api/items", nil, true)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	list := decodeJSON[dto.ItemListResponse](t, listResp)
	assert.Len(t, list.Items, 3)

	getResp := env.request(t, http.MethodGet, "/api/items/paquete-1", nil, true)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	item := decodeJSON[dto.ItemResponse](t, getResp)
	assert.True(t, item.IsBundle)
	assert.Equal(t, []string{"libro-x", "libro-y"}, item.Components)
}
