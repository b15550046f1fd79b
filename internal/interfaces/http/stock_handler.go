package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/editorialarcadia/almacen-api/internal/application/dto"
	"github.com/editorialarcadia/almacen-api/internal/application/movements"
)

// StockHandler consultas de existencias (protegido).
type StockHandler struct {
	queryUC *movements.QueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(queryUC *movements.QueryUseCase) *StockHandler {
	return &StockHandler{queryUC: queryUC}
}

// WarehouseStock godoc
// @Summary      Existencias de una bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la bodega"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {array}   dto.StockEntryResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/bodegas/{id}/stock [get]
func (h *StockHandler) WarehouseStock(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}
	entries, err := h.queryUC.WarehouseStock(id, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.StockEntryResponse{
			WarehouseID: e.WarehouseID,
			ItemID:      e.ItemID,
			Quantity:    e.Quantity,
			MinStock:    e.MinStock,
			MaxStock:    e.MaxStock,
			UpdatedAt:   e.UpdatedAt,
		})
	}
	return c.JSON(out)
}

// ItemStock godoc
// @Summary      Stock de un ítem en una bodega (derivado para paquetes)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        item_id       path   string  true  "ID del ítem"
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      200  {object}  dto.ItemStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/items/{item_id} [get]
func (h *StockHandler) ItemStock(c *fiber.Ctx) error {
	itemID := c.Params("item_id")
	warehouseID := c.Query("warehouse_id")
	if itemID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id y warehouse_id son requeridos"})
	}
	qty, derived, err := h.queryUC.ItemStockDetail(itemID, warehouseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ItemStockResponse{
		ItemID:      itemID,
		WarehouseID: warehouseID,
		Quantity:    qty,
		Derived:     derived,
	})
}
