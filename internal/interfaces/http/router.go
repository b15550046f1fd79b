package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/editorialarcadia/almacen-api/internal/application/movements"
	"github.com/editorialarcadia/almacen-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC    *usecase.WarehouseUseCase
	ItemUC         *usecase.ItemUseCase
	CreateMovement *movements.CreateMovementUseCase
	MovementQuery  *movements.QueryUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Bodegas (protegido)
	warehouses := protected.Group("/bodegas")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)

	// Existencias (protegido)
	stockHandler := NewStockHandler(deps.MovementQuery)
	warehouses.Get("/:id/stock", stockHandler.WarehouseStock)
	protected.Get("/stock/items/:item_id", stockHandler.ItemStock)

	// Catálogo (protegido, solo lectura)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)

	// Movimientos (protegido)
	movGroup := protected.Group("/movimientos")
	movementHandler := NewMovementHandler(deps.CreateMovement, deps.MovementQuery)
	movGroup.Post("/", movementHandler.Create)
	movGroup.Get("/", movementHandler.List)
	movGroup.Get("/:id", movementHandler.GetByID)
}
