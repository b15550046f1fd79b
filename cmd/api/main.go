package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/editorialarcadia/almacen-api/internal/application/movements"
	"github.com/editorialarcadia/almacen-api/internal/application/usecase"
	"github.com/editorialarcadia/almacen-api/internal/domain/repository"
	"github.com/editorialarcadia/almacen-api/internal/infrastructure/finanzas"
	"github.com/editorialarcadia/almacen-api/internal/infrastructure/memory"
	"github.com/editorialarcadia/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/editorialarcadia/almacen-api/internal/interfaces/http"
	"github.com/editorialarcadia/almacen-api/pkg/config"
	"github.com/editorialarcadia/almacen-api/pkg/logger"
)

// repos agrupa los puertos de persistencia ya construidos según el store
// configurado.
type repos struct {
	warehouse repository.WarehouseRepository
	item      repository.ItemRepository
	stock     repository.StockRepository
	movement  repository.MovementRepository
	txRunner  movements.TxRunner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.Store).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var r repos
	if cfg.App.Store == "memory" {
		// Modo desarrollo: almacén en proceso, sin PostgreSQL.
		store := memory.NewStore()
		r = repos{
			warehouse: memory.NewWarehouseRepository(store),
			item:      memory.NewItemRepository(store),
			stock:     memory.NewStockRepository(store),
			movement:  memory.NewMovementRepository(store),
			txRunner:  memory.NewTxRunner(store),
		}
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		r = repos{
			warehouse: postgres.NewWarehouseRepository(pool),
			item:      postgres.NewItemRepository(pool),
			stock:     postgres.NewStockRepository(pool),
			movement:  postgres.NewMovementRepository(pool),
			txRunner:  postgres.NewTxRunner(pool),
		}
	}

	var financial movements.FinancialLedger
	if cfg.Finanzas.BaseURL != "" {
		financial = finanzas.NewClient(cfg.Finanzas)
	} else {
		// Sin servicio de finanzas configurado los ingresos por compra con
		// payload inline fallan explícito en vez de perder el registro.
		financial = finanzas.Disabled{}
		log.Warn().Msg("puente financiero deshabilitado (FINANZAS_BASE_URL vacío)")
	}

	resolver := movements.NewResolver(r.item, r.stock)
	createMovementUC := movements.NewCreateMovementUseCase(
		r.txRunner, r.warehouse, r.stock, resolver, financial, log,
	)
	movementQueryUC := movements.NewQueryUseCase(r.movement, r.stock, r.warehouse, resolver)
	warehouseUC := usecase.NewWarehouseUseCase(r.warehouse)
	itemUC := usecase.NewItemUseCase(r.item)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		WarehouseUC:    warehouseUC,
		ItemUC:         itemUC,
		CreateMovement: createMovementUC,
		MovementQuery:  movementQueryUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
