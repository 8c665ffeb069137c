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
	"github.com/redis/go-redis/v9"

	"github.com/dsrcomercial/backoffice-api/internal/application/auth"
	appinv "github.com/dsrcomercial/backoffice-api/internal/application/inventory"
	"github.com/dsrcomercial/backoffice-api/internal/application/usecase"
	"github.com/dsrcomercial/backoffice-api/internal/infrastructure/cache"
	"github.com/dsrcomercial/backoffice-api/internal/infrastructure/postgres"
	httpRouter "github.com/dsrcomercial/backoffice-api/internal/interfaces/http"
	"github.com/dsrcomercial/backoffice-api/pkg/config"
	"github.com/dsrcomercial/backoffice-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	productoRepo := postgres.NewProductoRepository(pool)
	loteRepo := postgres.NewLoteRepository(pool)
	ventaRepo := postgres.NewVentaRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	cajaRepo := postgres.NewCajaRepository(pool)
	gastoRepo := postgres.NewGastoRepository(pool)
	listaRepo := postgres.NewListaPrecioRepository(pool)
	facturaRepo := postgres.NewFacturaPendienteRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	tasaStore := cache.NewTasaCambioStore(rdb)

	inventarioUC := appinv.NewUsecase(
		txRunner, productoRepo, loteRepo, clienteRepo, cfg.Inventario.ReintentosVenta)
	productoUC := usecase.NewProductoUsecase(txRunner, productoRepo, loteRepo)
	ventaUC := usecase.NewVentaUsecase(ventaRepo)
	clienteUC := usecase.NewClienteUsecase(clienteRepo)
	cajaUC := usecase.NewCajaUsecase(cajaRepo, tasaStore)
	gastoUC := usecase.NewGastoUsecase(gastoRepo)
	listaUC := usecase.NewListaPrecioUsecase(listaRepo, productoRepo)
	facturaUC := usecase.NewFacturaPendienteUsecase(facturaRepo)
	authUC := auth.NewUsecase(usuarioRepo, auth.Config{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		ExpMinutes: cfg.JWT.Expiration,
	})

	// Chequeo periódico stock vs suma de lotes.
	jobCtx, cancelJob := context.WithCancel(ctx)
	defer cancelJob()
	if cfg.Inventario.ChequeoConsistencia > 0 {
		intervalo := time.Duration(cfg.Inventario.ChequeoConsistencia) * time.Minute
		go appinv.NewConsistencyJob(inventarioUC, intervalo, log).Run(jobCtx)
	}

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
		Title:    "DSR Comercial API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InventarioUC: inventarioUC,
		ProductoUC:   productoUC,
		VentaUC:      ventaUC,
		ClienteUC:    clienteUC,
		CajaUC:       cajaUC,
		GastoUC:      gastoUC,
		ListaUC:      listaUC,
		FacturaUC:    facturaUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
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

	cancelJob()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
