package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dsrcomercial/backoffice-api/internal/application/auth"
	appinv "github.com/dsrcomercial/backoffice-api/internal/application/inventory"
	"github.com/dsrcomercial/backoffice-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InventarioUC *appinv.Usecase
	ProductoUC   *usecase.ProductoUsecase
	VentaUC      *usecase.VentaUsecase
	ClienteUC    *usecase.ClienteUsecase
	CajaUC       *usecase.CajaUsecase
	GastoUC      *usecase.GastoUsecase
	ListaUC      *usecase.ListaPrecioUsecase
	FacturaUC    *usecase.FacturaPendienteUsecase
	AuthUC       *auth.Usecase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público, cambio de contraseña con token)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/auth/password", authHandler.CambiarPassword)

	// Productos y ledger de lotes (protegido)
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC, deps.InventarioUC)
	productos.Post("/", productoHandler.Create)
	productos.Get("/", productoHandler.List)
	productos.Get("/:id", productoHandler.GetByID)
	productos.Put("/:id", productoHandler.Update)
	productos.Delete("/:id", productoHandler.Delete)
	productos.Post("/:id/ajuste", productoHandler.AjustarStock)
	productos.Post("/:id/entradas", productoHandler.RegistrarEntrada)
	productos.Get("/:id/lotes", productoHandler.Lotes)

	// Historial de movimientos (protegido)
	historial := protected.Group("/historial")
	historialHandler := NewHistorialHandler(deps.InventarioUC)
	historial.Get("/", historialHandler.List)
	historial.Get("/consistencia", historialHandler.Consistencia)

	// Ventas (protegido)
	ventas := protected.Group("/ventas")
	ventaHandler := NewVentaHandler(deps.InventarioUC, deps.VentaUC)
	ventas.Post("/", ventaHandler.Create)
	ventas.Get("/", ventaHandler.List)
	ventas.Post("/vencimientos", ventaHandler.MarcarVencidas)
	ventas.Get("/:id", ventaHandler.GetByID)
	ventas.Post("/:id/anular", ventaHandler.Anular)
	ventas.Post("/:id/abonos", ventaHandler.Abonar)
	ventas.Delete("/:id", ventaHandler.Delete)

	// Clientes (protegido)
	clientes := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes.Post("/", clienteHandler.Create)
	clientes.Get("/", clienteHandler.List)
	clientes.Get("/:id", clienteHandler.GetByID)
	clientes.Put("/:id", clienteHandler.Update)
	clientes.Delete("/:id", clienteHandler.Delete)

	// Caja (protegido)
	caja := protected.Group("/caja")
	cajaHandler := NewCajaHandler(deps.CajaUC)
	caja.Post("/", cajaHandler.Registrar)
	caja.Get("/", cajaHandler.List)
	caja.Get("/saldos", cajaHandler.Saldos)
	caja.Put("/:id", cajaHandler.Update)
	caja.Delete("/:id", cajaHandler.Delete)

	// Gastos (protegido)
	gastos := protected.Group("/gastos")
	gastoHandler := NewGastoHandler(deps.GastoUC)
	gastos.Post("/", gastoHandler.Create)
	gastos.Get("/", gastoHandler.List)
	gastos.Get("/:id", gastoHandler.GetByID)
	gastos.Put("/:id", gastoHandler.Update)
	gastos.Delete("/:id", gastoHandler.Delete)

	// Lista de precios (protegido)
	precios := protected.Group("/lista-precios")
	listaHandler := NewListaPrecioHandler(deps.ListaUC)
	precios.Post("/", listaHandler.Create)
	precios.Get("/", listaHandler.List)
	precios.Get("/producto/:productoId", listaHandler.GetPorProducto)
	precios.Get("/:id", listaHandler.GetByID)
	precios.Put("/:id", listaHandler.Update)
	precios.Delete("/:id", listaHandler.Delete)

	// Facturas pendientes (protegido)
	facturas := protected.Group("/facturas-pendientes")
	facturaHandler := NewFacturaPendienteHandler(deps.FacturaUC)
	facturas.Post("/", facturaHandler.Create)
	facturas.Get("/", facturaHandler.List)
	facturas.Get("/:id", facturaHandler.GetByID)
	facturas.Put("/:id", facturaHandler.Update)
	facturas.Post("/:id/abonos", facturaHandler.Abonar)
	facturas.Delete("/:id", facturaHandler.Delete)
}
