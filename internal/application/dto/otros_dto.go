package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
)

// ── Clientes ─────────────────────────────────────────────────────────────

// ClienteRequest body para POST/PUT /api/clientes.
type ClienteRequest struct {
	Nombre     string   `json:"nombre" validate:"required"`
	Telefono   string   `json:"telefono,omitempty"`
	Email      string   `json:"email,omitempty" validate:"omitempty,email"`
	Direccion  string   `json:"direccion,omitempty"`
	Municipio  string   `json:"municipio,omitempty"`
	RIF        string   `json:"rif" validate:"required"`
	Categorias []string `json:"categorias,omitempty"`
}

// ClienteResponse cliente en respuestas.
type ClienteResponse struct {
	ID            string     `json:"id"`
	Nombre        string     `json:"nombre"`
	Telefono      string     `json:"telefono,omitempty"`
	Email         string     `json:"email,omitempty"`
	Direccion     string     `json:"direccion,omitempty"`
	Municipio     string     `json:"municipio,omitempty"`
	RIF           string     `json:"rif"`
	Categorias    []string   `json:"categorias,omitempty"`
	FechaRegistro time.Time  `json:"fechaRegistro"`
	UltimaCompra  *time.Time `json:"ultimaCompra,omitempty"`
}

func ToClienteResponse(c *entity.Cliente) ClienteResponse {
	return ClienteResponse{
		ID:            c.ID,
		Nombre:        c.Nombre,
		Telefono:      c.Telefono,
		Email:         c.Email,
		Direccion:     c.Direccion,
		Municipio:     c.Municipio,
		RIF:           c.RIF,
		Categorias:    c.Categorias,
		FechaRegistro: c.FechaRegistro,
		UltimaCompra:  c.UltimaCompra,
	}
}

// ── Caja ─────────────────────────────────────────────────────────────────

// CajaRequest body para POST/PUT /api/caja.
type CajaRequest struct {
	Fecha      *time.Time      `json:"fecha,omitempty"`
	Concepto   string          `json:"concepto" validate:"required"`
	Moneda     string          `json:"moneda" validate:"required,oneof=USD Bs"`
	Entrada    decimal.Decimal `json:"entrada"`
	Salida     decimal.Decimal `json:"salida"`
	TasaCambio decimal.Decimal `json:"tasaCambio"`
}

// CajaResponse movimiento de caja en respuestas.
type CajaResponse struct {
	ID         string          `json:"id"`
	Fecha      time.Time       `json:"fecha"`
	Concepto   string          `json:"concepto"`
	Moneda     string          `json:"moneda"`
	Entrada    decimal.Decimal `json:"entrada"`
	Salida     decimal.Decimal `json:"salida"`
	Saldo      decimal.Decimal `json:"saldo"`
	TasaCambio decimal.Decimal `json:"tasaCambio"`
}

func ToCajaResponse(t *entity.CajaTransaccion) CajaResponse {
	return CajaResponse{
		ID:         t.ID,
		Fecha:      t.Fecha,
		Concepto:   t.Concepto,
		Moneda:     t.Moneda,
		Entrada:    t.Entrada,
		Salida:     t.Salida,
		Saldo:      t.Saldo,
		TasaCambio: t.TasaCambio,
	}
}

// CajaSaldosResponse saldos vigentes por moneda.
type CajaSaldosResponse struct {
	USD        decimal.Decimal `json:"usd"`
	Bs         decimal.Decimal `json:"bs"`
	UltimaTasa decimal.Decimal `json:"ultimaTasa"`
}

// ── Gastos ───────────────────────────────────────────────────────────────

// GastoRequest body para POST/PUT /api/gastos.
type GastoRequest struct {
	Descripcion string          `json:"descripcion" validate:"required"`
	Monto       decimal.Decimal `json:"monto" validate:"required"`
	Categoria   string          `json:"categoria" validate:"required,oneof=empresariales personales"`
	Fecha       *time.Time      `json:"fecha,omitempty"`
}

// GastoResponse gasto en respuestas.
type GastoResponse struct {
	ID          string          `json:"id"`
	Descripcion string          `json:"descripcion"`
	Monto       decimal.Decimal `json:"monto"`
	Categoria   string          `json:"categoria"`
	Fecha       time.Time       `json:"fecha"`
}

func ToGastoResponse(g *entity.Gasto) GastoResponse {
	return GastoResponse{
		ID:          g.ID,
		Descripcion: g.Descripcion,
		Monto:       g.Monto,
		Categoria:   g.Categoria,
		Fecha:       g.Fecha,
	}
}

// ── Lista de precios ─────────────────────────────────────────────────────

// ListaPrecioRequest body para POST/PUT /api/lista-precios.
type ListaPrecioRequest struct {
	ProductoID      string          `json:"productoId" validate:"required"`
	Precio1         decimal.Decimal `json:"precio1"`
	Precio2         decimal.Decimal `json:"precio2"`
	Precio3         decimal.Decimal `json:"precio3"`
	PrecioMayorista decimal.Decimal `json:"precioMayorista"`
	Descripcion     string          `json:"descripcion,omitempty"`
	Activo          bool            `json:"activo"`
}

// ListaPrecioResponse fila de precios en respuestas.
type ListaPrecioResponse struct {
	ID              string          `json:"id"`
	ProductoID      string          `json:"productoId"`
	NombreProducto  string          `json:"nombreProducto"`
	CodigoProducto  string          `json:"codigoProducto"`
	Precio1         decimal.Decimal `json:"precio1"`
	Precio2         decimal.Decimal `json:"precio2"`
	Precio3         decimal.Decimal `json:"precio3"`
	PrecioMayorista decimal.Decimal `json:"precioMayorista"`
	Descripcion     string          `json:"descripcion,omitempty"`
	Activo          bool            `json:"activo"`
}

func ToListaPrecioResponse(lp *entity.ListaPrecio) ListaPrecioResponse {
	return ListaPrecioResponse{
		ID:              lp.ID,
		ProductoID:      lp.ProductoID,
		NombreProducto:  lp.NombreProducto,
		CodigoProducto:  lp.CodigoProducto,
		Precio1:         lp.Precio1,
		Precio2:         lp.Precio2,
		Precio3:         lp.Precio3,
		PrecioMayorista: lp.PrecioMayorista,
		Descripcion:     lp.Descripcion,
		Activo:          lp.Activo,
	}
}

// ── Facturas pendientes ──────────────────────────────────────────────────

// FacturaPendienteRequest body para POST/PUT /api/facturas-pendientes.
type FacturaPendienteRequest struct {
	Fecha    *time.Time      `json:"fecha,omitempty"`
	Concepto string          `json:"concepto" validate:"required"`
	Monto    decimal.Decimal `json:"monto" validate:"required"`
	Abono    decimal.Decimal `json:"abono"`
}

// FacturaPendienteResponse cuenta por pagar en respuestas.
type FacturaPendienteResponse struct {
	ID       string          `json:"id"`
	Fecha    time.Time       `json:"fecha"`
	Concepto string          `json:"concepto"`
	Monto    decimal.Decimal `json:"monto"`
	Abono    decimal.Decimal `json:"abono"`
	Saldo    decimal.Decimal `json:"saldo"`
}

func ToFacturaPendienteResponse(f *entity.FacturaPendiente) FacturaPendienteResponse {
	return FacturaPendienteResponse{
		ID:       f.ID,
		Fecha:    f.Fecha,
		Concepto: f.Concepto,
		Monto:    f.Monto,
		Abono:    f.Abono,
		Saldo:    f.Saldo,
	}
}

// ── Auth ─────────────────────────────────────────────────────────────────

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token emitido tras el login.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// CambiarPasswordRequest body para POST /api/auth/password.
type CambiarPasswordRequest struct {
	PasswordActual string `json:"passwordActual" validate:"required"`
	PasswordNuevo  string `json:"passwordNuevo" validate:"required,min=8"`
}
