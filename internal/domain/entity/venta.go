package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta. Una venta activa puede anularse o devolverse;
// ambos estados son terminales.
const (
	VentaActiva   = "activa"
	VentaAnulada  = "anulada"
	VentaDevuelta = "devuelta"
)

// Tipos y métodos de pago.
const (
	PagoContado = "contado"
	PagoCredito = "credito"

	MetodoEfectivo      = "efectivo"
	MetodoTransferencia = "transferencia"
	MetodoTarjeta       = "tarjeta"
)

// Estados del crédito de una venta a crédito.
const (
	CreditoVigente = "vigente"
	CreditoVencido = "vencido"
	CreditoPagado  = "pagado"
)

// TipoPagoValido indica si el tipo de pago es conocido.
func TipoPagoValido(t string) bool {
	return t == PagoContado || t == PagoCredito
}

// MetodoPagoValido indica si el método de pago es conocido.
func MetodoPagoValido(m string) bool {
	return m == MetodoEfectivo || m == MetodoTransferencia || m == MetodoTarjeta
}

// VentaProducto es una línea de venta. CostoUnitario y las ganancias son el
// snapshot calculado por el asignador FIFO al momento de la venta.
type VentaProducto struct {
	ProductoID       string
	Nombre           string
	Codigo           string
	Cantidad         int64
	PrecioUnitario   decimal.Decimal
	CostoUnitario    decimal.Decimal // costo promedio de los lotes consumidos
	GananciaUnitaria decimal.Decimal
	GananciaTotal    decimal.Decimal
}

// Venta agrupa líneas vendidas a un cliente con su condición de pago.
type Venta struct {
	ID               string
	Fecha            time.Time
	ClienteID        string
	Productos        []VentaProducto
	Total            decimal.Decimal
	TipoPago         string
	MetodoPago       string
	Banco            string // requerido si MetodoPago == transferencia
	NrFactura        string // único
	MontoAbonado     decimal.Decimal
	SaldoPendiente   decimal.Decimal
	TasaCambio       decimal.Decimal // Bs por USD al momento de la venta
	EstadoCredito    string
	Estado           string
	FechaVencimiento *time.Time // solo ventas a crédito
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PuedeAnularse indica si la venta admite anulación (solo activas).
func (v *Venta) PuedeAnularse() bool {
	return v.Estado == VentaActiva
}
