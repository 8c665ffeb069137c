package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
)

// LineaVentaRequest línea de venta en el body de creación.
type LineaVentaRequest struct {
	ProductoID     string          `json:"productoId" validate:"required"`
	Cantidad       int64           `json:"cantidad" validate:"required,min=1"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
}

// VentaRequest body para POST /api/ventas.
type VentaRequest struct {
	Fecha            *time.Time          `json:"fecha,omitempty"`
	ClienteID        string              `json:"clienteId,omitempty"`
	Productos        []LineaVentaRequest `json:"productos" validate:"required,min=1,dive"`
	TipoPago         string              `json:"tipoPago" validate:"required,oneof=contado credito"`
	MetodoPago       string              `json:"metodoPago" validate:"required,oneof=efectivo transferencia tarjeta"`
	Banco            string              `json:"banco,omitempty"`
	NrFactura        string              `json:"nrFactura,omitempty"`
	MontoAbonado     decimal.Decimal     `json:"montoAbonado"`
	TasaCambio       decimal.Decimal     `json:"tasaCambio"`
	FechaVencimiento *time.Time          `json:"fechaVencimiento,omitempty"`
}

// AbonoRequest body para POST /api/ventas/:id/abonos.
type AbonoRequest struct {
	Monto decimal.Decimal `json:"monto" validate:"required"`
}

// VentaListRequest query para GET /api/ventas.
type VentaListRequest struct {
	PageRequest
	ClienteID     string `query:"clienteId"`
	Estado        string `query:"estado" validate:"omitempty,oneof=activa anulada devuelta"`
	EstadoCredito string `query:"estadoCredito" validate:"omitempty,oneof=vigente vencido pagado"`
	TipoPago      string `query:"tipoPago" validate:"omitempty,oneof=contado credito"`
	Desde         string `query:"desde"`
	Hasta         string `query:"hasta"`
	ConSaldo      string `query:"conSaldo" validate:"omitempty,oneof=true false"`
}

// LineaVentaResponse línea con el snapshot de costos del asignador.
type LineaVentaResponse struct {
	ProductoID       string          `json:"productoId"`
	Nombre           string          `json:"nombre"`
	Codigo           string          `json:"codigo"`
	Cantidad         int64           `json:"cantidad"`
	PrecioUnitario   decimal.Decimal `json:"precioUnitario"`
	CostoUnitario    decimal.Decimal `json:"costoUnitario"`
	GananciaUnitaria decimal.Decimal `json:"gananciaUnitaria"`
	GananciaTotal    decimal.Decimal `json:"gananciaTotal"`
}

// VentaResponse venta en respuestas.
type VentaResponse struct {
	ID               string               `json:"id"`
	Fecha            time.Time            `json:"fecha"`
	ClienteID        string               `json:"clienteId,omitempty"`
	Productos        []LineaVentaResponse `json:"productos"`
	Total            decimal.Decimal      `json:"total"`
	TipoPago         string               `json:"tipoPago"`
	MetodoPago       string               `json:"metodoPago"`
	Banco            string               `json:"banco,omitempty"`
	NrFactura        string               `json:"nrFactura,omitempty"`
	MontoAbonado     decimal.Decimal      `json:"montoAbonado"`
	SaldoPendiente   decimal.Decimal      `json:"saldoPendiente"`
	TasaCambio       decimal.Decimal      `json:"tasaCambio"`
	EstadoCredito    string               `json:"estadoCredito,omitempty"`
	Estado           string               `json:"estado"`
	FechaVencimiento *time.Time           `json:"fechaVencimiento,omitempty"`
}

// VentaTotalesResponse agregados del listado de ventas.
type VentaTotalesResponse struct {
	TotalVentas         decimal.Decimal `json:"totalVentas"`
	TotalSaldoPendiente decimal.Decimal `json:"totalSaldoPendiente"`
}

// ToVentaResponse convierte la entidad a su DTO de respuesta.
func ToVentaResponse(v *entity.Venta) VentaResponse {
	resp := VentaResponse{
		ID:               v.ID,
		Fecha:            v.Fecha,
		ClienteID:        v.ClienteID,
		Total:            v.Total,
		TipoPago:         v.TipoPago,
		MetodoPago:       v.MetodoPago,
		Banco:            v.Banco,
		NrFactura:        v.NrFactura,
		MontoAbonado:     v.MontoAbonado,
		SaldoPendiente:   v.SaldoPendiente,
		TasaCambio:       v.TasaCambio,
		EstadoCredito:    v.EstadoCredito,
		Estado:           v.Estado,
		FechaVencimiento: v.FechaVencimiento,
	}
	for _, p := range v.Productos {
		resp.Productos = append(resp.Productos, LineaVentaResponse{
			ProductoID:       p.ProductoID,
			Nombre:           p.Nombre,
			Codigo:           p.Codigo,
			Cantidad:         p.Cantidad,
			PrecioUnitario:   p.PrecioUnitario,
			CostoUnitario:    p.CostoUnitario,
			GananciaUnitaria: p.GananciaUnitaria,
			GananciaTotal:    p.GananciaTotal,
		})
	}
	return resp
}
