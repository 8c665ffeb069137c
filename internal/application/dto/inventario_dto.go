package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
)

// EntradaStockRequest body para POST /api/productos/:id/entradas.
type EntradaStockRequest struct {
	Cantidad      int64           `json:"cantidad" validate:"required,min=1"`
	CostoUnitario decimal.Decimal `json:"costoUnitario"`
	Acarreo       decimal.Decimal `json:"acarreo"`
	Flete         decimal.Decimal `json:"flete"`
	Fecha         *time.Time      `json:"fecha,omitempty"`
	Detalles      string          `json:"detalles,omitempty"`
}

// HistorialRequest query para GET /api/historial.
type HistorialRequest struct {
	PageRequest
	Operacion  string `query:"operacion" validate:"omitempty,oneof=creacion entrada salida ajuste eliminacion"`
	ProductoID string `query:"productoId"`
	Busqueda   string `query:"busqueda"`
	Desde      string `query:"desde"` // YYYY-MM-DD
	Hasta      string `query:"hasta"`
}

// LoteResponse asiento del ledger en respuestas.
type LoteResponse struct {
	ID             string          `json:"id"`
	Secuencia      int64           `json:"secuencia"`
	ProductoID     string          `json:"productoId"`
	NombreProducto string          `json:"nombreProducto"`
	CodigoProducto string          `json:"codigoProducto"`
	Operacion      string          `json:"operacion"`
	Cantidad       int64           `json:"cantidad"`
	StockAnterior  int64           `json:"stockAnterior"`
	StockNuevo     int64           `json:"stockNuevo"`
	CostoFinal     decimal.Decimal `json:"costoFinal"`
	StockLote      int64           `json:"stockLote"`
	Fecha          time.Time       `json:"fecha"`
	Detalles       string          `json:"detalles,omitempty"`
}

// ToLoteResponse convierte un asiento a su DTO de respuesta.
func ToLoteResponse(l *entity.Lote) LoteResponse {
	return LoteResponse{
		ID:             l.ID,
		Secuencia:      l.Secuencia,
		ProductoID:     l.ProductoID,
		NombreProducto: l.NombreProducto,
		CodigoProducto: l.CodigoProducto,
		Operacion:      l.Operacion,
		Cantidad:       l.Cantidad,
		StockAnterior:  l.StockAnterior,
		StockNuevo:     l.StockNuevo,
		CostoFinal:     l.CostoFinal,
		StockLote:      l.StockLote,
		Fecha:          l.Fecha,
		Detalles:       l.Detalles,
	}
}

// HistorialTotalesResponse agregados del listado de historial.
type HistorialTotalesResponse struct {
	TotalCantidad  int64 `json:"totalCantidad"`
	TotalStockLote int64 `json:"totalStockLote"`
}

// DiscrepanciaResponse producto cuyo stock no concilia con sus lotes.
type DiscrepanciaResponse struct {
	ProductoID string `json:"productoId"`
	Nombre     string `json:"nombre"`
	Stock      int64  `json:"stock"`
	SumaLotes  int64  `json:"sumaLotes"`
}
