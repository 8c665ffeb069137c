package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
)

// ProductoRequest body para POST/PUT /api/productos.
type ProductoRequest struct {
	Codigo       string          `json:"codigo" validate:"required"`
	Nombre       string          `json:"nombre" validate:"required"`
	Proveedor    string          `json:"proveedor,omitempty"`
	CostoInicial decimal.Decimal `json:"costoInicial"`
	Acarreo      decimal.Decimal `json:"acarreo"`
	Flete        decimal.Decimal `json:"flete"`
	Cantidad     int64           `json:"cantidad" validate:"min=0"`
	FechaIngreso *time.Time      `json:"fechaIngreso,omitempty"`
}

// AjusteStockRequest body para POST /api/productos/:id/ajuste.
type AjusteStockRequest struct {
	Stock  int64  `json:"stock" validate:"min=0"`
	Motivo string `json:"motivo" validate:"required"`
}

// ProductoResponse producto en respuestas.
type ProductoResponse struct {
	ID           string          `json:"id"`
	Codigo       string          `json:"codigo"`
	Nombre       string          `json:"nombre"`
	Proveedor    string          `json:"proveedor,omitempty"`
	CostoInicial decimal.Decimal `json:"costoInicial"`
	Acarreo      decimal.Decimal `json:"acarreo"`
	Flete        decimal.Decimal `json:"flete"`
	CostoFinal   decimal.Decimal `json:"costoFinal"`
	Cantidad     int64           `json:"cantidad"`
	Stock        int64           `json:"stock"`
	FechaIngreso time.Time       `json:"fechaIngreso"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ToProductoResponse convierte la entidad a su DTO de respuesta.
func ToProductoResponse(p *entity.Producto) ProductoResponse {
	return ProductoResponse{
		ID:           p.ID,
		Codigo:       p.Codigo,
		Nombre:       p.Nombre,
		Proveedor:    p.Proveedor,
		CostoInicial: p.CostoInicial,
		Acarreo:      p.Acarreo,
		Flete:        p.Flete,
		CostoFinal:   p.CostoFinal,
		Cantidad:     p.Cantidad,
		Stock:        p.Stock,
		FechaIngreso: p.FechaIngreso,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
