package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto es el agregado mutable del inventario.
// Stock se concilia contra la suma de StockLote de sus lotes abiertos
// (invariante central del ledger); Cantidad acumula todas las unidades
// recibidas históricamente y pondera el costo promedio.
type Producto struct {
	ID           string
	Codigo       string // único, ya recortado (case-sensitive)
	Nombre       string
	Proveedor    string
	CostoInicial decimal.Decimal // costo base unitario del último lote promedio
	Acarreo      decimal.Decimal // recargo absoluto por lote, no por unidad
	Flete        decimal.Decimal
	CostoFinal   decimal.Decimal // costo unitario "landed" vigente
	Cantidad     int64           // unidades recibidas acumuladas
	Stock        int64           // unidades disponibles (>= 0)
	FechaIngreso time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
