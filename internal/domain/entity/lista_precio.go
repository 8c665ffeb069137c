package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListaPrecio guarda los niveles de precio de venta de un producto.
// Hay a lo sumo una fila por producto.
type ListaPrecio struct {
	ID              string
	ProductoID      string
	NombreProducto  string
	CodigoProducto  string
	Precio1         decimal.Decimal
	Precio2         decimal.Decimal
	Precio3         decimal.Decimal
	PrecioMayorista decimal.Decimal
	Descripcion     string
	Activo          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
