package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de gasto.
const (
	GastoEmpresarial = "empresariales"
	GastoPersonal    = "personales"
)

// Gasto registra una salida de dinero fuera del flujo de ventas.
type Gasto struct {
	ID          string
	Descripcion string
	Monto       decimal.Decimal
	Categoria   string
	Fecha       time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
