package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Monedas de la caja.
const (
	MonedaUSD = "USD"
	MonedaBs  = "Bs"
)

// MonedaValida indica si m es una moneda aceptada por la caja.
func MonedaValida(m string) bool {
	return m == MonedaUSD || m == MonedaBs
}

// CajaTransaccion es un asiento de la caja con saldo corrido por moneda.
// Saldo es el saldo de esa moneda después de aplicar la transacción.
type CajaTransaccion struct {
	ID         string
	Fecha      time.Time
	Concepto   string
	Moneda     string
	Entrada    decimal.Decimal
	Salida     decimal.Decimal
	Saldo      decimal.Decimal
	TasaCambio decimal.Decimal
	CreatedAt  time.Time
}

// CajaSaldos agrupa los saldos vigentes por moneda.
type CajaSaldos struct {
	USD decimal.Decimal
	Bs  decimal.Decimal
}
