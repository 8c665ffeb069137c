package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FacturaPendiente es una cuenta por pagar simple: Saldo = max(0, Monto - Abono),
// recalculado en cada escritura.
type FacturaPendiente struct {
	ID        string
	Fecha     time.Time
	Concepto  string
	Monto     decimal.Decimal
	Abono     decimal.Decimal
	Saldo     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecalcularSaldo mantiene Saldo consistente con Monto y Abono.
func (f *FacturaPendiente) RecalcularSaldo() {
	saldo := f.Monto.Sub(f.Abono)
	if saldo.IsNegative() {
		saldo = decimal.Zero
	}
	f.Saldo = saldo
}
