package inventory

import "github.com/shopspring/decimal"

// CostoPromedio implementa el costo promedio ponderado al reabastecer:
// NuevoCosto = ((CantidadActual * CostoActual) + (CantEntrada * CostoEntrada)) / (CantidadActual + CantEntrada)
// CantidadActual es la cantidad acumulada del producto antes de la entrada.
// El resultado se redondea a 2 decimales porque se persiste (política numérica
// del ledger: redondear cada paso persistido evita acumular deriva binaria).
func CostoPromedio(cantidadActual int64, costoActual decimal.Decimal, cantEntrada int64, costoEntrada decimal.Decimal) decimal.Decimal {
	total := cantidadActual + cantEntrada
	if total <= 0 {
		return decimal.Zero
	}
	num := decimal.NewFromInt(cantidadActual).Mul(costoActual).
		Add(decimal.NewFromInt(cantEntrada).Mul(costoEntrada))
	return num.Div(decimal.NewFromInt(total)).Round(2)
}

// CostoUnitarioLote calcula el costo landed por unidad del lote entrante:
// (CostoEntrada * CantEntrada + Acarreo + Flete) / CantEntrada.
// Acarreo y flete son montos absolutos del lote completo y se reparten solo
// entre las unidades entrantes; no cambian el costo de lotes anteriores.
func CostoUnitarioLote(cantEntrada int64, costoEntrada, acarreo, flete decimal.Decimal) decimal.Decimal {
	if cantEntrada <= 0 {
		return decimal.Zero
	}
	total := costoEntrada.Mul(decimal.NewFromInt(cantEntrada)).Add(acarreo).Add(flete)
	return total.Div(decimal.NewFromInt(cantEntrada)).Round(2)
}
