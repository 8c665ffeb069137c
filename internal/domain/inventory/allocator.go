package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/dsrcomercial/backoffice-api/internal/domain"
	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
)

// Asignacion es el consumo planificado de un lote concreto.
type Asignacion struct {
	LoteID        string
	Cantidad      int64
	CostoUnitario decimal.Decimal // costoFinal del lote al momento de planificar
}

// ResultadoAsignacion es el plan de consumo FIFO para una línea de venta.
// Las asignaciones suman exactamente la cantidad solicitada; CostoTotal y
// Ganancia se reportan al caller (la venta guarda el snapshot), nunca al lote.
type ResultadoAsignacion struct {
	ProductoID   string
	Cantidad     int64
	Asignaciones []Asignacion
	CostoTotal   decimal.Decimal
	Ganancia     decimal.Decimal
}

// Asignar planifica el consumo de lotes oldest-first para cubrir cantidad.
// Es un paso puro de planificación: no escribe nada; el commit transaccional
// revalida los remanentes bajo la misma transacción antes de descontar.
//
// Orden: fecha ascendente; ante fechas idénticas desempata la secuencia de
// inserción para que la asignación sea determinista y reproducible en auditoría.
func Asignar(productoID string, lotes []entity.Lote, cantidad int64, precioUnitario decimal.Decimal) (*ResultadoAsignacion, error) {
	if cantidad <= 0 {
		return nil, domain.ErrInvalidInput
	}

	abiertos := make([]entity.Lote, 0, len(lotes))
	var disponible int64
	for _, l := range lotes {
		if l.EsLote() && l.StockLote > 0 {
			abiertos = append(abiertos, l)
			disponible += l.StockLote
		}
	}
	if disponible < cantidad {
		return nil, &domain.InsufficientStockError{
			ProductoID: productoID,
			Solicitado: cantidad,
			Disponible: disponible,
		}
	}

	sort.SliceStable(abiertos, func(i, j int) bool {
		if abiertos[i].Fecha.Equal(abiertos[j].Fecha) {
			return abiertos[i].Secuencia < abiertos[j].Secuencia
		}
		return abiertos[i].Fecha.Before(abiertos[j].Fecha)
	})

	restante := cantidad
	costoTotal := decimal.Zero
	asignaciones := make([]Asignacion, 0, 2)
	for _, lote := range abiertos {
		if restante == 0 {
			break
		}
		usar := lote.StockLote
		if usar > restante {
			usar = restante
		}
		asignaciones = append(asignaciones, Asignacion{
			LoteID:        lote.ID,
			Cantidad:      usar,
			CostoUnitario: lote.CostoFinal,
		})
		costoTotal = costoTotal.Add(lote.CostoFinal.Mul(decimal.NewFromInt(usar)))
		restante -= usar
	}

	ganancia := precioUnitario.Mul(decimal.NewFromInt(cantidad)).Sub(costoTotal)

	return &ResultadoAsignacion{
		ProductoID:   productoID,
		Cantidad:     cantidad,
		Asignaciones: asignaciones,
		CostoTotal:   costoTotal.Round(2),
		Ganancia:     ganancia.Round(2),
	}, nil
}

// CostoUnitarioPromedio devuelve el costo unitario promedio del plan
// (CostoTotal / Cantidad), redondeado a 2 decimales, para el snapshot de la línea.
func (r *ResultadoAsignacion) CostoUnitarioPromedio() decimal.Decimal {
	if r.Cantidad == 0 {
		return decimal.Zero
	}
	return r.CostoTotal.Div(decimal.NewFromInt(r.Cantidad)).Round(2)
}
