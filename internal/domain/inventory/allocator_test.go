package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsrcomercial/backoffice-api/internal/domain"
	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
	"github.com/dsrcomercial/backoffice-api/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var baseFecha = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// lote construye un lote de costo abierto con fecha base + offset días.
func lote(id string, sec int64, diasOffset int, stockLote int64, costo string) entity.Lote {
	return entity.Lote{
		ID:         id,
		Secuencia:  sec,
		ProductoID: "prod-1",
		Operacion:  entity.OperacionEntrada,
		StockLote:  stockLote,
		CostoFinal: decimal.RequireFromString(costo),
		Fecha:      baseFecha.AddDate(0, 0, diasOffset),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Orden FIFO
// ──────────────────────────────────────────────────────────────────────────────

// Lotes en T1 < T2 < T3 con 5, 3 y 2 unidades: una venta de 6 consume las 5 de
// T1 y 1 de T2; T3 queda intacto.
func TestAsignar_ConsumeLotesMasViejosPrimero(t *testing.T) {
	lotes := []entity.Lote{
		lote("l3", 3, 2, 2, "12.00"),
		lote("l1", 1, 0, 5, "10.00"),
		lote("l2", 2, 1, 3, "11.00"),
	}

	res, err := inventory.Asignar("prod-1", lotes, 6, dec("20.00"))
	require.NoError(t, err)

	require.Len(t, res.Asignaciones, 2)
	assert.Equal(t, "l1", res.Asignaciones[0].LoteID)
	assert.Equal(t, int64(5), res.Asignaciones[0].Cantidad)
	assert.Equal(t, "l2", res.Asignaciones[1].LoteID)
	assert.Equal(t, int64(1), res.Asignaciones[1].Cantidad)

	// costo = 5*10 + 1*11 = 61; ganancia = 6*20 - 61 = 59
	assert.True(t, res.CostoTotal.Equal(dec("61.00")), "costo total %s", res.CostoTotal)
	assert.True(t, res.Ganancia.Equal(dec("59.00")), "ganancia %s", res.Ganancia)
}

// Ante fechas idénticas desempata la secuencia de inserción (lote creado antes
// se consume primero) para que la asignación sea reproducible.
func TestAsignar_DesempataPorSecuenciaConFechasIguales(t *testing.T) {
	lotes := []entity.Lote{
		lote("tarde", 9, 0, 4, "8.00"),
		lote("temprano", 2, 0, 4, "7.00"),
	}

	res, err := inventory.Asignar("prod-1", lotes, 5, dec("10.00"))
	require.NoError(t, err)

	require.Len(t, res.Asignaciones, 2)
	assert.Equal(t, "temprano", res.Asignaciones[0].LoteID)
	assert.Equal(t, int64(4), res.Asignaciones[0].Cantidad)
	assert.Equal(t, "tarde", res.Asignaciones[1].LoteID)
	assert.Equal(t, int64(1), res.Asignaciones[1].Cantidad)
}

// Las asignaciones siempre suman exactamente la cantidad solicitada.
func TestAsignar_AsignacionesSumanLaCantidad(t *testing.T) {
	lotes := []entity.Lote{
		lote("l1", 1, 0, 3, "5.00"),
		lote("l2", 2, 1, 3, "5.50"),
		lote("l3", 3, 2, 3, "6.00"),
	}
	res, err := inventory.Asignar("prod-1", lotes, 8, dec("9.00"))
	require.NoError(t, err)

	var suma int64
	for _, a := range res.Asignaciones {
		suma += a.Cantidad
	}
	assert.Equal(t, int64(8), suma)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores
// ──────────────────────────────────────────────────────────────────────────────

func TestAsignar_StockInsuficienteReportaDisponible(t *testing.T) {
	lotes := []entity.Lote{
		lote("l1", 1, 0, 2, "10.00"),
		lote("l2", 2, 1, 3, "10.00"),
	}

	_, err := inventory.Asignar("prod-1", lotes, 6, dec("15.00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &insErr))
	assert.Equal(t, int64(5), insErr.Disponible)
	assert.Equal(t, int64(6), insErr.Solicitado)
}

// Los lotes agotados (stockLote == 0) y los asientos que no son lotes
// (salida/ajuste) no participan de la asignación.
func TestAsignar_IgnoraLotesAgotadosYAsientosNoLote(t *testing.T) {
	salida := entity.Lote{ID: "s1", Secuencia: 5, Operacion: entity.OperacionSalida, Cantidad: 2, Fecha: baseFecha}
	agotado := lote("viejo", 1, -3, 0, "4.00")
	abierto := lote("abierto", 2, 0, 4, "6.00")

	res, err := inventory.Asignar("prod-1", []entity.Lote{salida, agotado, abierto}, 4, dec("10.00"))
	require.NoError(t, err)
	require.Len(t, res.Asignaciones, 1)
	assert.Equal(t, "abierto", res.Asignaciones[0].LoteID)
}

func TestAsignar_CantidadNoPositivaEsInvalida(t *testing.T) {
	_, err := inventory.Asignar("prod-1", nil, 0, dec("10.00"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.Asignar("prod-1", nil, -2, dec("10.00"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Snapshot de costo para la línea de venta
// ──────────────────────────────────────────────────────────────────────────────

func TestCostoUnitarioPromedio_PonderaLotesConsumidos(t *testing.T) {
	lotes := []entity.Lote{
		lote("l1", 1, 0, 5, "10.00"),
		lote("l2", 2, 1, 5, "14.00"),
	}
	res, err := inventory.Asignar("prod-1", lotes, 10, dec("20.00"))
	require.NoError(t, err)

	// (5*10 + 5*14) / 10 = 12.00
	assert.True(t, res.CostoUnitarioPromedio().Equal(dec("12.00")))
}
