package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dsrcomercial/backoffice-api/internal/domain/inventory"
)

// 10 unidades a 2.00 más 10 entrantes a 4.00 promedian 3.00.
func TestCostoPromedio_PonderadoSimple(t *testing.T) {
	got := inventory.CostoPromedio(10, dec("2.00"), 10, dec("4.00"))
	assert.True(t, got.Equal(dec("3.00")), "got %s", got)
}

func TestCostoPromedio_SinExistenciasPreviasTomaElCostoEntrante(t *testing.T) {
	got := inventory.CostoPromedio(0, dec("0"), 25, dec("7.35"))
	assert.True(t, got.Equal(dec("7.35")), "got %s", got)
}

func TestCostoPromedio_RedondeaADosDecimales(t *testing.T) {
	// (3*1.00 + 3*2.00) / 6 = 1.50; (1*1.00 + 2*2.00) / 3 = 1.666... -> 1.67
	got := inventory.CostoPromedio(1, dec("1.00"), 2, dec("2.00"))
	assert.True(t, got.Equal(dec("1.67")), "got %s", got)
}

func TestCostoPromedio_TotalCeroDevuelveCero(t *testing.T) {
	assert.True(t, inventory.CostoPromedio(0, dec("5.00"), 0, dec("9.00")).IsZero())
}

// 10 unidades a 5.00 con acarreo 10 y flete 10: (50+10+10)/10 = 7.00.
func TestCostoUnitarioLote_RepartidoSoloEntreUnidadesEntrantes(t *testing.T) {
	got := inventory.CostoUnitarioLote(10, dec("5.00"), dec("10"), dec("10"))
	assert.True(t, got.Equal(dec("7.00")), "got %s", got)
}

func TestCostoUnitarioLote_SinFletesEsElCostoBase(t *testing.T) {
	got := inventory.CostoUnitarioLote(4, dec("12.25"), dec("0"), dec("0"))
	assert.True(t, got.Equal(dec("12.25")), "got %s", got)
}

// Reabastecimientos repetidos con valores ya redondeados no acumulan deriva:
// el decimal exacto mantiene los centavos estables.
func TestCostoPromedio_SinDerivaTrasMuchasEntradas(t *testing.T) {
	costo := dec("10.10")
	cantidad := int64(10)
	for i := 0; i < 200; i++ {
		costo = inventory.CostoPromedio(cantidad, costo, 10, dec("10.10"))
		cantidad += 10
	}
	assert.True(t, costo.Equal(dec("10.10")), "tras 200 entradas iguales el promedio debe seguir en 10.10, got %s", costo)
}
