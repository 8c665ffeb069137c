package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/dsrcomercial/backoffice-api/internal/application/inventory"
	"github.com/dsrcomercial/backoffice-api/internal/domain"
	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
	"github.com/dsrcomercial/backoffice-api/internal/domain/repository"
)

var fechaBase = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type entorno struct {
	store *memStore
	tx    *memTxRunner
	uc    *appinv.Usecase
}

func nuevoEntorno(reintentos int) *entorno {
	s := newMemStore()
	tx := &memTxRunner{s: s}
	uc := appinv.NewUsecase(tx,
		&memProductoRepo{s: s},
		&memLoteRepo{s: s},
		&memClienteRepo{s: s},
		reintentos,
	)
	return &entorno{store: s, tx: tx, uc: uc}
}

func (e *entorno) seedProducto(id string, stock int64, costoInicial, costoFinal string) {
	e.store.productos[id] = &entity.Producto{
		ID:           id,
		Codigo:       "C-" + id,
		Nombre:       "Producto " + id,
		CostoInicial: dec(costoInicial),
		CostoFinal:   dec(costoFinal),
		Cantidad:     stock,
		Stock:        stock,
	}
}

func (e *entorno) seedLote(id, productoID string, dias int, stockLote int64, costo string) {
	repo := &memLoteRepo{s: e.store}
	_ = repo.Create(context.Background(), &entity.Lote{
		ID:         id,
		ProductoID: productoID,
		Operacion:  entity.OperacionCreacion,
		Cantidad:   stockLote,
		StockLote:  stockLote,
		CostoFinal: dec(costo),
		Fecha:      fechaBase.AddDate(0, 0, dias),
	})
}

// consumir simula a otro proceso descontando stock de un lote entre la
// planificación y el commit de la venta bajo prueba.
func consumir(productoID, loteID string, n int64) func(*memStore) {
	return func(s *memStore) {
		s.lotes[loteID].StockLote -= n
		s.productos[productoID].Stock -= n
	}
}

func ventaContado(productoID string, cantidad int64, precio, abono string) appinv.VentaInput {
	return appinv.VentaInput{
		Lineas: []appinv.LineaVentaInput{
			{ProductoID: productoID, Cantidad: cantidad, PrecioUnitario: dec(precio)},
		},
		TipoPago:     entity.PagoContado,
		MetodoPago:   entity.MetodoEfectivo,
		MontoAbonado: dec(abono),
	}
}

// ── Registrar venta ──────────────────────────────────────────────────────

func TestRegistrarVenta_DescuentaLotesEnOrdenFIFO(t *testing.T) {
	e := nuevoEntorno(0)
	e.seedProducto("p1", 10, "2.00", "2.00")
	e.seedLote("l1", "p1", 0, 6, "2.00")
	e.seedLote("l2", "p1", 1, 4, "3.00")

	venta, err := e.uc.RegistrarVenta(context.Background(), ventaContado("p1", 7, "5.00", "35.00"))
	require.NoError(t, err)

	// El lote más viejo se agota antes de tocar el siguiente.
	assert.Equal(t, int64(0), e.store.lotes["l1"].StockLote)
	assert.Equal(t, int64(3), e.store.lotes["l2"].StockLote)
	assert.Equal(t, int64(3), e.store.productos["p1"].Stock)

	require.Len(t, venta.Productos, 1)
	linea := venta.Productos[0]
	// Costo consumido: 6*2.00 + 1*3.00 = 15.00 sobre 7 unidades.
	assert.True(t, linea.CostoUnitario.Equal(dec("2.14")), "costo unitario %s", linea.CostoUnitario)
	assert.True(t, linea.GananciaTotal.Equal(dec("20.00")), "ganancia %s", linea.GananciaTotal)
	assert.True(t, venta.Total.Equal(dec("35.00")))
	assert.Equal(t, entity.VentaActiva, venta.Estado)

	var salida *entity.Lote
	for _, l := range e.store.lotes {
		if l.Operacion == entity.OperacionSalida {
			salida = l
		}
	}
	require.NotNil(t, salida, "la venta debe dejar un asiento de salida")
	assert.Equal(t, int64(7), salida.Cantidad)
	assert.Equal(t, int64(10), salida.StockAnterior)
	assert.Equal(t, int64(3), salida.StockNuevo)
	assert.Contains(t, salida.Detalles, "Descuento de 2 lotes")
}

func TestRegistrarVenta_StockInsuficienteNoEscribeNada(t *testing.T) {
	e := nuevoEntorno(0)
	e.seedProducto("p1", 5, "2.00", "2.00")
	e.seedLote("l1", "p1", 0, 5, "2.00")

	_, err := e.uc.RegistrarVenta(context.Background(), ventaContado("p1", 8, "5.00", "40.00"))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(5), e.store.lotes["l1"].StockLote)
	assert.Equal(t, int64(5), e.store.productos["p1"].Stock)
	assert.Empty(t, e.store.ventas)
	assert.Equal(t, 0, e.tx.runs, "el rechazo ocurre en la planificación, sin abrir tx")
}

func TestRegistrarVenta_ReplanificaTrasConflictoConcurrente(t *testing.T) {
	e := nuevoEntorno(3)
	e.seedProducto("p1", 10, "2.00", "2.00")
	e.seedLote("l1", "p1", 0, 6, "2.00")
	e.seedLote("l2", "p1", 1, 4, "3.00")

	// Entre la planificación y el commit, otro proceso consume 3 del lote
	// más viejo. El plan original (5 de l1) ya no es válido.
	e.tx.antes = []func(*memStore){consumir("p1", "l1", 3)}

	venta, err := e.uc.RegistrarVenta(context.Background(), ventaContado("p1", 5, "5.00", "25.00"))
	require.NoError(t, err)
	assert.Equal(t, 2, e.tx.runs, "un intento fallido y una replanificación exitosa")

	// Replanificado: 3 de l1 (quedaban 3) y 2 de l2.
	assert.Equal(t, int64(0), e.store.lotes["l1"].StockLote)
	assert.Equal(t, int64(2), e.store.lotes["l2"].StockLote)
	assert.Equal(t, int64(2), e.store.productos["p1"].Stock)
	require.Len(t, venta.Productos, 1)
	// Costo: 3*2.00 + 2*3.00 = 12.00.
	assert.True(t, venta.Productos[0].GananciaTotal.Equal(dec("13.00")))
}

func TestRegistrarVenta_AgotaReintentosConConflictosRepetidos(t *testing.T) {
	e := nuevoEntorno(1)
	e.seedProducto("p1", 105, "2.00", "2.00")
	e.seedLote("l1", "p1", 0, 5, "2.00")
	e.seedLote("l2", "p1", 1, 100, "3.00")

	// Cada intento encuentra el lote más viejo con menos de lo planificado.
	e.tx.antes = []func(*memStore){
		consumir("p1", "l1", 1),
		consumir("p1", "l1", 1),
	}

	_, err := e.uc.RegistrarVenta(context.Background(), ventaContado("p1", 5, "5.00", "25.00"))
	require.ErrorIs(t, err, domain.ErrConcurrentModification)
	assert.Equal(t, 2, e.tx.runs)
	assert.Empty(t, e.store.ventas, "ningún intento debe dejar escrituras parciales")
}

func TestRegistrarVenta_LineasDelMismoProductoCompartenLosLotes(t *testing.T) {
	e := nuevoEntorno(0)
	e.seedProducto("p1", 10, "2.00", "2.00")
	e.seedLote("l1", "p1", 0, 6, "2.00")
	e.seedLote("l2", "p1", 1, 4, "3.00")

	input := appinv.VentaInput{
		Lineas: []appinv.LineaVentaInput{
			{ProductoID: "p1", Cantidad: 6, PrecioUnitario: dec("5.00")},
			{ProductoID: "p1", Cantidad: 3, PrecioUnitario: dec("4.00")},
		},
		TipoPago:     entity.PagoContado,
		MetodoPago:   entity.MetodoEfectivo,
		MontoAbonado: dec("42.00"),
	}
	venta, err := e.uc.RegistrarVenta(context.Background(), input)
	require.NoError(t, err)

	// La segunda línea planifica sobre lo que dejó la primera: l1 se agota
	// con la línea 1 y la línea 2 consume solo de l2.
	assert.Equal(t, int64(0), e.store.lotes["l1"].StockLote)
	assert.Equal(t, int64(1), e.store.lotes["l2"].StockLote)
	assert.Equal(t, int64(1), e.store.productos["p1"].Stock)

	require.Len(t, venta.Productos, 2)
	assert.True(t, venta.Productos[0].CostoUnitario.Equal(dec("2.00")))
	assert.True(t, venta.Productos[1].CostoUnitario.Equal(dec("3.00")))
}

func TestRegistrarVenta_DemandaCombinadaMayorAlStockFallaAlPlanificar(t *testing.T) {
	e := nuevoEntorno(3)
	e.seedProducto("p1", 10, "2.00", "2.00")
	e.seedLote("l1", "p1", 0, 10, "2.00")

	// Dos líneas del mismo producto que juntas piden más de lo que hay. El
	// fallo debe ser de stock, sin quemar reintentos ni abrir transacciones.
	input := appinv.VentaInput{
		Lineas: []appinv.LineaVentaInput{
			{ProductoID: "p1", Cantidad: 6, PrecioUnitario: dec("5.00")},
			{ProductoID: "p1", Cantidad: 6, PrecioUnitario: dec("5.00")},
		},
		TipoPago:     entity.PagoContado,
		MetodoPago:   entity.MetodoEfectivo,
		MontoAbonado: dec("60.00"),
	}
	_, err := e.uc.RegistrarVenta(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.NotErrorIs(t, err, domain.ErrConcurrentModification)
	assert.Equal(t, 0, e.tx.runs)

	var detalle *domain.InsufficientStockError
	require.ErrorAs(t, err, &detalle)
	assert.Equal(t, int64(4), detalle.Disponible)

	assert.Equal(t, int64(10), e.store.lotes["l1"].StockLote)
	assert.Empty(t, e.store.ventas)
}

func TestRegistrarVenta_ContadoDebeAbonarseCompleto(t *testing.T) {
	e := nuevoEntorno(0)
	e.seedProducto("p1", 10, "2.00", "2.00")
	e.seedLote("l1", "p1", 0, 10, "2.00")

	_, err := e.uc.RegistrarVenta(context.Background(), ventaContado("p1", 2, "5.00", "4.00"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistrarVenta_CreditoCalculaSaldoYEstado(t *testing.T) {
	e := nuevoEntorno(0)
	e.seedProducto("p1", 10, "2.00", "2.00")
	e.seedLote("l1", "p1", 0, 10, "2.00")

	input := appinv.VentaInput{
		Lineas: []appinv.LineaVentaInput{
			{ProductoID: "p1", Cantidad: 4, PrecioUnitario: dec("10.00")},
		},
		TipoPago:     entity.PagoCredito,
		MetodoPago:   entity.MetodoEfectivo,
		MontoAbonado: dec("15.00"),
	}
	venta, err := e.uc.RegistrarVenta(context.Background(), input)
	require.NoError(t, err)

	assert.True(t, venta.Total.Equal(dec("40.00")))
	assert.True(t, venta.SaldoPendiente.Equal(dec("25.00")))
	assert.Equal(t, entity.CreditoVigente, venta.EstadoCredito)
}

func TestRegistrarVenta_NrFacturaDuplicado(t *testing.T) {
	e := nuevoEntorno(0)
	e.seedProducto("p1", 10, "2.00", "2.00")
	e.seedLote("l1", "p1", 0, 10, "2.00")
	e.store.ventas["v0"] = &entity.Venta{ID: "v0", NrFactura: "F-001", Estado: entity.VentaActiva}

	input := ventaContado("p1", 1, "5.00", "5.00")
	input.NrFactura = "F-001"

	_, err := e.uc.RegistrarVenta(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, int64(10), e.store.productos["p1"].Stock, "la tx debe revertirse completa")
	assert.Equal(t, int64(10), e.store.lotes["l1"].StockLote)
}

func TestRegistrarVenta_TransferenciaRequiereBanco(t *testing.T) {
	e := nuevoEntorno(0)
	e.seedProducto("p1", 10, "2.00", "2.00")

	input := ventaContado("p1", 1, "5.00", "5.00")
	input.MetodoPago = entity.MetodoTransferencia

	_, err := e.uc.RegistrarVenta(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Registrar entrada ────────────────────────────────────────────────────

func TestRegistrarEntrada_RecalculaCostosYAbreLote(t *testing.T) {
	e := nuevoEntorno(0)
	// 10 compradas históricamente a 2.00 (2.50 con gastos), 4 en stock.
	e.seedProducto("p1", 4, "2.00", "2.50")
	e.store.productos["p1"].Cantidad = 10
	e.seedLote("l1", "p1", 0, 4, "2.50")

	entrada, err := e.uc.RegistrarEntrada(context.Background(), appinv.EntradaInput{
		ProductoID:    "p1",
		Cantidad:      10,
		CostoUnitario: dec("4.00"),
		Acarreo:       dec("5.00"),
		Flete:         dec("5.00"),
	})
	require.NoError(t, err)

	p := e.store.productos["p1"]
	// Promedio ponderado sobre cantidades acumuladas: (10*2 + 10*4)/20.
	assert.True(t, p.CostoInicial.Equal(dec("3.00")), "costo inicial %s", p.CostoInicial)
	// Costo del lote con gastos: (10*4 + 5 + 5)/10 = 5.00; promedio final
	// (10*2.50 + 10*5.00)/20 = 3.75.
	assert.True(t, p.CostoFinal.Equal(dec("3.75")), "costo final %s", p.CostoFinal)
	assert.Equal(t, int64(14), p.Stock)
	assert.Equal(t, int64(20), p.Cantidad)

	require.NotNil(t, entrada)
	assert.Equal(t, entity.OperacionEntrada, entrada.Operacion)
	assert.Equal(t, int64(10), entrada.StockLote)
	assert.True(t, entrada.CostoFinal.Equal(dec("5.00")))
	assert.Equal(t, int64(4), entrada.StockAnterior)
	assert.Equal(t, int64(14), entrada.StockNuevo)
}

func TestRegistrarEntrada_SinCostoNoTocaElPromedio(t *testing.T) {
	e := nuevoEntorno(0)
	e.seedProducto("p1", 5, "2.00", "2.50")
	e.seedLote("l1", "p1", 0, 5, "2.50")

	entrada, err := e.uc.RegistrarEntrada(context.Background(), appinv.EntradaInput{
		ProductoID: "p1",
		Cantidad:   3,
	})
	require.NoError(t, err)

	p := e.store.productos["p1"]
	assert.True(t, p.CostoInicial.Equal(dec("2.00")))
	assert.True(t, p.CostoFinal.Equal(dec("2.50")))
	assert.Equal(t, int64(8), p.Stock)
	// El lote hereda el costo vigente del producto.
	assert.True(t, entrada.CostoFinal.Equal(dec("2.50")))
}

func TestRegistrarEntrada_CantidadNoPositiva(t *testing.T) {
	e := nuevoEntorno(0)
	e.seedProducto("p1", 5, "2.00", "2.00")

	_, err := e.uc.RegistrarEntrada(context.Background(), appinv.EntradaInput{ProductoID: "p1", Cantidad: 0})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Anular venta ─────────────────────────────────────────────────────────

func TestAnularVenta_AcreditaAlLoteMasRecienteYReponeStock(t *testing.T) {
	e := nuevoEntorno(0)
	e.seedProducto("p1", 10, "2.00", "2.00")
	e.seedLote("l1", "p1", 0, 6, "2.00")
	e.seedLote("l2", "p1", 1, 4, "3.00")

	venta, err := e.uc.RegistrarVenta(context.Background(), ventaContado("p1", 7, "5.00", "35.00"))
	require.NoError(t, err)

	anulada, err := e.uc.AnularVenta(context.Background(), venta.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.VentaAnulada, anulada.Estado)

	// El crédito completo va al lote más reciente, no se reconstruye el
	// consumo FIFO original.
	assert.Equal(t, int64(0), e.store.lotes["l1"].StockLote)
	assert.Equal(t, int64(10), e.store.lotes["l2"].StockLote)
	assert.Equal(t, int64(10), e.store.productos["p1"].Stock)

	var devolucion *entity.Lote
	for _, l := range e.store.lotes {
		if l.Operacion == entity.OperacionEntrada {
			devolucion = l
		}
	}
	require.NotNil(t, devolucion, "la anulación debe dejar un asiento de devolución")
	assert.Equal(t, int64(7), devolucion.Cantidad)
	assert.Contains(t, devolucion.Detalles, venta.ID)
	assert.Equal(t, int64(0), devolucion.StockLote, "el crédito va al lote existente, no al asiento")
}

func TestAnularVenta_DosVecesDevuelveErrAlreadyVoided(t *testing.T) {
	e := nuevoEntorno(0)
	e.seedProducto("p1", 10, "2.00", "2.00")
	e.seedLote("l1", "p1", 0, 10, "2.00")

	venta, err := e.uc.RegistrarVenta(context.Background(), ventaContado("p1", 4, "5.00", "20.00"))
	require.NoError(t, err)

	_, err = e.uc.AnularVenta(context.Background(), venta.ID)
	require.NoError(t, err)

	_, err = e.uc.AnularVenta(context.Background(), venta.ID)
	require.ErrorIs(t, err, domain.ErrAlreadyVoided)
	assert.Equal(t, int64(10), e.store.productos["p1"].Stock, "la segunda anulación no repone de nuevo")
	assert.Equal(t, int64(10), e.store.lotes["l1"].StockLote)
}

func TestAnularVenta_SinLotesVivosCargaLaDevolucion(t *testing.T) {
	e := nuevoEntorno(0)
	e.seedProducto("p1", 0, "2.00", "2.00")
	e.store.ventas["v1"] = &entity.Venta{
		ID:     "v1",
		Estado: entity.VentaActiva,
		Productos: []entity.VentaProducto{
			{ProductoID: "p1", Cantidad: 3, CostoUnitario: dec("2.00")},
		},
	}

	_, err := e.uc.AnularVenta(context.Background(), "v1")
	require.NoError(t, err)

	assert.Equal(t, int64(3), e.store.productos["p1"].Stock)
	suma, _ := (&memLoteRepo{s: e.store}).SumaStockLotes(context.Background(), "p1")
	assert.Equal(t, int64(3), suma, "sin lote previo, el asiento de devolución carga el remanente")
}

// ── Consistencia ─────────────────────────────────────────────────────────

func TestVerificarConsistencia_ReportaDiscrepancias(t *testing.T) {
	e := nuevoEntorno(0)
	e.seedProducto("p1", 10, "2.00", "2.00")
	e.seedLote("l1", "p1", 0, 7, "2.00") // faltan 3 unidades en lotes
	e.seedProducto("p2", 5, "1.00", "1.00")
	e.seedLote("l2", "p2", 0, 5, "1.00")

	discrepancias, err := e.uc.VerificarConsistencia(context.Background())
	require.NoError(t, err)
	require.Len(t, discrepancias, 1)
	assert.Equal(t, "p1", discrepancias[0].ProductoID)
	assert.Equal(t, int64(10), discrepancias[0].Stock)
	assert.Equal(t, int64(7), discrepancias[0].SumaLotes)
}

// ── Listados ─────────────────────────────────────────────────────────────

func TestListarLotes_ProductoInexistente(t *testing.T) {
	e := nuevoEntorno(0)

	_, err := e.uc.ListarLotes(context.Background(), "no-existe")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListarHistorial_FiltraPorOperacion(t *testing.T) {
	e := nuevoEntorno(0)
	e.seedProducto("p1", 10, "2.00", "2.00")
	e.seedLote("l1", "p1", 0, 10, "2.00")

	_, err := e.uc.RegistrarVenta(context.Background(), ventaContado("p1", 4, "5.00", "20.00"))
	require.NoError(t, err)

	salidas, total, _, err := e.uc.ListarHistorial(context.Background(), repository.HistorialFiltro{
		Operacion: entity.OperacionSalida,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, salidas, 1)
	assert.Equal(t, int64(4), salidas[0].Cantidad)
}
