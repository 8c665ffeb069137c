package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operaciones del ledger de lotes.
const (
	OperacionCreacion    = "creacion"
	OperacionEntrada     = "entrada"
	OperacionSalida      = "salida"
	OperacionAjuste      = "ajuste"
	OperacionEliminacion = "eliminacion"
)

// OperacionValida indica si op es una operación conocida del ledger.
func OperacionValida(op string) bool {
	switch op {
	case OperacionCreacion, OperacionEntrada, OperacionSalida, OperacionAjuste, OperacionEliminacion:
		return true
	}
	return false
}

// Lote es un asiento del ledger de inventario (colección historial).
// Para creacion/entrada representa además un lote de costo: StockLote arranca
// en la cantidad recibida y solo decrece cuando ventas posteriores lo consumen
// (o crece al acreditar una anulación). Los asientos salida/ajuste/eliminacion
// son inmutables una vez escritos.
type Lote struct {
	ID             string
	Secuencia      int64           // orden de inserción; desempate FIFO ante fechas iguales
	ProductoID     string
	NombreProducto string          // denormalizado para lectura del historial
	CodigoProducto string
	Operacion      string
	Cantidad       int64           // magnitud del movimiento (entrada/salida/ajuste)
	StockAnterior  int64           // stock del producto antes del movimiento
	StockNuevo     int64           // stock del producto después del movimiento
	CostoFinal     decimal.Decimal // costo unitario landed del lote (creacion/entrada)
	StockLote      int64           // remanente del lote (creacion/entrada)
	Fecha          time.Time       // clave de orden FIFO
	Detalles       string
}

// EsLote indica si el asiento representa un lote de costo consumible.
func (l *Lote) EsLote() bool {
	return l.Operacion == OperacionCreacion || l.Operacion == OperacionEntrada
}
