package repository

import (
	"context"
	"time"

	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
)

// HistorialFiltro filtros de consulta del ledger.
type HistorialFiltro struct {
	Operacion  string
	ProductoID string
	Busqueda   string // nombre o código del producto
	Desde      *time.Time
	Hasta      *time.Time
	Limit      int
	Offset     int
}

// HistorialTotales agregados del ledger para la vista de historial.
type HistorialTotales struct {
	TotalCantidad  int64
	TotalStockLote int64
}

// LoteRepository define el puerto de persistencia del ledger de lotes.
// Los asientos son append-mostly: solo StockLote de creacion/entrada se muta
// después de escrito (descuentos de ventas y créditos de anulaciones).
type LoteRepository interface {
	Create(ctx context.Context, l *entity.Lote) error
	GetByID(ctx context.Context, id string) (*entity.Lote, error)
	// LotesAbiertos devuelve creacion/entrada con stockLote > 0, fecha asc,
	// desempate por secuencia (orden FIFO determinista).
	LotesAbiertos(ctx context.Context, productoID string) ([]entity.Lote, error)
	// LotesForUpdate relee y bloquea los lotes indicados dentro de la tx actual.
	LotesForUpdate(ctx context.Context, ids []string) (map[string]*entity.Lote, error)
	// DescontarStockLote resta cantidad del remanente del lote (floor 0 lo
	// garantiza el commit, que valida antes de descontar).
	DescontarStockLote(ctx context.Context, id string, cantidad int64) error
	// AcreditarStockLote suma cantidad al remanente (anulación de venta).
	AcreditarStockLote(ctx context.Context, id string, cantidad int64) error
	// LoteMasReciente devuelve el último lote creacion/entrada del producto.
	LoteMasReciente(ctx context.Context, productoID string) (*entity.Lote, error)
	// SumaStockLotes suma el remanente de todos los lotes abiertos del producto.
	SumaStockLotes(ctx context.Context, productoID string) (int64, error)
	List(ctx context.Context, f HistorialFiltro) ([]*entity.Lote, int, error)
	Totales(ctx context.Context, f HistorialFiltro) (*HistorialTotales, error)
}
