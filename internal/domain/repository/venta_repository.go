package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
)

// VentaFiltro filtros del listado de ventas.
type VentaFiltro struct {
	ClienteID     string
	Estado        string
	EstadoCredito string
	TipoPago      string
	Desde         *time.Time
	Hasta         *time.Time
	ConSaldo      *bool // true: saldoPendiente > 0; false: == 0
	Limit         int
	Offset        int
}

// VentaTotales agregados sobre el filtro actual.
type VentaTotales struct {
	TotalVentas         decimal.Decimal
	TotalSaldoPendiente decimal.Decimal
}

// VentaRepository define el puerto de persistencia para Venta y sus líneas.
type VentaRepository interface {
	Create(ctx context.Context, v *entity.Venta) error
	GetByID(ctx context.Context, id string) (*entity.Venta, error)
	// GetForUpdate bloquea la venta (anulación concurrente de la misma venta).
	GetForUpdate(ctx context.Context, id string) (*entity.Venta, error)
	List(ctx context.Context, f VentaFiltro) ([]*entity.Venta, int, error)
	Totales(ctx context.Context, f VentaFiltro) (*VentaTotales, error)
	// UpdateAbono actualiza montoAbonado, saldoPendiente, estadoCredito y fecha.
	UpdateAbono(ctx context.Context, v *entity.Venta) error
	UpdateEstado(ctx context.Context, id, estado string) error
	Delete(ctx context.Context, id string) error
	ExisteNrFactura(ctx context.Context, nr string) (bool, error)
}
