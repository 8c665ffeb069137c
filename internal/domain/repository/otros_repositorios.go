package repository

import (
	"context"
	"time"

	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
)

// ListaPrecioRepository una fila de precios por producto.
type ListaPrecioRepository interface {
	Create(ctx context.Context, lp *entity.ListaPrecio) error
	GetByID(ctx context.Context, id string) (*entity.ListaPrecio, error)
	GetByProducto(ctx context.Context, productoID string) (*entity.ListaPrecio, error)
	Update(ctx context.Context, lp *entity.ListaPrecio) error
	List(ctx context.Context, busqueda string, limit, offset int) ([]*entity.ListaPrecio, int, error)
	Delete(ctx context.Context, id string) error
}

// GastoFiltro filtros del listado de gastos.
type GastoFiltro struct {
	Categoria string
	Desde     *time.Time
	Hasta     *time.Time
	Limit     int
	Offset    int
}

// GastoRepository persistencia de gastos.
type GastoRepository interface {
	Create(ctx context.Context, g *entity.Gasto) error
	GetByID(ctx context.Context, id string) (*entity.Gasto, error)
	Update(ctx context.Context, g *entity.Gasto) error
	List(ctx context.Context, f GastoFiltro) ([]*entity.Gasto, int, error)
	Delete(ctx context.Context, id string) error
}

// FacturaPendienteFiltro filtros de cuentas por pagar.
type FacturaPendienteFiltro struct {
	Estado   string // pendientes, pagadas, parciales
	Busqueda string
	Desde    *time.Time
	Hasta    *time.Time
	Limit    int
	Offset   int
}

// FacturaPendienteRepository persistencia de facturas pendientes.
type FacturaPendienteRepository interface {
	Create(ctx context.Context, f *entity.FacturaPendiente) error
	GetByID(ctx context.Context, id string) (*entity.FacturaPendiente, error)
	Update(ctx context.Context, f *entity.FacturaPendiente) error
	List(ctx context.Context, filtro FacturaPendienteFiltro) ([]*entity.FacturaPendiente, int, error)
	Delete(ctx context.Context, id string) error
}

// CajaRepository asientos de caja con saldo corrido por moneda.
type CajaRepository interface {
	Create(ctx context.Context, t *entity.CajaTransaccion) error
	GetByID(ctx context.Context, id string) (*entity.CajaTransaccion, error)
	Update(ctx context.Context, t *entity.CajaTransaccion) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*entity.CajaTransaccion, int, error)
	// Saldos recalcula los saldos vigentes por moneda (SUM entrada - salida).
	Saldos(ctx context.Context) (*entity.CajaSaldos, error)
}

// UsuarioRepository persistencia del usuario de la aplicación.
type UsuarioRepository interface {
	Create(ctx context.Context, u *entity.Usuario) error
	GetByUsername(ctx context.Context, username string) (*entity.Usuario, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
