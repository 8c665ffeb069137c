package inventory

import (
	"context"

	"github.com/dsrcomercial/backoffice-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la frontera de atomicidad del ledger:
// descuentos de lotes, asiento agregado y stock del producto se confirman
// o revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		loteRepo repository.LoteRepository,
		productoRepo repository.ProductoRepository,
		ventaRepo repository.VentaRepository,
	) error) error
}
