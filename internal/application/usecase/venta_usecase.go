package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dsrcomercial/backoffice-api/internal/domain"
	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
	"github.com/dsrcomercial/backoffice-api/internal/domain/repository"
)

// VentaUsecase cubre las consultas de ventas y la gestión de créditos. El
// registro y la anulación viven en el caso de uso de inventario porque tocan
// el ledger.
type VentaUsecase struct {
	ventaRepo repository.VentaRepository
}

func NewVentaUsecase(ventaRepo repository.VentaRepository) *VentaUsecase {
	return &VentaUsecase{ventaRepo: ventaRepo}
}

func (uc *VentaUsecase) Get(ctx context.Context, id string) (*entity.Venta, error) {
	return uc.ventaRepo.GetByID(ctx, id)
}

func (uc *VentaUsecase) Listar(ctx context.Context, f repository.VentaFiltro) ([]*entity.Venta, int, *repository.VentaTotales, error) {
	ventas, total, err := uc.ventaRepo.List(ctx, f)
	if err != nil {
		return nil, 0, nil, err
	}
	totales, err := uc.ventaRepo.Totales(ctx, f)
	if err != nil {
		return nil, 0, nil, err
	}
	return ventas, total, totales, nil
}

// RegistrarAbono aplica un pago parcial a una venta a crédito. Cuando el
// saldo llega a cero el crédito pasa a pagado.
func (uc *VentaUsecase) RegistrarAbono(ctx context.Context, ventaID string, monto decimal.Decimal) (*entity.Venta, error) {
	if !monto.IsPositive() {
		return nil, fmt.Errorf("%w: el abono debe ser positivo", domain.ErrInvalidInput)
	}

	venta, err := uc.ventaRepo.GetByID(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	if venta.TipoPago != entity.PagoCredito {
		return nil, fmt.Errorf("%w: la venta %s no es a crédito", domain.ErrInvalidInput, ventaID)
	}
	if venta.Estado != entity.VentaActiva {
		return nil, fmt.Errorf("%w: la venta %s está %s", domain.ErrInvalidInput, ventaID, venta.Estado)
	}
	if monto.GreaterThan(venta.SaldoPendiente) {
		return nil, fmt.Errorf("%w: el abono %s excede el saldo %s", domain.ErrInvalidInput, monto, venta.SaldoPendiente)
	}

	venta.MontoAbonado = venta.MontoAbonado.Add(monto)
	venta.SaldoPendiente = venta.SaldoPendiente.Sub(monto)
	if venta.SaldoPendiente.IsZero() {
		venta.EstadoCredito = entity.CreditoPagado
	}
	venta.UpdatedAt = time.Now()

	if err := uc.ventaRepo.UpdateAbono(ctx, venta); err != nil {
		return nil, err
	}
	return venta, nil
}

// MarcarVencidas pasa a vencido todo crédito vigente cuya fecha de
// vencimiento ya pasó. Devuelve cuántas ventas cambiaron.
func (uc *VentaUsecase) MarcarVencidas(ctx context.Context, ahora time.Time) (int, error) {
	vigentes, _, err := uc.ventaRepo.List(ctx, repository.VentaFiltro{
		TipoPago:      entity.PagoCredito,
		Estado:        entity.VentaActiva,
		EstadoCredito: entity.CreditoVigente,
	})
	if err != nil {
		return 0, err
	}

	cambiadas := 0
	for _, v := range vigentes {
		if v.FechaVencimiento == nil || !v.FechaVencimiento.Before(ahora) {
			continue
		}
		v.EstadoCredito = entity.CreditoVencido
		if err := uc.ventaRepo.UpdateAbono(ctx, v); err != nil {
			return cambiadas, err
		}
		cambiadas++
	}
	return cambiadas, nil
}

// Eliminar borra una venta ya anulada o devuelta. Las activas deben anularse
// primero para que el stock vuelva al ledger.
func (uc *VentaUsecase) Eliminar(ctx context.Context, id string) error {
	venta, err := uc.ventaRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if venta.Estado == entity.VentaActiva {
		return fmt.Errorf("%w: la venta activa debe anularse antes de borrarse", domain.ErrInvalidInput)
	}
	return uc.ventaRepo.Delete(ctx, id)
}
