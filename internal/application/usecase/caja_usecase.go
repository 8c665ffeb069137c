package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dsrcomercial/backoffice-api/internal/domain"
	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
	"github.com/dsrcomercial/backoffice-api/internal/domain/repository"
)

// CajaInput datos de un movimiento de caja.
type CajaInput struct {
	Fecha      time.Time
	Concepto   string
	Moneda     string
	Entrada    decimal.Decimal
	Salida     decimal.Decimal
	TasaCambio decimal.Decimal
}

// CajaUsecase registra movimientos de caja en USD y Bs. Cada asiento guarda
// el saldo de su moneda tras aplicarlo; el saldo vigente siempre se recalcula
// desde la suma, así una edición histórica no lo desincroniza.
type CajaUsecase struct {
	cajaRepo repository.CajaRepository
	tasas    TasaCambioStore
}

// TasaCambioStore guarda la última tasa de cambio usada, para precargarla en
// el siguiente movimiento.
type TasaCambioStore interface {
	Guardar(ctx context.Context, tasa decimal.Decimal) error
	Ultima(ctx context.Context) (decimal.Decimal, error)
}

func NewCajaUsecase(cajaRepo repository.CajaRepository, tasas TasaCambioStore) *CajaUsecase {
	return &CajaUsecase{cajaRepo: cajaRepo, tasas: tasas}
}

func (uc *CajaUsecase) validar(input CajaInput) error {
	if !entity.MonedaValida(input.Moneda) {
		return fmt.Errorf("%w: moneda %q", domain.ErrInvalidInput, input.Moneda)
	}
	if input.Entrada.IsNegative() || input.Salida.IsNegative() {
		return fmt.Errorf("%w: entrada y salida no pueden ser negativas", domain.ErrInvalidInput)
	}
	if input.Entrada.IsZero() && input.Salida.IsZero() {
		return fmt.Errorf("%w: el movimiento no tiene monto", domain.ErrInvalidInput)
	}
	return nil
}

// Registrar agrega un movimiento con su saldo corrido y persiste la tasa de
// cambio usada como última conocida.
func (uc *CajaUsecase) Registrar(ctx context.Context, input CajaInput) (*entity.CajaTransaccion, error) {
	if err := uc.validar(input); err != nil {
		return nil, err
	}

	saldos, err := uc.cajaRepo.Saldos(ctx)
	if err != nil {
		return nil, err
	}
	anterior := saldos.USD
	if input.Moneda == entity.MonedaBs {
		anterior = saldos.Bs
	}

	fecha := input.Fecha
	if fecha.IsZero() {
		fecha = time.Now()
	}
	t := &entity.CajaTransaccion{
		ID:         uuid.NewString(),
		Fecha:      fecha,
		Concepto:   input.Concepto,
		Moneda:     input.Moneda,
		Entrada:    input.Entrada,
		Salida:     input.Salida,
		Saldo:      anterior.Add(input.Entrada).Sub(input.Salida),
		TasaCambio: input.TasaCambio,
		CreatedAt:  time.Now(),
	}
	if err := uc.cajaRepo.Create(ctx, t); err != nil {
		return nil, err
	}

	if uc.tasas != nil && input.TasaCambio.IsPositive() {
		if err := uc.tasas.Guardar(ctx, input.TasaCambio); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (uc *CajaUsecase) Actualizar(ctx context.Context, id string, input CajaInput) (*entity.CajaTransaccion, error) {
	if err := uc.validar(input); err != nil {
		return nil, err
	}
	t, err := uc.cajaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	t.Fecha = input.Fecha
	t.Concepto = input.Concepto
	t.Moneda = input.Moneda
	t.Entrada = input.Entrada
	t.Salida = input.Salida
	t.TasaCambio = input.TasaCambio

	if err := uc.cajaRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *CajaUsecase) Eliminar(ctx context.Context, id string) error {
	if _, err := uc.cajaRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.cajaRepo.Delete(ctx, id)
}

func (uc *CajaUsecase) Listar(ctx context.Context, limit, offset int) ([]*entity.CajaTransaccion, int, error) {
	return uc.cajaRepo.List(ctx, limit, offset)
}

// Saldos devuelve los saldos vigentes por moneda junto con la última tasa de
// cambio registrada.
func (uc *CajaUsecase) Saldos(ctx context.Context) (*entity.CajaSaldos, decimal.Decimal, error) {
	saldos, err := uc.cajaRepo.Saldos(ctx)
	if err != nil {
		return nil, decimal.Zero, err
	}
	tasa := decimal.Zero
	if uc.tasas != nil {
		tasa, err = uc.tasas.Ultima(ctx)
		if err != nil {
			return nil, decimal.Zero, err
		}
	}
	return saldos, tasa, nil
}
