package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dsrcomercial/backoffice-api/internal/domain"
	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
	"github.com/dsrcomercial/backoffice-api/internal/domain/repository"
)

// FacturaPendienteInput datos de una cuenta por pagar.
type FacturaPendienteInput struct {
	Fecha    time.Time
	Concepto string
	Monto    decimal.Decimal
	Abono    decimal.Decimal
}

// FacturaPendienteUsecase cuentas por pagar con saldo derivado.
type FacturaPendienteUsecase struct {
	facturaRepo repository.FacturaPendienteRepository
}

func NewFacturaPendienteUsecase(facturaRepo repository.FacturaPendienteRepository) *FacturaPendienteUsecase {
	return &FacturaPendienteUsecase{facturaRepo: facturaRepo}
}

func (uc *FacturaPendienteUsecase) validar(input FacturaPendienteInput) error {
	if strings.TrimSpace(input.Concepto) == "" {
		return fmt.Errorf("%w: el concepto es obligatorio", domain.ErrInvalidInput)
	}
	if !input.Monto.IsPositive() {
		return fmt.Errorf("%w: el monto debe ser positivo", domain.ErrInvalidInput)
	}
	if input.Abono.IsNegative() {
		return fmt.Errorf("%w: el abono no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

func (uc *FacturaPendienteUsecase) Crear(ctx context.Context, input FacturaPendienteInput) (*entity.FacturaPendiente, error) {
	if err := uc.validar(input); err != nil {
		return nil, err
	}
	ahora := time.Now()
	fecha := input.Fecha
	if fecha.IsZero() {
		fecha = ahora
	}
	f := &entity.FacturaPendiente{
		ID:        uuid.NewString(),
		Fecha:     fecha,
		Concepto:  strings.TrimSpace(input.Concepto),
		Monto:     input.Monto,
		Abono:     input.Abono,
		CreatedAt: ahora,
		UpdatedAt: ahora,
	}
	f.RecalcularSaldo()
	if err := uc.facturaRepo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (uc *FacturaPendienteUsecase) Actualizar(ctx context.Context, id string, input FacturaPendienteInput) (*entity.FacturaPendiente, error) {
	if err := uc.validar(input); err != nil {
		return nil, err
	}
	f, err := uc.facturaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !input.Fecha.IsZero() {
		f.Fecha = input.Fecha
	}
	f.Concepto = strings.TrimSpace(input.Concepto)
	f.Monto = input.Monto
	f.Abono = input.Abono
	f.RecalcularSaldo()
	f.UpdatedAt = time.Now()

	if err := uc.facturaRepo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Abonar suma un pago parcial al abono acumulado de la factura.
func (uc *FacturaPendienteUsecase) Abonar(ctx context.Context, id string, monto decimal.Decimal) (*entity.FacturaPendiente, error) {
	if !monto.IsPositive() {
		return nil, fmt.Errorf("%w: el abono debe ser positivo", domain.ErrInvalidInput)
	}
	f, err := uc.facturaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	f.Abono = f.Abono.Add(monto)
	f.RecalcularSaldo()
	f.UpdatedAt = time.Now()

	if err := uc.facturaRepo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (uc *FacturaPendienteUsecase) Get(ctx context.Context, id string) (*entity.FacturaPendiente, error) {
	return uc.facturaRepo.GetByID(ctx, id)
}

func (uc *FacturaPendienteUsecase) Listar(ctx context.Context, f repository.FacturaPendienteFiltro) ([]*entity.FacturaPendiente, int, error) {
	return uc.facturaRepo.List(ctx, f)
}

func (uc *FacturaPendienteUsecase) Eliminar(ctx context.Context, id string) error {
	if _, err := uc.facturaRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.facturaRepo.Delete(ctx, id)
}
