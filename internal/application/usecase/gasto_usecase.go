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

// GastoInput datos de un gasto.
type GastoInput struct {
	Descripcion string
	Monto       decimal.Decimal
	Categoria   string
	Fecha       time.Time
}

// GastoUsecase CRUD de gastos empresariales y personales.
type GastoUsecase struct {
	gastoRepo repository.GastoRepository
}

func NewGastoUsecase(gastoRepo repository.GastoRepository) *GastoUsecase {
	return &GastoUsecase{gastoRepo: gastoRepo}
}

func (uc *GastoUsecase) validar(input GastoInput) error {
	if strings.TrimSpace(input.Descripcion) == "" {
		return fmt.Errorf("%w: la descripción es obligatoria", domain.ErrInvalidInput)
	}
	if !input.Monto.IsPositive() {
		return fmt.Errorf("%w: el monto debe ser positivo", domain.ErrInvalidInput)
	}
	if input.Categoria != entity.GastoEmpresarial && input.Categoria != entity.GastoPersonal {
		return fmt.Errorf("%w: categoría %q", domain.ErrInvalidInput, input.Categoria)
	}
	return nil
}

func (uc *GastoUsecase) Crear(ctx context.Context, input GastoInput) (*entity.Gasto, error) {
	if err := uc.validar(input); err != nil {
		return nil, err
	}
	ahora := time.Now()
	fecha := input.Fecha
	if fecha.IsZero() {
		fecha = ahora
	}
	gasto := &entity.Gasto{
		ID:          uuid.NewString(),
		Descripcion: strings.TrimSpace(input.Descripcion),
		Monto:       input.Monto,
		Categoria:   input.Categoria,
		Fecha:       fecha,
		CreatedAt:   ahora,
		UpdatedAt:   ahora,
	}
	if err := uc.gastoRepo.Create(ctx, gasto); err != nil {
		return nil, err
	}
	return gasto, nil
}

func (uc *GastoUsecase) Actualizar(ctx context.Context, id string, input GastoInput) (*entity.Gasto, error) {
	if err := uc.validar(input); err != nil {
		return nil, err
	}
	gasto, err := uc.gastoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	gasto.Descripcion = strings.TrimSpace(input.Descripcion)
	gasto.Monto = input.Monto
	gasto.Categoria = input.Categoria
	if !input.Fecha.IsZero() {
		gasto.Fecha = input.Fecha
	}
	gasto.UpdatedAt = time.Now()

	if err := uc.gastoRepo.Update(ctx, gasto); err != nil {
		return nil, err
	}
	return gasto, nil
}

func (uc *GastoUsecase) Get(ctx context.Context, id string) (*entity.Gasto, error) {
	return uc.gastoRepo.GetByID(ctx, id)
}

func (uc *GastoUsecase) Listar(ctx context.Context, f repository.GastoFiltro) ([]*entity.Gasto, int, error) {
	return uc.gastoRepo.List(ctx, f)
}

func (uc *GastoUsecase) Eliminar(ctx context.Context, id string) error {
	if _, err := uc.gastoRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.gastoRepo.Delete(ctx, id)
}
