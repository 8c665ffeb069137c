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

// ListaPrecioInput niveles de precio de venta de un producto.
type ListaPrecioInput struct {
	ProductoID      string
	Precio1         decimal.Decimal
	Precio2         decimal.Decimal
	Precio3         decimal.Decimal
	PrecioMayorista decimal.Decimal
	Descripcion     string
	Activo          bool
}

// ListaPrecioUsecase mantiene la fila de precios por producto (a lo sumo una).
type ListaPrecioUsecase struct {
	listaRepo    repository.ListaPrecioRepository
	productoRepo repository.ProductoRepository
}

func NewListaPrecioUsecase(
	listaRepo repository.ListaPrecioRepository,
	productoRepo repository.ProductoRepository,
) *ListaPrecioUsecase {
	return &ListaPrecioUsecase{listaRepo: listaRepo, productoRepo: productoRepo}
}

func (uc *ListaPrecioUsecase) validar(input ListaPrecioInput) error {
	for _, p := range []decimal.Decimal{input.Precio1, input.Precio2, input.Precio3, input.PrecioMayorista} {
		if p.IsNegative() {
			return fmt.Errorf("%w: los precios no pueden ser negativos", domain.ErrInvalidInput)
		}
	}
	return nil
}

func (uc *ListaPrecioUsecase) Crear(ctx context.Context, input ListaPrecioInput) (*entity.ListaPrecio, error) {
	if err := uc.validar(input); err != nil {
		return nil, err
	}
	producto, err := uc.productoRepo.GetByID(ctx, input.ProductoID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.listaRepo.GetByProducto(ctx, input.ProductoID); err == nil {
		return nil, fmt.Errorf("%w: el producto %s ya tiene lista de precios", domain.ErrDuplicate, producto.Nombre)
	}

	ahora := time.Now()
	lp := &entity.ListaPrecio{
		ID:              uuid.NewString(),
		ProductoID:      producto.ID,
		NombreProducto:  producto.Nombre,
		CodigoProducto:  producto.Codigo,
		Precio1:         input.Precio1,
		Precio2:         input.Precio2,
		Precio3:         input.Precio3,
		PrecioMayorista: input.PrecioMayorista,
		Descripcion:     input.Descripcion,
		Activo:          input.Activo,
		CreatedAt:       ahora,
		UpdatedAt:       ahora,
	}
	if err := uc.listaRepo.Create(ctx, lp); err != nil {
		return nil, err
	}
	return lp, nil
}

func (uc *ListaPrecioUsecase) Actualizar(ctx context.Context, id string, input ListaPrecioInput) (*entity.ListaPrecio, error) {
	if err := uc.validar(input); err != nil {
		return nil, err
	}
	lp, err := uc.listaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lp.Precio1 = input.Precio1
	lp.Precio2 = input.Precio2
	lp.Precio3 = input.Precio3
	lp.PrecioMayorista = input.PrecioMayorista
	lp.Descripcion = input.Descripcion
	lp.Activo = input.Activo
	lp.UpdatedAt = time.Now()

	if err := uc.listaRepo.Update(ctx, lp); err != nil {
		return nil, err
	}
	return lp, nil
}

func (uc *ListaPrecioUsecase) Get(ctx context.Context, id string) (*entity.ListaPrecio, error) {
	return uc.listaRepo.GetByID(ctx, id)
}

func (uc *ListaPrecioUsecase) GetPorProducto(ctx context.Context, productoID string) (*entity.ListaPrecio, error) {
	return uc.listaRepo.GetByProducto(ctx, productoID)
}

func (uc *ListaPrecioUsecase) Listar(ctx context.Context, busqueda string, limit, offset int) ([]*entity.ListaPrecio, int, error) {
	return uc.listaRepo.List(ctx, busqueda, limit, offset)
}

func (uc *ListaPrecioUsecase) Eliminar(ctx context.Context, id string) error {
	if _, err := uc.listaRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.listaRepo.Delete(ctx, id)
}
