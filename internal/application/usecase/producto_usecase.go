package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinv "github.com/dsrcomercial/backoffice-api/internal/application/inventory"
	"github.com/dsrcomercial/backoffice-api/internal/domain"
	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
	"github.com/dsrcomercial/backoffice-api/internal/domain/inventory"
	"github.com/dsrcomercial/backoffice-api/internal/domain/repository"
)

// ProductoInput datos para crear o actualizar un producto.
type ProductoInput struct {
	Codigo       string
	Nombre       string
	Proveedor    string
	CostoInicial decimal.Decimal
	Acarreo      decimal.Decimal
	Flete        decimal.Decimal
	Cantidad     int64
	FechaIngreso time.Time
}

// ProductoUsecase gestiona el ciclo de vida del producto. Toda mutación de
// stock pasa por el ledger: el alta abre el lote inicial, el ajuste concilia
// lotes y la baja deja el asiento de eliminación.
type ProductoUsecase struct {
	txRunner     appinv.TxRunner
	productoRepo repository.ProductoRepository
	loteRepo     repository.LoteRepository
}

func NewProductoUsecase(
	txRunner appinv.TxRunner,
	productoRepo repository.ProductoRepository,
	loteRepo repository.LoteRepository,
) *ProductoUsecase {
	return &ProductoUsecase{txRunner: txRunner, productoRepo: productoRepo, loteRepo: loteRepo}
}

func (uc *ProductoUsecase) validar(input ProductoInput) error {
	if strings.TrimSpace(input.Codigo) == "" || strings.TrimSpace(input.Nombre) == "" {
		return fmt.Errorf("%w: código y nombre son obligatorios", domain.ErrInvalidInput)
	}
	if input.Cantidad < 0 {
		return fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	}
	if input.CostoInicial.IsNegative() || input.Acarreo.IsNegative() || input.Flete.IsNegative() {
		return fmt.Errorf("%w: los costos no pueden ser negativos", domain.ErrInvalidInput)
	}
	return nil
}

// Crear da de alta el producto y abre su lote inicial en la misma tx.
func (uc *ProductoUsecase) Crear(ctx context.Context, input ProductoInput) (*entity.Producto, error) {
	if err := uc.validar(input); err != nil {
		return nil, err
	}

	codigo := strings.TrimSpace(input.Codigo)
	if _, err := uc.productoRepo.GetByCodigo(ctx, codigo); err == nil {
		return nil, fmt.Errorf("%w: ya existe un producto con código %s", domain.ErrDuplicate, codigo)
	}

	ahora := time.Now()
	fechaIngreso := input.FechaIngreso
	if fechaIngreso.IsZero() {
		fechaIngreso = ahora
	}
	costoFinal := input.CostoInicial
	if input.Cantidad > 0 {
		costoFinal = inventory.CostoUnitarioLote(input.Cantidad, input.CostoInicial, input.Acarreo, input.Flete)
	}

	producto := &entity.Producto{
		ID:           uuid.NewString(),
		Codigo:       codigo,
		Nombre:       strings.TrimSpace(input.Nombre),
		Proveedor:    strings.TrimSpace(input.Proveedor),
		CostoInicial: input.CostoInicial,
		Acarreo:      input.Acarreo,
		Flete:        input.Flete,
		CostoFinal:   costoFinal,
		Cantidad:     input.Cantidad,
		Stock:        input.Cantidad,
		FechaIngreso: fechaIngreso,
		CreatedAt:    ahora,
		UpdatedAt:    ahora,
	}

	err := uc.txRunner.Run(ctx, func(
		loteRepo repository.LoteRepository,
		productoRepo repository.ProductoRepository,
		_ repository.VentaRepository,
	) error {
		if err := productoRepo.Create(ctx, producto); err != nil {
			return err
		}
		inicial := &entity.Lote{
			ID:             uuid.NewString(),
			ProductoID:     producto.ID,
			NombreProducto: producto.Nombre,
			CodigoProducto: producto.Codigo,
			Operacion:      entity.OperacionCreacion,
			Cantidad:       producto.Cantidad,
			StockAnterior:  0,
			StockNuevo:     producto.Stock,
			CostoFinal:     producto.CostoFinal,
			StockLote:      producto.Cantidad,
			Fecha:          fechaIngreso,
			Detalles:       "Creación del producto",
		}
		return loteRepo.Create(ctx, inicial)
	})
	if err != nil {
		return nil, err
	}
	return producto, nil
}

// Actualizar modifica los datos del producto sin tocar stock. Si cambian los
// costos base se recalcula el costo vigente con los gastos del lote.
func (uc *ProductoUsecase) Actualizar(ctx context.Context, id string, input ProductoInput) (*entity.Producto, error) {
	if err := uc.validar(input); err != nil {
		return nil, err
	}

	producto, err := uc.productoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	codigo := strings.TrimSpace(input.Codigo)
	if codigo != producto.Codigo {
		if _, err := uc.productoRepo.GetByCodigo(ctx, codigo); err == nil {
			return nil, fmt.Errorf("%w: ya existe un producto con código %s", domain.ErrDuplicate, codigo)
		}
	}

	producto.Codigo = codigo
	producto.Nombre = strings.TrimSpace(input.Nombre)
	producto.Proveedor = strings.TrimSpace(input.Proveedor)
	producto.CostoInicial = input.CostoInicial
	producto.Acarreo = input.Acarreo
	producto.Flete = input.Flete
	if producto.Cantidad > 0 {
		producto.CostoFinal = inventory.CostoUnitarioLote(
			producto.Cantidad, producto.CostoInicial, producto.Acarreo, producto.Flete)
	}
	producto.UpdatedAt = time.Now()

	if err := uc.productoRepo.Update(ctx, producto); err != nil {
		return nil, err
	}
	return producto, nil
}

// AjustarStock fija el stock en nuevoStock y deja el asiento de ajuste. El
// delta se concilia contra los lotes: un faltante se descuenta en orden FIFO
// y un sobrante se acredita al lote más reciente, para que la suma de lotes
// siga igualando al stock.
func (uc *ProductoUsecase) AjustarStock(ctx context.Context, id string, nuevoStock int64, motivo string) (*entity.Producto, error) {
	if nuevoStock < 0 {
		return nil, fmt.Errorf("%w: el stock no puede quedar negativo", domain.ErrInvalidInput)
	}

	var ajustado *entity.Producto
	err := uc.txRunner.Run(ctx, func(
		loteRepo repository.LoteRepository,
		productoRepo repository.ProductoRepository,
		_ repository.VentaRepository,
	) error {
		producto, err := productoRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		delta := nuevoStock - producto.Stock
		if delta == 0 {
			ajustado = producto
			return nil
		}

		asiento := &entity.Lote{
			ID:             uuid.NewString(),
			ProductoID:     producto.ID,
			NombreProducto: producto.Nombre,
			CodigoProducto: producto.Codigo,
			Operacion:      entity.OperacionAjuste,
			StockAnterior:  producto.Stock,
			StockNuevo:     nuevoStock,
			Fecha:          time.Now(),
			Detalles:       motivo,
		}

		if delta < 0 {
			faltante := -delta
			asiento.Cantidad = faltante
			lotes, err := loteRepo.LotesAbiertos(ctx, producto.ID)
			if err != nil {
				return err
			}
			resultado, err := inventory.Asignar(producto.ID, lotes, faltante, decimal.Zero)
			if err != nil {
				return err
			}
			for _, a := range resultado.Asignaciones {
				if err := loteRepo.DescontarStockLote(ctx, a.LoteID, a.Cantidad); err != nil {
					return err
				}
			}
		} else {
			asiento.Cantidad = delta
			lote, err := loteRepo.LoteMasReciente(ctx, producto.ID)
			if err != nil {
				return err
			}
			if lote != nil {
				if err := loteRepo.AcreditarStockLote(ctx, lote.ID, delta); err != nil {
					return err
				}
			} else {
				// Sin lotes previos el ajuste entra como lote nuevo.
				asiento.Operacion = entity.OperacionEntrada
				asiento.StockLote = delta
				asiento.CostoFinal = producto.CostoFinal
			}
		}

		if err := loteRepo.Create(ctx, asiento); err != nil {
			return err
		}
		if err := productoRepo.UpdateStock(ctx, producto.ID, nuevoStock, producto.Cantidad); err != nil {
			return err
		}

		suma, err := loteRepo.SumaStockLotes(ctx, producto.ID)
		if err != nil {
			return err
		}
		if suma != nuevoStock {
			return &domain.InvariantViolationError{ProductoID: producto.ID, Stock: nuevoStock, SumaLotes: suma}
		}

		producto.Stock = nuevoStock
		ajustado = producto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ajustado, nil
}

// Eliminar borra un producto sin stock y deja el asiento de eliminación en el
// ledger. Con stock disponible la baja se rechaza.
func (uc *ProductoUsecase) Eliminar(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		loteRepo repository.LoteRepository,
		productoRepo repository.ProductoRepository,
		_ repository.VentaRepository,
	) error {
		producto, err := productoRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if producto.Stock > 0 {
			return fmt.Errorf("producto %s con stock %d: %w", producto.Nombre, producto.Stock, domain.ErrProductoConStock)
		}

		asiento := &entity.Lote{
			ID:             uuid.NewString(),
			ProductoID:     producto.ID,
			NombreProducto: producto.Nombre,
			CodigoProducto: producto.Codigo,
			Operacion:      entity.OperacionEliminacion,
			StockAnterior:  producto.Stock,
			StockNuevo:     0,
			Fecha:          time.Now(),
			Detalles:       "Eliminación del producto",
		}
		if err := loteRepo.Create(ctx, asiento); err != nil {
			return err
		}
		return productoRepo.Delete(ctx, producto.ID)
	})
}

func (uc *ProductoUsecase) Get(ctx context.Context, id string) (*entity.Producto, error) {
	return uc.productoRepo.GetByID(ctx, id)
}

func (uc *ProductoUsecase) Listar(ctx context.Context, f repository.ProductoFiltro) ([]*entity.Producto, int, error) {
	return uc.productoRepo.List(ctx, f)
}
