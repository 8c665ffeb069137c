package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dsrcomercial/backoffice-api/internal/domain"
	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
	"github.com/dsrcomercial/backoffice-api/internal/domain/inventory"
	"github.com/dsrcomercial/backoffice-api/internal/domain/repository"
)

// toleranciaCuadre es la diferencia máxima admitida entre el total de la
// venta y la suma de abono más saldo, para absorber redondeos del cliente.
var toleranciaCuadre = decimal.NewFromFloat(0.05)

// LineaVentaInput es una línea de venta solicitada por el cliente HTTP.
type LineaVentaInput struct {
	ProductoID     string
	Cantidad       int64
	PrecioUnitario decimal.Decimal
}

// VentaInput agrupa los datos necesarios para registrar una venta.
type VentaInput struct {
	Fecha            time.Time
	ClienteID        string
	Lineas           []LineaVentaInput
	TipoPago         string
	MetodoPago       string
	Banco            string
	NrFactura        string
	MontoAbonado     decimal.Decimal
	TasaCambio       decimal.Decimal
	FechaVencimiento *time.Time
}

// EntradaInput describe una reposición de stock de un producto.
type EntradaInput struct {
	ProductoID    string
	Cantidad      int64
	CostoUnitario decimal.Decimal
	Acarreo       decimal.Decimal
	Flete         decimal.Decimal
	Fecha         time.Time
	Detalles      string
}

// Discrepancia reporta un producto cuyo stock no coincide con la suma de
// sus lotes abiertos.
type Discrepancia struct {
	ProductoID string
	Nombre     string
	Stock      int64
	SumaLotes  int64
}

// Usecase implementa las operaciones del ledger de lotes: venta FIFO,
// entrada con recálculo de costos, anulación y verificación de consistencia.
type Usecase struct {
	txRunner     TxRunner
	productoRepo repository.ProductoRepository
	loteRepo     repository.LoteRepository
	clienteRepo  repository.ClienteRepository
	reintentos   int
}

func NewUsecase(
	txRunner TxRunner,
	productoRepo repository.ProductoRepository,
	loteRepo repository.LoteRepository,
	clienteRepo repository.ClienteRepository,
	reintentos int,
) *Usecase {
	if reintentos < 0 {
		reintentos = 0
	}
	return &Usecase{
		txRunner:     txRunner,
		productoRepo: productoRepo,
		loteRepo:     loteRepo,
		clienteRepo:  clienteRepo,
		reintentos:   reintentos,
	}
}

// planLinea es el resultado de planificar una línea fuera de la transacción.
type planLinea struct {
	linea      LineaVentaInput
	producto   *entity.Producto
	asignacion *inventory.ResultadoAsignacion
}

// RegistrarVenta planifica la asignación FIFO fuera de la transacción y la
// confirma dentro de una tx, revalidando cada lote bajo bloqueo. Si otro
// proceso consumió un lote planificado entre ambas fases, la venta se
// replanifica hasta agotar los reintentos configurados.
func (uc *Usecase) RegistrarVenta(ctx context.Context, input VentaInput) (*entity.Venta, error) {
	if err := uc.validarVenta(ctx, input); err != nil {
		return nil, err
	}

	var ultimoErr error
	for intento := 0; intento <= uc.reintentos; intento++ {
		planes, err := uc.planificar(ctx, input.Lineas)
		if err != nil {
			return nil, err
		}

		venta, err := uc.confirmarVenta(ctx, input, planes)
		if err == nil {
			return venta, nil
		}
		ultimoErr = err
		if !errors.Is(err, domain.ErrConcurrentModification) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("venta no confirmada tras %d reintentos: %w", uc.reintentos+1, ultimoErr)
}

func (uc *Usecase) validarVenta(ctx context.Context, input VentaInput) error {
	if len(input.Lineas) == 0 {
		return fmt.Errorf("%w: la venta no tiene líneas", domain.ErrInvalidInput)
	}
	for _, l := range input.Lineas {
		if l.Cantidad <= 0 {
			return fmt.Errorf("%w: cantidad inválida para el producto %s", domain.ErrInvalidInput, l.ProductoID)
		}
		if l.PrecioUnitario.IsNegative() {
			return fmt.Errorf("%w: precio negativo para el producto %s", domain.ErrInvalidInput, l.ProductoID)
		}
	}
	if !entity.TipoPagoValido(input.TipoPago) {
		return fmt.Errorf("%w: tipo de pago %q", domain.ErrInvalidInput, input.TipoPago)
	}
	if !entity.MetodoPagoValido(input.MetodoPago) {
		return fmt.Errorf("%w: método de pago %q", domain.ErrInvalidInput, input.MetodoPago)
	}
	if input.MetodoPago == entity.MetodoTransferencia && input.Banco == "" {
		return fmt.Errorf("%w: la transferencia requiere banco", domain.ErrInvalidInput)
	}
	if input.ClienteID != "" {
		if _, err := uc.clienteRepo.GetByID(ctx, input.ClienteID); err != nil {
			return fmt.Errorf("cliente %s: %w", input.ClienteID, err)
		}
	}

	total := totalVenta(input.Lineas)
	if input.MontoAbonado.IsNegative() || input.MontoAbonado.GreaterThan(total.Add(toleranciaCuadre)) {
		return fmt.Errorf("%w: el abono %s no cuadra con el total %s", domain.ErrInvalidInput, input.MontoAbonado, total)
	}
	if input.TipoPago == entity.PagoContado && total.Sub(input.MontoAbonado).Abs().GreaterThan(toleranciaCuadre) {
		return fmt.Errorf("%w: la venta de contado debe abonarse completa", domain.ErrInvalidInput)
	}
	return nil
}

func totalVenta(lineas []LineaVentaInput) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lineas {
		total = total.Add(l.PrecioUnitario.Mul(decimal.NewFromInt(l.Cantidad)))
	}
	return total.Round(2)
}

// planificar ejecuta la fase pura: lee los lotes abiertos sin bloquear y
// calcula la asignación FIFO de cada línea. Varias líneas del mismo producto
// planifican sobre el remanente que dejaron las anteriores; así una demanda
// combinada mayor al stock falla aquí con ErrInsufficientStock en vez de
// chocar en el commit.
func (uc *Usecase) planificar(ctx context.Context, lineas []LineaVentaInput) ([]planLinea, error) {
	planes := make([]planLinea, 0, len(lineas))
	reservado := make(map[string]int64) // por lote, lo asignado a líneas previas
	for _, linea := range lineas {
		producto, err := uc.productoRepo.GetByID(ctx, linea.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto %s: %w", linea.ProductoID, err)
		}
		lotes, err := uc.loteRepo.LotesAbiertos(ctx, linea.ProductoID)
		if err != nil {
			return nil, err
		}
		restantes := make([]entity.Lote, 0, len(lotes))
		for _, l := range lotes {
			l.StockLote -= reservado[l.ID]
			if l.StockLote > 0 {
				restantes = append(restantes, l)
			}
		}
		asignacion, err := inventory.Asignar(linea.ProductoID, restantes, linea.Cantidad, linea.PrecioUnitario)
		if err != nil {
			return nil, err
		}
		for _, a := range asignacion.Asignaciones {
			reservado[a.LoteID] += a.Cantidad
		}
		planes = append(planes, planLinea{linea: linea, producto: producto, asignacion: asignacion})
	}
	return planes, nil
}

// confirmarVenta aplica el plan dentro de una transacción. Cada lote
// planificado se relee bajo FOR UPDATE; si su stock restante ya no cubre lo
// planificado, la tx se aborta con ErrConcurrentModification para que el
// llamador replanifique.
func (uc *Usecase) confirmarVenta(ctx context.Context, input VentaInput, planes []planLinea) (*entity.Venta, error) {
	ventaID := uuid.NewString()
	ahora := time.Now()
	fecha := input.Fecha
	if fecha.IsZero() {
		fecha = ahora
	}

	total := totalVenta(input.Lineas)
	venta := &entity.Venta{
		ID:               ventaID,
		Fecha:            fecha,
		ClienteID:        input.ClienteID,
		TipoPago:         input.TipoPago,
		MetodoPago:       input.MetodoPago,
		Banco:            input.Banco,
		NrFactura:        input.NrFactura,
		TasaCambio:       input.TasaCambio,
		Total:            total,
		MontoAbonado:     input.MontoAbonado,
		SaldoPendiente:   total.Sub(input.MontoAbonado).Round(2),
		Estado:           entity.VentaActiva,
		FechaVencimiento: input.FechaVencimiento,
		CreatedAt:        ahora,
		UpdatedAt:        ahora,
	}
	if venta.SaldoPendiente.IsNegative() {
		venta.SaldoPendiente = decimal.Zero
	}
	if input.TipoPago == entity.PagoCredito {
		venta.EstadoCredito = entity.CreditoVigente
		if venta.SaldoPendiente.IsZero() {
			venta.EstadoCredito = entity.CreditoPagado
		}
	}

	err := uc.txRunner.Run(ctx, func(
		loteRepo repository.LoteRepository,
		productoRepo repository.ProductoRepository,
		ventaRepo repository.VentaRepository,
	) error {
		if venta.NrFactura != "" {
			existe, err := ventaRepo.ExisteNrFactura(ctx, venta.NrFactura)
			if err != nil {
				return err
			}
			if existe {
				return fmt.Errorf("%w: el número de factura %s ya existe", domain.ErrDuplicate, venta.NrFactura)
			}
		}

		for i := range planes {
			plan := &planes[i]

			producto, err := productoRepo.GetForUpdate(ctx, plan.linea.ProductoID)
			if err != nil {
				return err
			}

			ids := make([]string, 0, len(plan.asignacion.Asignaciones))
			for _, a := range plan.asignacion.Asignaciones {
				ids = append(ids, a.LoteID)
			}
			lotes, err := loteRepo.LotesForUpdate(ctx, ids)
			if err != nil {
				return err
			}
			for _, a := range plan.asignacion.Asignaciones {
				lote, ok := lotes[a.LoteID]
				if !ok || lote.StockLote < a.Cantidad {
					return fmt.Errorf("lote %s del producto %s cambió durante la venta: %w",
						a.LoteID, producto.Nombre, domain.ErrConcurrentModification)
				}
			}

			for _, a := range plan.asignacion.Asignaciones {
				if err := loteRepo.DescontarStockLote(ctx, a.LoteID, a.Cantidad); err != nil {
					return err
				}
			}

			stockNuevo := producto.Stock - plan.linea.Cantidad
			if stockNuevo < 0 {
				return fmt.Errorf("producto %s quedó en negativo: %w", producto.Nombre, domain.ErrConcurrentModification)
			}

			salida := &entity.Lote{
				ID:             uuid.NewString(),
				ProductoID:     producto.ID,
				NombreProducto: producto.Nombre,
				CodigoProducto: producto.Codigo,
				Operacion:      entity.OperacionSalida,
				Cantidad:       plan.linea.Cantidad,
				StockAnterior:  producto.Stock,
				StockNuevo:     stockNuevo,
				CostoFinal:     plan.asignacion.CostoUnitarioPromedio(),
				StockLote:      0,
				Fecha:          fecha,
				Detalles: fmt.Sprintf("Venta #%s - Descuento de %d lotes",
					ventaID, len(plan.asignacion.Asignaciones)),
			}
			if err := loteRepo.Create(ctx, salida); err != nil {
				return err
			}
			if err := productoRepo.UpdateStock(ctx, producto.ID, stockNuevo, producto.Cantidad); err != nil {
				return err
			}

			costoUnitario := plan.asignacion.CostoUnitarioPromedio()
			gananciaUnitaria := plan.linea.PrecioUnitario.Sub(costoUnitario).Round(2)
			venta.Productos = append(venta.Productos, entity.VentaProducto{
				ProductoID:       producto.ID,
				Nombre:           producto.Nombre,
				Codigo:           producto.Codigo,
				Cantidad:         plan.linea.Cantidad,
				PrecioUnitario:   plan.linea.PrecioUnitario,
				CostoUnitario:    costoUnitario,
				GananciaUnitaria: gananciaUnitaria,
				GananciaTotal:    plan.asignacion.Ganancia,
			})

			if err := verificarInvariante(ctx, loteRepo, producto.ID, stockNuevo); err != nil {
				return err
			}
		}

		return ventaRepo.Create(ctx, venta)
	})
	if err != nil {
		return nil, err
	}
	return venta, nil
}

// RegistrarEntrada repone stock de un producto: recalcula el costo promedio
// ponderado, registra el lote de entrada con su costo aterrizado y suma el
// stock, todo en una sola transacción.
func (uc *Usecase) RegistrarEntrada(ctx context.Context, input EntradaInput) (*entity.Lote, error) {
	if input.Cantidad <= 0 {
		return nil, fmt.Errorf("%w: la cantidad de entrada debe ser positiva", domain.ErrInvalidInput)
	}
	if input.CostoUnitario.IsNegative() || input.Acarreo.IsNegative() || input.Flete.IsNegative() {
		return nil, fmt.Errorf("%w: costos negativos en la entrada", domain.ErrInvalidInput)
	}
	fecha := input.Fecha
	if fecha.IsZero() {
		fecha = time.Now()
	}

	var entrada *entity.Lote
	err := uc.txRunner.Run(ctx, func(
		loteRepo repository.LoteRepository,
		productoRepo repository.ProductoRepository,
		_ repository.VentaRepository,
	) error {
		producto, err := productoRepo.GetForUpdate(ctx, input.ProductoID)
		if err != nil {
			return err
		}

		costoLote := producto.CostoFinal
		if input.CostoUnitario.IsPositive() {
			nuevoCostoInicial := inventory.CostoPromedio(
				producto.Cantidad, producto.CostoInicial,
				input.Cantidad, input.CostoUnitario,
			)
			costoLote = inventory.CostoUnitarioLote(
				input.Cantidad, input.CostoUnitario, input.Acarreo, input.Flete,
			)
			nuevoCostoFinal := inventory.CostoPromedio(
				producto.Cantidad, producto.CostoFinal,
				input.Cantidad, costoLote,
			)
			if err := productoRepo.UpdateCostos(ctx, producto.ID, nuevoCostoInicial, nuevoCostoFinal); err != nil {
				return err
			}
		}

		stockNuevo := producto.Stock + input.Cantidad
		cantidadNueva := producto.Cantidad + input.Cantidad
		if err := productoRepo.UpdateStock(ctx, producto.ID, stockNuevo, cantidadNueva); err != nil {
			return err
		}

		detalles := input.Detalles
		if detalles == "" {
			detalles = fmt.Sprintf("Entrada de %d unidades", input.Cantidad)
		}
		entrada = &entity.Lote{
			ID:             uuid.NewString(),
			ProductoID:     producto.ID,
			NombreProducto: producto.Nombre,
			CodigoProducto: producto.Codigo,
			Operacion:      entity.OperacionEntrada,
			Cantidad:       input.Cantidad,
			StockAnterior:  producto.Stock,
			StockNuevo:     stockNuevo,
			CostoFinal:     costoLote,
			StockLote:      input.Cantidad,
			Fecha:          fecha,
			Detalles:       detalles,
		}
		if err := loteRepo.Create(ctx, entrada); err != nil {
			return err
		}

		return verificarInvariante(ctx, loteRepo, producto.ID, stockNuevo)
	})
	if err != nil {
		return nil, err
	}
	return entrada, nil
}

// AnularVenta revierte una venta activa: acredita cada línea al lote más
// reciente del producto, registra el asiento de devolución y repone el
// stock. La operación es idempotente por estado: una venta ya anulada
// devuelve ErrAlreadyVoided sin tocar el ledger.
func (uc *Usecase) AnularVenta(ctx context.Context, ventaID string) (*entity.Venta, error) {
	var anulada *entity.Venta
	err := uc.txRunner.Run(ctx, func(
		loteRepo repository.LoteRepository,
		productoRepo repository.ProductoRepository,
		ventaRepo repository.VentaRepository,
	) error {
		venta, err := ventaRepo.GetForUpdate(ctx, ventaID)
		if err != nil {
			return err
		}
		if !venta.PuedeAnularse() {
			return fmt.Errorf("la venta %s está %s: %w", ventaID, venta.Estado, domain.ErrAlreadyVoided)
		}

		for _, linea := range venta.Productos {
			producto, err := productoRepo.GetForUpdate(ctx, linea.ProductoID)
			if err != nil {
				return err
			}

			stockNuevo := producto.Stock + linea.Cantidad
			devolucion := &entity.Lote{
				ID:             uuid.NewString(),
				ProductoID:     producto.ID,
				NombreProducto: producto.Nombre,
				CodigoProducto: producto.Codigo,
				Operacion:      entity.OperacionEntrada,
				Cantidad:       linea.Cantidad,
				StockAnterior:  producto.Stock,
				StockNuevo:     stockNuevo,
				CostoFinal:     linea.CostoUnitario,
				Fecha:          time.Now(),
				Detalles:       fmt.Sprintf("Devolución por anulación de venta #%s", ventaID),
			}

			lote, err := loteRepo.LoteMasReciente(ctx, producto.ID)
			if err != nil {
				return err
			}
			if lote != nil {
				if err := loteRepo.AcreditarStockLote(ctx, lote.ID, linea.Cantidad); err != nil {
					return err
				}
			} else {
				// Sin lotes vivos la devolución misma carga el stock,
				// para que la suma de lotes siga igualando al stock.
				devolucion.StockLote = linea.Cantidad
			}
			if err := loteRepo.Create(ctx, devolucion); err != nil {
				return err
			}
			if err := productoRepo.UpdateStock(ctx, producto.ID, stockNuevo, producto.Cantidad); err != nil {
				return err
			}
			if err := verificarInvariante(ctx, loteRepo, producto.ID, stockNuevo); err != nil {
				return err
			}
		}

		if err := ventaRepo.UpdateEstado(ctx, ventaID, entity.VentaAnulada); err != nil {
			return err
		}
		venta.Estado = entity.VentaAnulada
		anulada = venta
		return nil
	})
	if err != nil {
		return nil, err
	}
	return anulada, nil
}

// ListarLotes devuelve los lotes con stock remanente de un producto, en
// orden FIFO.
func (uc *Usecase) ListarLotes(ctx context.Context, productoID string) ([]entity.Lote, error) {
	if _, err := uc.productoRepo.GetByID(ctx, productoID); err != nil {
		return nil, err
	}
	return uc.loteRepo.LotesAbiertos(ctx, productoID)
}

// ListarHistorial lista los asientos del ledger con filtros y totales.
func (uc *Usecase) ListarHistorial(ctx context.Context, filtro repository.HistorialFiltro) ([]*entity.Lote, int, *repository.HistorialTotales, error) {
	lotes, total, err := uc.loteRepo.List(ctx, filtro)
	if err != nil {
		return nil, 0, nil, err
	}
	totales, err := uc.loteRepo.Totales(ctx, filtro)
	if err != nil {
		return nil, 0, nil, err
	}
	return lotes, total, totales, nil
}

// VerificarConsistencia recorre los productos y reporta aquellos cuyo stock
// no coincide con la suma de sus lotes abiertos.
func (uc *Usecase) VerificarConsistencia(ctx context.Context) ([]Discrepancia, error) {
	const pagina = 200

	var discrepancias []Discrepancia
	offset := 0
	for {
		productos, _, err := uc.productoRepo.List(ctx, repository.ProductoFiltro{Limit: pagina, Offset: offset})
		if err != nil {
			return nil, err
		}
		if len(productos) == 0 {
			break
		}
		for _, p := range productos {
			suma, err := uc.loteRepo.SumaStockLotes(ctx, p.ID)
			if err != nil {
				return nil, err
			}
			if suma != p.Stock {
				discrepancias = append(discrepancias, Discrepancia{
					ProductoID: p.ID,
					Nombre:     p.Nombre,
					Stock:      p.Stock,
					SumaLotes:  suma,
				})
			}
		}
		if len(productos) < pagina {
			break
		}
		offset += pagina
	}
	return discrepancias, nil
}

// verificarInvariante comprueba dentro de la tx que la suma de lotes abiertos
// iguala al stock recién escrito. Un fallo aborta la transacción completa.
func verificarInvariante(ctx context.Context, loteRepo repository.LoteRepository, productoID string, stock int64) error {
	suma, err := loteRepo.SumaStockLotes(ctx, productoID)
	if err != nil {
		return err
	}
	if suma != stock {
		return &domain.InvariantViolationError{ProductoID: productoID, Stock: stock, SumaLotes: suma}
	}
	return nil
}
