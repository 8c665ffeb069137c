package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dsrcomercial/backoffice-api/internal/application/dto"
	appinv "github.com/dsrcomercial/backoffice-api/internal/application/inventory"
	"github.com/dsrcomercial/backoffice-api/internal/application/usecase"
	"github.com/dsrcomercial/backoffice-api/internal/domain/repository"
	"github.com/dsrcomercial/backoffice-api/pkg/textutil"
)

// ProductoHandler maneja las peticiones HTTP de productos (protegido).
type ProductoHandler struct {
	productoUC   *usecase.ProductoUsecase
	inventarioUC *appinv.Usecase
}

func NewProductoHandler(productoUC *usecase.ProductoUsecase, inventarioUC *appinv.Usecase) *ProductoHandler {
	return &ProductoHandler{productoUC: productoUC, inventarioUC: inventarioUC}
}

func productoInput(in dto.ProductoRequest) usecase.ProductoInput {
	input := usecase.ProductoInput{
		Codigo:       in.Codigo,
		Nombre:       in.Nombre,
		Proveedor:    in.Proveedor,
		CostoInicial: in.CostoInicial,
		Acarreo:      in.Acarreo,
		Flete:        in.Flete,
		Cantidad:     in.Cantidad,
	}
	if in.FechaIngreso != nil {
		input.FechaIngreso = *in.FechaIngreso
	}
	return input
}

// Create godoc
// @Summary      Crear un producto
// @Description  Da de alta el producto y abre su lote inicial en la misma
//               transacción.
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductoRequest  true  "producto"
// @Success      201   {object}  dto.ProductoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productos [post]
func (h *ProductoHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductoRequest
	if !parseBody(c, &in) {
		return nil
	}
	producto, err := h.productoUC.Crear(c.Context(), productoInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToProductoResponse(producto))
}

// List godoc
// @Summary      Listar productos
// @Description  Búsqueda por nombre, código o proveedor, ignorando acentos.
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        busqueda  query  string  false  "texto a buscar"
// @Param        limit     query  int     false  "tamaño de página"
// @Param        offset    query  int     false  "desplazamiento"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/productos [get]
func (h *ProductoHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if !parseQuery(c, &page) {
		return nil
	}
	page.DefaultPage()

	filtro := repository.ProductoFiltro{
		Busqueda: textutil.NormalizarBusqueda(c.Query("busqueda")),
		Limit:    page.Limit,
		Offset:   page.Offset,
	}
	productos, total, err := h.productoUC.Listar(c.Context(), filtro)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]dto.ProductoResponse, 0, len(productos))
	for _, p := range productos {
		resp = append(resp, dto.ToProductoResponse(p))
	}
	return c.JSON(fiber.Map{
		"productos": resp,
		"page":      dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

func (h *ProductoHandler) GetByID(c *fiber.Ctx) error {
	producto, err := h.productoUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToProductoResponse(producto))
}

func (h *ProductoHandler) Update(c *fiber.Ctx) error {
	var in dto.ProductoRequest
	if !parseBody(c, &in) {
		return nil
	}
	producto, err := h.productoUC.Actualizar(c.Context(), c.Params("id"), productoInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToProductoResponse(producto))
}

// Delete godoc
// @Summary      Eliminar un producto sin stock
// @Tags         productos
// @Security     Bearer
// @Param        id  path  string  true  "ID del producto"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [delete]
func (h *ProductoHandler) Delete(c *fiber.Ctx) error {
	if err := h.productoUC.Eliminar(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AjustarStock godoc
// @Summary      Ajustar el stock de un producto
// @Description  Fija el stock en el valor indicado y concilia los lotes para
//               que la suma de remanentes siga igualando al stock.
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del producto"
// @Param        body  body  dto.AjusteStockRequest  true  "ajuste"
// @Success      200   {object}  dto.ProductoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/ajuste [post]
func (h *ProductoHandler) AjustarStock(c *fiber.Ctx) error {
	var in dto.AjusteStockRequest
	if !parseBody(c, &in) {
		return nil
	}
	producto, err := h.productoUC.AjustarStock(c.Context(), c.Params("id"), in.Stock, in.Motivo)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToProductoResponse(producto))
}

// RegistrarEntrada godoc
// @Summary      Registrar una entrada de stock
// @Description  Abre un lote nuevo al costo de la entrada y recalcula el
//               costo promedio ponderado del producto.
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del producto"
// @Param        body  body  dto.EntradaStockRequest  true  "entrada"
// @Success      201   {object}  dto.LoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/entradas [post]
func (h *ProductoHandler) RegistrarEntrada(c *fiber.Ctx) error {
	var in dto.EntradaStockRequest
	if !parseBody(c, &in) {
		return nil
	}
	input := appinv.EntradaInput{
		ProductoID:    c.Params("id"),
		Cantidad:      in.Cantidad,
		CostoUnitario: in.CostoUnitario,
		Acarreo:       in.Acarreo,
		Flete:         in.Flete,
		Detalles:      in.Detalles,
	}
	if in.Fecha != nil {
		input.Fecha = *in.Fecha
	}
	lote, err := h.inventarioUC.RegistrarEntrada(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToLoteResponse(lote))
}

// Lotes godoc
// @Summary      Lotes abiertos de un producto
// @Description  Devuelve los lotes con remanente en el orden en que el
//               asignador FIFO los consumiría.
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}   dto.LoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/lotes [get]
func (h *ProductoHandler) Lotes(c *fiber.Ctx) error {
	lotes, err := h.inventarioUC.ListarLotes(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]dto.LoteResponse, 0, len(lotes))
	for i := range lotes {
		resp = append(resp, dto.ToLoteResponse(&lotes[i]))
	}
	return c.JSON(resp)
}
