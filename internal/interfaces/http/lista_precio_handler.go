package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dsrcomercial/backoffice-api/internal/application/dto"
	"github.com/dsrcomercial/backoffice-api/internal/application/usecase"
	"github.com/dsrcomercial/backoffice-api/pkg/textutil"
)

// ListaPrecioHandler maneja la lista de precios de venta (protegido).
type ListaPrecioHandler struct {
	listaPrecioUC *usecase.ListaPrecioUsecase
}

func NewListaPrecioHandler(listaPrecioUC *usecase.ListaPrecioUsecase) *ListaPrecioHandler {
	return &ListaPrecioHandler{listaPrecioUC: listaPrecioUC}
}

func listaPrecioInput(in dto.ListaPrecioRequest) usecase.ListaPrecioInput {
	return usecase.ListaPrecioInput{
		ProductoID:      in.ProductoID,
		Precio1:         in.Precio1,
		Precio2:         in.Precio2,
		Precio3:         in.Precio3,
		PrecioMayorista: in.PrecioMayorista,
		Descripcion:     in.Descripcion,
		Activo:          in.Activo,
	}
}

// Create godoc
// @Summary      Crear la fila de precios de un producto
// @Description  A lo sumo una fila por producto.
// @Tags         lista-precios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ListaPrecioRequest  true  "precios"
// @Success      201   {object}  dto.ListaPrecioResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/lista-precios [post]
func (h *ListaPrecioHandler) Create(c *fiber.Ctx) error {
	var in dto.ListaPrecioRequest
	if !parseBody(c, &in) {
		return nil
	}
	fila, err := h.listaPrecioUC.Crear(c.Context(), listaPrecioInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToListaPrecioResponse(fila))
}

func (h *ListaPrecioHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if !parseQuery(c, &page) {
		return nil
	}
	page.DefaultPage()

	busqueda := textutil.NormalizarBusqueda(c.Query("busqueda"))
	filas, total, err := h.listaPrecioUC.Listar(c.Context(), busqueda, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]dto.ListaPrecioResponse, 0, len(filas))
	for _, f := range filas {
		resp = append(resp, dto.ToListaPrecioResponse(f))
	}
	return c.JSON(fiber.Map{
		"precios": resp,
		"page":    dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

func (h *ListaPrecioHandler) GetByID(c *fiber.Ctx) error {
	fila, err := h.listaPrecioUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToListaPrecioResponse(fila))
}

// GetPorProducto devuelve la fila de precios del producto indicado.
func (h *ListaPrecioHandler) GetPorProducto(c *fiber.Ctx) error {
	fila, err := h.listaPrecioUC.GetPorProducto(c.Context(), c.Params("productoId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToListaPrecioResponse(fila))
}

func (h *ListaPrecioHandler) Update(c *fiber.Ctx) error {
	var in dto.ListaPrecioRequest
	if !parseBody(c, &in) {
		return nil
	}
	fila, err := h.listaPrecioUC.Actualizar(c.Context(), c.Params("id"), listaPrecioInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToListaPrecioResponse(fila))
}

func (h *ListaPrecioHandler) Delete(c *fiber.Ctx) error {
	if err := h.listaPrecioUC.Eliminar(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
