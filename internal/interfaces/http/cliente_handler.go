package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dsrcomercial/backoffice-api/internal/application/dto"
	"github.com/dsrcomercial/backoffice-api/internal/application/usecase"
	"github.com/dsrcomercial/backoffice-api/internal/domain/repository"
	"github.com/dsrcomercial/backoffice-api/pkg/textutil"
)

// ClienteHandler maneja las peticiones HTTP de clientes (protegido).
type ClienteHandler struct {
	clienteUC *usecase.ClienteUsecase
}

func NewClienteHandler(clienteUC *usecase.ClienteUsecase) *ClienteHandler {
	return &ClienteHandler{clienteUC: clienteUC}
}

func clienteInput(in dto.ClienteRequest) usecase.ClienteInput {
	return usecase.ClienteInput{
		Nombre:     in.Nombre,
		Telefono:   in.Telefono,
		Email:      in.Email,
		Direccion:  in.Direccion,
		Municipio:  in.Municipio,
		RIF:        in.RIF,
		Categorias: in.Categorias,
	}
}

// Create godoc
// @Summary      Registrar un cliente
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClienteRequest  true  "cliente"
// @Success      201   {object}  dto.ClienteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clientes [post]
func (h *ClienteHandler) Create(c *fiber.Ctx) error {
	var in dto.ClienteRequest
	if !parseBody(c, &in) {
		return nil
	}
	cliente, err := h.clienteUC.Crear(c.Context(), clienteInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToClienteResponse(cliente))
}

func (h *ClienteHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if !parseQuery(c, &page) {
		return nil
	}
	page.DefaultPage()

	filtro := repository.ClienteFiltro{
		Busqueda: textutil.NormalizarBusqueda(c.Query("busqueda")),
		Limit:    page.Limit,
		Offset:   page.Offset,
	}
	clientes, total, err := h.clienteUC.Listar(c.Context(), filtro)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]dto.ClienteResponse, 0, len(clientes))
	for _, cl := range clientes {
		resp = append(resp, dto.ToClienteResponse(cl))
	}
	return c.JSON(fiber.Map{
		"clientes": resp,
		"page":     dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

func (h *ClienteHandler) GetByID(c *fiber.Ctx) error {
	cliente, err := h.clienteUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToClienteResponse(cliente))
}

func (h *ClienteHandler) Update(c *fiber.Ctx) error {
	var in dto.ClienteRequest
	if !parseBody(c, &in) {
		return nil
	}
	cliente, err := h.clienteUC.Actualizar(c.Context(), c.Params("id"), clienteInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToClienteResponse(cliente))
}

func (h *ClienteHandler) Delete(c *fiber.Ctx) error {
	if err := h.clienteUC.Eliminar(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
