package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dsrcomercial/backoffice-api/internal/application/dto"
	"github.com/dsrcomercial/backoffice-api/internal/application/usecase"
	"github.com/dsrcomercial/backoffice-api/internal/domain/repository"
)

// GastoHandler maneja las peticiones HTTP de gastos (protegido).
type GastoHandler struct {
	gastoUC *usecase.GastoUsecase
}

func NewGastoHandler(gastoUC *usecase.GastoUsecase) *GastoHandler {
	return &GastoHandler{gastoUC: gastoUC}
}

func gastoInput(in dto.GastoRequest) usecase.GastoInput {
	input := usecase.GastoInput{
		Descripcion: in.Descripcion,
		Monto:       in.Monto,
		Categoria:   in.Categoria,
	}
	if in.Fecha != nil {
		input.Fecha = *in.Fecha
	}
	return input
}

// Create godoc
// @Summary      Registrar un gasto
// @Tags         gastos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GastoRequest  true  "gasto"
// @Success      201   {object}  dto.GastoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/gastos [post]
func (h *GastoHandler) Create(c *fiber.Ctx) error {
	var in dto.GastoRequest
	if !parseBody(c, &in) {
		return nil
	}
	gasto, err := h.gastoUC.Crear(c.Context(), gastoInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToGastoResponse(gasto))
}

func (h *GastoHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if !parseQuery(c, &page) {
		return nil
	}
	page.DefaultPage()

	desde, err := parseFecha(c.Query("desde"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	hasta, err := parseFecha(c.Query("hasta"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	filtro := repository.GastoFiltro{
		Categoria: c.Query("categoria"),
		Desde:     desde,
		Hasta:     hasta,
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	gastos, total, err := h.gastoUC.Listar(c.Context(), filtro)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]dto.GastoResponse, 0, len(gastos))
	for _, g := range gastos {
		resp = append(resp, dto.ToGastoResponse(g))
	}
	return c.JSON(fiber.Map{
		"gastos": resp,
		"page":   dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

func (h *GastoHandler) GetByID(c *fiber.Ctx) error {
	gasto, err := h.gastoUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToGastoResponse(gasto))
}

func (h *GastoHandler) Update(c *fiber.Ctx) error {
	var in dto.GastoRequest
	if !parseBody(c, &in) {
		return nil
	}
	gasto, err := h.gastoUC.Actualizar(c.Context(), c.Params("id"), gastoInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToGastoResponse(gasto))
}

func (h *GastoHandler) Delete(c *fiber.Ctx) error {
	if err := h.gastoUC.Eliminar(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
