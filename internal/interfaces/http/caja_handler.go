package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dsrcomercial/backoffice-api/internal/application/dto"
	"github.com/dsrcomercial/backoffice-api/internal/application/usecase"
)

// CajaHandler maneja los movimientos de caja en USD y Bs (protegido).
type CajaHandler struct {
	cajaUC *usecase.CajaUsecase
}

func NewCajaHandler(cajaUC *usecase.CajaUsecase) *CajaHandler {
	return &CajaHandler{cajaUC: cajaUC}
}

func cajaInput(in dto.CajaRequest) usecase.CajaInput {
	input := usecase.CajaInput{
		Concepto:   in.Concepto,
		Moneda:     in.Moneda,
		Entrada:    in.Entrada,
		Salida:     in.Salida,
		TasaCambio: in.TasaCambio,
	}
	if in.Fecha != nil {
		input.Fecha = *in.Fecha
	}
	return input
}

// Registrar godoc
// @Summary      Registrar un movimiento de caja
// @Description  Guarda el movimiento con el saldo de su moneda y persiste la
//               tasa de cambio si viene informada.
// @Tags         caja
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CajaRequest  true  "movimiento"
// @Success      201   {object}  dto.CajaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/caja [post]
func (h *CajaHandler) Registrar(c *fiber.Ctx) error {
	var in dto.CajaRequest
	if !parseBody(c, &in) {
		return nil
	}
	mov, err := h.cajaUC.Registrar(c.Context(), cajaInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToCajaResponse(mov))
}

func (h *CajaHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if !parseQuery(c, &page) {
		return nil
	}
	page.DefaultPage()

	movimientos, total, err := h.cajaUC.Listar(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]dto.CajaResponse, 0, len(movimientos))
	for _, m := range movimientos {
		resp = append(resp, dto.ToCajaResponse(m))
	}
	return c.JSON(fiber.Map{
		"movimientos": resp,
		"page":        dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

func (h *CajaHandler) Update(c *fiber.Ctx) error {
	var in dto.CajaRequest
	if !parseBody(c, &in) {
		return nil
	}
	mov, err := h.cajaUC.Actualizar(c.Context(), c.Params("id"), cajaInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToCajaResponse(mov))
}

func (h *CajaHandler) Delete(c *fiber.Ctx) error {
	if err := h.cajaUC.Eliminar(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Saldos godoc
// @Summary      Saldos vigentes de caja
// @Description  Saldos por moneda recalculados desde las sumas, junto con la
//               última tasa de cambio registrada.
// @Tags         caja
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CajaSaldosResponse
// @Router       /api/caja/saldos [get]
func (h *CajaHandler) Saldos(c *fiber.Ctx) error {
	saldos, ultimaTasa, err := h.cajaUC.Saldos(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CajaSaldosResponse{
		USD:        saldos.USD,
		Bs:         saldos.Bs,
		UltimaTasa: ultimaTasa,
	})
}
