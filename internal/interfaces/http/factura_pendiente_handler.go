package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dsrcomercial/backoffice-api/internal/application/dto"
	"github.com/dsrcomercial/backoffice-api/internal/application/usecase"
	"github.com/dsrcomercial/backoffice-api/internal/domain/repository"
	"github.com/dsrcomercial/backoffice-api/pkg/textutil"
)

// FacturaPendienteHandler maneja las cuentas por pagar (protegido).
type FacturaPendienteHandler struct {
	facturaUC *usecase.FacturaPendienteUsecase
}

func NewFacturaPendienteHandler(facturaUC *usecase.FacturaPendienteUsecase) *FacturaPendienteHandler {
	return &FacturaPendienteHandler{facturaUC: facturaUC}
}

func facturaInput(in dto.FacturaPendienteRequest) usecase.FacturaPendienteInput {
	input := usecase.FacturaPendienteInput{
		Concepto: in.Concepto,
		Monto:    in.Monto,
		Abono:    in.Abono,
	}
	if in.Fecha != nil {
		input.Fecha = *in.Fecha
	}
	return input
}

// Create godoc
// @Summary      Registrar una cuenta por pagar
// @Tags         facturas-pendientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FacturaPendienteRequest  true  "factura"
// @Success      201   {object}  dto.FacturaPendienteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/facturas-pendientes [post]
func (h *FacturaPendienteHandler) Create(c *fiber.Ctx) error {
	var in dto.FacturaPendienteRequest
	if !parseBody(c, &in) {
		return nil
	}
	factura, err := h.facturaUC.Crear(c.Context(), facturaInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToFacturaPendienteResponse(factura))
}

func (h *FacturaPendienteHandler) List(c *fiber.Ctx) error {
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

	filtro := repository.FacturaPendienteFiltro{
		Estado:   c.Query("estado"),
		Busqueda: textutil.NormalizarBusqueda(c.Query("busqueda")),
		Desde:    desde,
		Hasta:    hasta,
		Limit:    page.Limit,
		Offset:   page.Offset,
	}
	facturas, total, err := h.facturaUC.Listar(c.Context(), filtro)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]dto.FacturaPendienteResponse, 0, len(facturas))
	for _, f := range facturas {
		resp = append(resp, dto.ToFacturaPendienteResponse(f))
	}
	return c.JSON(fiber.Map{
		"facturas": resp,
		"page":     dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

func (h *FacturaPendienteHandler) GetByID(c *fiber.Ctx) error {
	factura, err := h.facturaUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToFacturaPendienteResponse(factura))
}

func (h *FacturaPendienteHandler) Update(c *fiber.Ctx) error {
	var in dto.FacturaPendienteRequest
	if !parseBody(c, &in) {
		return nil
	}
	factura, err := h.facturaUC.Actualizar(c.Context(), c.Params("id"), facturaInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToFacturaPendienteResponse(factura))
}

// Abonar registra un pago parcial sobre la cuenta por pagar.
func (h *FacturaPendienteHandler) Abonar(c *fiber.Ctx) error {
	var in dto.AbonoRequest
	if !parseBody(c, &in) {
		return nil
	}
	factura, err := h.facturaUC.Abonar(c.Context(), c.Params("id"), in.Monto)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToFacturaPendienteResponse(factura))
}

func (h *FacturaPendienteHandler) Delete(c *fiber.Ctx) error {
	if err := h.facturaUC.Eliminar(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
