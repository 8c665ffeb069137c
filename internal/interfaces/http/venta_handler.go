package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dsrcomercial/backoffice-api/internal/application/dto"
	appinv "github.com/dsrcomercial/backoffice-api/internal/application/inventory"
	"github.com/dsrcomercial/backoffice-api/internal/application/usecase"
	"github.com/dsrcomercial/backoffice-api/internal/domain/repository"
)

// VentaHandler maneja las peticiones HTTP de ventas (protegido). El registro
// y la anulación pasan por el motor de inventario; el resto son consultas y
// gestión de créditos.
type VentaHandler struct {
	inventarioUC *appinv.Usecase
	ventaUC      *usecase.VentaUsecase
}

func NewVentaHandler(inventarioUC *appinv.Usecase, ventaUC *usecase.VentaUsecase) *VentaHandler {
	return &VentaHandler{inventarioUC: inventarioUC, ventaUC: ventaUC}
}

// Create godoc
// @Summary      Registrar una venta
// @Description  Asigna las unidades a los lotes abiertos en orden FIFO y
//               descuenta stock dentro de una transacción.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VentaRequest  true  "venta"
// @Success      201   {object}  dto.VentaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *VentaHandler) Create(c *fiber.Ctx) error {
	var in dto.VentaRequest
	if !parseBody(c, &in) {
		return nil
	}

	input := appinv.VentaInput{
		ClienteID:        in.ClienteID,
		TipoPago:         in.TipoPago,
		MetodoPago:       in.MetodoPago,
		Banco:            in.Banco,
		NrFactura:        in.NrFactura,
		MontoAbonado:     in.MontoAbonado,
		TasaCambio:       in.TasaCambio,
		FechaVencimiento: in.FechaVencimiento,
	}
	if in.Fecha != nil {
		input.Fecha = *in.Fecha
	}
	for _, l := range in.Productos {
		input.Lineas = append(input.Lineas, appinv.LineaVentaInput{
			ProductoID:     l.ProductoID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
		})
	}

	venta, err := h.inventarioUC.RegistrarVenta(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToVentaResponse(venta))
}

// Anular godoc
// @Summary      Anular una venta
// @Description  Repone el stock acreditando el lote más reciente y deja el
//               asiento de devolución. Solo ventas activas.
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.VentaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/anular [post]
func (h *VentaHandler) Anular(c *fiber.Ctx) error {
	venta, err := h.inventarioUC.AnularVenta(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToVentaResponse(venta))
}

func (h *VentaHandler) GetByID(c *fiber.Ctx) error {
	venta, err := h.ventaUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToVentaResponse(venta))
}

// List godoc
// @Summary      Listar ventas con totales
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/ventas [get]
func (h *VentaHandler) List(c *fiber.Ctx) error {
	var in dto.VentaListRequest
	if !parseQuery(c, &in) {
		return nil
	}
	in.DefaultPage()

	desde, err := parseFecha(in.Desde)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	hasta, err := parseFecha(in.Hasta)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	filtro := repository.VentaFiltro{
		ClienteID:     in.ClienteID,
		Estado:        in.Estado,
		EstadoCredito: in.EstadoCredito,
		TipoPago:      in.TipoPago,
		Desde:         desde,
		Hasta:         hasta,
		Limit:         in.Limit,
		Offset:        in.Offset,
	}
	if in.ConSaldo != "" {
		conSaldo := in.ConSaldo == "true"
		filtro.ConSaldo = &conSaldo
	}

	ventas, total, totales, err := h.ventaUC.Listar(c.Context(), filtro)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]dto.VentaResponse, 0, len(ventas))
	for _, v := range ventas {
		resp = append(resp, dto.ToVentaResponse(v))
	}
	return c.JSON(fiber.Map{
		"ventas": resp,
		"totales": dto.VentaTotalesResponse{
			TotalVentas:         totales.TotalVentas,
			TotalSaldoPendiente: totales.TotalSaldoPendiente,
		},
		"page": dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	})
}

// Abonar registra un pago parcial sobre una venta a crédito.
func (h *VentaHandler) Abonar(c *fiber.Ctx) error {
	var in dto.AbonoRequest
	if !parseBody(c, &in) {
		return nil
	}
	venta, err := h.ventaUC.RegistrarAbono(c.Context(), c.Params("id"), in.Monto)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToVentaResponse(venta))
}

// MarcarVencidas recorre los créditos vigentes y marca los vencidos.
func (h *VentaHandler) MarcarVencidas(c *fiber.Ctx) error {
	cambiadas, err := h.ventaUC.MarcarVencidas(c.Context(), time.Now())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"vencidas": cambiadas})
}

func (h *VentaHandler) Delete(c *fiber.Ctx) error {
	if err := h.ventaUC.Eliminar(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
