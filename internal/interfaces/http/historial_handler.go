package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dsrcomercial/backoffice-api/internal/application/dto"
	appinv "github.com/dsrcomercial/backoffice-api/internal/application/inventory"
	"github.com/dsrcomercial/backoffice-api/internal/domain/repository"
	"github.com/dsrcomercial/backoffice-api/pkg/textutil"
)

// HistorialHandler expone el ledger de lotes en modo lectura (protegido).
type HistorialHandler struct {
	inventarioUC *appinv.Usecase
}

func NewHistorialHandler(inventarioUC *appinv.Usecase) *HistorialHandler {
	return &HistorialHandler{inventarioUC: inventarioUC}
}

// List godoc
// @Summary      Listar el historial de movimientos
// @Description  Asientos del ledger con filtros por operación, producto y
//               rango de fechas, más los totales agregados de la consulta.
// @Tags         historial
// @Security     Bearer
// @Produce      json
// @Param        operacion   query  string  false  "creacion, entrada, salida, ajuste o eliminacion"
// @Param        productoId  query  string  false  "ID del producto"
// @Param        busqueda    query  string  false  "nombre o código del producto"
// @Param        desde       query  string  false  "fecha inicial YYYY-MM-DD"
// @Param        hasta       query  string  false  "fecha final YYYY-MM-DD"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/historial [get]
func (h *HistorialHandler) List(c *fiber.Ctx) error {
	var in dto.HistorialRequest
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

	filtro := repository.HistorialFiltro{
		Operacion:  in.Operacion,
		ProductoID: in.ProductoID,
		Busqueda:   textutil.NormalizarBusqueda(in.Busqueda),
		Desde:      desde,
		Hasta:      hasta,
		Limit:      in.Limit,
		Offset:     in.Offset,
	}
	lotes, total, totales, err := h.inventarioUC.ListarHistorial(c.Context(), filtro)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]dto.LoteResponse, 0, len(lotes))
	for _, l := range lotes {
		resp = append(resp, dto.ToLoteResponse(l))
	}
	return c.JSON(fiber.Map{
		"historial": resp,
		"totales": dto.HistorialTotalesResponse{
			TotalCantidad:  totales.TotalCantidad,
			TotalStockLote: totales.TotalStockLote,
		},
		"page": dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	})
}

// Consistencia godoc
// @Summary      Verificar la consistencia del ledger
// @Description  Compara el stock de cada producto contra la suma de los
//               remanentes de sus lotes y reporta las discrepancias.
// @Tags         historial
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DiscrepanciaResponse
// @Router       /api/historial/consistencia [get]
func (h *HistorialHandler) Consistencia(c *fiber.Ctx) error {
	discrepancias, err := h.inventarioUC.VerificarConsistencia(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]dto.DiscrepanciaResponse, 0, len(discrepancias))
	for _, d := range discrepancias {
		resp = append(resp, dto.DiscrepanciaResponse{
			ProductoID: d.ProductoID,
			Nombre:     d.Nombre,
			Stock:      d.Stock,
			SumaLotes:  d.SumaLotes,
		})
	}
	return c.JSON(resp)
}
