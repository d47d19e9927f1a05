package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/comprint/mualish-plus-api/internal/application/dto"
	"github.com/comprint/mualish-plus-api/internal/application/sales"
	"github.com/comprint/mualish-plus-api/internal/domain"
	"github.com/comprint/mualish-plus-api/internal/domain/repository"
)

// CommissionHandler maneja las peticiones HTTP de comisiones de venta (protegido).
type CommissionHandler struct {
	uc *sales.CommissionUseCase
}

// NewCommissionHandler construye el handler.
func NewCommissionHandler(uc *sales.CommissionUseCase) *CommissionHandler {
	return &CommissionHandler{uc: uc}
}

// List godoc
// @Summary      Listar comisiones
// @Tags         commissions
// @Security     Bearer
// @Produce      json
// @Param        sales_person_id  query  string  false  "Filtra por vendedor"
// @Param        is_paid          query  bool    false  "Filtra por estado de pago"
// @Param        only_zero        query  bool    false  "Solo comisiones con monto cero"
// @Param        start_date       query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end_date         query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {array}  dto.CommissionResponse
// @Router       /api/commissions [get]
func (h *CommissionHandler) List(c *fiber.Ctx) error {
	filter := repository.CommissionFilter{
		SalesPersonID: c.Query("sales_person_id"),
		OnlyZero:      c.QueryBool("only_zero", false),
	}
	if raw := c.Query("is_paid"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "is_paid inválido (true/false)"})
		}
		filter.IsPaid = &v
	}
	var ok bool
	if filter.StartDate, ok = parseDateQuery(c, "start_date"); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date inválido (YYYY-MM-DD)"})
	}
	if filter.EndDate, ok = parseDateQuery(c, "end_date"); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date inválido (YYYY-MM-DD)"})
	}
	list, err := h.uc.List(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener comisión por ID
// @Tags         commissions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la comisión"
// @Success      200  {object}  dto.CommissionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/commissions/{id} [get]
func (h *CommissionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "comisión no encontrada"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Marcar comisión como pagada (o revertir el pago)
// @Tags         commissions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la comisión"
// @Param        body  body  dto.UpdateCommissionRequest  true  "Estado de pago"
// @Success      200   {object}  dto.CommissionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/commissions/{id} [patch]
func (h *CommissionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCommissionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.MarkPaid(c.Params("id"), in)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "is_paid es requerido"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "comisión no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Repair godoc
// @Summary      Recalcular comisiones desde las líneas de venta (solo admin)
// @Description  Con commission_id repara una sola comisión; sin él repara todas
// @Description  (only_zero limita a montos cero). Los fallos individuales no abortan el lote.
// @Tags         commissions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RepairCommissionsRequest  false  "Alcance de la reparación"
// @Success      200   {object}  dto.RepairReport
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/commissions/repair [post]
func (h *CommissionHandler) Repair(c *fiber.Ctx) error {
	var in dto.RepairCommissionsRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	var (
		report *dto.RepairReport
		err    error
	)
	if in.CommissionID != "" {
		report, err = h.uc.RepairOne(in.CommissionID)
	} else {
		report, err = h.uc.RepairAll(in.OnlyZero)
	}
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "comisión no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(report)
}

// Report godoc
// @Summary      Reporte de comisiones agregado por vendedor
// @Tags         commissions
// @Security     Bearer
// @Produce      json
// @Param        start_date       query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end_date         query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        sales_person_id  query  string  false  "Limita a un vendedor"
// @Success      200  {object}  dto.CommissionReportResponse
// @Router       /api/commissions/reports [get]
func (h *CommissionHandler) Report(c *fiber.Ctx) error {
	start, ok := parseDateQuery(c, "start_date")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date inválido (YYYY-MM-DD)"})
	}
	end, ok := parseDateQuery(c, "end_date")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date inválido (YYYY-MM-DD)"})
	}
	out, err := h.uc.Report(c.Context(), start, end, c.Query("sales_person_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
