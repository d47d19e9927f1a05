package http

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/comprint/mualish-plus-api/internal/application/dto"
	"github.com/comprint/mualish-plus-api/internal/application/service"
	"github.com/comprint/mualish-plus-api/internal/domain"
	"github.com/comprint/mualish-plus-api/internal/domain/repository"
)

// ServiceRequestHandler maneja las peticiones HTTP de tickets de servicio
// técnico, sus adjuntos y sus notas de avance (protegido).
type ServiceRequestHandler struct {
	uc *service.UseCase
}

// NewServiceRequestHandler construye el handler.
func NewServiceRequestHandler(uc *service.UseCase) *ServiceRequestHandler {
	return &ServiceRequestHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ticket de servicio
// @Tags         service-requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateServiceRequestRequest  true  "Ticket a crear"
// @Success      201   {object}  dto.ServiceRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/service-requests [post]
func (h *ServiceRequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateServiceRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del ticket inválidos"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener ticket por ID
// @Tags         service-requests
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ticket"
// @Success      200  {object}  dto.ServiceRequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/service-requests/{id} [get]
func (h *ServiceRequestHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ticket no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar tickets de servicio
// @Tags         service-requests
// @Security     Bearer
// @Produce      json
// @Param        q              query  string  false  "Busca en número de ticket y título"
// @Param        status         query  string  false  "Filtra por estado"
// @Param        priority       query  string  false  "Filtra por prioridad"
// @Param        technician_id  query  string  false  "Filtra por técnico asignado"
// @Param        customer_id    query  string  false  "Filtra por cliente"
// @Param        start_date     query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end_date       query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {array}  dto.ServiceRequestResponse
// @Router       /api/service-requests [get]
func (h *ServiceRequestHandler) List(c *fiber.Ctx) error {
	filter := repository.ServiceRequestFilter{
		Query:        c.Query("q"),
		Status:       c.Query("status"),
		Priority:     c.Query("priority"),
		TechnicianID: c.Query("technician_id"),
		CustomerID:   c.Query("customer_id"),
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

// Update godoc
// @Summary      Actualizar ticket (campos permitidos según el rol del llamador)
// @Description  Un técnico solo puede tocar status, internal_notes, final_cost y
// @Description  completed_date; technician_id es exclusivo de admin. Si algún campo
// @Description  está vedado para el rol, no se aplica ninguno.
// @Tags         service-requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                           true  "ID del ticket"
// @Param        body  body  dto.UpdateServiceRequestRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ServiceRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/service-requests/{id} [patch]
func (h *ServiceRequestHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateServiceRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetRole(c), c.Params("id"), in)
	if err != nil {
		var permErr *service.FieldPermissionError
		if errors.As(err, &permErr) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: permErr.Error()})
		}
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del ticket inválidos"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ticket, cliente o técnico no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar ticket (adjuntos y notas caen con él)
// @Tags         service-requests
// @Security     Bearer
// @Param        id  path  string  true  "ID del ticket"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/service-requests/{id} [delete]
func (h *ServiceRequestHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ticket no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ─────────────────────────── Adjuntos ───────────────────────────

// UploadAttachment godoc
// @Summary      Subir adjunto a un ticket (multipart)
// @Tags         service-requests
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id                   path      string  true   "ID del ticket"
// @Param        file                 formData  file    true   "Archivo (imagen, PDF o texto plano)"
// @Param        description          formData  string  false  "Descripción del adjunto"
// @Param        is_customer_visible  formData  bool    false  "Visible para el cliente"
// @Success      201  {object}  dto.AttachmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/service-requests/{id}/attachments [post]
func (h *ServiceRequestHandler) UploadAttachment(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "falta el archivo (campo file)"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"})
	}

	visible, _ := strconv.ParseBool(c.FormValue("is_customer_visible"))
	in := service.UploadAttachmentInput{
		FileName:          fileHeader.Filename,
		MimeType:          fileHeader.Header.Get("Content-Type"),
		Data:              data,
		Description:       c.FormValue("description"),
		IsCustomerVisible: visible,
	}
	out, err := h.uc.UploadAttachment(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo inválido (tipo o tamaño no permitido)"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ticket no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAttachments godoc
// @Summary      Listar adjuntos de un ticket
// @Tags         service-requests
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ticket"
// @Success      200  {array}  dto.AttachmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/service-requests/{id}/attachments [get]
func (h *ServiceRequestHandler) ListAttachments(c *fiber.Ctx) error {
	list, err := h.uc.ListAttachments(c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ticket no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// DeleteAttachment godoc
// @Summary      Eliminar adjunto
// @Tags         service-requests
// @Security     Bearer
// @Param        id            path  string  true  "ID del ticket"
// @Param        attachmentId  path  string  true  "ID del adjunto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/service-requests/{id}/attachments/{attachmentId} [delete]
func (h *ServiceRequestHandler) DeleteAttachment(c *fiber.Ctx) error {
	if err := h.uc.DeleteAttachment(c.Context(), c.Params("attachmentId")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "adjunto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ─────────────────────────── Notas de avance ───────────────────────────

// CreateUpdate godoc
// @Summary      Agregar nota de avance a un ticket
// @Tags         service-requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID del ticket"
// @Param        body  body  dto.CreateServiceUpdateRequest  true  "Nota"
// @Success      201   {object}  dto.ServiceUpdateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/service-requests/{id}/updates [post]
func (h *ServiceRequestHandler) CreateUpdate(c *fiber.Ctx) error {
	var in dto.CreateServiceUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateUpdate(c.Params("id"), GetUserID(c), in)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "note es requerido"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ticket no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListUpdates godoc
// @Summary      Listar notas de avance de un ticket
// @Tags         service-requests
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ticket"
// @Success      200  {array}  dto.ServiceUpdateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/service-requests/{id}/updates [get]
func (h *ServiceRequestHandler) ListUpdates(c *fiber.Ctx) error {
	list, err := h.uc.ListUpdates(c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ticket no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}
