package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/comprint/mualish-plus-api/internal/application/dto"
	"github.com/comprint/mualish-plus-api/internal/domain"
	"github.com/comprint/mualish-plus-api/internal/domain/entity"
	"github.com/comprint/mualish-plus-api/internal/domain/repository"
	"github.com/comprint/mualish-plus-api/internal/domain/servicereq"
)

// FieldPermissionError update de ticket rechazado por campos fuera del alcance
// del rol. El update no se aplica parcialmente: o pasan todos los campos
// solicitados o no pasa ninguno.
type FieldPermissionError struct {
	Role   string
	Fields []string
}

func (e *FieldPermissionError) Error() string {
	return fmt.Sprintf("el rol %s no puede modificar los campos: %s", e.Role, strings.Join(e.Fields, ", "))
}

func (e *FieldPermissionError) Unwrap() error { return domain.ErrForbidden }

// UseCase lógica de negocio para tickets de servicio, sus adjuntos y notas.
type UseCase struct {
	repo         repository.ServiceRequestRepository
	customerRepo repository.CustomerRepository
	userRepo     repository.UserRepository
	storage      FileStorage
	maxFileBytes int64
}

// NewUseCase construye el caso de uso de tickets de servicio.
func NewUseCase(
	repo repository.ServiceRequestRepository,
	customerRepo repository.CustomerRepository,
	userRepo repository.UserRepository,
	storage FileStorage,
	maxFileBytes int64,
) *UseCase {
	return &UseCase{
		repo:         repo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
		storage:      storage,
		maxFileBytes: maxFileBytes,
	}
}

// Create abre un ticket nuevo con número SR-YYYYMMDD-NNNN y estado pending.
func (uc *UseCase) Create(creatorID string, in dto.CreateServiceRequestRequest) (*dto.ServiceRequestResponse, error) {
	if in.Title == "" || in.CustomerID == "" {
		return nil, domain.ErrInvalidInput
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.ServicePriorityMedium
	}
	if !entity.IsValidServicePriority(priority) {
		return nil, domain.ErrInvalidInput
	}
	if in.EstimatedCost != nil && in.EstimatedCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	seq, err := uc.repo.CountByDay(now)
	if err != nil {
		return nil, err
	}

	sr := &entity.ServiceRequest{
		ID:            uuid.NewString(),
		RequestNumber: fmt.Sprintf("SR-%s-%04d", now.Format("20060102"), seq+1),
		CustomerID:    in.CustomerID,
		BranchID:      in.BranchID,
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		Priority:      priority,
		Status:        entity.ServiceStatusPending,
		EstimatedCost: in.EstimatedCost,
		CreatedBy:     creatorID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(sr); err != nil {
		return nil, err
	}
	return toServiceRequestResponse(sr), nil
}

// GetByID obtiene un ticket por ID.
func (uc *UseCase) GetByID(id string) (*dto.ServiceRequestResponse, error) {
	sr, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sr == nil {
		return nil, nil
	}
	return toServiceRequestResponse(sr), nil
}

// List lista tickets aplicando los filtros conjuntivos.
func (uc *UseCase) List(filter repository.ServiceRequestFilter) ([]dto.ServiceRequestResponse, error) {
	list, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ServiceRequestResponse, 0, len(list))
	for _, sr := range list {
		items = append(items, *toServiceRequestResponse(sr))
	}
	return items, nil
}

// Update aplica un update autorizado a nivel de campo según el rol del
// llamador. Primero se calcula el conjunto de campos solicitados (punteros no
// nil); si alguno queda fuera del alcance del rol, el update completo se
// rechaza nombrando los campos ofensores.
func (uc *UseCase) Update(callerRole, id string, in dto.UpdateServiceRequestRequest) (*dto.ServiceRequestResponse, error) {
	requested := requestedFields(in)
	if len(requested) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if forbidden := servicereq.ForbiddenFields(callerRole, requested); len(forbidden) > 0 {
		return nil, &FieldPermissionError{Role: callerRole, Fields: forbidden}
	}

	sr, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sr == nil {
		return nil, nil
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, domain.ErrInvalidInput
		}
		sr.Title = *in.Title
	}
	if in.Description != nil {
		sr.Description = *in.Description
	}
	if in.Category != nil {
		sr.Category = *in.Category
	}
	if in.Priority != nil {
		if !entity.IsValidServicePriority(*in.Priority) {
			return nil, domain.ErrInvalidInput
		}
		sr.Priority = *in.Priority
	}
	if in.Status != nil {
		if !entity.IsValidServiceStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		sr.Status = *in.Status
	}
	if in.CustomerID != nil {
		customer, err := uc.customerRepo.GetByID(*in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
		sr.CustomerID = *in.CustomerID
	}
	if in.TechnicianID != nil {
		// Cadena vacía desasigna al técnico.
		if *in.TechnicianID == "" {
			sr.TechnicianID = ""
		} else {
			tech, err := uc.userRepo.GetByID(*in.TechnicianID)
			if err != nil {
				return nil, err
			}
			if tech == nil {
				return nil, domain.ErrNotFound
			}
			sr.TechnicianID = *in.TechnicianID
			if sr.Status == entity.ServiceStatusPending {
				sr.Status = entity.ServiceStatusAssigned
			}
		}
	}
	if in.EstimatedCost != nil {
		if in.EstimatedCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		sr.EstimatedCost = in.EstimatedCost
	}
	if in.FinalCost != nil {
		if in.FinalCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		sr.FinalCost = in.FinalCost
	}
	if in.InternalNotes != nil {
		sr.InternalNotes = *in.InternalNotes
	}
	if in.CompletedDate != nil {
		sr.CompletedDate = in.CompletedDate
	}
	// Al completar sin fecha explícita se estampa la fecha actual.
	if sr.Status == entity.ServiceStatusCompleted && sr.CompletedDate == nil {
		now := time.Now()
		sr.CompletedDate = &now
	}
	sr.UpdatedAt = time.Now()

	if err := uc.repo.Update(sr); err != nil {
		return nil, err
	}
	return toServiceRequestResponse(sr), nil
}

// Delete elimina un ticket; adjuntos y notas caen en cascada.
func (uc *UseCase) Delete(id string) error {
	sr, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if sr == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// requestedFields traduce los punteros no nil del request a nombres de campo.
func requestedFields(in dto.UpdateServiceRequestRequest) []string {
	var fields []string
	add := func(present bool, name string) {
		if present {
			fields = append(fields, name)
		}
	}
	add(in.Title != nil, servicereq.FieldTitle)
	add(in.Description != nil, servicereq.FieldDescription)
	add(in.Category != nil, servicereq.FieldCategory)
	add(in.Priority != nil, servicereq.FieldPriority)
	add(in.Status != nil, servicereq.FieldStatus)
	add(in.CustomerID != nil, servicereq.FieldCustomerID)
	add(in.TechnicianID != nil, servicereq.FieldTechnicianID)
	add(in.EstimatedCost != nil, servicereq.FieldEstimatedCost)
	add(in.FinalCost != nil, servicereq.FieldFinalCost)
	add(in.InternalNotes != nil, servicereq.FieldInternalNotes)
	add(in.CompletedDate != nil, servicereq.FieldCompletedDate)
	return fields
}

func toServiceRequestResponse(sr *entity.ServiceRequest) *dto.ServiceRequestResponse {
	if sr == nil {
		return nil
	}
	return &dto.ServiceRequestResponse{
		ID:            sr.ID,
		RequestNumber: sr.RequestNumber,
		CustomerID:    sr.CustomerID,
		BranchID:      sr.BranchID,
		Title:         sr.Title,
		Description:   sr.Description,
		Category:      sr.Category,
		Priority:      sr.Priority,
		Status:        sr.Status,
		TechnicianID:  sr.TechnicianID,
		EstimatedCost: sr.EstimatedCost,
		FinalCost:     sr.FinalCost,
		InternalNotes: sr.InternalNotes,
		CompletedDate: sr.CompletedDate,
		CreatedBy:     sr.CreatedBy,
		CreatedAt:     sr.CreatedAt,
		UpdatedAt:     sr.UpdatedAt,
	}
}
