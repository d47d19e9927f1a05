package repository

import (
	"time"

	"github.com/comprint/mualish-plus-api/internal/domain/entity"
)

// ServiceRequestFilter filtros conjuntivos para el listado de tickets.
// Query busca con ILIKE (OR) sobre request_number, title y description.
type ServiceRequestFilter struct {
	Query        string
	Status       string
	Priority     string
	TechnicianID string
	CustomerID   string
	StartDate    *time.Time
	EndDate      *time.Time
}

// ServiceRequestRepository puerto de persistencia para tickets de servicio,
// sus adjuntos y sus notas de avance.
type ServiceRequestRepository interface {
	Create(sr *entity.ServiceRequest) error
	GetByID(id string) (*entity.ServiceRequest, error)
	List(filter ServiceRequestFilter) ([]*entity.ServiceRequest, error)
	Update(sr *entity.ServiceRequest) error
	// Delete elimina el ticket; adjuntos y notas caen por FK ON DELETE CASCADE.
	Delete(id string) error
	// CountByDay cuenta los tickets del día (secuencia del número SR-YYYYMMDD-NNNN).
	CountByDay(day time.Time) (int, error)

	CreateAttachment(a *entity.ServiceRequestAttachment) error
	GetAttachment(id string) (*entity.ServiceRequestAttachment, error)
	ListAttachments(serviceRequestID string) ([]*entity.ServiceRequestAttachment, error)
	DeleteAttachment(id string) error

	CreateUpdate(u *entity.ServiceRequestUpdate) error
	ListUpdates(serviceRequestID string) ([]*entity.ServiceRequestUpdate, error)
}
