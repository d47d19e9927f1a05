package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un ticket de servicio. El origen no impone un grafo de transiciones:
// cualquier rol con permiso sobre `status` puede fijar cualquier valor del enum.
const (
	ServiceStatusPending      = "pending"
	ServiceStatusAssigned     = "assigned"
	ServiceStatusInProgress   = "in_progress"
	ServiceStatusWaitingParts = "waiting_parts"
	ServiceStatusCompleted    = "completed"
	ServiceStatusOnHold       = "on_hold"
	ServiceStatusCancelled    = "cancelled"
)

// Prioridades de un ticket de servicio.
const (
	ServicePriorityLow    = "low"
	ServicePriorityMedium = "medium"
	ServicePriorityHigh   = "high"
	ServicePriorityUrgent = "urgent"
)

// IsValidServiceStatus indica si el estado pertenece al enum de tickets.
func IsValidServiceStatus(s string) bool {
	switch s {
	case ServiceStatusPending, ServiceStatusAssigned, ServiceStatusInProgress,
		ServiceStatusWaitingParts, ServiceStatusCompleted, ServiceStatusOnHold,
		ServiceStatusCancelled:
		return true
	}
	return false
}

// IsValidServicePriority indica si la prioridad pertenece al enum.
func IsValidServicePriority(p string) bool {
	switch p {
	case ServicePriorityLow, ServicePriorityMedium, ServicePriorityHigh, ServicePriorityUrgent:
		return true
	}
	return false
}

// ServiceRequest representa un ticket de reparación/soporte.
type ServiceRequest struct {
	ID            string
	RequestNumber string // único, formato SR-YYYYMMDD-NNNN
	CustomerID    string
	BranchID      string
	Title         string
	Description   string
	Category      string
	Priority      string // low, medium, high, urgent
	Status        string // pending, assigned, in_progress, waiting_parts, completed, on_hold, cancelled
	TechnicianID  string // asignable solo por admin
	EstimatedCost *decimal.Decimal
	FinalCost     *decimal.Decimal
	InternalNotes string
	CompletedDate *time.Time
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ServiceRequestAttachment representa un archivo adjunto a un ticket.
// El blob vive en el almacenamiento de archivos bajo StoragePath; aquí solo metadatos.
type ServiceRequestAttachment struct {
	ID                string
	ServiceRequestID  string
	FileName          string
	StoragePath       string
	MimeType          string
	SizeBytes         int64
	Description       string
	IsCustomerVisible bool
	UploadedBy        string
	CreatedAt         time.Time
}

// ServiceRequestUpdate representa una nota de avance sobre un ticket.
type ServiceRequestUpdate struct {
	ID                string
	ServiceRequestID  string
	Note              string
	IsCustomerVisible bool
	CreatedBy         string
	CreatedAt         time.Time
}
