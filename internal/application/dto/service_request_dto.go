package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateServiceRequestRequest entrada para abrir un ticket de servicio.
type CreateServiceRequestRequest struct {
	CustomerID    string           `json:"customer_id" validate:"required,uuid"`
	BranchID      string           `json:"branch_id"`
	Title         string           `json:"title" validate:"required,min=1,max=200"`
	Description   string           `json:"description"`
	Category      string           `json:"category"`
	Priority      string           `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	EstimatedCost *decimal.Decimal `json:"estimated_cost"`
}

// UpdateServiceRequestRequest entrada para el update (PUT) de un ticket.
// Solo los campos presentes (punteros no nil) se consideran "solicitados"
// para la autorización a nivel de campo.
type UpdateServiceRequestRequest struct {
	Title         *string          `json:"title"`
	Description   *string          `json:"description"`
	Category      *string          `json:"category"`
	Priority      *string          `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Status        *string          `json:"status" validate:"omitempty,oneof=pending assigned in_progress waiting_parts completed on_hold cancelled"`
	CustomerID    *string          `json:"customer_id"`
	TechnicianID  *string          `json:"technician_id"`
	EstimatedCost *decimal.Decimal `json:"estimated_cost"`
	FinalCost     *decimal.Decimal `json:"final_cost"`
	InternalNotes *string          `json:"internal_notes"`
	CompletedDate *time.Time       `json:"completed_date"`
}

// ServiceRequestResponse salida de un ticket.
type ServiceRequestResponse struct {
	ID            string           `json:"id"`
	RequestNumber string           `json:"request_number"`
	CustomerID    string           `json:"customer_id"`
	BranchID      string           `json:"branch_id,omitempty"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Category      string           `json:"category"`
	Priority      string           `json:"priority"`
	Status        string           `json:"status"`
	TechnicianID  string           `json:"technician_id,omitempty"`
	EstimatedCost *decimal.Decimal `json:"estimated_cost,omitempty"`
	FinalCost     *decimal.Decimal `json:"final_cost,omitempty"`
	InternalNotes string           `json:"internal_notes,omitempty"`
	CompletedDate *time.Time       `json:"completed_date,omitempty"`
	CreatedBy     string           `json:"created_by"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// CreateServiceUpdateRequest entrada para una nota de avance.
type CreateServiceUpdateRequest struct {
	Note              string `json:"note" validate:"required,min=1"`
	IsCustomerVisible bool   `json:"is_customer_visible"`
}

// ServiceUpdateResponse salida de una nota de avance.
type ServiceUpdateResponse struct {
	ID                string    `json:"id"`
	ServiceRequestID  string    `json:"service_request_id"`
	Note              string    `json:"note"`
	IsCustomerVisible bool      `json:"is_customer_visible"`
	CreatedBy         string    `json:"created_by"`
	CreatedAt         time.Time `json:"created_at"`
}

// AttachmentResponse salida de un adjunto (solo metadatos, el blob no viaja aquí).
type AttachmentResponse struct {
	ID                string    `json:"id"`
	ServiceRequestID  string    `json:"service_request_id"`
	FileName          string    `json:"file_name"`
	MimeType          string    `json:"mime_type"`
	SizeBytes         int64     `json:"size_bytes"`
	Description       string    `json:"description"`
	IsCustomerVisible bool      `json:"is_customer_visible"`
	UploadedBy        string    `json:"uploaded_by"`
	CreatedAt         time.Time `json:"created_at"`
}
