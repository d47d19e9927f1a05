package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateCommissionRequest entrada para marcar una comisión como pagada o revertirla.
type UpdateCommissionRequest struct {
	IsPaid      *bool      `json:"is_paid" validate:"required"`
	PaymentDate *time.Time `json:"payment_date"`
}

// RepairCommissionsRequest entrada para la reparación de comisiones.
// Con CommissionID repara una sola; sin él repara todas (OnlyZero limita a montos cero).
type RepairCommissionsRequest struct {
	CommissionID string `json:"commission_id"`
	OnlyZero     bool   `json:"only_zero"`
}

// CommissionResponse salida de una comisión.
type CommissionResponse struct {
	ID               string          `json:"id"`
	SaleID           string          `json:"sale_id"`
	SalesPersonID    string          `json:"sales_person_id"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	IsPaid           bool            `json:"is_paid"`
	PaymentDate      *time.Time      `json:"payment_date,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// RepairDetail resultado por comisión dentro de una reparación en lote.
type RepairDetail struct {
	CommissionID string          `json:"commission_id"`
	SaleID       string          `json:"sale_id,omitempty"`
	Status       string          `json:"status"` // repaired | failed
	OldAmount    decimal.Decimal `json:"old_amount"`
	NewAmount    decimal.Decimal `json:"new_amount"`
	Error        string          `json:"error,omitempty"`
}

// RepairReport reporte acumulado de una reparación en lote (mejor esfuerzo:
// los fallos individuales no abortan el lote).
type RepairReport struct {
	Total   int            `json:"total"`
	Success int            `json:"success"`
	Failed  int            `json:"failed"`
	Details []RepairDetail `json:"details"`
}

// CommissionReportRow fila del reporte agregado por vendedor.
type CommissionReportRow struct {
	SalesPersonID   string          `json:"sales_person_id"`
	SalesPersonName string          `json:"sales_person_name"`
	SalesCount      int             `json:"sales_count"`
	TotalCommission decimal.Decimal `json:"total_commission"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	UnpaidAmount    decimal.Decimal `json:"unpaid_amount"`
}

// CommissionReportResponse reporte de comisiones por período.
type CommissionReportResponse struct {
	StartDate string                `json:"start_date,omitempty"`
	EndDate   string                `json:"end_date,omitempty"`
	Rows      []CommissionReportRow `json:"rows"`
}
