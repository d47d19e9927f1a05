package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta en el request de creación.
// CommissionRate y DiscountPercent son porcentajes [0,100]; si CommissionRate
// es nil se hereda la tasa por defecto del producto.
type SaleItemRequest struct {
	ProductID       string           `json:"product_id" validate:"required,uuid"`
	Quantity        int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	CommissionRate  *decimal.Decimal `json:"commission_rate"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
}

// CreateSaleRequest entrada para crear una venta con sus líneas.
type CreateSaleRequest struct {
	CustomerID    string            `json:"customer_id"`
	SalesPersonID string            `json:"sales_person_id"`
	SaleDate      *time.Time        `json:"sale_date"`
	TaxAmount     decimal.Decimal   `json:"tax_amount"`
	PaymentStatus string            `json:"payment_status" validate:"omitempty,oneof=pending paid partial cancelled"`
	PaymentMethod string            `json:"payment_method"`
	Notes         string            `json:"notes"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1"`
}

// SaleItemResponse línea de venta en respuestas.
type SaleItemResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	CommissionRate  decimal.Decimal `json:"commission_rate"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TotalPrice      decimal.Decimal `json:"total_price"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID             string             `json:"id"`
	InvoiceNumber  string             `json:"invoice_number"`
	CustomerID     string             `json:"customer_id,omitempty"`
	SalesPersonID  string             `json:"sales_person_id"`
	BranchID       string             `json:"branch_id,omitempty"`
	SaleDate       time.Time          `json:"sale_date"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	PaymentStatus  string             `json:"payment_status"`
	PaymentMethod  string             `json:"payment_method"`
	Notes          string             `json:"notes,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	Items          []SaleItemResponse `json:"items,omitempty"`
}
