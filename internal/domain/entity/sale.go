package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de una venta. El origen no valida transiciones entre estados,
// cualquier valor del conjunto es aceptado en cualquier momento.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusPartial   = "partial"
	PaymentStatusCancelled = "cancelled"
)

// IsValidPaymentStatus indica si el estado pertenece al enum de pagos.
func IsValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusPartial, PaymentStatusCancelled:
		return true
	}
	return false
}

// Sale representa la cabecera de una venta. Una venta posee N SaleItems
// (borrado en cascada) y a lo sumo una SalesCommission derivada.
type Sale struct {
	ID             string
	InvoiceNumber  string // único, formato INV-YYYYMMDD-NNNN
	CustomerID     string // vacío para venta de mostrador sin cliente
	SalesPersonID  string
	BranchID       string
	SaleDate       time.Time
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	PaymentStatus  string // pending, paid, partial, cancelled
	PaymentMethod  string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Items []*SaleItem // cargados en lecturas de detalle
}

// SaleItem representa una línea de venta. Inmutable una vez creada en el flujo normal.
type SaleItem struct {
	ID              string
	SaleID          string
	ProductID       string
	Quantity        int             // > 0
	UnitPrice       decimal.Decimal // > 0
	CommissionRate  decimal.Decimal // porcentaje [0,100]
	DiscountPercent decimal.Decimal // porcentaje [0,100]
	TotalPrice      decimal.Decimal
}
