package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesCommission representa la comisión de un vendedor por una venta.
// CommissionAmount es un valor derivado (cacheado) de las líneas de la venta;
// la operación de reparación lo recalcula desde los SaleItems para corregir deriva.
type SalesCommission struct {
	ID               string
	SaleID           string
	SalesPersonID    string
	CommissionAmount decimal.Decimal // >= 0
	IsPaid           bool
	PaymentDate      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
