package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/comprint/mualish-plus-api/internal/domain/entity"
)

// CommissionFilter filtros conjuntivos para el listado de comisiones.
type CommissionFilter struct {
	SalesPersonID string
	IsPaid        *bool
	StartDate     *time.Time
	EndDate       *time.Time
	// OnlyZero limita a comisiones con monto cero (candidatas a reparación).
	OnlyZero bool
}

// CommissionReportRow agregado por vendedor para el reporte de comisiones.
type CommissionReportRow struct {
	SalesPersonID   string
	SalesPersonName string
	SalesCount      int
	TotalCommission decimal.Decimal
	PaidAmount      decimal.Decimal
	UnpaidAmount    decimal.Decimal
}

// CommissionRepository puerto de persistencia para comisiones de venta.
type CommissionRepository interface {
	Create(c *entity.SalesCommission) error
	GetByID(id string) (*entity.SalesCommission, error)
	GetBySaleID(saleID string) (*entity.SalesCommission, error)
	List(filter CommissionFilter) ([]*entity.SalesCommission, error)
	Update(c *entity.SalesCommission) error
	DeleteBySaleID(saleID string) error
	// Report agrega comisiones por vendedor en el período (SQL, no en memoria).
	Report(ctx context.Context, start, end *time.Time, salesPersonID string) ([]CommissionReportRow, error)
}
