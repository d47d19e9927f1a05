package repository

import (
	"time"

	"github.com/comprint/mualish-plus-api/internal/domain/entity"
)

// SaleFilter filtros conjuntivos para el listado de ventas.
// Query busca por coincidencia parcial del número de factura.
type SaleFilter struct {
	Query         string
	SalesPersonID string
	CustomerID    string
	PaymentStatus string
	StartDate     *time.Time
	EndDate       *time.Time
}

// SaleRepository puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	ListItems(saleID string) ([]*entity.SaleItem, error)
	List(filter SaleFilter) ([]*entity.Sale, error)
	// Delete elimina la venta; las líneas caen por FK ON DELETE CASCADE.
	Delete(id string) error
	// CountByDay cuenta las ventas del día (secuencia del número de factura INV-YYYYMMDD-NNNN).
	CountByDay(day time.Time) (int, error)
}
