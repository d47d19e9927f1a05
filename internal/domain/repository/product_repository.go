package repository

import "github.com/comprint/mualish-plus-api/internal/domain/entity"

// ProductFilter filtros conjuntivos para el listado de productos.
// Query busca con ILIKE (OR) sobre name, description y sku.
type ProductFilter struct {
	Query      string
	CategoryID string
	BranchID   string
	Status     string
}

// ProductRepository puerto de persistencia para productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetBySKU busca por SKU exacto (sensible a mayúsculas); la unicidad se valida aquí.
	GetBySKU(sku string) (*entity.Product, error)
	List(filter ProductFilter) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	// CountSaleItems cuenta las líneas de venta que referencian el producto (bloquea el borrado si > 0).
	CountSaleItems(productID string) (int, error)
}
