package repository

import "github.com/comprint/mualish-plus-api/internal/domain/entity"

// InventoryRepository puerto de persistencia para existencias (1:1 con Product).
type InventoryRepository interface {
	Create(record *entity.Inventory) error
	GetByID(id string) (*entity.Inventory, error)
	GetByProductID(productID string) (*entity.Inventory, error)
	// List devuelve todos los registros; con lowStockOnly filtra quantity <= reorder_level.
	List(lowStockOnly bool) ([]*entity.Inventory, error)
	Update(record *entity.Inventory) error
	Delete(id string) error
}
