package repository

import "github.com/comprint/mualish-plus-api/internal/domain/entity"

// CategoryRepository puerto de persistencia para categorías de productos.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	List() ([]*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id string) error
	// CountProducts cuenta los productos que usan la categoría (bloquea el borrado si > 0).
	CountProducts(categoryID string) (int, error)
}
