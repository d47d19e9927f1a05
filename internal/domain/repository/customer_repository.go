package repository

import "github.com/comprint/mualish-plus-api/internal/domain/entity"

// CustomerRepository puerto de persistencia para clientes.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	// List busca con ILIKE (OR) sobre name, email y phone cuando query no es vacío.
	List(query string) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
}
