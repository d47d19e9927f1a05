package repository

import "github.com/comprint/mualish-plus-api/internal/domain/entity"

// BranchRepository puerto de persistencia para sucursales.
type BranchRepository interface {
	Create(branch *entity.Branch) error
	GetByID(id string) (*entity.Branch, error)
	List() ([]*entity.Branch, error)
	Update(branch *entity.Branch) error
	Delete(id string) error
	// CountUsers cuenta los usuarios asociados a la sucursal (bloquea el borrado si > 0).
	CountUsers(branchID string) (int, error)
}
