// Package inventory contiene los casos de uso de existencias: CRUD del
// registro 1:1 producto-inventario y el ajuste de stock (restock / set).
package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/comprint/mualish-plus-api/internal/application/dto"
	"github.com/comprint/mualish-plus-api/internal/domain"
	"github.com/comprint/mualish-plus-api/internal/domain/entity"
	"github.com/comprint/mualish-plus-api/internal/domain/repository"
)

// UseCase casos de uso de inventario.
type UseCase struct {
	repo        repository.InventoryRepository
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.InventoryRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{repo: repo, productRepo: productRepo}
}

// Create crea el registro de existencias de un producto. El producto debe
// existir y no tener ya un registro (relación 1:1 → ErrDuplicate).
func (uc *UseCase) Create(in dto.CreateInventoryRequest) (*dto.InventoryResponse, error) {
	if in.Quantity < 0 || in.ReorderLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	existing, _ := uc.repo.GetByProductID(in.ProductID)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	record := &entity.Inventory{
		ID:           uuid.New().String(),
		ProductID:    in.ProductID,
		Quantity:     in.Quantity,
		ReorderLevel: in.ReorderLevel,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(record); err != nil {
		return nil, err
	}
	return toInventoryResponse(record), nil
}

// GetByID obtiene un registro por ID.
func (uc *UseCase) GetByID(id string) (*dto.InventoryResponse, error) {
	record, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	return toInventoryResponse(record), nil
}

// List lista registros; con lowStockOnly solo los que están en o bajo el nivel de reorden.
func (uc *UseCase) List(lowStockOnly bool) ([]dto.InventoryResponse, error) {
	list, err := uc.repo.List(lowStockOnly)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toInventoryResponse(r))
	}
	return items, nil
}

// AdjustStock ajusta la cantidad de un registro.
// restock=true: nueva_cantidad = actual + quantity, y se actualiza last_restock_date.
// restock=false: nueva_cantidad = quantity (valor absoluto; fijar por debajo del
// actual es válido — la confirmación es responsabilidad de la UI).
// quantity <= 0 se rechaza con ErrInvalidInput en ambos modos.
func (uc *UseCase) AdjustStock(id string, in dto.AdjustStockRequest) (*dto.InventoryResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	record, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	if in.Restock {
		record.Quantity += in.Quantity
		record.LastRestockDate = &now
	} else {
		record.Quantity = in.Quantity
	}
	record.UpdatedAt = now
	if err := uc.repo.Update(record); err != nil {
		return nil, err
	}
	return toInventoryResponse(record), nil
}

// Update aplica el update completo (PUT); hoy solo el nivel de reorden es editable por aquí.
func (uc *UseCase) Update(id string, in dto.UpdateInventoryRequest) (*dto.InventoryResponse, error) {
	record, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	if in.ReorderLevel != nil {
		if *in.ReorderLevel < 0 {
			return nil, domain.ErrInvalidInput
		}
		record.ReorderLevel = *in.ReorderLevel
	}
	record.UpdatedAt = time.Now()
	if err := uc.repo.Update(record); err != nil {
		return nil, err
	}
	return toInventoryResponse(record), nil
}

// Delete elimina un registro de existencias.
func (uc *UseCase) Delete(id string) error {
	record, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if record == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toInventoryResponse(r *entity.Inventory) *dto.InventoryResponse {
	if r == nil {
		return nil
	}
	return &dto.InventoryResponse{
		ID:              r.ID,
		ProductID:       r.ProductID,
		Quantity:        r.Quantity,
		ReorderLevel:    r.ReorderLevel,
		LowStock:        r.IsLowStock(),
		LastRestockDate: r.LastRestockDate,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
