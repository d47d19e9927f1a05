package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/comprint/mualish-plus-api/internal/domain"
	"github.com/comprint/mualish-plus-api/internal/domain/entity"
	"github.com/comprint/mualish-plus-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create persiste un nuevo registro de existencia (único por producto).
func (r *InventoryRepo) Create(record *entity.Inventory) error {
	query := `
		INSERT INTO inventory (id, product_id, quantity, reorder_level, last_restock_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.ProductID, record.Quantity, record.ReorderLevel,
		record.LastRestockDate, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// GetByID obtiene un registro de existencia por ID.
func (r *InventoryRepo) GetByID(id string) (*entity.Inventory, error) {
	query := `
		SELECT id, product_id, quantity, reorder_level, last_restock_date, created_at, updated_at
		FROM inventory WHERE id = $1`
	var i entity.Inventory
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&i.ID, &i.ProductID, &i.Quantity, &i.ReorderLevel, &i.LastRestockDate, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &i, nil
}

// GetByProductID obtiene el registro de existencia de un producto.
func (r *InventoryRepo) GetByProductID(productID string) (*entity.Inventory, error) {
	query := `
		SELECT id, product_id, quantity, reorder_level, last_restock_date, created_at, updated_at
		FROM inventory WHERE product_id = $1`
	var i entity.Inventory
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&i.ID, &i.ProductID, &i.Quantity, &i.ReorderLevel, &i.LastRestockDate, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory by product: %w", err)
	}
	return &i, nil
}

// List lista existencias; con lowStockOnly solo las que están en o bajo el nivel de reorden.
func (r *InventoryRepo) List(lowStockOnly bool) ([]*entity.Inventory, error) {
	query := `
		SELECT id, product_id, quantity, reorder_level, last_restock_date, created_at, updated_at
		FROM inventory`
	if lowStockOnly {
		query += ` WHERE quantity <= reorder_level`
	}
	query += ` ORDER BY updated_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.Inventory
	for rows.Next() {
		var i entity.Inventory
		if err := rows.Scan(&i.ID, &i.ProductID, &i.Quantity, &i.ReorderLevel, &i.LastRestockDate, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// Update actualiza un registro de existencia.
func (r *InventoryRepo) Update(record *entity.Inventory) error {
	query := `
		UPDATE inventory SET quantity = $2, reorder_level = $3, last_restock_date = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.Quantity, record.ReorderLevel, record.LastRestockDate, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	return nil
}

// Delete elimina un registro de existencia por ID.
func (r *InventoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	return nil
}
