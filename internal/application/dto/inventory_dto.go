package dto

import "time"

// CreateInventoryRequest entrada para crear el registro de existencias de un producto.
type CreateInventoryRequest struct {
	ProductID    string `json:"product_id" validate:"required,uuid"`
	Quantity     int    `json:"quantity" validate:"min=0"`
	ReorderLevel int    `json:"reorder_level" validate:"min=0"`
}

// UpdateInventoryRequest entrada para el update completo (PUT) de un registro.
// La cantidad se mueve con AdjustStockRequest, no por aquí.
type UpdateInventoryRequest struct {
	ReorderLevel *int `json:"reorder_level" validate:"omitempty,min=0"`
}

// AdjustStockRequest entrada para el ajuste de existencias (PATCH).
// Restock=true suma Quantity al stock actual y actualiza last_restock_date;
// Restock=false fija Quantity como valor absoluto.
type AdjustStockRequest struct {
	Quantity int  `json:"quantity" validate:"required,gt=0"`
	Restock  bool `json:"restock"`
}

// InventoryResponse salida de un registro de existencias.
type InventoryResponse struct {
	ID              string     `json:"id"`
	ProductID       string     `json:"product_id"`
	Quantity        int        `json:"quantity"`
	ReorderLevel    int        `json:"reorder_level"`
	LowStock        bool       `json:"low_stock"`
	LastRestockDate *time.Time `json:"last_restock_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
