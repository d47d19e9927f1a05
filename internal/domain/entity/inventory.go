package entity

import "time"

// Inventory representa la existencia de un producto (relación 1:1 con Product).
// Invariante: Quantity nunca es negativo. "Stock bajo" = Quantity <= ReorderLevel.
type Inventory struct {
	ID              string
	ProductID       string // único: un registro de inventario por producto
	Quantity        int
	ReorderLevel    int
	LastRestockDate *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsLowStock indica si la existencia está en o por debajo del nivel de reorden.
func (i *Inventory) IsLowStock() bool {
	return i.Quantity <= i.ReorderLevel
}
