package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. El stock disponible vive en
// Inventory (relación 1:1); aquí solo quedan los datos comerciales.
// CommissionRate es el porcentaje por defecto que heredan las líneas de venta.
type Product struct {
	ID             string
	SKU            string // código único (comparación exacta, sensible a mayúsculas)
	Name           string
	Description    string
	CategoryID     string
	BranchID       string
	Price          decimal.Decimal // precio de venta
	Cost           decimal.Decimal // costo de adquisición
	CommissionRate decimal.Decimal // porcentaje [0,100]
	Status         string          // active, inactive
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
