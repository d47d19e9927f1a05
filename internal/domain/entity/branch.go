package entity

import "time"

// Branch representa una sucursal de la empresa. Los usuarios pertenecen a una sucursal.
type Branch struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
