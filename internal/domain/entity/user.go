package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleSales      = "sales"
	RoleTechnician = "technician"
)

// Estados válidos para User.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// IsValidRole indica si el rol pertenece al conjunto admin|sales|technician.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleSales || role == RoleTechnician
}

// User representa un empleado del sistema (pertenece a una Branch).
type User struct {
	ID           string
	BranchID     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, sales, technician
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
