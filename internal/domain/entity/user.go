package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// Estados de cuenta.
const (
	UserStatusPending = "pending" // registrada, esperando aprobación de un admin
	UserStatusActive  = "active"
)

// PermissionFlags son los permisos explícitos que un admin puede conceder a cualquier usuario.
// El valor cero (todo false) es el valor por defecto de una cuenta nueva.
type PermissionFlags struct {
	CanViewStockCard bool `json:"canViewStockCard"`
	CanManageStock   bool `json:"canManageStock"`
	CanViewAllSales  bool `json:"canViewAllSales"`
	CanDeleteSales   bool `json:"canDeleteSales"`
}

// User representa una cuenta del tablero.
// Permissions siempre está materializado; nunca hay que comprobar nil.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash
	Role         string // admin, manager, employee
	Status       string // pending, active
	Permissions  PermissionFlags
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsKnownRole indica si el rol pertenece al catálogo.
func IsKnownRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}
