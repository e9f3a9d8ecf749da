package dto

import (
	"time"

	"github.com/jhoicas/panaderia-api/internal/domain/access"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// PermissionsDTO permisos explícitos en el cable. Un campo ausente vale false.
type PermissionsDTO struct {
	CanViewStockCard bool `json:"canViewStockCard"`
	CanManageStock   bool `json:"canManageStock"`
	CanViewAllSales  bool `json:"canViewAllSales"`
	CanDeleteSales   bool `json:"canDeleteSales"`
}

// ToFlags materializa los permisos; nil equivale a todos en false.
func (p *PermissionsDTO) ToFlags() entity.PermissionFlags {
	if p == nil {
		return entity.PermissionFlags{}
	}
	return entity.PermissionFlags{
		CanViewStockCard: p.CanViewStockCard,
		CanManageStock:   p.CanManageStock,
		CanViewAllSales:  p.CanViewAllSales,
		CanDeleteSales:   p.CanDeleteSales,
	}
}

// RegisterRequest entrada para auto-registro: la cuenta queda pendiente de aprobación.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateUserRequest alta directa de un usuario desde la gestión de usuarios (queda activo).
type CreateUserRequest struct {
	Email       string          `json:"email" validate:"required,email"`
	Password    string          `json:"password" validate:"required,min=8"`
	Role        string          `json:"role" validate:"omitempty,oneof=admin manager employee"`
	Permissions *PermissionsDTO `json:"permissions"`
}

// UpdateUserRequest cambio de rol y permisos.
type UpdateUserRequest struct {
	Role        string          `json:"role" validate:"required,oneof=admin manager employee"`
	Permissions *PermissionsDTO `json:"permissions"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string         `json:"id"`
	Email       string         `json:"email"`
	Role        string         `json:"role"`
	Status      string         `json:"status"`
	Permissions PermissionsDTO `json:"permissions"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// MeResponse usuario autenticado y sus capacidades de interfaz.
type MeResponse struct {
	User         UserResponse        `json:"user"`
	Capabilities access.Capabilities `json:"capabilities"`
}

// ToUserResponse convierte la entidad en su representación pública.
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:     u.ID,
		Email:  u.Email,
		Role:   u.Role,
		Status: u.Status,
		Permissions: PermissionsDTO{
			CanViewStockCard: u.Permissions.CanViewStockCard,
			CanManageStock:   u.Permissions.CanManageStock,
			CanViewAllSales:  u.Permissions.CanViewAllSales,
			CanDeleteSales:   u.Permissions.CanDeleteSales,
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
