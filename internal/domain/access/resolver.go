// Package access deriva el conjunto de capacidades de UI a partir del rol y los
// permisos explícitos de un usuario. Las capacidades son una ayuda de interfaz;
// el servidor no las usa como frontera de seguridad.
package access

import "github.com/jhoicas/panaderia-api/internal/domain/entity"

// Capabilities es el conjunto de acciones disponibles para el usuario actual.
// Se recalcula en cada petición; nunca se persiste.
type Capabilities struct {
	CanViewStockCard bool `json:"canViewStockCard"`
	CanManageStock   bool `json:"canManageStock"`
	CanViewAllSales  bool `json:"canViewAllSales"`
	CanDeleteSales   bool `json:"canDeleteSales"`
	CanManageSales   bool `json:"canManageSales"`
	CanDeleteBatches bool `json:"canDeleteBatches"`
	IsManagerOrAdmin bool `json:"isManagerOrAdmin"`
	IsAdmin          bool `json:"isAdmin"`
}

// None es el conjunto sin ningún acceso.
var None = Capabilities{}

// Resolve combina rol y permisos. Un usuario nil no tiene acceso; un rol
// desconocido se trata como employee.
//
// CanManageSales (marcar pagado/entregado) sale del permiso de borrar ventas:
// quien puede borrar puede gestionar, y el manager lo obtiene siempre.
// CanDeleteBatches es exclusivo del admin; ningún permiso lo concede.
func Resolve(u *entity.User) Capabilities {
	if u == nil {
		return None
	}
	p := u.Permissions
	isAdmin := u.Role == entity.RoleAdmin
	isManager := u.Role == entity.RoleManager

	return Capabilities{
		CanViewStockCard: p.CanViewStockCard || isAdmin || isManager,
		CanManageStock:   p.CanManageStock || isAdmin || isManager,
		CanViewAllSales:  p.CanViewAllSales || isAdmin || isManager,
		CanDeleteSales:   p.CanDeleteSales || isAdmin,
		CanManageSales:   p.CanDeleteSales || isAdmin || isManager,
		CanDeleteBatches: isAdmin,
		IsManagerOrAdmin: isAdmin || isManager,
		IsAdmin:          isAdmin,
	}
}
