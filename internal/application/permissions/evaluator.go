// Package permissions define la tabla de permisos por rol y el evaluador que
// la consume. La tabla es la ÚNICA fuente de verdad: los guards de navegación
// y la visibilidad de comandos derivan de aquí, nunca redefinen reglas.
package permissions

import "github.com/jhoicas/posjarabe-admin/internal/domain/entity"

// Permission acción puntual sobre un recurso.
type Permission string

// Permisos del sistema.
const (
	ProductsView         Permission = "products.view"
	ProductsCreate       Permission = "products.create"
	ProductsEdit         Permission = "products.edit"
	ProductsToggleActive Permission = "products.toggleActive"

	SalesView   Permission = "sales.view"
	SalesCreate Permission = "sales.create"

	ReportsView  Permission = "reports.view"
	ReportsAdmin Permission = "reports.admin"

	UsersView               Permission = "users.view"
	UsersCreatePartner      Permission = "users.create.partner"
	UsersCreateFranchiseOwn Permission = "users.create.franchise_owner"
	UsersCreateSeller       Permission = "users.create.seller"
	UsersEdit               Permission = "users.edit"

	FranchisesView   Permission = "franchises.view"
	FranchisesManage Permission = "franchises.manage"

	ChatView  Permission = "chat.view"
	ChatAdmin Permission = "chat.admin"
)

// All lista completa de permisos (para enumeraciones y tests).
var All = []Permission{
	ProductsView, ProductsCreate, ProductsEdit, ProductsToggleActive,
	SalesView, SalesCreate,
	ReportsView, ReportsAdmin,
	UsersView, UsersCreatePartner, UsersCreateFranchiseOwn, UsersCreateSeller, UsersEdit,
	FranchisesView, FranchisesManage,
	ChatView, ChatAdmin,
}

// franchiseOwnerGrants lo que puede hacer un FRANCHISE_OWNER: administra SU
// franquicia (productos, ventas, reportes, sus vendedores) pero no toca
// franquicias, ni socios, ni reportes administrativos.
var franchiseOwnerGrants = map[Permission]bool{
	ProductsView:         true,
	ProductsCreate:       true,
	ProductsEdit:         true,
	ProductsToggleActive: true,
	SalesView:            true,
	SalesCreate:          true,
	ReportsView:          true,
	UsersView:            true,
	UsersCreateSeller:    true,
	UsersEdit:            true,
	ChatView:             true,
}

// sellerGrants lo que puede hacer un SELLER: consultar productos, registrar y
// ver ventas, y chat. Sin reportes ni gestión de usuarios.
var sellerGrants = map[Permission]bool{
	ProductsView: true,
	SalesView:    true,
	SalesCreate:  true,
	ChatView:     true,
}

// RoleSource de dónde sale el rol actual; lo implementa el session.Store.
type RoleSource interface {
	CurrentRole() (entity.Role, bool)
}

// Evaluator evaluador de permisos: funciones puras sobre el rol actual.
type Evaluator struct {
	roles RoleSource
}

// New construye el evaluador.
func New(roles RoleSource) *Evaluator {
	return &Evaluator{roles: roles}
}

// Can indica si el rol actual tiene el permiso p. Sin sesión, todo negado.
func (e *Evaluator) Can(p Permission) bool {
	role, ok := e.roles.CurrentRole()
	if !ok {
		return false
	}
	return Allows(role, p)
}

// Is indica si el rol actual es exactamente role.
func (e *Evaluator) Is(role entity.Role) bool {
	r, ok := e.roles.CurrentRole()
	return ok && r == role
}

// IsAny indica si el rol actual es alguno de roles.
func (e *Evaluator) IsAny(roles ...entity.Role) bool {
	r, ok := e.roles.CurrentRole()
	if !ok {
		return false
	}
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// Allows tabla de decisión pura rol×permiso. OWNER y PARTNER tienen todo
// incondicionalmente; los demás roles, su subconjunto fijo.
func Allows(role entity.Role, p Permission) bool {
	switch role {
	case entity.RoleOwner, entity.RolePartner:
		return true
	case entity.RoleFranchiseOwner:
		return franchiseOwnerGrants[p]
	case entity.RoleSeller:
		return sellerGrants[p]
	}
	return false
}
