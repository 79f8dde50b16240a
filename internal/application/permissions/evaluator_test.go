package permissions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/posjarabe-admin/internal/application/permissions"
	"github.com/jhoicas/posjarabe-admin/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeRoleSource implementa RoleSource con un rol fijo (o ninguno).
type fakeRoleSource struct {
	role    entity.Role
	hasRole bool
}

func (f fakeRoleSource) CurrentRole() (entity.Role, bool) { return f.role, f.hasRole }

func evaluatorFor(role entity.Role) *permissions.Evaluator {
	return permissions.New(fakeRoleSource{role: role, hasRole: true})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tabla de permisos por rol
// ──────────────────────────────────────────────────────────────────────────────

// Los roles globales tienen absolutamente todos los permisos.
func TestAllows_RolesGlobalesTienenTodo(t *testing.T) {
	for _, role := range []entity.Role{entity.RoleOwner, entity.RolePartner} {
		for _, p := range permissions.All {
			assert.True(t, permissions.Allows(role, p),
				"el rol %s debe tener el permiso %s", role, p)
		}
	}
}

// FRANCHISE_OWNER administra su franquicia pero no la red.
func TestAllows_FranquiciadoSubconjuntoFijo(t *testing.T) {
	granted := []permissions.Permission{
		permissions.ProductsView, permissions.ProductsCreate,
		permissions.ProductsEdit, permissions.ProductsToggleActive,
		permissions.SalesView, permissions.SalesCreate,
		permissions.ReportsView,
		permissions.UsersView, permissions.UsersCreateSeller, permissions.UsersEdit,
		permissions.ChatView,
	}
	denied := []permissions.Permission{
		permissions.ReportsAdmin,
		permissions.UsersCreatePartner, permissions.UsersCreateFranchiseOwn,
		permissions.FranchisesView, permissions.FranchisesManage,
		permissions.ChatAdmin,
	}
	for _, p := range granted {
		assert.True(t, permissions.Allows(entity.RoleFranchiseOwner, p),
			"FRANCHISE_OWNER debe tener %s", p)
	}
	for _, p := range denied {
		assert.False(t, permissions.Allows(entity.RoleFranchiseOwner, p),
			"FRANCHISE_OWNER no debe tener %s", p)
	}
	assert.Len(t, granted, len(permissions.All)-len(denied),
		"la enumeración debe cubrir todos los permisos")
}

// SELLER solo consulta productos, vende y chatea.
func TestAllows_VendedorSoloVentaYConsulta(t *testing.T) {
	granted := map[permissions.Permission]bool{
		permissions.ProductsView: true,
		permissions.SalesView:    true,
		permissions.SalesCreate:  true,
		permissions.ChatView:     true,
	}
	for _, p := range permissions.All {
		assert.Equal(t, granted[p], permissions.Allows(entity.RoleSeller, p),
			"permiso %s para SELLER", p)
	}
}

// Un rol desconocido o vacío no tiene permiso alguno.
func TestAllows_RolDesconocidoDeniegaTodo(t *testing.T) {
	for _, p := range permissions.All {
		assert.False(t, permissions.Allows(entity.Role(""), p))
		assert.False(t, permissions.Allows(entity.Role("INTRUSO"), p))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Evaluator sobre la sesión
// ──────────────────────────────────────────────────────────────────────────────

// Sin sesión activa el evaluador deniega todo.
func TestEvaluator_SinSesionDeniegaTodo(t *testing.T) {
	eval := permissions.New(fakeRoleSource{hasRole: false})
	for _, p := range permissions.All {
		assert.False(t, eval.Can(p), "sin sesión no debe concederse %s", p)
	}
	assert.False(t, eval.Is(entity.RoleOwner))
	assert.False(t, eval.IsAny(entity.RoleOwner, entity.RoleSeller))
}

func TestEvaluator_CanDelegaEnLaTabla(t *testing.T) {
	eval := evaluatorFor(entity.RoleSeller)
	assert.True(t, eval.Can(permissions.SalesCreate), "SELLER puede vender")
	assert.False(t, eval.Can(permissions.ReportsView), "SELLER no ve reportes")
}

func TestEvaluator_IsAnyCompruebaPertenencia(t *testing.T) {
	eval := evaluatorFor(entity.RoleFranchiseOwner)
	assert.True(t, eval.Is(entity.RoleFranchiseOwner))
	assert.True(t, eval.IsAny(entity.RoleOwner, entity.RoleFranchiseOwner))
	assert.False(t, eval.IsAny(entity.RoleOwner, entity.RolePartner),
		"FRANCHISE_OWNER no es rol global")
}
