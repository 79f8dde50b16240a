package guards_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/posjarabe-admin/internal/application/guards"
	"github.com/jhoicas/posjarabe-admin/internal/application/permissions"
	"github.com/jhoicas/posjarabe-admin/internal/domain/entity"
	"github.com/jhoicas/posjarabe-admin/internal/infrastructure/storage"
	"github.com/jhoicas/posjarabe-admin/internal/session"
	"github.com/jhoicas/posjarabe-admin/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func storeWithRole(t *testing.T, role entity.Role) *session.Store {
	t.Helper()
	s := session.New(storage.NewMemoryStorage(), logger.Nop())
	s.SetSession(
		entity.SessionUser{UserID: "u-1", Name: "Usuario", Role: role, FranchiseID: "f-centro"},
		entity.TokenPair{AccessToken: "acc", RefreshToken: "ref"},
	)
	return s
}

func emptyStore(t *testing.T) *session.Store {
	t.Helper()
	return session.New(storage.NewMemoryStorage(), logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Guard de autenticación
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_SinSesionRedirigeALogin(t *testing.T) {
	d := guards.Auth(emptyStore(t))
	assert.False(t, d.Allowed)
	assert.Equal(t, guards.RouteLogin, d.RedirectTo)
}

func TestAuth_ConSesionPasa(t *testing.T) {
	d := guards.Auth(storeWithRole(t, entity.RoleSeller))
	assert.True(t, d.Allowed)
	assert.Empty(t, d.RedirectTo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Guard de rol
// ──────────────────────────────────────────────────────────────────────────────

func TestRole_SinSesionRedirigeALogin(t *testing.T) {
	store := emptyStore(t)
	d := guards.Role(store, permissions.New(store), entity.RoleOwner)
	assert.False(t, d.Allowed)
	assert.Equal(t, guards.RouteLogin, d.RedirectTo)
}

// Rol insuficiente: denegación suave al home, nunca logout ni login.
func TestRole_VendedorBloqueadoEnRutaAdmin(t *testing.T) {
	store := storeWithRole(t, entity.RoleSeller)
	d := guards.Role(store, permissions.New(store), entity.RoleOwner, entity.RolePartner)

	assert.False(t, d.Allowed)
	assert.Equal(t, guards.RouteHome, d.RedirectTo,
		"rol insuficiente redirige al home autenticado, no al login")
	assert.True(t, store.IsLoggedIn(), "el soft deny no toca la sesión")
}

func TestRole_RolPermitidoPasa(t *testing.T) {
	store := storeWithRole(t, entity.RolePartner)
	d := guards.Role(store, permissions.New(store), entity.RoleOwner, entity.RolePartner)
	assert.True(t, d.Allowed)
}

func TestRole_SinRestriccionPasaCualquierLogueado(t *testing.T) {
	store := storeWithRole(t, entity.RoleSeller)
	d := guards.Role(store, permissions.New(store))
	assert.True(t, d.Allowed, "una ruta sin roles declarados solo exige sesión")
}

func TestRole_FranquiciadoEnRutaDeReportes(t *testing.T) {
	store := storeWithRole(t, entity.RoleFranchiseOwner)
	d := guards.Role(store, permissions.New(store),
		entity.RoleOwner, entity.RolePartner, entity.RoleFranchiseOwner)
	assert.True(t, d.Allowed, "FRANCHISE_OWNER entra a reportes de su franquicia")
}
