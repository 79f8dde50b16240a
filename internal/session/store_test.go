package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/posjarabe-admin/internal/domain/entity"
	"github.com/jhoicas/posjarabe-admin/internal/infrastructure/storage"
	"github.com/jhoicas/posjarabe-admin/internal/session"
	"github.com/jhoicas/posjarabe-admin/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	keyUser            = "posjarabe.session.user"
	keyTokens          = "posjarabe.session.tokens"
	keyActiveFranchise = "posjarabe.session.activeFranchiseId"
)

func ownerUser() entity.SessionUser {
	return entity.SessionUser{UserID: "u-1", Name: "Dueño", Role: entity.RoleOwner}
}

func sellerUser() entity.SessionUser {
	return entity.SessionUser{UserID: "u-2", Name: "Vendedor", Role: entity.RoleSeller, FranchiseID: "f-centro"}
}

func someTokens() entity.TokenPair {
	return entity.TokenPair{AccessToken: "acc-1", RefreshToken: "ref-1"}
}

func newStore(t *testing.T) (*session.Store, *storage.MemoryStorage) {
	t.Helper()
	mem := storage.NewMemoryStorage()
	return session.New(mem, logger.Nop()), mem
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida básico
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_ArrancaSinSesion(t *testing.T) {
	s, _ := newStore(t)
	assert.False(t, s.IsLoggedIn())
	assert.Empty(t, s.AccessToken())
	assert.Empty(t, s.EffectiveFranchiseID())
	_, ok := s.User()
	assert.False(t, ok)
}

func TestStore_SetSessionExponeIdentidadYTokens(t *testing.T) {
	s, mem := newStore(t)
	s.SetSession(ownerUser(), someTokens())

	assert.True(t, s.IsLoggedIn())
	user, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "u-1", user.UserID)

	tokens, ok := s.Tokens()
	require.True(t, ok)
	assert.Equal(t, "acc-1", tokens.AccessToken)
	assert.Equal(t, "ref-1", tokens.RefreshToken)

	role, ok := s.CurrentRole()
	require.True(t, ok)
	assert.Equal(t, entity.RoleOwner, role)

	// La mutación persiste de inmediato.
	_, ok = mem.Get(keyUser)
	assert.True(t, ok, "el usuario debe persistirse tras SetSession")
	_, ok = mem.Get(keyTokens)
	assert.True(t, ok, "los tokens deben persistirse tras SetSession")
}

func TestStore_PatchTokensNoTocaIdentidad(t *testing.T) {
	s, _ := newStore(t)
	s.SetSession(ownerUser(), someTokens())

	s.PatchTokens(entity.TokenPair{AccessToken: "acc-2", RefreshToken: "ref-2"})

	assert.Equal(t, "acc-2", s.AccessToken())
	assert.Equal(t, "ref-2", s.RefreshToken())
	user, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "u-1", user.UserID, "el refresh no debe cambiar la identidad")
}

func TestStore_ClearBorraTodoInclusoStorage(t *testing.T) {
	s, mem := newStore(t)
	s.SetSession(ownerUser(), someTokens())
	s.SetActiveFranchiseID("f-norte")

	s.Clear()

	assert.False(t, s.IsLoggedIn())
	assert.Empty(t, s.AccessToken())
	assert.Empty(t, s.ActiveFranchiseID())
	assert.Zero(t, mem.Len(), "Clear debe vaciar el storage completo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Franquicia efectiva
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_RolGlobalUsaSeleccionActiva(t *testing.T) {
	s, _ := newStore(t)
	s.SetSession(ownerUser(), someTokens())

	assert.Empty(t, s.EffectiveFranchiseID(), "OWNER sin selección opera global")

	s.SetActiveFranchiseID("f-norte")
	assert.Equal(t, "f-norte", s.EffectiveFranchiseID())
}

func TestStore_RolDeFranquiciaQuedaClavado(t *testing.T) {
	s, _ := newStore(t)
	s.SetSession(sellerUser(), someTokens())

	assert.Equal(t, "f-centro", s.ActiveFranchiseID(),
		"el login de un rol de franquicia fuerza la selección a su franquicia")
	assert.Equal(t, "f-centro", s.EffectiveFranchiseID())

	// Cualquier intento de override es inocuo para la resolución efectiva.
	s.SetActiveFranchiseID("f-norte")
	assert.Equal(t, "f-centro", s.EffectiveFranchiseID(),
		"SELLER nunca cambia de franquicia efectiva")
}

func TestStore_LoginGlobalConservaSeleccionPrevia(t *testing.T) {
	s, _ := newStore(t)
	s.SetActiveFranchiseID("f-norte")
	s.SetSession(ownerUser(), someTokens())

	assert.Equal(t, "f-norte", s.EffectiveFranchiseID(),
		"OWNER conserva la franquicia seleccionada antes del login")
}

// ──────────────────────────────────────────────────────────────────────────────
// Hidratación
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_HidrataSesionValida(t *testing.T) {
	mem := storage.NewMemoryStorage()
	mem.Seed(keyUser, `{"userId":"u-1","name":"Dueño","role":"OWNER","franchiseId":""}`)
	mem.Seed(keyTokens, `{"accessToken":"acc-1","refreshToken":"ref-1"}`)
	mem.Seed(keyActiveFranchise, "f-norte")

	s := session.New(mem, logger.Nop())

	assert.True(t, s.IsLoggedIn())
	assert.Equal(t, "acc-1", s.AccessToken())
	assert.Equal(t, "f-norte", s.EffectiveFranchiseID())
}

func TestStore_HidratacionSinRefreshTokenDescarta(t *testing.T) {
	mem := storage.NewMemoryStorage()
	mem.Seed(keyUser, `{"userId":"u-1","name":"Dueño","role":"OWNER"}`)
	mem.Seed(keyTokens, `{"accessToken":"acc-1","refreshToken":""}`)

	s := session.New(mem, logger.Nop())

	assert.False(t, s.IsLoggedIn(), "un registro incompleto no produce sesión")
	assert.Zero(t, mem.Len(), "el registro incompleto debe borrarse del storage")
}

func TestStore_HidratacionJSONCorruptoDescarta(t *testing.T) {
	mem := storage.NewMemoryStorage()
	mem.Seed(keyUser, `{esto no es json`)
	mem.Seed(keyTokens, `{"accessToken":"acc-1","refreshToken":"ref-1"}`)

	s := session.New(mem, logger.Nop())

	assert.False(t, s.IsLoggedIn())
	assert.Zero(t, mem.Len())
}

func TestStore_HidratacionRolDeFranquiciaRestauraSuFranquicia(t *testing.T) {
	mem := storage.NewMemoryStorage()
	mem.Seed(keyUser, `{"userId":"u-2","name":"Vendedor","role":"SELLER","franchiseId":"f-centro"}`)
	mem.Seed(keyTokens, `{"accessToken":"acc-1","refreshToken":"ref-1"}`)

	s := session.New(mem, logger.Nop())

	assert.Equal(t, "f-centro", s.EffectiveFranchiseID(),
		"sin selección persistida, el rol de franquicia vuelve a la suya")
}

// ──────────────────────────────────────────────────────────────────────────────
// Suscripciones
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_SubscribeNotificaCadaMutacion(t *testing.T) {
	s, _ := newStore(t)
	var got int
	cancel := s.Subscribe(func() { got++ })

	s.SetSession(ownerUser(), someTokens())
	s.PatchTokens(someTokens())
	s.SetActiveFranchiseID("f-norte")
	s.Clear()
	assert.Equal(t, 4, got, "cada mutación debe notificar a los suscriptores")

	cancel()
	s.SetActiveFranchiseID("f-centro")
	assert.Equal(t, 4, got, "tras cancelar no llegan más notificaciones")
}
