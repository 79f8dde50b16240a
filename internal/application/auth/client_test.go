package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/posjarabe-admin/internal/application/auth"
	"github.com/jhoicas/posjarabe-admin/internal/application/dto"
	"github.com/jhoicas/posjarabe-admin/internal/domain"
	"github.com/jhoicas/posjarabe-admin/internal/domain/entity"
	"github.com/jhoicas/posjarabe-admin/internal/infrastructure/storage"
	"github.com/jhoicas/posjarabe-admin/internal/session"
	"github.com/jhoicas/posjarabe-admin/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeAuthAPI implementación programable de ports.AuthAPI.
type fakeAuthAPI struct {
	loginRes   *dto.LoginResponse
	loginErr   error
	refreshRes *dto.RefreshResponse
	refreshErr error

	refreshCalls  int
	lastRefreshTk string
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	return f.loginRes, f.loginErr
}

func (f *fakeAuthAPI) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error) {
	f.refreshCalls++
	f.lastRefreshTk = refreshToken
	return f.refreshRes, f.refreshErr
}

func newAuthClient(t *testing.T, api *fakeAuthAPI) (*auth.Client, *session.Store) {
	t.Helper()
	store := session.New(storage.NewMemoryStorage(), logger.Nop())
	return auth.NewClient(api, store, logger.Nop()), store
}

func okLoginResponse() *dto.LoginResponse {
	return &dto.LoginResponse{
		OK:           true,
		AccessToken:  "acc-1",
		RefreshToken: "ref-1",
		User: dto.APIUser{
			ID:    "u-1",
			Email: "owner@posjarabe.co",
			Name:  "Dueño",
			Role:  entity.RoleOwner,
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_ExitoEstableceSesionCompleta(t *testing.T) {
	client, store := newAuthClient(t, &fakeAuthAPI{loginRes: okLoginResponse()})

	err := client.Login(context.Background(), "owner@posjarabe.co", "posjarabe123")
	require.NoError(t, err)

	assert.True(t, store.IsLoggedIn())
	user, ok := store.User()
	require.True(t, ok)
	assert.Equal(t, "u-1", user.UserID)
	assert.Equal(t, entity.RoleOwner, user.Role)
	assert.Equal(t, "acc-1", store.AccessToken())
	assert.Equal(t, "ref-1", store.RefreshToken())
}

func TestLogin_CredencialesInvalidasNoTocaSesion(t *testing.T) {
	client, store := newAuthClient(t, &fakeAuthAPI{loginErr: domain.ErrInvalidCredentials})

	err := client.Login(context.Background(), "owner@posjarabe.co", "mala")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.False(t, store.IsLoggedIn())
}

func TestLogin_CamposVaciosFallaSinLlamarBackend(t *testing.T) {
	api := &fakeAuthAPI{loginRes: okLoginResponse()}
	client, store := newAuthClient(t, api)

	err := client.Login(context.Background(), "", "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, store.IsLoggedIn())
}

func TestLogin_RespuestaIncompletaEsErrorDeBackend(t *testing.T) {
	res := okLoginResponse()
	res.RefreshToken = ""
	client, store := newAuthClient(t, &fakeAuthAPI{loginRes: res})

	err := client.Login(context.Background(), "owner@posjarabe.co", "posjarabe123")
	require.ErrorIs(t, err, domain.ErrBackend)
	assert.False(t, store.IsLoggedIn())
}

// ──────────────────────────────────────────────────────────────────────────────
// Refresh
// ──────────────────────────────────────────────────────────────────────────────

func TestRefresh_ExitoParcheaSoloTokens(t *testing.T) {
	api := &fakeAuthAPI{
		loginRes:   okLoginResponse(),
		refreshRes: &dto.RefreshResponse{AccessToken: "acc-2", RefreshToken: "ref-2"},
	}
	client, store := newAuthClient(t, api)
	require.NoError(t, client.Login(context.Background(), "owner@posjarabe.co", "posjarabe123"))

	err := client.RefreshTokens(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "ref-1", api.lastRefreshTk, "se intercambia el refresh token vigente")
	assert.Equal(t, "acc-2", store.AccessToken())
	assert.Equal(t, "ref-2", store.RefreshToken())
	user, ok := store.User()
	require.True(t, ok)
	assert.Equal(t, "u-1", user.UserID, "el refresh jamás cambia la identidad")
}

func TestRefresh_SinSesionLimpiaYFalla(t *testing.T) {
	api := &fakeAuthAPI{refreshRes: &dto.RefreshResponse{AccessToken: "x", RefreshToken: "y"}}
	client, store := newAuthClient(t, api)

	err := client.RefreshTokens(context.Background())
	require.ErrorIs(t, err, domain.ErrNoSession)
	assert.False(t, store.IsLoggedIn())
	assert.Zero(t, api.refreshCalls, "sin precondición no se llama al backend")
}

// La decisión clave: un refresh fallido contra el backend NO cierra la
// sesión local; el error sube y el usuario decide.
func TestRefresh_FalloDeBackendNoCierraSesion(t *testing.T) {
	api := &fakeAuthAPI{loginRes: okLoginResponse(), refreshErr: domain.ErrUnauthorized}
	client, store := newAuthClient(t, api)
	require.NoError(t, client.Login(context.Background(), "owner@posjarabe.co", "posjarabe123"))

	err := client.RefreshTokens(context.Background())
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.True(t, store.IsLoggedIn(), "la sesión sigue viva tras un refresh fallido")
	assert.Equal(t, "acc-1", store.AccessToken(), "los tokens viejos quedan intactos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Logout
// ──────────────────────────────────────────────────────────────────────────────

func TestLogout_LimpiaIncondicional(t *testing.T) {
	client, store := newAuthClient(t, &fakeAuthAPI{loginRes: okLoginResponse()})
	require.NoError(t, client.Login(context.Background(), "owner@posjarabe.co", "posjarabe123"))

	client.Logout()
	assert.False(t, store.IsLoggedIn())

	// Logout sin sesión tampoco falla.
	client.Logout()
	assert.False(t, store.IsLoggedIn())
}
