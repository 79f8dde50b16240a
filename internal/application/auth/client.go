// Package auth orquesta el ciclo de vida de la sesión contra el backend:
// login, refresh de tokens y logout. Es el único mutador del session.Store
// además de la selección de franquicia.
package auth

import (
	"context"
	"fmt"

	"github.com/jhoicas/posjarabe-admin/internal/application/ports"
	"github.com/jhoicas/posjarabe-admin/internal/domain"
	"github.com/jhoicas/posjarabe-admin/internal/domain/entity"
	"github.com/jhoicas/posjarabe-admin/internal/session"
	"github.com/jhoicas/posjarabe-admin/pkg/logger"
)

// Client cliente de autenticación.
type Client struct {
	api   ports.AuthAPI
	store *session.Store
	log   *logger.Logger
}

// NewClient construye el cliente de auth.
func NewClient(api ports.AuthAPI, store *session.Store, log *logger.Logger) *Client {
	return &Client{api: api, store: store, log: log}
}

// Login autentica contra el backend y establece la sesión completa
// (identidad + tokens) de forma atómica.
func (c *Client) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("login: %w: email y password son obligatorios", domain.ErrInvalidInput)
	}
	res, err := c.api.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if res.AccessToken == "" || res.RefreshToken == "" || res.User.ID == "" {
		return fmt.Errorf("login: %w: respuesta incompleta del backend", domain.ErrBackend)
	}
	c.store.SetSession(res.User.ToSessionUser(), entity.TokenPair{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
	c.log.Info().Str("user_id", res.User.ID).Str("role", string(res.User.Role)).Msg("sesión iniciada")
	return nil
}

// RefreshTokens intercambia el refresh token por un par nuevo. Precondición:
// debe existir usuario y refresh token; si falta alguno la sesión se limpia y
// el error sube al caller (no es un fallo reintentable). En éxito solo se
// parchean los tokens: la identidad nunca cambia en un refresh. Un fallo del
// backend NO limpia la sesión: el caller decide qué mostrar.
func (c *Client) RefreshTokens(ctx context.Context) error {
	_, hasUser := c.store.User()
	refreshToken := c.store.RefreshToken()
	if !hasUser || refreshToken == "" {
		c.store.Clear()
		return fmt.Errorf("refresh: %w", domain.ErrNoSession)
	}
	res, err := c.api.Refresh(ctx, refreshToken)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	if res.AccessToken == "" || res.RefreshToken == "" {
		return fmt.Errorf("refresh: %w: respuesta incompleta del backend", domain.ErrBackend)
	}
	c.store.PatchTokens(entity.TokenPair{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
	c.log.Debug().Msg("tokens renovados")
	return nil
}

// Logout limpia la sesión local, incondicional. No hay llamada al backend:
// los JWT son stateless y la revocación server-side queda fuera de alcance.
func (c *Client) Logout() {
	c.store.Clear()
	c.log.Info().Msg("sesión cerrada")
}
