package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jhoicas/posjarabe-admin/internal/application/dto"
	"github.com/jhoicas/posjarabe-admin/internal/domain"
)

// AuthHTTP implementa ports.AuthAPI con un cliente HTTP plano, SIN el
// pipeline de interceptores: login y refresh no llevan bearer ni franquicia,
// y sus fallas jamás deben disparar otro refresh.
type AuthHTTP struct {
	baseURL string
	httpc   *http.Client
}

// NewAuthHTTP construye el cliente de endpoints de auth.
func NewAuthHTTP(baseURL string, timeout time.Duration, base http.RoundTripper) *AuthHTTP {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	httpc := &http.Client{Timeout: timeout}
	if base != nil {
		httpc.Transport = base
	}
	return &AuthHTTP{baseURL: baseURL, httpc: httpc}
}

// Login POST /auth/login. Un 401 del backend se traduce a credenciales
// inválidas, no al flujo de refresh.
func (a *AuthHTTP) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	err := a.post(ctx, "/auth/login", dto.LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, apiErr.Message)
		}
		return nil, err
	}
	return &out, nil
}

// Refresh POST /auth/refresh. Intercambia el refresh token por un par nuevo.
func (a *AuthHTTP) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error) {
	var out dto.RefreshResponse
	if err := a.post(ctx, "/auth/refresh", dto.RefreshRequest{RefreshToken: refreshToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthHTTP) post(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("auth: serializar body de %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("auth: armar request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("auth: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("auth: decodificar respuesta de %s: %w", path, err)
	}
	return nil
}
