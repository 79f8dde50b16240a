package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jhoicas/posjarabe-admin/internal/application/dto"
	"github.com/jhoicas/posjarabe-admin/internal/domain"
	"github.com/jhoicas/posjarabe-admin/internal/domain/entity"
)

// ListUsers GET /users.
func (c *Client) ListUsers(ctx context.Context, franchiseID string) ([]entity.User, error) {
	params := url.Values{}
	if franchiseID != "" {
		params.Set("franchiseId", franchiseID)
	}
	var out []entity.User
	if err := c.do(ctx, http.MethodGet, "/users", params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUser POST /users. Para SELLER/FRANCHISE_OWNER el franchiseId es
// obligatorio; para roles globales no debe venir.
func (c *Client) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*entity.User, error) {
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return nil, fmt.Errorf("usuario: %w: email, password y nombre son obligatorios", domain.ErrInvalidInput)
	}
	if !in.Role.Valid() {
		return nil, fmt.Errorf("usuario: %w: rol desconocido %q", domain.ErrInvalidInput, in.Role)
	}
	if !in.Role.IsGlobal() && in.FranchiseID == "" {
		return nil, fmt.Errorf("usuario: %w: rol %s requiere franquicia", domain.ErrInvalidInput, in.Role)
	}
	var out entity.User
	if err := c.do(ctx, http.MethodPost, "/users", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ActivateUser PATCH /users/:id/activate.
func (c *Client) ActivateUser(ctx context.Context, id string) (*dto.ToggleActiveResponse, error) {
	return c.toggleUser(ctx, id, "activate")
}

// DeactivateUser PATCH /users/:id/deactivate.
func (c *Client) DeactivateUser(ctx context.Context, id string) (*dto.ToggleActiveResponse, error) {
	return c.toggleUser(ctx, id, "deactivate")
}

func (c *Client) toggleUser(ctx context.Context, id, action string) (*dto.ToggleActiveResponse, error) {
	if id == "" {
		return nil, fmt.Errorf("usuario: %w: id vacío", domain.ErrInvalidInput)
	}
	var out dto.ToggleActiveResponse
	if err := c.do(ctx, http.MethodPatch, "/users/"+id+"/"+action, nil, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
