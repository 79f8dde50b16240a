package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/posjarabe-admin/internal/domain"
	"github.com/jhoicas/posjarabe-admin/internal/domain/entity"
)

// ListFranchises GET /franchises.
func (c *Client) ListFranchises(ctx context.Context) ([]entity.Franchise, error) {
	var out []entity.Franchise
	if err := c.do(ctx, http.MethodGet, "/franchises", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetFranchise GET /franchises/:id.
func (c *Client) GetFranchise(ctx context.Context, id string) (*entity.Franchise, error) {
	if id == "" {
		return nil, fmt.Errorf("franquicia: %w: id vacío", domain.ErrInvalidInput)
	}
	var out entity.Franchise
	if err := c.do(ctx, http.MethodGet, "/franchises/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateFranchise POST /franchises.
func (c *Client) CreateFranchise(ctx context.Context, name string) (*entity.Franchise, error) {
	if name == "" {
		return nil, fmt.Errorf("franquicia: %w: nombre vacío", domain.ErrInvalidInput)
	}
	var out entity.Franchise
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/franchises", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
