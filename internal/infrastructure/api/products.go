package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/posjarabe-admin/internal/application/dto"
	"github.com/jhoicas/posjarabe-admin/internal/domain"
	"github.com/jhoicas/posjarabe-admin/internal/domain/entity"
)

// ListProducts GET /products. El franchiseId del query es adicional al header
// de franquicia; algunos listados globales lo usan para cruzar franquicias.
func (c *Client) ListProducts(ctx context.Context, q dto.ProductsQuery) (*dto.ProductsPage, error) {
	q.DefaultPage()
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("pageSize", strconv.Itoa(q.PageSize))
	if q.FranchiseID != "" {
		params.Set("franchiseId", q.FranchiseID)
	}
	if q.IncludeInactive {
		params.Set("includeInactive", "true")
	}
	var out dto.ProductsPage
	if err := c.do(ctx, http.MethodGet, "/products", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProduct POST /products.
func (c *Client) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("producto: %w: nombre vacío", domain.ErrInvalidInput)
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("producto: %w: precio negativo", domain.ErrInvalidInput)
	}
	var out entity.Product
	if err := c.do(ctx, http.MethodPost, "/products", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct PATCH /products/:id.
func (c *Client) UpdateProduct(ctx context.Context, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	if id == "" {
		return nil, fmt.Errorf("producto: %w: id vacío", domain.ErrInvalidInput)
	}
	var out entity.Product
	if err := c.do(ctx, http.MethodPatch, "/products/"+id, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RestockProduct PATCH /products/:id/restock.
func (c *Client) RestockProduct(ctx context.Context, id string, qty int) (*entity.Product, error) {
	if id == "" || qty <= 0 {
		return nil, fmt.Errorf("restock: %w", domain.ErrInvalidInput)
	}
	var out entity.Product
	if err := c.do(ctx, http.MethodPatch, "/products/"+id+"/restock", nil, dto.RestockRequest{Qty: qty}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdjustProductStock PATCH /products/:id/adjust.
func (c *Client) AdjustProductStock(ctx context.Context, id string, in dto.AdjustStockRequest) (*entity.Product, error) {
	if id == "" || in.Qty == 0 {
		return nil, fmt.Errorf("ajuste: %w", domain.ErrInvalidInput)
	}
	var out entity.Product
	if err := c.do(ctx, http.MethodPatch, "/products/"+id+"/adjust", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct DELETE /products/:id.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("producto: %w: id vacío", domain.ErrInvalidInput)
	}
	return c.do(ctx, http.MethodDelete, "/products/"+id, nil, nil, nil)
}
