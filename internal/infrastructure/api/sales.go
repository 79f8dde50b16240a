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

// ListSales GET /sales.
func (c *Client) ListSales(ctx context.Context, franchiseID string) ([]entity.Sale, error) {
	params := url.Values{}
	if franchiseID != "" {
		params.Set("franchiseId", franchiseID)
	}
	var out []entity.Sale
	if err := c.do(ctx, http.MethodGet, "/sales", params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSale POST /sales. Valida lo mínimo en cliente: items presentes y
// cantidades positivas; el resto lo decide el backend.
func (c *Client) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*entity.Sale, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("venta: %w: sin items", domain.ErrInvalidInput)
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Qty <= 0 {
			return nil, fmt.Errorf("venta: %w: item inválido", domain.ErrInvalidInput)
		}
	}
	var out entity.Sale
	if err := c.do(ctx, http.MethodPost, "/sales", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelSale POST /sales/:id/cancel.
func (c *Client) CancelSale(ctx context.Context, id, reason string) (*entity.Sale, error) {
	if id == "" || reason == "" {
		return nil, fmt.Errorf("cancelar venta: %w: id y motivo son obligatorios", domain.ErrInvalidInput)
	}
	var out entity.Sale
	if err := c.do(ctx, http.MethodPost, "/sales/"+id+"/cancel", nil, dto.CancelSaleRequest{Reason: reason}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SalesSummary GET /sales/summary: ventas agrupadas por día y vendedor.
func (c *Client) SalesSummary(ctx context.Context, franchiseID string) ([]dto.SalesSummaryRow, error) {
	params := url.Values{}
	if franchiseID != "" {
		params.Set("franchiseId", franchiseID)
	}
	var out []dto.SalesSummaryRow
	if err := c.do(ctx, http.MethodGet, "/sales/summary", params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
