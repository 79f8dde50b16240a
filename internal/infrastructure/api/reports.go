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

// DailyClose GET /reports/daily-close. date en formato YYYY-MM-DD; vacío
// significa hoy (lo resuelve el backend).
func (c *Client) DailyClose(ctx context.Context, franchiseID, date string) (*dto.DailyCloseReport, error) {
	if franchiseID == "" {
		return nil, fmt.Errorf("cierre diario: %w: franquicia requerida", domain.ErrInvalidInput)
	}
	params := url.Values{}
	params.Set("franchiseId", franchiseID)
	if date != "" {
		params.Set("date", date)
	}
	var out dto.DailyCloseReport
	if err := c.do(ctx, http.MethodGet, "/reports/daily-close", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GlobalSummary GET /reports/global/summary. Solo roles globales; a los demás
// el backend les responde 403 y eso se propaga tal cual.
func (c *Client) GlobalSummary(ctx context.Context) (*dto.GlobalSummary, error) {
	var out dto.GlobalSummary
	if err := c.do(ctx, http.MethodGet, "/reports/global/summary", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Audit GET /audit.
func (c *Client) Audit(ctx context.Context, q dto.AuditQuery) ([]entity.AuditEntry, error) {
	params := url.Values{}
	if q.FranchiseID != "" {
		params.Set("franchiseId", q.FranchiseID)
	}
	if q.EntityType != "" {
		params.Set("entityType", q.EntityType)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	var out []entity.AuditEntry
	if err := c.do(ctx, http.MethodGet, "/audit", params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
