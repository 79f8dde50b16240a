package dto

import "github.com/jhoicas/posjarabe-admin/internal/domain/entity"

// ProductsQuery filtros de GET /products.
type ProductsQuery struct {
	FranchiseID     string
	IncludeInactive bool
	Page            int
	PageSize        int
}

// DefaultPage aplica valores por defecto si Page/PageSize son cero.
func (q *ProductsQuery) DefaultPage() {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = 20
	}
}

// ProductsPage página de productos como la entrega el backend.
type ProductsPage struct {
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
	Total    int              `json:"total"`
	Items    []entity.Product `json:"items"`
}

// CreateProductRequest cuerpo de POST /products. Price en centavos.
type CreateProductRequest struct {
	Name  string `json:"name"`
	SKU   string `json:"sku,omitempty"`
	Price int64  `json:"price"`
}

// UpdateProductRequest cuerpo de PATCH /products/:id. Campos nil no se tocan.
type UpdateProductRequest struct {
	Name     *string `json:"name,omitempty"`
	SKU      *string `json:"sku,omitempty"`
	Price    *int64  `json:"price,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// RestockRequest cuerpo de PATCH /products/:id/restock.
type RestockRequest struct {
	Qty int `json:"qty"`
}

// AdjustStockRequest cuerpo de PATCH /products/:id/adjust. Qty puede ser
// negativo (merma) o positivo (corrección).
type AdjustStockRequest struct {
	Qty    int    `json:"qty"`
	Reason string `json:"reason,omitempty"`
}
