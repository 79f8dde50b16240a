package dto

// SaleItemRequest renglón de una venta a crear.
type SaleItemRequest struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// CreateSaleRequest cuerpo de POST /sales. FranchiseID es opcional: si viene
// vacío el backend usa el header x-franchise-id.
type CreateSaleRequest struct {
	CardNumber  string            `json:"cardNumber"`
	Items       []SaleItemRequest `json:"items"`
	FranchiseID string            `json:"franchiseId,omitempty"`
}

// CancelSaleRequest cuerpo de POST /sales/:id/cancel.
type CancelSaleRequest struct {
	Reason string `json:"reason"`
}

// SalesSummaryRow fila de GET /sales/summary: ventas agrupadas por día y
// vendedor. TotalSold en centavos.
type SalesSummaryRow struct {
	CreatedAt  string `json:"createdAt"`
	SellerName string `json:"sellerName,omitempty"`
	SalesCount int    `json:"salesCount"`
	TotalSold  int64  `json:"totalSold"`
}
