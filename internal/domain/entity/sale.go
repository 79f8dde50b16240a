package entity

import "time"

// Estados de una venta.
const (
	SaleStatusCompleted = "COMPLETED"
	SaleStatusCancelled = "CANCELLED"
)

// SaleLine renglón de una venta. Price y Subtotal en centavos.
type SaleLine struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Qty       int    `json:"qty"`
	Price     int64  `json:"price"`
	Subtotal  int64  `json:"subtotal"`
}

// Sale representa una venta registrada en una franquicia.
type Sale struct {
	ID           string     `json:"id"`
	FranchiseID  string     `json:"franchiseId"`
	SellerID     string     `json:"sellerId"`
	CardNumber   string     `json:"cardNumber"`
	Items        []SaleLine `json:"items"`
	Total        int64      `json:"total"`
	Status       string     `json:"status"`
	CancelReason string     `json:"cancelReason,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}
