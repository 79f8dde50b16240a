package entity

import "time"

// Product representa un producto del catálogo de una franquicia.
// Price se maneja en centavos (COP) como lo entrega el backend.
type Product struct {
	ID          string    `json:"id"`
	FranchiseID string    `json:"franchiseId"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku"`
	Price       int64     `json:"price"`
	Stock       int       `json:"stock"`
	Missing     int       `json:"missing"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}
