package entity

import "time"

// Franchise representa una franquicia (punto de venta) de la red.
type Franchise struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
