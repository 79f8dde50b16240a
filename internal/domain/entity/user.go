package entity

import "time"

// User representa un usuario administrable del sistema.
// FranchiseID solo aplica para FRANCHISE_OWNER y SELLER.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        Role      `json:"role"`
	FranchiseID string    `json:"franchiseId"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}
