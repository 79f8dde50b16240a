package dto

import "github.com/jhoicas/posjarabe-admin/internal/domain/entity"

// CreateUserRequest cuerpo de POST /users. FranchiseID solo aplica cuando
// role es SELLER o FRANCHISE_OWNER.
type CreateUserRequest struct {
	Email       string      `json:"email"`
	Password    string      `json:"password"`
	Name        string      `json:"name"`
	Role        entity.Role `json:"role"`
	FranchiseID string      `json:"franchiseId,omitempty"`
}

// ToggleActiveResponse respuesta de PATCH /users/:id/activate|deactivate.
type ToggleActiveResponse struct {
	OK       bool   `json:"ok"`
	UserID   string `json:"userId"`
	IsActive bool   `json:"isActive"`
}
