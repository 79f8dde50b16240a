package dto

import "github.com/jhoicas/posjarabe-admin/internal/domain/entity"

// LoginRequest credenciales de entrada a POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// APIUser usuario tal como lo entrega el backend (id plano, franchiseId
// nullable que decodificamos a string vacío).
type APIUser struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Role        entity.Role `json:"role"`
	FranchiseID string      `json:"franchiseId"`
}

// LoginResponse respuesta de POST /auth/login.
type LoginResponse struct {
	OK           bool    `json:"ok"`
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
	User         APIUser `json:"user"`
}

// RefreshRequest cuerpo de POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse respuesta de POST /auth/refresh. Solo tokens: la identidad
// del usuario nunca cambia en un refresh.
type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ToSessionUser mapea el usuario del backend al SessionUser del dominio.
func (u APIUser) ToSessionUser() entity.SessionUser {
	return entity.SessionUser{
		UserID:      u.ID,
		Name:        u.Name,
		Role:        u.Role,
		FranchiseID: u.FranchiseID,
	}
}
