package ports

import (
	"context"

	"github.com/jhoicas/posjarabe-admin/internal/application/dto"
)

// Storage almacenamiento durable clave→valor con semántica de localStorage:
// los valores son strings serializados y las claves son fijas por consumidor.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// AuthAPI endpoints de autenticación del backend. Se implementa con un
// cliente HTTP plano, sin interceptores (login/refresh nunca llevan bearer
// ni header de franquicia).
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error)
}
