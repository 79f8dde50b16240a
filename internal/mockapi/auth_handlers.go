package mockapi

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/posjarabe-admin/internal/application/dto"
	pkgjwt "github.com/jhoicas/posjarabe-admin/pkg/jwt"
)

// handleLogin POST /auth/login: verifica email/password y entrega access
// token JWT + refresh token opaco.
func (s *Server) handleLogin(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Email == "" || in.Password == "" {
		return jsonError(c, fiber.StatusBadRequest, "MISSING_FIELDS", "email y password son obligatorios")
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	acc := s.store.accountByEmail(in.Email)
	if acc == nil || bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(in.Password)) != nil {
		return jsonError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "credenciales inválidas")
	}
	if !acc.IsActive {
		return jsonError(c, fiber.StatusForbidden, "USER_INACTIVE", "usuario desactivado")
	}

	access, err := pkgjwt.Generate(s.cfg.JWTSecret, acc.ID, acc.Name, string(acc.Role), acc.FranchiseID, s.cfg.JWTIssuer, s.cfg.JWTExpMinutes)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "TOKEN_ERROR", "no se pudo emitir el token")
	}
	refresh := s.store.issueRefresh(acc.ID)

	s.log.Info().Str("user_id", acc.ID).Str("role", string(acc.Role)).Msg("login")
	return c.JSON(dto.LoginResponse{
		OK:           true,
		AccessToken:  access,
		RefreshToken: refresh,
		User: dto.APIUser{
			ID:          acc.ID,
			Email:       acc.Email,
			Name:        acc.Name,
			Role:        acc.Role,
			FranchiseID: acc.FranchiseID,
		},
	})
}

// handleRefresh POST /auth/refresh: rota el refresh token y emite un access
// token nuevo. Un refresh token desconocido (o de usuario desactivado)
// responde 401.
func (s *Server) handleRefresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := c.BodyParser(&in); err != nil || in.RefreshToken == "" {
		return jsonError(c, fiber.StatusBadRequest, "MISSING_REFRESH", "refreshToken requerido")
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	acc, newRefresh := s.store.rotateRefresh(in.RefreshToken)
	if acc == nil {
		return jsonError(c, fiber.StatusUnauthorized, "INVALID_REFRESH", "refresh token inválido")
	}
	access, err := pkgjwt.Generate(s.cfg.JWTSecret, acc.ID, acc.Name, string(acc.Role), acc.FranchiseID, s.cfg.JWTIssuer, s.cfg.JWTExpMinutes)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "TOKEN_ERROR", "no se pudo emitir el token")
	}

	s.log.Debug().Str("user_id", acc.ID).Msg("refresh de tokens")
	return c.JSON(dto.RefreshResponse{AccessToken: access, RefreshToken: newRefresh})
}
