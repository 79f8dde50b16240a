package mockapi

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/posjarabe-admin/internal/application/dto"
	"github.com/jhoicas/posjarabe-admin/internal/domain/entity"
)

// handleListUsers GET /users: roles globales listan todo (con filtro
// opcional franchiseId); un FRANCHISE_OWNER solo ve su franquicia.
func (s *Server) handleListUsers(c *fiber.Ctx) error {
	franchiseID := c.Query("franchiseId")
	if !currentRole(c).IsGlobal() {
		franchiseID = localString(c, localFranchiseID)
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	out := make([]entity.User, 0, len(s.store.accounts))
	for _, acc := range s.store.accounts {
		if franchiseID != "" && acc.FranchiseID != franchiseID {
			continue
		}
		out = append(out, acc.User)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return c.JSON(out)
}

// handleCreateUser POST /users. Un FRANCHISE_OWNER solo puede crear
// vendedores de su propia franquicia; los roles globales crean cualquier rol
// (con franquicia existente cuando el rol la requiere).
func (s *Server) handleCreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return jsonError(c, fiber.StatusBadRequest, "MISSING_FIELDS", "email, password y nombre son obligatorios")
	}
	if !in.Role.Valid() {
		return jsonError(c, fiber.StatusBadRequest, "INVALID_ROLE", "rol desconocido")
	}

	callerRole := currentRole(c)
	if callerRole == entity.RoleFranchiseOwner {
		if in.Role != entity.RoleSeller {
			return jsonError(c, fiber.StatusForbidden, "FORBIDDEN", "solo puede crear vendedores")
		}
		// Clavado a su franquicia, ignore lo que venga en el body.
		in.FranchiseID = localString(c, localFranchiseID)
	}
	if !in.Role.IsGlobal() && in.FranchiseID == "" {
		return jsonError(c, fiber.StatusBadRequest, "MISSING_FRANCHISE", "el rol requiere franquicia")
	}
	if in.Role.IsGlobal() {
		in.FranchiseID = ""
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if in.FranchiseID != "" {
		if _, ok := s.store.franchises[in.FranchiseID]; !ok {
			return jsonError(c, fiber.StatusNotFound, "NOT_FOUND", "franquicia no encontrada")
		}
	}
	if s.store.accountByEmail(in.Email) != nil {
		return jsonError(c, fiber.StatusConflict, "EMAIL_TAKEN", "el email ya está registrado")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "HASH_ERROR", "no se pudo crear el usuario")
	}

	acc := &account{
		User: entity.User{
			ID:          uuid.NewString(),
			Email:       in.Email,
			Name:        in.Name,
			Role:        in.Role,
			FranchiseID: in.FranchiseID,
			IsActive:    true,
			CreatedAt:   time.Now(),
		},
		PasswordHash: hash,
	}
	s.store.accounts[acc.ID] = acc
	s.store.recordAudit(currentUserID(c), "user.create", "user", acc.ID, acc.FranchiseID, string(acc.Role))
	return c.Status(fiber.StatusCreated).JSON(acc.User)
}

// handleToggleUser PATCH /users/:id/activate|deactivate.
func (s *Server) handleToggleUser(active bool) fiber.Handler {
	action := "user.deactivate"
	if active {
		action = "user.activate"
	}
	return func(c *fiber.Ctx) error {
		targetID := c.Params("id")
		if !active && targetID == currentUserID(c) {
			return jsonError(c, fiber.StatusBadRequest, "SELF_DEACTIVATE", "no puede desactivarse a sí mismo")
		}

		s.store.mu.Lock()
		defer s.store.mu.Unlock()

		acc, ok := s.store.accounts[targetID]
		if !ok {
			return jsonError(c, fiber.StatusNotFound, "NOT_FOUND", "usuario no encontrado")
		}
		if currentRole(c) == entity.RoleFranchiseOwner {
			if acc.Role != entity.RoleSeller || acc.FranchiseID != localString(c, localFranchiseID) {
				return jsonError(c, fiber.StatusForbidden, "FORBIDDEN", "solo administra vendedores de su franquicia")
			}
		}
		acc.IsActive = active
		s.store.recordAudit(currentUserID(c), action, "user", acc.ID, acc.FranchiseID, acc.Email)
		return c.JSON(dto.ToggleActiveResponse{OK: true, UserID: acc.ID, IsActive: acc.IsActive})
	}
}
