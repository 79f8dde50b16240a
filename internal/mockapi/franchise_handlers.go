package mockapi

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/posjarabe-admin/internal/domain/entity"
)

// handleListFranchises GET /franchises.
func (s *Server) handleListFranchises(c *fiber.Ctx) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	out := make([]entity.Franchise, 0, len(s.store.franchises))
	for _, f := range s.store.franchises {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return c.JSON(out)
}

// handleGetFranchise GET /franchises/:id.
func (s *Server) handleGetFranchise(c *fiber.Ctx) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	f, ok := s.store.franchises[c.Params("id")]
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "NOT_FOUND", "franquicia no encontrada")
	}
	return c.JSON(*f)
}

// handleCreateFranchise POST /franchises (solo OWNER/PARTNER).
func (s *Server) handleCreateFranchise(c *fiber.Ctx) error {
	var in struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&in); err != nil || in.Name == "" {
		return jsonError(c, fiber.StatusBadRequest, "MISSING_NAME", "nombre requerido")
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	f := &entity.Franchise{
		ID:        uuid.NewString(),
		Name:      in.Name,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	s.store.franchises[f.ID] = f
	s.store.recordAudit(currentUserID(c), "franchise.create", "franchise", f.ID, f.ID, in.Name)
	return c.Status(fiber.StatusCreated).JSON(*f)
}
