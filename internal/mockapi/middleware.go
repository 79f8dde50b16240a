package mockapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/posjarabe-admin/internal/application/dto"
	"github.com/jhoicas/posjarabe-admin/internal/domain/entity"
	pkgjwt "github.com/jhoicas/posjarabe-admin/pkg/jwt"
)

// Locals keys para los claims del token en Fiber.
const (
	localUserID      = "user_id"
	localUserName    = "user_name"
	localRole        = "role"
	localFranchiseID = "franchise_id"
)

func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

// authMiddleware valida el Bearer Token JWT y extrae los claims a c.Locals.
func authMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return jsonError(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return jsonError(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "formato: Bearer <token>")
		}
		claims, err := pkgjwt.Parse(jwtSecret, strings.TrimSpace(parts[1]))
		if err != nil {
			return jsonError(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "token inválido o expirado")
		}
		c.Locals(localUserID, claims.UserID)
		c.Locals(localUserName, claims.Name)
		c.Locals(localRole, claims.Role)
		c.Locals(localFranchiseID, claims.FranchiseID)
		return c.Next()
	}
}

// requireRoles autoriza el acceso a los roles indicados. Responde 403 (no
// 401) cuando el usuario está autenticado pero su rol no alcanza.
func requireRoles(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := currentRole(c)
		if role == "" {
			return jsonError(c, fiber.StatusUnauthorized, "MISSING_ROLE", "token sin rol")
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return jsonError(c, fiber.StatusForbidden, "FORBIDDEN", "rol sin acceso a este recurso")
	}
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func currentUserID(c *fiber.Ctx) string { return localString(c, localUserID) }

func currentRole(c *fiber.Ctx) entity.Role {
	return entity.Role(localString(c, localRole))
}

// effectiveFranchiseID resuelve el scope de franquicia del request: roles
// globales eligen vía header x-franchise-id (o query franchiseId); roles de
// franquicia quedan clavados a la suya sin importar qué manden.
func effectiveFranchiseID(c *fiber.Ctx) string {
	if currentRole(c).IsGlobal() {
		if id := c.Get("x-franchise-id"); id != "" {
			return id
		}
		return c.Query("franchiseId")
	}
	return localString(c, localFranchiseID)
}
