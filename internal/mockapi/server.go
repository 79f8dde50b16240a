// Package mockapi implementa un backend posjarabe falso para desarrollo
// local y tests: mismos contratos REST que el backend real, estado en
// memoria, datos seed y tokens firmados de verdad. Es el interlocutor contra
// el que se prueba el pipeline del cliente de punta a punta.
package mockapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/posjarabe-admin/internal/domain/entity"
	"github.com/jhoicas/posjarabe-admin/pkg/logger"
)

// Config parámetros del mock.
type Config struct {
	JWTSecret     string
	JWTExpMinutes int
	JWTIssuer     string
}

// Server backend fake.
type Server struct {
	app   *fiber.App
	store *memStore
	cfg   Config
	log   *logger.Logger
}

// New construye el servidor con datos seed y todas las rutas registradas.
func New(cfg Config, log *logger.Logger) *Server {
	if cfg.JWTExpMinutes == 0 {
		cfg.JWTExpMinutes = 15
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "posjarabe-mock"
	}

	store := newMemStore()
	store.seed()

	app := fiber.New(fiber.Config{
		AppName:               "posjarabe-mockapi",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())

	s := &Server{app: app, store: store, cfg: cfg, log: log}
	s.routes()
	return s
}

// App expone la app Fiber (los tests la usan vía app.Test).
func (s *Server) App() *fiber.App { return s.app }

// Listen arranca el servidor en addr. Bloquea.
func (s *Server) Listen(addr string) error {
	s.log.Info().Str("addr", addr).Msg("mockapi escuchando")
	return s.app.Listen(addr)
}

// Shutdown apaga el servidor.
func (s *Server) Shutdown() error { return s.app.Shutdown() }

func (s *Server) routes() {
	// Auth (público)
	s.app.Post("/auth/login", s.handleLogin)
	s.app.Post("/auth/refresh", s.handleRefresh)

	// Todo lo demás requiere Bearer Token
	authed := s.app.Group("/", authMiddleware(s.cfg.JWTSecret))

	adminRoles := []entity.Role{entity.RoleOwner, entity.RolePartner}
	managerRoles := []entity.Role{entity.RoleOwner, entity.RolePartner, entity.RoleFranchiseOwner}

	// Franquicias
	authed.Get("/franchises", s.handleListFranchises)
	authed.Get("/franchises/:id", s.handleGetFranchise)
	authed.Post("/franchises", requireRoles(adminRoles...), s.handleCreateFranchise)

	// Productos
	authed.Get("/products", s.handleListProducts)
	authed.Post("/products", requireRoles(managerRoles...), s.handleCreateProduct)
	authed.Patch("/products/:id", requireRoles(managerRoles...), s.handleUpdateProduct)
	authed.Patch("/products/:id/restock", requireRoles(managerRoles...), s.handleRestockProduct)
	authed.Patch("/products/:id/adjust", requireRoles(managerRoles...), s.handleAdjustProduct)
	authed.Delete("/products/:id", requireRoles(managerRoles...), s.handleDeleteProduct)

	// Ventas
	authed.Get("/sales", s.handleListSales)
	authed.Post("/sales", s.handleCreateSale)
	authed.Post("/sales/:id/cancel", requireRoles(managerRoles...), s.handleCancelSale)
	authed.Get("/sales/summary", s.handleSalesSummary)

	// Reportes
	authed.Get("/reports/daily-close", requireRoles(managerRoles...), s.handleDailyClose)
	authed.Get("/reports/global/summary", requireRoles(adminRoles...), s.handleGlobalSummary)
	authed.Get("/audit", requireRoles(adminRoles...), s.handleAudit)

	// Usuarios
	authed.Get("/users", requireRoles(managerRoles...), s.handleListUsers)
	authed.Post("/users", requireRoles(managerRoles...), s.handleCreateUser)
	authed.Patch("/users/:id/activate", requireRoles(managerRoles...), s.handleToggleUser(true))
	authed.Patch("/users/:id/deactivate", requireRoles(managerRoles...), s.handleToggleUser(false))
}
