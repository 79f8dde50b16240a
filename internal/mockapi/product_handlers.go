package mockapi

import (
	"fmt"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/posjarabe-admin/internal/application/dto"
	"github.com/jhoicas/posjarabe-admin/internal/domain/entity"
)

// handleListProducts GET /products: filtra por franquicia efectiva (roles
// globales sin selección ven todo), pagina y por defecto oculta inactivos.
func (s *Server) handleListProducts(c *fiber.Ctx) error {
	franchiseID := effectiveFranchiseID(c)
	includeInactive := c.QueryBool("includeInactive", false)
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	items := make([]entity.Product, 0, len(s.store.products))
	for _, p := range s.store.products {
		if franchiseID != "" && p.FranchiseID != franchiseID {
			continue
		}
		if !includeInactive && !p.IsActive {
			continue
		}
		items = append(items, *p)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

	total := len(items)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return c.JSON(dto.ProductsPage{
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		Items:    items[start:end],
	})
}

// handleCreateProduct POST /products: crea en la franquicia efectiva.
func (s *Server) handleCreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil || in.Name == "" {
		return jsonError(c, fiber.StatusBadRequest, "INVALID_BODY", "nombre requerido")
	}
	if in.Price < 0 {
		return jsonError(c, fiber.StatusBadRequest, "INVALID_PRICE", "precio negativo")
	}
	franchiseID := effectiveFranchiseID(c)
	if franchiseID == "" {
		return jsonError(c, fiber.StatusBadRequest, "MISSING_FRANCHISE", "franquicia no resoluble")
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.franchises[franchiseID]; !ok {
		return jsonError(c, fiber.StatusNotFound, "NOT_FOUND", "franquicia no encontrada")
	}
	p := &entity.Product{
		ID:          uuid.NewString(),
		FranchiseID: franchiseID,
		Name:        in.Name,
		SKU:         in.SKU,
		Price:       in.Price,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
	s.store.products[p.ID] = p
	s.store.recordAudit(currentUserID(c), "product.create", "product", p.ID, franchiseID, in.Name)
	return c.Status(fiber.StatusCreated).JSON(*p)
}

// productForWrite ubica el producto y verifica que el caller pueda tocarlo
// (roles de franquicia solo dentro de la suya). Requiere s.store.mu tomado.
func (s *Server) productForWrite(c *fiber.Ctx) (*entity.Product, error) {
	p, ok := s.store.products[c.Params("id")]
	if !ok {
		return nil, jsonError(c, fiber.StatusNotFound, "NOT_FOUND", "producto no encontrado")
	}
	if !currentRole(c).IsGlobal() && p.FranchiseID != localString(c, localFranchiseID) {
		return nil, jsonError(c, fiber.StatusForbidden, "FORBIDDEN", "producto de otra franquicia")
	}
	return p, nil
}

// handleUpdateProduct PATCH /products/:id.
func (s *Server) handleUpdateProduct(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	p, errResp := s.productForWrite(c)
	if p == nil {
		return errResp
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.SKU != nil {
		p.SKU = *in.SKU
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return jsonError(c, fiber.StatusBadRequest, "INVALID_PRICE", "precio negativo")
		}
		p.Price = *in.Price
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	s.store.recordAudit(currentUserID(c), "product.update", "product", p.ID, p.FranchiseID, p.Name)
	return c.JSON(*p)
}

// handleRestockProduct PATCH /products/:id/restock: entrada de inventario.
func (s *Server) handleRestockProduct(c *fiber.Ctx) error {
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil || in.Qty <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "INVALID_QTY", "cantidad debe ser positiva")
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	p, errResp := s.productForWrite(c)
	if p == nil {
		return errResp
	}
	p.Stock += in.Qty
	s.store.recordAudit(currentUserID(c), "product.restock", "product", p.ID, p.FranchiseID, fmt.Sprintf("+%d", in.Qty))
	return c.JSON(*p)
}

// handleAdjustProduct PATCH /products/:id/adjust: corrección de stock,
// positiva o negativa; nunca deja el stock bajo cero.
func (s *Server) handleAdjustProduct(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil || in.Qty == 0 {
		return jsonError(c, fiber.StatusBadRequest, "INVALID_QTY", "cantidad no puede ser cero")
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	p, errResp := s.productForWrite(c)
	if p == nil {
		return errResp
	}
	if p.Stock+in.Qty < 0 {
		return jsonError(c, fiber.StatusConflict, "NEGATIVE_STOCK", "el ajuste dejaría stock negativo")
	}
	p.Stock += in.Qty
	if in.Qty < 0 {
		// Una salida por ajuste es merma: se acumula en faltantes.
		p.Missing += -in.Qty
	}
	s.store.recordAudit(currentUserID(c), "product.adjust", "product", p.ID, p.FranchiseID, fmt.Sprintf("%+d %s", in.Qty, in.Reason))
	return c.JSON(*p)
}

// handleDeleteProduct DELETE /products/:id.
func (s *Server) handleDeleteProduct(c *fiber.Ctx) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	p, errResp := s.productForWrite(c)
	if p == nil {
		return errResp
	}
	delete(s.store.products, p.ID)
	s.store.recordAudit(currentUserID(c), "product.delete", "product", p.ID, p.FranchiseID, p.Name)
	return c.SendStatus(fiber.StatusNoContent)
}
