package mockapi

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/posjarabe-admin/internal/application/dto"
	"github.com/jhoicas/posjarabe-admin/internal/domain/entity"
)

// handleListSales GET /sales: ventas de la franquicia efectiva, más nuevas
// primero. Roles globales sin selección ven todas.
func (s *Server) handleListSales(c *fiber.Ctx) error {
	franchiseID := effectiveFranchiseID(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	out := make([]entity.Sale, 0)
	for _, sale := range s.store.salesSorted() {
		if franchiseID != "" && sale.FranchiseID != franchiseID {
			continue
		}
		out = append(out, sale)
	}
	return c.JSON(out)
}

// handleCreateSale POST /sales: arma los renglones desde el catálogo, valida
// stock, descuenta y calcula el total con decimal.
func (s *Server) handleCreateSale(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil || len(in.Items) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "INVALID_BODY", "venta sin items")
	}

	franchiseID := effectiveFranchiseID(c)
	if currentRole(c).IsGlobal() && in.FranchiseID != "" {
		franchiseID = in.FranchiseID
	}
	if franchiseID == "" {
		return jsonError(c, fiber.StatusBadRequest, "MISSING_FRANCHISE", "franquicia no resoluble")
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	lines := make([]entity.SaleLine, 0, len(in.Items))
	total := decimal.Zero
	for _, item := range in.Items {
		if item.Qty <= 0 {
			return jsonError(c, fiber.StatusBadRequest, "INVALID_QTY", "cantidad debe ser positiva")
		}
		p, ok := s.store.products[item.ProductID]
		if !ok || p.FranchiseID != franchiseID {
			return jsonError(c, fiber.StatusNotFound, "NOT_FOUND", "producto no encontrado en la franquicia")
		}
		if !p.IsActive {
			return jsonError(c, fiber.StatusConflict, "PRODUCT_INACTIVE", "producto desactivado: "+p.Name)
		}
		if p.Stock < item.Qty {
			return jsonError(c, fiber.StatusConflict, "INSUFFICIENT_STOCK", "stock insuficiente: "+p.Name)
		}
		subtotal := decimal.NewFromInt(p.Price).Mul(decimal.NewFromInt(int64(item.Qty)))
		lines = append(lines, entity.SaleLine{
			ProductID: p.ID,
			Name:      p.Name,
			Qty:       item.Qty,
			Price:     p.Price,
			Subtotal:  subtotal.IntPart(),
		})
		total = total.Add(subtotal)
	}

	// Validado todo: recién ahora se descuenta stock.
	for _, line := range lines {
		s.store.products[line.ProductID].Stock -= line.Qty
	}

	sale := &entity.Sale{
		ID:          uuid.NewString(),
		FranchiseID: franchiseID,
		SellerID:    currentUserID(c),
		CardNumber:  in.CardNumber,
		Items:       lines,
		Total:       total.IntPart(),
		Status:      entity.SaleStatusCompleted,
		CreatedAt:   time.Now(),
	}
	s.store.sales[sale.ID] = sale
	s.store.recordAudit(currentUserID(c), "sale.create", "sale", sale.ID, franchiseID, "")
	return c.Status(fiber.StatusCreated).JSON(*sale)
}

// handleCancelSale POST /sales/:id/cancel: anula con motivo y devuelve el
// stock. Roles de franquicia solo dentro de la suya.
func (s *Server) handleCancelSale(c *fiber.Ctx) error {
	var in dto.CancelSaleRequest
	if err := c.BodyParser(&in); err != nil || in.Reason == "" {
		return jsonError(c, fiber.StatusBadRequest, "MISSING_REASON", "motivo de cancelación requerido")
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	sale, ok := s.store.sales[c.Params("id")]
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "NOT_FOUND", "venta no encontrada")
	}
	if !currentRole(c).IsGlobal() && sale.FranchiseID != localString(c, localFranchiseID) {
		return jsonError(c, fiber.StatusForbidden, "FORBIDDEN", "venta de otra franquicia")
	}
	if sale.Status == entity.SaleStatusCancelled {
		return jsonError(c, fiber.StatusConflict, "ALREADY_CANCELLED", "la venta ya está anulada")
	}

	sale.Status = entity.SaleStatusCancelled
	sale.CancelReason = in.Reason
	for _, line := range sale.Items {
		if p, ok := s.store.products[line.ProductID]; ok {
			p.Stock += line.Qty
		}
	}
	s.store.recordAudit(currentUserID(c), "sale.cancel", "sale", sale.ID, sale.FranchiseID, in.Reason)
	return c.JSON(*sale)
}

// handleSalesSummary GET /sales/summary: ventas completadas agrupadas por
// día y vendedor, más recientes primero.
func (s *Server) handleSalesSummary(c *fiber.Ctx) error {
	franchiseID := effectiveFranchiseID(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	type key struct {
		day      string
		sellerID string
	}
	groups := make(map[key]*dto.SalesSummaryRow)
	for _, sale := range s.store.sales {
		if sale.Status != entity.SaleStatusCompleted {
			continue
		}
		if franchiseID != "" && sale.FranchiseID != franchiseID {
			continue
		}
		k := key{day: sale.CreatedAt.Format("2006-01-02"), sellerID: sale.SellerID}
		row, ok := groups[k]
		if !ok {
			sellerName := ""
			if acc, ok := s.store.accounts[sale.SellerID]; ok {
				sellerName = acc.Name
			}
			row = &dto.SalesSummaryRow{CreatedAt: k.day, SellerName: sellerName}
			groups[k] = row
		}
		row.SalesCount++
		row.TotalSold += sale.Total
	}

	out := make([]dto.SalesSummaryRow, 0, len(groups))
	for _, row := range groups {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].SellerName < out[j].SellerName
	})
	return c.JSON(out)
}
