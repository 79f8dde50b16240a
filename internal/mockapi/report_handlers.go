package mockapi

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/posjarabe-admin/internal/application/dto"
	"github.com/jhoicas/posjarabe-admin/internal/domain/entity"
)

// handleDailyClose GET /reports/daily-close: cierre del día de una
// franquicia, desglosado por vendedor. Roles de franquicia quedan clavados a
// la suya; date vacío es hoy.
func (s *Server) handleDailyClose(c *fiber.Ctx) error {
	franchiseID := c.Query("franchiseId")
	if !currentRole(c).IsGlobal() {
		franchiseID = localString(c, localFranchiseID)
	}
	if franchiseID == "" {
		return jsonError(c, fiber.StatusBadRequest, "MISSING_FRANCHISE", "franchiseId requerido")
	}
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	franchise, ok := s.store.franchises[franchiseID]
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "NOT_FOUND", "franquicia no encontrada")
	}

	report := dto.DailyCloseReport{
		FranchiseID:   franchiseID,
		FranchiseName: franchise.Name,
		Date:          date,
		BySeller:      []dto.SellerClose{},
	}
	bySeller := make(map[string]*dto.SellerClose)
	for _, sale := range s.store.sales {
		if sale.FranchiseID != franchiseID || sale.CreatedAt.Format("2006-01-02") != date {
			continue
		}
		if sale.Status == entity.SaleStatusCancelled {
			report.CancelledCount++
			continue
		}
		report.SalesCount++
		report.Total += sale.Total

		seller, ok := bySeller[sale.SellerID]
		if !ok {
			name := sale.SellerID
			if acc, ok := s.store.accounts[sale.SellerID]; ok {
				name = acc.Name
			}
			seller = &dto.SellerClose{SellerID: sale.SellerID, SellerName: name}
			bySeller[sale.SellerID] = seller
		}
		seller.SalesCount++
		seller.Total += sale.Total
	}
	for _, seller := range bySeller {
		report.BySeller = append(report.BySeller, *seller)
	}
	sort.Slice(report.BySeller, func(i, j int) bool {
		return report.BySeller[i].SellerName < report.BySeller[j].SellerName
	})
	return c.JSON(report)
}

// handleGlobalSummary GET /reports/global/summary: totales de toda la red
// por franquicia (solo OWNER/PARTNER).
func (s *Server) handleGlobalSummary(c *fiber.Ctx) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	summary := dto.GlobalSummary{
		ByFranchise:   []dto.FranchiseSummary{},
		GeneratedAtMs: time.Now().UnixMilli(),
	}
	byFranchise := make(map[string]*dto.FranchiseSummary)
	for id, f := range s.store.franchises {
		byFranchise[id] = &dto.FranchiseSummary{FranchiseID: id, FranchiseName: f.Name}
	}
	for _, sale := range s.store.sales {
		if sale.Status != entity.SaleStatusCompleted {
			continue
		}
		summary.SalesCount++
		summary.Total += sale.Total
		if fs, ok := byFranchise[sale.FranchiseID]; ok {
			fs.SalesCount++
			fs.Total += sale.Total
		}
	}
	for _, fs := range byFranchise {
		summary.ByFranchise = append(summary.ByFranchise, *fs)
	}
	sort.Slice(summary.ByFranchise, func(i, j int) bool {
		return summary.ByFranchise[i].FranchiseName < summary.ByFranchise[j].FranchiseName
	})
	return c.JSON(summary)
}

// handleAudit GET /audit: entradas de auditoría, más nuevas primero.
func (s *Server) handleAudit(c *fiber.Ctx) error {
	franchiseID := c.Query("franchiseId")
	entityType := c.Query("entityType")
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 500 {
		limit = 50
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	out := make([]entity.AuditEntry, 0, limit)
	for i := len(s.store.audit) - 1; i >= 0 && len(out) < limit; i-- {
		e := s.store.audit[i]
		if franchiseID != "" && e.FranchiseID != franchiseID {
			continue
		}
		if entityType != "" && e.EntityType != entityType {
			continue
		}
		out = append(out, e)
	}
	return c.JSON(out)
}
