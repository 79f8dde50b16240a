package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jhoicas/posjarabe-admin/internal/application/dto"
	"github.com/jhoicas/posjarabe-admin/internal/application/permissions"
	"github.com/jhoicas/posjarabe-admin/internal/domain"
	"github.com/jhoicas/posjarabe-admin/internal/domain/entity"
	"github.com/jhoicas/posjarabe-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/posjarabe-admin/pkg/money"
)

func (c *console) cmdFranchises(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		franchises, err := c.api.ListFranchises(ctx)
		if err != nil {
			return err
		}
		w := c.tab()
		fmt.Fprintln(w, "ID\tNOMBRE\tACTIVA\tCREADA")
		for _, f := range franchises {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.ID, f.Name, activeLabel(f.IsActive), f.CreatedAt.Format("2006-01-02"))
		}
		return w.Flush()
	case "create":
		if !c.perms.Can(permissions.FranchisesManage) {
			return fmt.Errorf("%w: crear franquicias", domain.ErrForbidden)
		}
		if len(args) != 2 {
			return fmt.Errorf("%w: admin franchises create <nombre>", domain.ErrInvalidInput)
		}
		f, err := c.api.CreateFranchise(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Franquicia creada: %s (%s)\n", f.Name, f.ID)
		return nil
	case "use":
		if len(args) != 2 {
			return fmt.Errorf("%w: admin franchises use <id>", domain.ErrInvalidInput)
		}
		// Solo roles globales cambian de franquicia; para los demás la sesión
		// ignora el cambio, pero avisamos aquí para no confundir.
		if role, _ := c.sess.CurrentRole(); !role.IsGlobal() {
			return fmt.Errorf("%w: su rol está fijo a la franquicia %s", domain.ErrForbidden, c.sess.EffectiveFranchiseID())
		}
		if _, err := c.api.GetFranchise(ctx, args[1]); err != nil {
			return err
		}
		c.sess.SetActiveFranchiseID(args[1])
		fmt.Fprintf(c.out, "Franquicia activa: %s\n", args[1])
		return nil
	default:
		return fmt.Errorf("%w: subcomando %q", domain.ErrInvalidInput, args[0])
	}
}

func (c *console) cmdProducts(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		q := dto.ProductsQuery{FranchiseID: c.sess.EffectiveFranchiseID()}
		for _, flag := range args[1:] {
			if flag == "--all" {
				if !c.perms.Can(permissions.ProductsToggleActive) {
					return fmt.Errorf("%w: ver productos inactivos", domain.ErrForbidden)
				}
				q.IncludeInactive = true
			}
		}
		page, err := c.api.ListProducts(ctx, q)
		if err != nil {
			return err
		}
		w := c.tab()
		fmt.Fprintln(w, "ID\tNOMBRE\tSKU\tPRECIO\tSTOCK\tFALTANTES\tACTIVO")
		for _, p := range page.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
				p.ID, p.Name, p.SKU, money.FormatCOP(p.Price), p.Stock, p.Missing, activeLabel(p.IsActive))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Página %d de %d productos\n", page.Page, page.Total)
		return nil
	case "create":
		if !c.perms.Can(permissions.ProductsCreate) {
			return fmt.Errorf("%w: crear productos", domain.ErrForbidden)
		}
		if len(args) < 3 {
			return fmt.Errorf("%w: admin products create <nombre> <centavos> [sku]", domain.ErrInvalidInput)
		}
		price, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: precio %q", domain.ErrInvalidInput, args[2])
		}
		in := dto.CreateProductRequest{Name: args[1], Price: price}
		if len(args) > 3 {
			in.SKU = args[3]
		}
		p, err := c.api.CreateProduct(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Producto creado: %s (%s) %s\n", p.Name, p.ID, money.FormatCOP(p.Price))
		return nil
	case "restock":
		if !c.perms.Can(permissions.ProductsEdit) {
			return fmt.Errorf("%w: reabastecer productos", domain.ErrForbidden)
		}
		if len(args) != 3 {
			return fmt.Errorf("%w: admin products restock <id> <qty>", domain.ErrInvalidInput)
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("%w: cantidad %q", domain.ErrInvalidInput, args[2])
		}
		p, err := c.api.RestockProduct(ctx, args[1], qty)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Stock de %s: %d\n", p.Name, p.Stock)
		return nil
	case "adjust":
		if !c.perms.Can(permissions.ProductsEdit) {
			return fmt.Errorf("%w: ajustar inventario", domain.ErrForbidden)
		}
		if len(args) < 3 {
			return fmt.Errorf("%w: admin products adjust <id> <qty> [motivo]", domain.ErrInvalidInput)
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("%w: cantidad %q", domain.ErrInvalidInput, args[2])
		}
		in := dto.AdjustStockRequest{Qty: qty}
		if len(args) > 3 {
			in.Reason = args[3]
		}
		p, err := c.api.AdjustProductStock(ctx, args[1], in)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Stock de %s: %d (faltantes %d)\n", p.Name, p.Stock, p.Missing)
		return nil
	case "toggle":
		if !c.perms.Can(permissions.ProductsToggleActive) {
			return fmt.Errorf("%w: activar/desactivar productos", domain.ErrForbidden)
		}
		if len(args) != 3 || (args[2] != "on" && args[2] != "off") {
			return fmt.Errorf("%w: admin products toggle <id> on|off", domain.ErrInvalidInput)
		}
		active := args[2] == "on"
		p, err := c.api.UpdateProduct(ctx, args[1], dto.UpdateProductRequest{IsActive: &active})
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Producto %s: %s\n", p.Name, activeLabel(p.IsActive))
		return nil
	case "delete":
		if !c.perms.Can(permissions.ProductsToggleActive) {
			return fmt.Errorf("%w: eliminar productos", domain.ErrForbidden)
		}
		if len(args) != 2 {
			return fmt.Errorf("%w: admin products delete <id>", domain.ErrInvalidInput)
		}
		if err := c.api.DeleteProduct(ctx, args[1]); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Producto eliminado.")
		return nil
	default:
		return fmt.Errorf("%w: subcomando %q", domain.ErrInvalidInput, args[0])
	}
}

func (c *console) cmdSales(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		sales, err := c.api.ListSales(ctx, c.sess.EffectiveFranchiseID())
		if err != nil {
			return err
		}
		w := c.tab()
		fmt.Fprintln(w, "ID\tFECHA\tTARJETA\tITEMS\tTOTAL\tESTADO")
		for _, s := range sales {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
				s.ID, s.CreatedAt.Format("2006-01-02 15:04"), s.CardNumber, len(s.Items), money.FormatCOP(s.Total), s.Status)
		}
		return w.Flush()
	case "create":
		if !c.perms.Can(permissions.SalesCreate) {
			return fmt.Errorf("%w: registrar ventas", domain.ErrForbidden)
		}
		if len(args) < 3 {
			return fmt.Errorf("%w: admin sales create <tarjeta> <productoId:qty>...", domain.ErrInvalidInput)
		}
		items, err := parseItems(args[2:])
		if err != nil {
			return err
		}
		in := dto.CreateSaleRequest{CardNumber: args[1]}
		for _, item := range items {
			in.Items = append(in.Items, dto.SaleItemRequest{ProductID: item.productID, Qty: item.qty})
		}
		sale, err := c.api.CreateSale(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Venta %s registrada: %s\n", sale.ID, money.FormatCOP(sale.Total))
		return nil
	case "cancel":
		// Cancelar es gestión, no venta: misma regla que productos.
		if !c.perms.Can(permissions.ProductsEdit) {
			return fmt.Errorf("%w: anular ventas", domain.ErrForbidden)
		}
		if len(args) < 3 {
			return fmt.Errorf("%w: admin sales cancel <id> <motivo>", domain.ErrInvalidInput)
		}
		sale, err := c.api.CancelSale(ctx, args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Venta %s anulada (%s)\n", sale.ID, sale.CancelReason)
		return nil
	case "summary":
		rows, err := c.api.SalesSummary(ctx, c.sess.EffectiveFranchiseID())
		if err != nil {
			return err
		}
		w := c.tab()
		fmt.Fprintln(w, "FECHA\tVENDEDOR\tVENTAS\tTOTAL")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", r.CreatedAt, r.SellerName, r.SalesCount, money.FormatCOP(r.TotalSold))
		}
		return w.Flush()
	default:
		return fmt.Errorf("%w: subcomando %q", domain.ErrInvalidInput, args[0])
	}
}

func (c *console) cmdUsers(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		users, err := c.api.ListUsers(ctx, c.sess.EffectiveFranchiseID())
		if err != nil {
			return err
		}
		w := c.tab()
		fmt.Fprintln(w, "ID\tNOMBRE\tEMAIL\tROL\tFRANQUICIA\tACTIVO")
		for _, u := range users {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, u.FranchiseID, activeLabel(u.IsActive))
		}
		return w.Flush()
	case "create":
		if len(args) < 5 {
			return fmt.Errorf("%w: admin users create <email> <password> <nombre> <rol> [franquiciaId]", domain.ErrInvalidInput)
		}
		role := entity.Role(args[4])
		if !c.canCreateRole(role) {
			return fmt.Errorf("%w: crear usuarios con rol %s", domain.ErrForbidden, role)
		}
		in := dto.CreateUserRequest{Email: args[1], Password: args[2], Name: args[3], Role: role}
		if len(args) > 5 {
			in.FranchiseID = args[5]
		} else if !role.IsGlobal() {
			in.FranchiseID = c.sess.EffectiveFranchiseID()
		}
		u, err := c.api.CreateUser(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Usuario creado: %s <%s> rol %s\n", u.Name, u.ID, u.Role)
		return nil
	case "activate", "deactivate":
		if !c.perms.Can(permissions.UsersEdit) {
			return fmt.Errorf("%w: editar usuarios", domain.ErrForbidden)
		}
		if len(args) != 2 {
			return fmt.Errorf("%w: admin users %s <id>", domain.ErrInvalidInput, args[0])
		}
		var (
			res *dto.ToggleActiveResponse
			err error
		)
		if args[0] == "activate" {
			res, err = c.api.ActivateUser(ctx, args[1])
		} else {
			res, err = c.api.DeactivateUser(ctx, args[1])
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Usuario %s: %s\n", res.UserID, activeLabel(res.IsActive))
		return nil
	default:
		return fmt.Errorf("%w: subcomando %q", domain.ErrInvalidInput, args[0])
	}
}

// canCreateRole visibilidad de creación por rol destino, derivada de la tabla
// de permisos.
func (c *console) canCreateRole(role entity.Role) bool {
	switch role {
	case entity.RolePartner:
		return c.perms.Can(permissions.UsersCreatePartner)
	case entity.RoleFranchiseOwner:
		return c.perms.Can(permissions.UsersCreateFranchiseOwn)
	case entity.RoleSeller:
		return c.perms.Can(permissions.UsersCreateSeller)
	default:
		return false
	}
}

func (c *console) cmdReports(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"summary"}
	}
	switch args[0] {
	case "summary":
		if !c.perms.Can(permissions.ReportsAdmin) {
			return fmt.Errorf("%w: resumen global", domain.ErrForbidden)
		}
		summary, err := c.api.GlobalSummary(ctx)
		if err != nil {
			return err
		}
		w := c.tab()
		fmt.Fprintln(w, "FRANQUICIA\tVENTAS\tTOTAL")
		for _, fs := range summary.ByFranchise {
			fmt.Fprintf(w, "%s\t%d\t%s\n", fs.FranchiseName, fs.SalesCount, money.FormatCOP(fs.Total))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Red: %d ventas, %s\n", summary.SalesCount, money.FormatCOP(summary.Total))
		return nil
	case "daily-close":
		date := ""
		pdfPath := ""
		rest := args[1:]
		for i := 0; i < len(rest); i++ {
			if rest[i] == "--pdf" {
				if i+1 >= len(rest) {
					return fmt.Errorf("%w: --pdf requiere un archivo de salida", domain.ErrInvalidInput)
				}
				pdfPath = rest[i+1]
				i++
				continue
			}
			date = rest[i]
		}
		franchiseID := c.sess.EffectiveFranchiseID()
		if franchiseID == "" {
			return fmt.Errorf("%w: seleccione franquicia (admin franchises use <id>)", domain.ErrInvalidInput)
		}
		report, err := c.api.DailyClose(ctx, franchiseID, date)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Cierre %s — %s\n", report.Date, report.FranchiseName)
		w := c.tab()
		fmt.Fprintln(w, "VENDEDOR\tVENTAS\tTOTAL")
		for _, seller := range report.BySeller {
			fmt.Fprintf(w, "%s\t%d\t%s\n", seller.SellerName, seller.SalesCount, money.FormatCOP(seller.Total))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Total: %s (%d ventas, %d anuladas)\n",
			money.FormatCOP(report.Total), report.SalesCount, report.CancelledCount)
		if pdfPath != "" {
			doc, err := pdf.NewDailyCloseGenerator().Generate(report)
			if err != nil {
				return fmt.Errorf("generar PDF: %w", err)
			}
			if err := os.WriteFile(pdfPath, doc, 0o644); err != nil {
				return fmt.Errorf("escribir PDF: %w", err)
			}
			fmt.Fprintf(c.out, "PDF guardado en %s\n", pdfPath)
		}
		return nil
	default:
		return fmt.Errorf("%w: subcomando %q", domain.ErrInvalidInput, args[0])
	}
}

func (c *console) cmdAudit(ctx context.Context) error {
	entries, err := c.api.Audit(ctx, dto.AuditQuery{Limit: 50})
	if err != nil {
		return err
	}
	w := c.tab()
	fmt.Fprintln(w, "FECHA\tACTOR\tACCIÓN\tENTIDAD\tDETALLE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s/%s\t%s\n",
			e.CreatedAt.Format(time.RFC3339), e.ActorID, e.Action, e.EntityType, e.EntityID, e.Detail)
	}
	return w.Flush()
}

func activeLabel(active bool) string {
	if active {
		return "sí"
	}
	return "no"
}
