package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jhoicas/posjarabe-admin/internal/application/auth"
	"github.com/jhoicas/posjarabe-admin/internal/application/guards"
	"github.com/jhoicas/posjarabe-admin/internal/application/permissions"
	"github.com/jhoicas/posjarabe-admin/internal/domain"
	"github.com/jhoicas/posjarabe-admin/internal/domain/entity"
	"github.com/jhoicas/posjarabe-admin/internal/infrastructure/api"
	"github.com/jhoicas/posjarabe-admin/internal/session"
	pkgjwt "github.com/jhoicas/posjarabe-admin/pkg/jwt"
	"github.com/jhoicas/posjarabe-admin/pkg/logger"
)

// console estado de la CLI y sus dependencias.
type console struct {
	sess  *session.Store
	auth  *auth.Client
	api   *api.Client
	perms *permissions.Evaluator
	log   *logger.Logger
	out   io.Writer
}

const usage = `posjarabe-admin — consola de administración

Uso:
  admin login <email> <password>
  admin logout
  admin whoami
  admin franchises list | create <nombre> | use <id>
  admin products list [--all] | create <nombre> <centavos> [sku] |
         restock <id> <qty> | adjust <id> <qty> [motivo] |
         toggle <id> on|off | delete <id>
  admin sales list | create <tarjeta> <productoId:qty>... |
         cancel <id> <motivo> | summary
  admin users list | create <email> <password> <nombre> <rol> [franquiciaId] |
         activate <id> | deactivate <id>
  admin reports summary | daily-close [fecha] [--pdf <archivo>]
  admin audit
`

// Roles permitidos por pantalla, igual que las rutas del front: reportes sin
// SELLER; usuarios y franquicias para administradores.
var screenRoles = map[string][]entity.Role{
	"reports":    {entity.RoleOwner, entity.RolePartner, entity.RoleFranchiseOwner},
	"users":      {entity.RoleOwner, entity.RolePartner, entity.RoleFranchiseOwner},
	"franchises": {entity.RoleOwner, entity.RolePartner},
	"audit":      {entity.RoleOwner, entity.RolePartner},
}

func (c *console) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(c.out, usage)
		return nil
	}
	cmd, rest := args[0], args[1:]

	if cmd == "login" {
		return c.cmdLogin(ctx, rest)
	}

	// Todo lo demás requiere sesión.
	if decision := guards.Auth(c.sess); !decision.Allowed {
		return fmt.Errorf("%w: inicie sesión primero (admin login)", domain.ErrNoSession)
	}
	// Pantallas con restricción de rol: denegación suave, como en el front.
	if roles, ok := screenRoles[cmd]; ok {
		if decision := guards.Role(c.sess, c.perms, roles...); !decision.Allowed {
			return fmt.Errorf("%w: su rol no tiene acceso a %q", domain.ErrForbidden, cmd)
		}
	}

	switch cmd {
	case "logout":
		c.auth.Logout()
		fmt.Fprintln(c.out, "Sesión cerrada.")
		return nil
	case "whoami":
		return c.cmdWhoami()
	case "franchises":
		return c.cmdFranchises(ctx, rest)
	case "products":
		return c.cmdProducts(ctx, rest)
	case "sales":
		return c.cmdSales(ctx, rest)
	case "users":
		return c.cmdUsers(ctx, rest)
	case "reports":
		return c.cmdReports(ctx, rest)
	case "audit":
		return c.cmdAudit(ctx)
	default:
		fmt.Fprint(c.out, usage)
		return fmt.Errorf("%w: comando desconocido %q", domain.ErrInvalidInput, cmd)
	}
}

func (c *console) cmdLogin(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: admin login <email> <password>", domain.ErrInvalidInput)
	}
	if err := c.auth.Login(ctx, args[0], args[1]); err != nil {
		return err
	}
	user, _ := c.sess.User()
	fmt.Fprintf(c.out, "Bienvenido %s (%s)\n", user.Name, user.Role)
	return nil
}

func (c *console) cmdWhoami() error {
	user, ok := c.sess.User()
	if !ok {
		return domain.ErrNoSession
	}
	fmt.Fprintf(c.out, "Usuario:    %s <%s>\n", user.Name, user.UserID)
	fmt.Fprintf(c.out, "Rol:        %s\n", user.Role)
	if effective := c.sess.EffectiveFranchiseID(); effective != "" {
		fmt.Fprintf(c.out, "Franquicia: %s\n", effective)
	} else {
		fmt.Fprintln(c.out, "Franquicia: (todas)")
	}
	// La expiración se lee sin validar firma: es solo informativa.
	if exp, err := pkgjwt.PeekExpiry(c.sess.AccessToken()); err == nil {
		fmt.Fprintf(c.out, "Token:      expira %s\n", exp.Format(time.RFC3339))
	}
	return nil
}

// tab arma un tabwriter consistente para los listados.
func (c *console) tab() *tabwriter.Writer {
	return tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
}

// parseItems interpreta pares productoId:qty de la línea de comandos.
func parseItems(args []string) ([]itemArg, error) {
	items := make([]itemArg, 0, len(args))
	for _, raw := range args {
		parts := strings.SplitN(raw, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: item %q (formato productoId:qty)", domain.ErrInvalidInput, raw)
		}
		var qty int
		if _, err := fmt.Sscanf(parts[1], "%d", &qty); err != nil || qty <= 0 {
			return nil, fmt.Errorf("%w: cantidad inválida en %q", domain.ErrInvalidInput, raw)
		}
		items = append(items, itemArg{productID: parts[0], qty: qty})
	}
	return items, nil
}

type itemArg struct {
	productID string
	qty       int
}
