// Package guards decide si una navegación a una pantalla procede y, si no, a
// dónde redirigir. Son funciones puras sobre el estado de sesión y el
// evaluador de permisos; no conocen el router.
package guards

import (
	"github.com/jhoicas/posjarabe-admin/internal/application/permissions"
	"github.com/jhoicas/posjarabe-admin/internal/domain/entity"
	"github.com/jhoicas/posjarabe-admin/internal/session"
)

// Rutas destino de las redirecciones.
const (
	RouteLogin = "/login"
	RouteHome  = "/app"
)

// Decision resultado de un guard: pasa, o redirige a RedirectTo.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// allow y redirect constructores internos.
func allow() Decision             { return Decision{Allowed: true} }
func redirect(to string) Decision { return Decision{RedirectTo: to} }

// Auth deja navegar solo con sesión iniciada; si no, al login.
func Auth(store *session.Store) Decision {
	if !store.IsLoggedIn() {
		return redirect(RouteLogin)
	}
	return allow()
}

// Role deja navegar con sesión iniciada Y rol permitido. Sin sesión redirige
// al login; con sesión pero rol insuficiente redirige al home autenticado
// (soft deny: no se castiga con logout a un usuario válido).
func Role(store *session.Store, perms *permissions.Evaluator, allowed ...entity.Role) Decision {
	if !store.IsLoggedIn() {
		return redirect(RouteLogin)
	}
	// Ruta sin restricción declarada: pasa cualquiera logueado.
	if len(allowed) == 0 {
		return allow()
	}
	if perms.IsAny(allowed...) {
		return allow()
	}
	return redirect(RouteHome)
}
