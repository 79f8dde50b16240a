// Pipeline de requests: cadena de http.RoundTripper que adjunta credenciales
// y contexto de franquicia a cada request saliente, y recupera exactamente
// una clase de falla (access token vencido) con un refresh y un reintento.
//
// Anidamiento, de afuera hacia adentro: refresh → franquicia → auth → base.
// El reintento del refresh vuelve a pasar por franquicia y auth, así que
// siempre sale con el token más nuevo.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/jhoicas/posjarabe-admin/pkg/logger"
)

// HeaderFranchise header con el que el backend scope-a las consultas.
const HeaderFranchise = "x-franchise-id"

// SessionReader lo que el pipeline necesita leer del estado de sesión.
// Lo implementa session.Store.
type SessionReader interface {
	AccessToken() string
	EffectiveFranchiseID() string
}

// Refresher dispara el flujo de refresh de tokens. Lo implementa auth.Client.
type Refresher interface {
	RefreshTokens(ctx context.Context) error
}

// isAuthExempt: los endpoints de login y refresh nunca llevan bearer ni
// header de franquicia, y sus 401 jamás disparan refresh (evita el loop).
func isAuthExempt(req *http.Request) bool {
	p := req.URL.Path
	return strings.HasSuffix(p, "/auth/login") || strings.HasSuffix(p, "/auth/refresh")
}

// NewPipeline arma la cadena completa de interceptores sobre base.
func NewPipeline(base http.RoundTripper, sess SessionReader, refresher Refresher, log *logger.Logger) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	var rt http.RoundTripper = &authTransport{next: base, sess: sess}
	rt = &franchiseTransport{next: rt, sess: sess}
	rt = &refreshTransport{next: rt, refresher: refresher, log: log}
	return rt
}

// ─── Paso 1: adjuntar bearer ─────────────────────────────────────────────────

type authTransport struct {
	next http.RoundTripper
	sess SessionReader
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if isAuthExempt(req) {
		return t.next.RoundTrip(req)
	}
	token := t.sess.AccessToken()
	if token == "" {
		return t.next.RoundTrip(req)
	}
	// Los RoundTripper no deben mutar el request original.
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return t.next.RoundTrip(clone)
}

// ─── Paso 2: adjuntar franquicia efectiva ────────────────────────────────────

type franchiseTransport struct {
	next http.RoundTripper
	sess SessionReader
}

func (t *franchiseTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if isAuthExempt(req) {
		return t.next.RoundTrip(req)
	}
	franchiseID := t.sess.EffectiveFranchiseID()
	if franchiseID == "" {
		// Sin franquicia resoluble el request sigue sin header y el backend
		// decide el scope por defecto.
		return t.next.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set(HeaderFranchise, franchiseID)
	return t.next.RoundTrip(clone)
}

// ─── Paso 3: refresh-y-reintento ante 401 ────────────────────────────────────

// refreshTransport envuelve el despacho. Ante un 401 (y solo 401: un 403 es
// denegación de autorización y se propaga tal cual) dispara UN refresh
// coordinado por un flag CAS propio de la instancia y reintenta el request
// original exactamente una vez. Requests 401 que lleguen mientras hay un
// refresh en curso fallan de inmediato, sin encolarse.
type refreshTransport struct {
	next      http.RoundTripper
	refresher Refresher
	log       *logger.Logger

	// inFlight estados {IDLE, REFRESHING}. Vuelve a IDLE cuando el refresh
	// termina, con éxito o sin él.
	inFlight atomic.Bool
}

var errBodyNotReplayable = errors.New("body no reproducible para reintento")

func (t *refreshTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	if isAuthExempt(req) {
		return resp, nil
	}

	if !t.inFlight.CompareAndSwap(false, true) {
		// Refresh ya en curso: este request falla duro con su 401 original.
		// Simplificación deliberada: no se encolan reintentos concurrentes.
		t.log.Debug().Str("path", req.URL.Path).Msg("401 durante refresh en curso, propagando")
		return resp, nil
	}
	refreshErr := t.refresher.RefreshTokens(req.Context())
	t.inFlight.Store(false)

	if refreshErr != nil {
		// Sin logout automático: el usuario ve el error en vez de ser
		// redirigido en silencio al login por un blip de red.
		t.log.Warn().Err(refreshErr).Str("path", req.URL.Path).Msg("refresh falló, propagando 401")
		return resp, nil
	}

	retry, rewindErr := rewindRequest(req)
	if rewindErr != nil {
		t.log.Warn().Err(rewindErr).Str("path", req.URL.Path).Msg("no se pudo reintentar el request")
		return resp, nil
	}
	drain(resp)
	t.log.Debug().Str("path", req.URL.Path).Msg("token renovado, reintentando request")
	return t.next.RoundTrip(retry)
}

// rewindRequest clona el request con el body rebobinado vía GetBody. El clon
// NO trae los headers de auth/franquicia: esos los recalculan los pasos
// internos contra el estado más nuevo.
func rewindRequest(req *http.Request) (*http.Request, error) {
	clone := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return clone, nil
	}
	if req.GetBody == nil {
		return nil, errBodyNotReplayable
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	clone.Body = body
	return clone, nil
}

// drain consume y cierra la respuesta descartada para reusar la conexión.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}
