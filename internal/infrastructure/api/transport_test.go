package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/posjarabe-admin/internal/infrastructure/api"
	"github.com/jhoicas/posjarabe-admin/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeSession SessionReader mutable; el "refresh" cambia el token que leen
// los interceptores internos.
type fakeSession struct {
	mu          sync.Mutex
	token       string
	franchiseID string
}

func (f *fakeSession) AccessToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeSession) EffectiveFranchiseID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.franchiseID
}

func (f *fakeSession) setToken(tok string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = tok
}

// fakeRefresher cuenta refreshes y ejecuta fn en cada uno.
type fakeRefresher struct {
	mu    sync.Mutex
	calls int
	fn    func() error
}

func (f *fakeRefresher) RefreshTokens(ctx context.Context) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.fn != nil {
		return f.fn()
	}
	return nil
}

func (f *fakeRefresher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newPipelineClient(sess api.SessionReader, refresher api.Refresher) *http.Client {
	return &http.Client{Transport: api.NewPipeline(nil, sess, refresher, logger.Nop())}
}

// ──────────────────────────────────────────────────────────────────────────────
// Headers salientes
// ──────────────────────────────────────────────────────────────────────────────

func TestPipeline_AdjuntaBearerYFranquicia(t *testing.T) {
	var gotAuth, gotFranchise string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotFranchise = r.Header.Get("x-franchise-id")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sess := &fakeSession{token: "tok-1", franchiseID: "f-centro"}
	client := newPipelineClient(sess, &fakeRefresher{})

	resp, err := client.Get(srv.URL + "/products")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, "f-centro", gotFranchise)
}

func TestPipeline_SinSesionNoAdjuntaNada(t *testing.T) {
	var gotAuth, gotFranchise string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotFranchise = r.Header.Get("x-franchise-id")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := newPipelineClient(&fakeSession{}, &fakeRefresher{})
	resp, err := client.Get(srv.URL + "/products")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, gotAuth)
	assert.Empty(t, gotFranchise)
}

// Los endpoints de autenticación jamás llevan credenciales ni franquicia.
func TestPipeline_LoginYRefreshExentos(t *testing.T) {
	headers := make(map[string]string)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers[r.URL.Path] = r.Header.Get("Authorization") + "|" + r.Header.Get("x-franchise-id")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sess := &fakeSession{token: "tok-1", franchiseID: "f-centro"}
	client := newPipelineClient(sess, &fakeRefresher{})

	for _, path := range []string{"/auth/login", "/auth/refresh"} {
		resp, err := client.Post(srv.URL+path, "application/json", nil)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, "|", headers[path], "en %s no van bearer ni franquicia", path)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Refresh y reintento ante 401
// ──────────────────────────────────────────────────────────────────────────────

func TestPipeline_401RefrescaYReintentaUnaVez(t *testing.T) {
	var mu sync.Mutex
	var tokensVistos []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		tokensVistos = append(tokensVistos, r.Header.Get("Authorization"))
		mu.Unlock()
		if r.Header.Get("Authorization") != "Bearer tok-nuevo" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sess := &fakeSession{token: "tok-viejo"}
	refresher := &fakeRefresher{fn: func() error {
		sess.setToken("tok-nuevo")
		return nil
	}}
	client := newPipelineClient(sess, refresher)

	resp, err := client.Get(srv.URL + "/products")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "el reintento debe recuperar el 401")
	assert.Equal(t, 1, refresher.count(), "exactamente un refresh")
	require.Len(t, tokensVistos, 2, "request original + un único reintento")
	assert.Equal(t, "Bearer tok-viejo", tokensVistos[0])
	assert.Equal(t, "Bearer tok-nuevo", tokensVistos[1],
		"el reintento debe salir con el token renovado")
}

// Si el backend sigue en 401 tras el refresh, no hay segundo refresh ni
// tercer intento: el 401 del reintento se propaga.
func TestPipeline_401PersistenteNoEntraEnLoop(t *testing.T) {
	var hits int
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		mu.Unlock()
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sess := &fakeSession{token: "tok-1"}
	refresher := &fakeRefresher{fn: func() error {
		sess.setToken("tok-2")
		return nil
	}}
	client := newPipelineClient(sess, refresher)

	resp, err := client.Get(srv.URL + "/products")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	// El reintento entra directo a los pasos internos: su 401 se propaga sin
	// pasar otra vez por el paso de refresh.
	assert.Equal(t, 1, refresher.count(), "un solo refresh, sin cascada")
	assert.Equal(t, 2, hits, "request original y un único reintento")
}

func TestPipeline_RefreshFallidoPropagaEl401Original(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sess := &fakeSession{token: "tok-1"}
	refresher := &fakeRefresher{fn: func() error { return assert.AnError }}
	client := newPipelineClient(sess, refresher)

	resp, err := client.Get(srv.URL + "/products")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 1, hits, "con refresh fallido no hay reintento")
	assert.Equal(t, 1, refresher.count())
}

// Un 403 es autorización, no autenticación: jamás dispara refresh.
func TestPipeline_403NuncaRefresca(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	refresher := &fakeRefresher{}
	client := newPipelineClient(&fakeSession{token: "tok-1"}, refresher)

	resp, err := client.Get(srv.URL + "/reports/global/summary")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, refresher.count(), "403 nunca debe refrescar tokens")
}

// Un 401 del propio /auth/refresh no dispara otro refresh (evita el loop).
func TestPipeline_401DeAuthRefreshNoDisparaRefresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	refresher := &fakeRefresher{}
	client := newPipelineClient(&fakeSession{token: "tok-1"}, refresher)

	resp, err := client.Post(srv.URL+"/auth/refresh", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, refresher.count())
}

// Mientras un refresh está en curso, un segundo 401 no encola: falla con su
// 401 original y solo ocurre UN refresh.
func TestPipeline_401ConcurrenteDuranteRefreshNoEncola(t *testing.T) {
	release := make(chan struct{})
	firstRefreshStarted := make(chan struct{})

	var mu sync.Mutex
	var tokens []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		tokens = append(tokens, r.Header.Get("Authorization"))
		mu.Unlock()
		if r.Header.Get("Authorization") == "Bearer tok-nuevo" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sess := &fakeSession{token: "tok-viejo"}
	var once sync.Once
	refresher := &fakeRefresher{fn: func() error {
		once.Do(func() { close(firstRefreshStarted) })
		<-release
		sess.setToken("tok-nuevo")
		return nil
	}}
	client := newPipelineClient(sess, refresher)

	var wg sync.WaitGroup
	var firstStatus, secondStatus int

	wg.Add(1)
	go func() {
		defer wg.Done()
		resp, err := client.Get(srv.URL + "/products")
		if err == nil {
			firstStatus = resp.StatusCode
			resp.Body.Close()
		}
	}()

	<-firstRefreshStarted
	// Segundo request mientras el refresh sigue bloqueado.
	resp, err := client.Get(srv.URL + "/sales")
	require.NoError(t, err)
	secondStatus = resp.StatusCode
	resp.Body.Close()

	close(release)
	wg.Wait()

	assert.Equal(t, http.StatusUnauthorized, secondStatus,
		"el request concurrente falla con su 401, sin esperar al refresh")
	assert.Equal(t, http.StatusOK, firstStatus,
		"el request que disparó el refresh sí se recupera")
	assert.Equal(t, 1, refresher.count(), "un único refresh para ambos 401")
}
