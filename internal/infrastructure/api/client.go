package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/posjarabe-admin/pkg/logger"
)

// Options parámetros de construcción del cliente.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// Base transporte HTTP subyacente; nil usa http.DefaultTransport.
	// Los tests lo reemplazan para hablar con el mockapi in-process.
	Base http.RoundTripper
}

// Client cliente del backend posjarabe con el pipeline de interceptores
// armado: cada request sale con bearer y franquicia efectiva, y un 401 por
// token vencido se recupera con un refresh y un reintento.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *logger.Logger
}

// NewClient construye el cliente autenticado.
func NewClient(opts Options, sess SessionReader, refresher Refresher, log *logger.Logger) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: opts.BaseURL,
		httpc: &http.Client{
			Timeout:   timeout,
			Transport: NewPipeline(opts.Base, sess, refresher, log),
		},
		log: log,
	}
}

// do ejecuta un request JSON y decodifica la respuesta en out (si no es nil).
// Respuestas no-2xx se convierten en *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: serializar body de %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("api: armar request %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("request al backend")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decodificar respuesta de %s %s: %w", method, path, err)
	}
	return nil
}
