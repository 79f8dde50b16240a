package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jhoicas/posjarabe-admin/internal/application/dto"
	"github.com/jhoicas/posjarabe-admin/internal/domain"
)

// APIError error HTTP del backend con su código y mensaje de negocio.
// Unwrap lo conecta con los sentinelas de dominio para errors.Is.
type APIError struct {
	Status  int
	Code    string
	Message string
}

// Error implementa error.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("backend %d: %s", e.Status, e.Message)
}

// Unwrap mapea el status HTTP al sentinel de dominio correspondiente.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case e.Status == http.StatusForbidden:
		return domain.ErrForbidden
	case e.Status == http.StatusNotFound:
		return domain.ErrNotFound
	case e.Status == http.StatusBadRequest:
		return domain.ErrInvalidInput
	case e.Status >= 500:
		return domain.ErrBackend
	}
	return nil
}

// decodeAPIError construye el APIError desde una respuesta no-2xx. Tolera
// cuerpos que no son el ErrorResponse esperado (proxies, HTML de error).
func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode, Message: resp.Status}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(raw) == 0 {
		return apiErr
	}
	var body dto.ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	}
	return apiErr
}
