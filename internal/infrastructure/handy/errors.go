package handy

import (
	"errors"
	"fmt"
)

// APIError respuesta HTTP no exitosa de Handy. Conserva código y cuerpo para el mensaje al usuario.
type APIError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Handy API error: %s %s: %d %s", e.Method, e.Endpoint, e.StatusCode, e.Body)
}

// IsServerError indica fallo del lado de Handy (5xx).
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

var errEmptyAPIKey = errors.New("handy: API key vacía")

// TransportError la petición no obtuvo respuesta HTTP (DNS, conexión, timeout del cliente).
type TransportError struct {
	Method   string
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("handy: llamada HTTP fallida: %s %s: %v", e.Method, e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// isTransient indica si vale la pena reintentar: 5xx o fallo de red.
func isTransient(err error) bool {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.IsServerError()
	}
	var tErr *TransportError
	return errors.As(err, &tErr)
}

// AsAPIError extrae un *APIError de la cadena de errores.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
