package handy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jhoicas/handy-sync/internal/application/ports"
)

// Verificar en tiempo de compilación que Client implementa HandyClient.
var _ ports.HandyClient = (*Client)(nil)

const maxResponseBody = 4 << 20

// RequestObserver recibe cada llamada HTTP hecha a Handy (métricas).
type RequestObserver interface {
	ObserveRequest(method, endpoint string, status int, elapsed time.Duration)
}

// Options configuración del cliente.
type Options struct {
	BaseURL       string        // ej. https://hub.handy.la/api/v2
	PageSize      int           // parámetro max= de los listados
	MaxPages      int           // tope de páginas por listado
	Timeout       time.Duration // timeout de red por petición
	RatePerMinute int           // 0 = sin límite
	PageRetries   int           // reintentos por página ante 5xx o fallo de red; 0 = ninguno
	RetryBackoff  time.Duration // espera base entre reintentos de página
	HTTPClient    *http.Client  // opcional (tests)
	Observer      RequestObserver
	Logger        zerolog.Logger
}

// Client adaptador de la API REST de Handy con autenticación Bearer.
// Todas las peticiones pasan por un rate.Limiter. El cliente no guarda estado de
// fallos entre llamadas: cada listado paginado arma su propio circuit breaker.
type Client struct {
	base         *url.URL
	pageSize     int
	maxPages     int
	pageRetries  int
	retryBackoff time.Duration
	http         *http.Client
	limiter      *rate.Limiter
	observer     RequestObserver
	log          zerolog.Logger
}

// New construye el cliente. Devuelve error si BaseURL no es una URL absoluta.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("handy: base URL inválida: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("handy: base URL debe ser absoluta: %q", opts.BaseURL)
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 100
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = 1000
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RatePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RatePerMinute)), opts.RatePerMinute)
	}

	if opts.PageRetries < 0 {
		opts.PageRetries = 0
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = 500 * time.Millisecond
	}

	return &Client{
		base:         base,
		pageSize:     opts.PageSize,
		maxPages:     opts.MaxPages,
		pageRetries:  opts.PageRetries,
		retryBackoff: opts.RetryBackoff,
		http:         httpClient,
		limiter:      limiter,
		observer:     opts.Observer,
		log:          opts.Logger,
	}, nil
}

// endpoint arma la URL absoluta de un recurso con su query. escapedPath ya viene escapado.
func (c *Client) endpoint(escapedPath string, query url.Values) string {
	u := *c.base
	u.RawPath = strings.TrimRight(c.base.EscapedPath(), "/") + escapedPath
	if p, err := url.PathUnescape(u.RawPath); err == nil {
		u.Path = p
	}
	u.RawQuery = query.Encode()
	return u.String()
}

// listQuery query base de los listados paginados (max=<pageSize>).
func (c *Client) listQuery() url.Values {
	q := url.Values{}
	q.Set("max", strconv.Itoa(c.pageSize))
	return q
}

// do ejecuta una petición autenticada. Una respuesta cuyo código no está en okStatus se
// devuelve como *APIError con el cuerpo recibido.
func (c *Client) do(
	ctx context.Context,
	cred ports.Credentials,
	method, rawURL, label string,
	payload any,
	okStatus ...int,
) ([]byte, error) {
	if cred.APIKey == "" {
		return nil, errEmptyAPIKey
	}
	var body []byte
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("handy: serializar request: %w", err)
		}
		body = b
	}
	if len(okStatus) == 0 {
		okStatus = []int{http.StatusOK}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("handy: rate limiter: %w", err)
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("handy: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+cred.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(method, label, 0, start)
		if ctx.Err() != nil {
			return nil, fmt.Errorf("handy: timeout o cancelación: %w", ctx.Err())
		}
		return nil, &TransportError{Method: method, Endpoint: label, Err: err}
	}
	defer resp.Body.Close()
	c.observe(method, label, resp.StatusCode, start)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("handy: leer respuesta: %w", err)
	}
	c.log.Debug().Str("method", method).Str("endpoint", label).Int("status", resp.StatusCode).
		Msg("llamada a Handy")

	for _, s := range okStatus {
		if resp.StatusCode == s {
			return raw, nil
		}
	}
	return nil, &APIError{Method: method, Endpoint: label, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
}

func (c *Client) observe(method, label string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveRequest(method, label, status, time.Since(start))
	}
}
