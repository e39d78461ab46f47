package handy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/jhoicas/handy-sync/internal/application/ports"
	"github.com/jhoicas/handy-sync/internal/domain"
)

// pageEnvelope bloque de paginación común a todos los listados de Handy.
type pageEnvelope struct {
	Pagination *struct {
		NextPage *string `json:"nextPage"`
	} `json:"pagination"`
}

// forEachPage recorre un listado paginado siguiendo pagination.nextPage y entrega a fn
// el arreglo listKey de cada página. Una página sin listKey cuenta como vacía.
// El recorrido se corta con domain.ErrPaginationLoop si una URL se repite o si se
// supera el tope de páginas. Cada página se reintenta ante 5xx o fallo de red; el
// breaker vive solo durante este listado.
func forEachPage[T any](
	ctx context.Context,
	c *Client,
	cred ports.Credentials,
	startURL, label, listKey string,
	fn func([]T) error,
) error {
	cb := c.newPageBreaker(label)
	visited := make(map[string]struct{})
	next := startURL
	for pages := 0; next != ""; pages++ {
		if pages >= c.maxPages {
			return fmt.Errorf("%s: más de %d páginas: %w", label, c.maxPages, domain.ErrPaginationLoop)
		}
		if _, seen := visited[next]; seen {
			return fmt.Errorf("%s: nextPage repetido %q: %w", label, next, domain.ErrPaginationLoop)
		}
		visited[next] = struct{}{}

		raw, err := c.getPage(ctx, cb, cred, next, label)
		if err != nil {
			return err
		}
		items, nextPage, err := decodePage[T](raw, listKey)
		if err != nil {
			return fmt.Errorf("%s: decodificar página: %w", label, err)
		}
		if err := fn(items); err != nil {
			return err
		}
		if next, err = c.resolveNext(next, nextPage); err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
	}
	return nil
}

// newPageBreaker abre el circuito tras pageRetries+1 fallos transitorios seguidos.
// Un 4xx cuenta como respuesta válida.
func (c *Client) newPageBreaker(label string) *gobreaker.CircuitBreaker {
	limit := uint32(c.pageRetries) + 1
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "handy " + label,
		MaxRequests: 1,
		Timeout:     time.Hour,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= limit
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !isTransient(err)
		},
	})
}

// getPage pide una página a través del breaker del listado y la reintenta mientras el
// circuito siga cerrado.
func (c *Client) getPage(
	ctx context.Context,
	cb *gobreaker.CircuitBreaker,
	cred ports.Credentials,
	rawURL, label string,
) ([]byte, error) {
	for attempt := 1; ; attempt++ {
		out, err := cb.Execute(func() (interface{}, error) {
			return c.do(ctx, cred, http.MethodGet, rawURL, label, nil, http.StatusOK)
		})
		if err == nil {
			raw, _ := out.([]byte)
			return raw, nil
		}
		if !isTransient(err) {
			return nil, err
		}
		if cb.State() == gobreaker.StateOpen {
			if attempt > 1 {
				c.log.Warn().Str("endpoint", label).Int("intentos", attempt).Err(err).
					Msg("reintentos de página agotados")
			}
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, err
		case <-time.After(c.retryBackoff * time.Duration(attempt)):
		}
	}
}

// fetchAll concatena todas las páginas de un listado en orden.
func fetchAll[T any](ctx context.Context, c *Client, cred ports.Credentials, startURL, label, listKey string) ([]T, error) {
	var all []T
	err := forEachPage(ctx, c, cred, startURL, label, listKey, func(items []T) error {
		all = append(all, items...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

func decodePage[T any](raw []byte, listKey string) ([]T, string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, "", err
	}
	var items []T
	if list, ok := fields[listKey]; ok && string(list) != "null" {
		if err := json.Unmarshal(list, &items); err != nil {
			return nil, "", err
		}
	}
	var env pageEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, "", err
	}
	if env.Pagination == nil || env.Pagination.NextPage == nil {
		return items, "", nil
	}
	return items, strings.TrimSpace(*env.Pagination.NextPage), nil
}

// resolveNext resuelve nextPage contra la URL actual y exige que apunte al host de Handy,
// para que el token Bearer no salga del dominio configurado.
func (c *Client) resolveNext(current, nextPage string) (string, error) {
	if nextPage == "" {
		return "", nil
	}
	cur, err := url.Parse(current)
	if err != nil {
		return "", fmt.Errorf("URL actual inválida: %w", err)
	}
	ref, err := url.Parse(nextPage)
	if err != nil {
		return "", fmt.Errorf("nextPage inválido %q: %w", nextPage, err)
	}
	next := cur.ResolveReference(ref)
	if !strings.EqualFold(next.Host, c.base.Host) || next.Scheme != c.base.Scheme {
		return "", fmt.Errorf("nextPage fuera del host de Handy: %q", nextPage)
	}
	return next.String(), nil
}
