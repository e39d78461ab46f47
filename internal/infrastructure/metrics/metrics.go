package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa las métricas del servicio de sincronización.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP entrante
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Llamadas a Handy
	RemoteRequestsTotal   *prometheus.CounterVec
	RemoteRequestDuration *prometheus.HistogramVec

	// Corridas de sincronización
	SyncRunsTotal    *prometheus.CounterVec
	SyncRecordsTotal *prometheus.CounterVec
	SyncDuration     *prometheus.HistogramVec
}

// New crea las métricas sobre un registry propio (no el global).
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: registry}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de peticiones HTTP atendidas",
		},
		[]string{"method", "path", "status"},
	)
	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP en segundos",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path"},
	)

	m.RemoteRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handy_requests_total",
			Help:      "Total de llamadas a la API de Handy",
		},
		[]string{"method", "endpoint", "status"},
	)
	m.RemoteRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "handy_request_duration_seconds",
			Help:      "Duración de las llamadas a Handy en segundos",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	m.SyncRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_runs_total",
			Help:      "Total de corridas de sincronización por operación y estado",
		},
		[]string{"operation", "status"},
	)
	m.SyncRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_records_total",
			Help:      "Registros sincronizados por operación y resultado (created, updated, failed)",
		},
		[]string{"operation", "outcome"},
	)
	m.SyncDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sync_duration_seconds",
			Help:      "Duración de las corridas de sincronización en segundos",
			Buckets:   []float64{.1, .5, 1, 5, 15, 30, 60, 120, 300, 600},
		},
		[]string{"operation"},
	)

	registry.MustRegister(
		m.HTTPRequestsTotal, m.HTTPRequestDuration,
		m.RemoteRequestsTotal, m.RemoteRequestDuration,
		m.SyncRunsTotal, m.SyncRecordsTotal, m.SyncDuration,
	)
	return m
}

// ObserveRequest registra una llamada a Handy. status 0 = fallo de transporte.
func (m *Metrics) ObserveRequest(method, endpoint string, status int, elapsed time.Duration) {
	m.RemoteRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	m.RemoteRequestDuration.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
}

// ObserveHTTP registra una petición HTTP entrante.
func (m *Metrics) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// RecordSyncRun registra el resultado de una corrida.
func (m *Metrics) RecordSyncRun(operation, status string, created, updated, failed int, elapsed time.Duration) {
	m.SyncRunsTotal.WithLabelValues(operation, status).Inc()
	m.SyncRecordsTotal.WithLabelValues(operation, "created").Add(float64(created))
	m.SyncRecordsTotal.WithLabelValues(operation, "updated").Add(float64(updated))
	m.SyncRecordsTotal.WithLabelValues(operation, "failed").Add(float64(failed))
	m.SyncDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry devuelve el registry para tests o collectors adicionales.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
