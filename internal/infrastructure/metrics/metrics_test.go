package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/handy-sync/internal/infrastructure/metrics"
)

func TestRecordSyncRun_CuentaCorridasYRegistros(t *testing.T) {
	m := metrics.New("handysync")
	m.RecordSyncRun("customers", "success", 2, 3, 1, time.Second)
	m.RecordSyncRun("customers", "success", 1, 0, 0, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SyncRunsTotal.WithLabelValues("customers", "success")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.SyncRecordsTotal.WithLabelValues("customers", "created")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.SyncRecordsTotal.WithLabelValues("customers", "updated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncRecordsTotal.WithLabelValues("customers", "failed")))
}

func TestObserveRequest_EtiquetaStatus(t *testing.T) {
	m := metrics.New("handysync")
	m.ObserveRequest("GET", "/customer", 200, 10*time.Millisecond)
	m.ObserveRequest("GET", "/customer", 0, 10*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RemoteRequestsTotal.WithLabelValues("GET", "/customer", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RemoteRequestsTotal.WithLabelValues("GET", "/customer", "0")))
}

func TestHandler_ExponeMetricas(t *testing.T) {
	m := metrics.New("handysync")
	m.ObserveHTTP("POST", "/api/handy/sync/customers", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `handysync_http_requests_total{method="POST",path="/api/handy/sync/customers",status="200"} 1`)
}
