package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	axishandler "axisd/internal/axis/handler"
	"axisd/internal/platform/metrics"
)

var (
	metricsOnce   sync.Once
	sharedMetrics *metrics.Metrics
)

// testMetrics returns a process-wide Metrics instance; promauto registers
// collectors globally, so constructing it per test would panic.
func testMetrics() *metrics.Metrics {
	metricsOnce.Do(func() { sharedMetrics = metrics.New() })
	return sharedMetrics
}

func newTestServer(t *testing.T, checks map[string]CheckFunc) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := testMetrics()

	router := NewRouter(Dependencies{
		Logger:   logger,
		Metrics:  m,
		Handlers: []Registrar{axishandler.New(logger, m, nil)},
		Health:   NewHealthHandler(checks),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestHealthDetailed(t *testing.T) {
	t.Run("all components healthy", func(t *testing.T) {
		srv := newTestServer(t, map[string]CheckFunc{
			"catalog": func(context.Context) error { return nil },
		})

		resp, err := http.Get(srv.URL + "/health/detailed")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Status     string            `json:"status"`
			Components map[string]string `json:"components"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "healthy", body.Status)
		assert.Equal(t, "healthy", body.Components["catalog"])
	})

	t.Run("failing component degrades status", func(t *testing.T) {
		srv := newTestServer(t, map[string]CheckFunc{
			"catalog": func(context.Context) error { return nil },
			"redis":   func(context.Context) error { return errors.New("connection refused") },
		})

		resp, err := http.Get(srv.URL + "/health/detailed")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body struct {
			Status     string            `json:"status"`
			Components map[string]string `json:"components"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "degraded", body.Status)
		assert.Contains(t, body.Components["redis"], "unhealthy")
	})
}

func TestSystemInfo(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/system/info")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		SystemName   string  `json:"system_name"`
		AxisCount    int     `json:"axis_count"`
		AxisMetadata struct {
			RequiredAxes []string `json:"required_axes"`
			OptionalAxes []string `json:"optional_axes"`
		} `json:"axis_metadata"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, SystemName, body.SystemName)
	assert.Equal(t, 16, body.AxisCount)
	assert.Equal(t, []string{"pillar", "sector"}, body.AxisMetadata.RequiredAxes)
	assert.Len(t, body.AxisMetadata.OptionalAxes, 14)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	// prime the latency histogram so the family exists at scrape time
	warm, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	warm.Body.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(payload), "axisd_http_request_duration_seconds")
}

func TestContentTypeEnforced(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Post(srv.URL+"/coordinate/validate", "text/plain", strings.NewReader(`{"coordinate":{}}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestRequestIDPropagation(t *testing.T) {
	srv := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "caller-supplied-id")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "caller-supplied-id", resp.Header.Get("X-Request-ID"))
}
