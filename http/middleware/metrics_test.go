package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint/http/middleware"
)

func TestMetrics(t *testing.T) {
	// Arrange
	reg := prometheus.NewRegistry()
	m, err := middleware.NewMetrics(reg)
	require.Nil(t, err)

	r := mux.NewRouter()
	r.Handle("/user/{id:[0-9]+}", m.Adapter()(NoopHandler()))
	r.NotFoundHandler = m.Adapter()(http.NotFoundHandler())

	// Act
	for _, path := range []string{"/user/1", "/user/2", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	// Assert
	expected := `
# HELP waypoint_http_requests_total Total number of HTTP requests by route, method and status code.
# TYPE waypoint_http_requests_total counter
waypoint_http_requests_total{code="200",method="GET",route="/user/{id:[0-9]+}"} 2
waypoint_http_requests_total{code="404",method="GET",route="unmatched"} 1
`
	require.Nil(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "waypoint_http_requests_total"))
}

func TestMetricsDuplicateRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := middleware.NewMetrics(reg)
	require.Nil(t, err)

	_, err = middleware.NewMetrics(reg)
	require.NotNil(t, err)
}

func TestMetricsNil(t *testing.T) {
	var m *middleware.Metrics
	require.NotNil(t, m.Adapter())
}
