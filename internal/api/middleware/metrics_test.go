package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/buildhub/property-api/internal/pkg/metrics"
)

func TestMetrics_CountsByRouteAndFinalStatus(t *testing.T) {
	e := echo.New()
	e.Use(Metrics())
	e.GET("/v1/projects/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "project not found")
	})

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/v1/projects/:id", "404")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/projects/12", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Fatalf("expected counter to increase by 1, got %v -> %v", before, got)
	}
}
