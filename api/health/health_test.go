package health

import (
	"buysell_server/services"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func newRouter(db, cache services.Pinger) chi.Router {
	logger := gecho.NewLogger(gecho.NewConfig(gecho.WithLogLevel(gecho.ParseLogLevel("error"))))
	r := chi.NewRouter()
	NewHealthRoutesManager(services.NewHealthService(logger, db, cache)).RegisterRoutes(r)
	return r
}

func serve(r http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthRoutes(t *testing.T) {
	up := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	healthy := newRouter(up, up)
	assert.Equal(t, http.StatusOK, serve(healthy, "/health/server").Code)
	assert.Equal(t, http.StatusOK, serve(healthy, "/health/database").Code)
	assert.Equal(t, http.StatusOK, serve(healthy, "/health/cache").Code)

	broken := newRouter(down, down)
	assert.Equal(t, http.StatusServiceUnavailable, serve(broken, "/health/database").Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(broken, "/health/cache").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newRouter(pingerFunc(func(context.Context) error { return nil }), nil)
	services.ProductsSaved.Inc()

	rec := serve(r, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "products_saved_total")
}
