package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"shopcart/internal/pkg/config"
)

func TestAppCtx_Handler_OpsEndpointsAndMetrics(t *testing.T) {
	appCtx := NewAppCtx(config.Default(), noop.NewTracerProvider().Tracer("test"))
	appCtx.Mux.HandleFunc("GET /things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := appCtx.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/42", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `shop_http_requests_total{code="418",method="GET",route="GET /things/{id}"} 1`), body)
	assert.Contains(t, body, "go_goroutines")
}

func TestShutdownHooks_RunInReverseOrder(t *testing.T) {
	hooks := &shutdownHooks{}
	var order []string
	hooks.add("tracer", func(context.Context) error { order = append(order, "tracer"); return nil })
	hooks.add("db", func(context.Context) error { order = append(order, "db"); return errors.New("already closed") })
	hooks.add("server", func(context.Context) error { order = append(order, "server"); return nil })

	hooks.run(context.Background())
	hooks.run(context.Background())

	assert.Equal(t, []string{"server", "db", "tracer"}, order)
}

func TestGetCurrentConfig_DefaultsBeforeInit(t *testing.T) {
	assert.Equal(t, config.Default().App.Port, GetCurrentConfig().App.Port)
}
