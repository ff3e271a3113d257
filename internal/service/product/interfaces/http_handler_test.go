package interfaces

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"shopcart/internal/pkg/config"
	"shopcart/internal/pkg/database"
	"shopcart/internal/pkg/httpx"
	"shopcart/internal/service/product/application"
	"shopcart/internal/service/product/infrastructure"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", DSN: "file::memory:", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, &infrastructure.ProductModel{}))
	t.Cleanup(func() { _ = database.Close(db) })

	svc := application.NewProductService(
		infrastructure.NewGormProductRepository(db),
		infrastructure.NewMemoryProductCache(time.Minute),
		infrastructure.NewLocalLock(),
		noop.NewTracerProvider().Tracer("test"),
	)
	_, err = svc.SeedCatalog(context.Background())
	require.NoError(t, err)

	mux := http.NewServeMux()
	NewProductHandler(svc).RegisterRoutes(mux)
	return mux
}

func TestProductHandler(t *testing.T) {
	mux := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var products []application.ProductResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&products))
	require.Len(t, products, 3)
	assert.Equal(t, "Dress", products[0].Name)
	assert.Equal(t, 80.75, products[0].Price)

	t.Run("find one", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/"+products[1].ID, nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var got application.ProductResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, products[1], got)
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/"+uuid.NewString(), nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)

		var body httpx.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "product not found", body.Message)
		assert.Equal(t, "Not Found", body.Error)
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/not-a-uuid", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
