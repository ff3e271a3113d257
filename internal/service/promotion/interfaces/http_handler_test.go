package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"shopcart/internal/pkg/httpx"
	"shopcart/internal/service/promotion/application"
)

func newTestMux() *http.ServeMux {
	mux := http.NewServeMux()
	svc := application.NewPromotionService(noop.NewTracerProvider().Tracer("test"), nil)
	NewPromotionHandler(svc).RegisterRoutes(mux)
	return mux
}

func postQuote(mux *http.ServeMux, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/promotions/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	mux.ServeHTTP(rec, req)
	return rec
}

func quoteWithLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = `{"productId":"p","price":1,"quantity":1000}`
	}
	return `{"type":"VIP","items":[` + strings.Join(lines, ",") + `]}`
}

func TestPromotionHandler_Quote(t *testing.T) {
	mux := newTestMux()

	t.Run("vip discount beats three for two on two items", func(t *testing.T) {
		rec := postQuote(mux, `{"type":"VIP","items":[{"productId":"jeans","name":"Jeans","price":65.50,"quantity":2}]}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp application.CartCalculationResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, 131.0, resp.Subtotal)
		assert.Equal(t, 111.35, resp.FinalTotal)
		require.NotNil(t, resp.PromotionApplied)
		assert.Equal(t, "VIP Discount (15%)", *resp.PromotionApplied)
		require.NotNil(t, resp.RecommendationMessage)
		assert.Equal(t, "Promotion 'VIP Discount (15%)' was applied because it is the better deal. (Savings of $19.65)", *resp.RecommendationMessage)
	})

	t.Run("common user gets cheapest unit free", func(t *testing.T) {
		rec := postQuote(mux, `{"type":"COMMON","items":[{"productId":"tee","name":"T-shirt","price":35.99,"quantity":3}]}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp application.CartCalculationResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, 107.97, resp.Subtotal)
		assert.Equal(t, 35.99, resp.DiscountAmount)
		assert.Equal(t, 71.98, resp.FinalTotal)
	})

	t.Run("prices are used exactly as sent", func(t *testing.T) {
		rec := postQuote(mux, `{"type":"COMMON","items":[{"productId":"a","price":10.05,"quantity":1},{"productId":"b","price":0.01,"quantity":1}]}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp application.CartCalculationResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, 10.06, resp.Subtotal)
		assert.Nil(t, resp.PromotionApplied)
	})
}

func TestPromotionHandler_QuoteValidation(t *testing.T) {
	mux := newTestMux()

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed body", body: `{"type":`},
		{name: "unknown tier", body: `{"type":"GOLD","items":[]}`},
		{name: "missing tier", body: `{"items":[]}`},
		{name: "zero quantity", body: `{"type":"VIP","items":[{"productId":"a","price":1,"quantity":0}]}`},
		{name: "negative price", body: `{"type":"VIP","items":[{"productId":"a","price":-1,"quantity":1}]}`},
		{name: "sub-cent price", body: `{"type":"VIP","items":[{"productId":"a","price":10.005,"quantity":1}]}`},
		{name: "fraction of a cent", body: `{"type":"VIP","items":[{"productId":"a","price":0.004,"quantity":1}]}`},
		{name: "lower case tier", body: `{"type":"vip","items":[{"productId":"a","price":1,"quantity":1}]}`},
		{name: "empty items", body: `{"type":"COMMON","items":[]}`},
		{name: "missing items", body: `{"type":"COMMON"}`},
		{name: "too many lines", body: quoteWithLines(101)},
		{name: "body too large", body: `{"type":"VIP","items":[{"productId":"a","name":"` + strings.Repeat("x", 2<<20) + `","price":1,"quantity":1}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postQuote(mux, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp httpx.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}

	t.Run("line cap is inclusive", func(t *testing.T) {
		rec := postQuote(mux, quoteWithLines(100))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
