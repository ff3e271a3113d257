package interfaces

import (
	"bytes"
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
	"shopcart/internal/service/cart/application"
	cartinfra "shopcart/internal/service/cart/infrastructure"
	"shopcart/internal/service/cart/infrastructure/adapter"
	productapp "shopcart/internal/service/product/application"
	productinfra "shopcart/internal/service/product/infrastructure"
	promoapp "shopcart/internal/service/promotion/application"
	userapp "shopcart/internal/service/user/application"
	userinfra "shopcart/internal/service/user/infrastructure"
)

type shop struct {
	mux      *http.ServeMux
	users    *userapp.UserService
	products map[string]string // name -> id
}

func newShop(t *testing.T) *shop {
	t.Helper()
	ctx := context.Background()
	tracer := noop.NewTracerProvider().Tracer("test")

	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", DSN: "file::memory:", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db,
		&productinfra.ProductModel{}, &userinfra.UserModel{}, &cartinfra.CartModel{}, &cartinfra.CartItemModel{}))
	t.Cleanup(func() { _ = database.Close(db) })

	productSvc := productapp.NewProductService(
		productinfra.NewGormProductRepository(db),
		productinfra.NewMemoryProductCache(time.Minute),
		productinfra.NewLocalLock(),
		tracer,
	)
	_, err = productSvc.SeedCatalog(ctx)
	require.NoError(t, err)

	userRepo := userinfra.NewGormUserRepository(db)
	cartSvc := application.NewCartService(
		cartinfra.NewGormCartRepository(db),
		adapter.NewProductAdapter(productSvc),
		adapter.NewCustomerAdapter(userRepo),
		promoapp.NewPromotionService(tracer, nil),
		cartinfra.NoopEventPublisher{},
		tracer,
	)
	userSvc := userapp.NewUserService(userRepo, cartSvc, tracer)

	all, err := productSvc.FindAll(ctx)
	require.NoError(t, err)
	ids := map[string]string{}
	for _, p := range all {
		ids[p.Name] = p.ID
	}

	mux := http.NewServeMux()
	NewCartHandler(cartSvc).RegisterRoutes(mux)
	return &shop{mux: mux, users: userSvc, products: ids}
}

func (s *shop) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))
	return rec
}

func (s *shop) addItem(t *testing.T, cartID, product string, qty int) application.CartResponse {
	t.Helper()
	path := "/cart/items"
	if cartID != "" {
		path += "?cartId=" + cartID
	}
	rec := s.do(t, http.MethodPost, path, application.AddItemRequest{ProductID: s.products[product], Quantity: qty})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var cart application.CartResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cart))
	return cart
}

func (s *shop) total(t *testing.T, cartID, userID string) map[string]any {
	t.Helper()
	rec := s.do(t, http.MethodGet, "/cart/"+cartID+"/"+userID+"/total", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestCartHandler_CheckoutScenarios(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()

	common, err := s.users.Create(ctx, &userapp.CreateUserRequest{Name: "Caio", Type: "COMMON"})
	require.NoError(t, err)
	vip, err := s.users.Create(ctx, &userapp.CreateUserRequest{Name: "Vera", Type: "VIP"})
	require.NoError(t, err)

	t.Run("common user, three t-shirts, one is free", func(t *testing.T) {
		cart := s.addItem(t, "", "T-shirt", 3)
		body := s.total(t, cart.ID, common.ID)

		assert.Equal(t, "Get 3 for the Price of 2", body["promotionApplied"])
		assert.Equal(t, 107.97, body["subtotal"])
		assert.Equal(t, 35.99, body["discountAmount"])
		assert.Equal(t, 71.98, body["finalTotal"])
		assert.NotContains(t, body, "recommendationMessage")
	})

	t.Run("vip user, two jeans, discount wins", func(t *testing.T) {
		cart := s.addItem(t, "", "Jeans", 2)
		body := s.total(t, cart.ID, vip.ID)

		assert.Equal(t, "VIP Discount (15%)", body["promotionApplied"])
		assert.Equal(t, 131.0, body["subtotal"])
		assert.Equal(t, 19.65, body["discountAmount"])
		assert.Equal(t, 111.35, body["finalTotal"])
		assert.Equal(t,
			"Promotion 'VIP Discount (15%)' was applied because it is the better deal. (Savings of $19.65)",
			body["recommendationMessage"])
	})

	t.Run("vip user, three dresses, three for two beats the discount", func(t *testing.T) {
		cart := s.addItem(t, "", "Dress", 3)
		body := s.total(t, cart.ID, vip.ID)

		assert.Equal(t, "Get 3 for the Price of 2", body["promotionApplied"])
		assert.Equal(t, 242.25, body["subtotal"])
		assert.Equal(t, 161.5, body["finalTotal"])
		assert.Contains(t, body["recommendationMessage"], "(Savings of $44.41)")
	})

	t.Run("vip user, mixed cart, lines merge and three for two wins", func(t *testing.T) {
		cart := s.addItem(t, "", "T-shirt", 3)
		cart = s.addItem(t, cart.ID, "T-shirt", 1)
		cart = s.addItem(t, cart.ID, "Jeans", 1)
		require.Len(t, cart.Items, 2)

		body := s.total(t, cart.ID, vip.ID)
		assert.Equal(t, "Get 3 for the Price of 2", body["promotionApplied"])
		assert.Equal(t, 209.46, body["subtotal"])
		assert.Equal(t, 173.47, body["finalTotal"])

		rec := s.do(t, http.MethodGet, "/cart/"+cart.ID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var loaded application.CartResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&loaded))
		require.NotNil(t, loaded.UserID)
		assert.Equal(t, vip.ID, *loaded.UserID)
	})

	t.Run("empty cart has nothing to pay", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/cart", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var carts []application.CartResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&carts))

		var emptyID string
		for _, c := range carts {
			if c.UserID != nil && *c.UserID == common.ID && len(c.Items) == 0 {
				emptyID = c.ID
			}
		}
		require.NotEmpty(t, emptyID, "user creation opens an empty cart")

		body := s.total(t, emptyID, common.ID)
		assert.Nil(t, body["promotionApplied"])
		assert.Equal(t, 0.0, body["finalTotal"])
		assert.Empty(t, body["items"])
	})
}

func TestCartHandler_RemoveItem(t *testing.T) {
	s := newShop(t)
	cart := s.addItem(t, "", "Jeans", 1)
	itemID := cart.Items[0].ID

	rec := s.do(t, http.MethodDelete, "/cart/"+cart.ID+"/items/"+itemID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var msg application.MessageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&msg))
	assert.Contains(t, msg.Message, itemID)

	rec = s.do(t, http.MethodDelete, "/cart/"+cart.ID+"/items/"+itemID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartHandler_Errors(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	user, err := s.users.Create(ctx, &userapp.CreateUserRequest{Type: "VIP"})
	require.NoError(t, err)
	cart := s.addItem(t, "", "Dress", 1)

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"unknown cart on add", http.MethodPost, "/cart/items?cartId=" + uuid.NewString(),
			application.AddItemRequest{ProductID: s.products["Dress"], Quantity: 1}, http.StatusNotFound},
		{"unknown product", http.MethodPost, "/cart/items",
			application.AddItemRequest{ProductID: uuid.NewString(), Quantity: 1}, http.StatusNotFound},
		{"zero quantity", http.MethodPost, "/cart/items",
			application.AddItemRequest{ProductID: s.products["Dress"], Quantity: 0}, http.StatusBadRequest},
		{"bad cart id on add", http.MethodPost, "/cart/items?cartId=abc",
			application.AddItemRequest{ProductID: s.products["Dress"], Quantity: 1}, http.StatusBadRequest},
		{"unknown cart total", http.MethodGet, "/cart/" + uuid.NewString() + "/" + user.ID + "/total", nil, http.StatusNotFound},
		{"unknown user total", http.MethodGet, "/cart/" + cart.ID + "/" + uuid.NewString() + "/total", nil, http.StatusNotFound},
		{"bad user id total", http.MethodGet, "/cart/" + cart.ID + "/me/total", nil, http.StatusBadRequest},
		{"unknown cart", http.MethodGet, "/cart/" + uuid.NewString(), nil, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.do(t, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())

			var body httpx.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tc.want, body.StatusCode)
		})
	}
}

func TestCartHandler_GetAllCarts_Empty(t *testing.T) {
	s := newShop(t)

	rec := s.do(t, http.MethodGet, "/cart", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
