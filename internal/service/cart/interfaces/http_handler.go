package interfaces

import (
	"net/http"

	"github.com/pkg/errors"

	"shopcart/internal/pkg/httpx"
	"shopcart/internal/pkg/logger"
	"shopcart/internal/service/cart/application"
	"shopcart/internal/service/cart/domain"
	productdomain "shopcart/internal/service/product/domain"
	promoapp "shopcart/internal/service/promotion/application"
	userdomain "shopcart/internal/service/user/domain"
)

// CartHandler 封装了购物车和结算接口
type CartHandler struct {
	service *application.CartService
}

func NewCartHandler(service *application.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有路由
func (h *CartHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /cart/items", h.handleAddItem)
	mux.HandleFunc("DELETE /cart/{cartId}/items/{itemId}", h.handleRemoveItem)
	mux.HandleFunc("GET /cart/{cartId}/{userId}/total", h.handleGetCartTotal)
	mux.HandleFunc("GET /cart/{cartId}", h.handleGetCart)
	mux.HandleFunc("GET /cart", h.handleGetAllCarts)
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	cartID := r.URL.Query().Get("cartId")
	if cartID != "" {
		if err := httpx.ValidateUUID("cartId", cartID); err != nil {
			h.writeError(w, r, err)
			return
		}
	}

	var req application.AddItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	cart, err := h.service.AddItem(r.Context(), &req, cartID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, application.ToCartResponse(cart))
}

func (h *CartHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID, itemID := r.PathValue("cartId"), r.PathValue("itemId")
	if err := validateIDs("cartId", cartID, "itemId", itemID); err != nil {
		h.writeError(w, r, err)
		return
	}

	msg, err := h.service.RemoveItem(r.Context(), cartID, itemID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, application.MessageResponse{Message: msg})
}

func (h *CartHandler) handleGetCartTotal(w http.ResponseWriter, r *http.Request) {
	cartID, userID := r.PathValue("cartId"), r.PathValue("userId")
	if err := validateIDs("cartId", cartID, "userId", userID); err != nil {
		h.writeError(w, r, err)
		return
	}

	breakdown, err := h.service.GetCartTotal(r.Context(), cartID, userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, promoapp.ToCartCalculationResponse(breakdown))
}

func (h *CartHandler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	cartID := r.PathValue("cartId")
	if err := httpx.ValidateUUID("cartId", cartID); err != nil {
		h.writeError(w, r, err)
		return
	}

	cart, err := h.service.GetCart(r.Context(), cartID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, application.ToCartResponse(cart))
}

func (h *CartHandler) handleGetAllCarts(w http.ResponseWriter, r *http.Request) {
	carts, err := h.service.GetAllCarts(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, application.ToCartResponses(carts))
}

func validateIDs(kv ...string) error {
	for i := 0; i+1 < len(kv); i += 2 {
		if err := httpx.ValidateUUID(kv[i], kv[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func (h *CartHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var statusCode int
	switch {
	case errors.Is(err, domain.ErrCartNotFound),
		errors.Is(err, domain.ErrCartItemNotFound),
		errors.Is(err, domain.ErrNoCarts),
		errors.Is(err, productdomain.ErrProductNotFound),
		errors.Is(err, userdomain.ErrUserNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, httpx.ErrInvalidInput),
		errors.Is(err, domain.ErrQuantityLimit):
		statusCode = http.StatusBadRequest
	default:
		statusCode = http.StatusInternalServerError
		logger.Ctx(r.Context()).Error().Err(err).Msg("cart request failed")
	}
	httpx.WriteError(w, statusCode, err)
}
