package interfaces

import (
	"net/http"

	"github.com/pkg/errors"

	"shopcart/internal/pkg/httpx"
	"shopcart/internal/pkg/logger"
	"shopcart/internal/service/product/application"
	"shopcart/internal/service/product/domain"
)

// ProductHandler 封装了商品查询接口
type ProductHandler struct {
	service *application.ProductService
}

func NewProductHandler(service *application.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有路由
func (h *ProductHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /products", h.handleFindAll)
	mux.HandleFunc("GET /products/{id}", h.handleFindOne)
}

func (h *ProductHandler) handleFindAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.FindAll(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, application.ToProductResponses(products))
}

func (h *ProductHandler) handleFindOne(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := httpx.ValidateUUID("id", id); err != nil {
		h.writeError(w, r, err)
		return
	}

	product, err := h.service.FindOne(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, application.ToProductResponse(product))
}

func (h *ProductHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var statusCode int
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, httpx.ErrInvalidInput):
		statusCode = http.StatusBadRequest
	default:
		statusCode = http.StatusInternalServerError
		logger.Ctx(r.Context()).Error().Err(err).Msg("product request failed")
	}
	httpx.WriteError(w, statusCode, err)
}
