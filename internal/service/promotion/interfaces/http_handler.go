package interfaces

import (
	"net/http"

	"github.com/pkg/errors"

	"shopcart/internal/pkg/httpx"
	"shopcart/internal/pkg/logger"
	"shopcart/internal/service/promotion/application"
)

// PromotionHandler 封装了 promotion 服务的 HTTP 处理器
type PromotionHandler struct {
	service *application.PromotionService
}

// NewPromotionHandler 创建一个新的 HTTP 处理器实例
func NewPromotionHandler(service *application.PromotionService) *PromotionHandler {
	return &PromotionHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有路由
func (h *PromotionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /promotions/quote", h.handleQuote)
}

// handleQuote 对调用方给出的商品行做一次比价，不读写任何购物车
func (h *PromotionHandler) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req application.QuoteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	tier, items := req.ToLineItems()
	result := h.service.CalculateBestPrice(r.Context(), tier, items)
	httpx.WriteJSON(w, http.StatusOK, application.ToCartCalculationResponse(result))
}

func (h *PromotionHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var statusCode int
	switch {
	case errors.Is(err, httpx.ErrInvalidInput):
		statusCode = http.StatusBadRequest
	default:
		statusCode = http.StatusInternalServerError
		logger.Ctx(r.Context()).Error().Err(err).Msg("promotion request failed")
	}
	httpx.WriteError(w, statusCode, err)
}
