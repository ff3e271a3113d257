package application

import (
	"github.com/shopspring/decimal"

	"shopcart/internal/service/promotion/domain"
)

// CartItemResponse 是价格明细中的一行
type CartItemResponse struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// CartCalculationResponse 是购物车结算接口的响应体。
// promotionApplied 没有促销时序列化为 null，recommendationMessage 为空时省略。
type CartCalculationResponse struct {
	Items                 []CartItemResponse `json:"items"`
	Subtotal              float64            `json:"subtotal"`
	PromotionApplied      *string            `json:"promotionApplied"`
	DiscountAmount        float64            `json:"discountAmount"`
	FinalTotal            float64            `json:"finalTotal"`
	RecommendationMessage *string            `json:"recommendationMessage,omitempty"`
}

// ToCartCalculationResponse 把领域层的 PriceBreakdown 转换为响应 DTO
func ToCartCalculationResponse(b domain.PriceBreakdown) *CartCalculationResponse {
	items := make([]CartItemResponse, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, CartItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.UnitPrice.Round(2).InexactFloat64(),
			Quantity:  it.Quantity,
		})
	}

	resp := &CartCalculationResponse{
		Items:          items,
		Subtotal:       b.Subtotal.InexactFloat64(),
		DiscountAmount: b.DiscountAmount.InexactFloat64(),
		FinalTotal:     b.FinalTotal.InexactFloat64(),
	}
	if b.HasPromotion() {
		promotion := b.PromotionApplied
		resp.PromotionApplied = &promotion
	}
	if b.RecommendationMessage != "" {
		msg := b.RecommendationMessage
		resp.RecommendationMessage = &msg
	}
	return resp
}

// QuoteItemRequest 是试算请求里的一行，价格由调用方给出
type QuoteItemRequest struct {
	ProductID string  `json:"productId" validate:"required"`
	Name      string  `json:"name" validate:"max=255"`
	Price     float64 `json:"price" validate:"money"`
	Quantity  int     `json:"quantity" validate:"min=1,max=1000"`
}

// QuoteRequest 用于在不创建购物车的情况下预览比价结果
type QuoteRequest struct {
	Type  string             `json:"type" validate:"required,oneof=COMMON VIP"`
	Items []QuoteItemRequest `json:"items" validate:"required,min=1,max=100,dive"`
}

// ToLineItems 把已校验的试算请求转换为引擎输入
func (r *QuoteRequest) ToLineItems() (domain.UserTier, []domain.LineItem) {
	tier := domain.UserTier(r.Type)
	items := make([]domain.LineItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, domain.LineItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: decimal.NewFromFloat(it.Price),
			Quantity:  it.Quantity,
		})
	}
	return tier, items
}
