package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

// displayPlaces 是所有金额字段对外展示时保留的小数位数。
const displayPlaces = 2

// PriceBreakdown 是定价引擎的输出：按原始购物车行展示的明细，以及舍入到两位小数的金额。
type PriceBreakdown struct {
	Items                 []LineItem
	Subtotal              decimal.Decimal
	PromotionApplied      string // 为空表示没有促销生效
	DiscountAmount        decimal.Decimal
	FinalTotal            decimal.Decimal
	RecommendationMessage string // 只有 VIP 比价后才会填写
}

// HasPromotion 报告是否有促销生效。
func (b PriceBreakdown) HasPromotion() bool {
	return b.PromotionApplied != ""
}

// toBreakdown 在输出时做唯一一次舍入（四舍五入到两位小数）。
// 明细是调用方数据的拷贝，调用方之后修改自己的切片不会影响结果。
func (q Quote) toBreakdown(items []LineItem) PriceBreakdown {
	return PriceBreakdown{
		Items:            slices.Clone(items),
		Subtotal:         q.Subtotal.Round(displayPlaces),
		PromotionApplied: q.Promotion,
		DiscountAmount:   q.Discount.Round(displayPlaces),
		FinalTotal:       q.Final.Round(displayPlaces),
	}
}
