package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ComputeBestPrice 为给定的购物车和用户等级选出最优价格。
//
// 普通用户只能参与“买三付二”，直接返回其结果。
// VIP 用户同时计算两种促销，只有 VIP 折扣后的总价严格更低时才选择 VIP 折扣，
// 两者相等时选择“买三付二”。胜出的结果会附带一条说明节省金额的推荐语。
//
// 该函数是纯函数：没有 I/O，不修改输入，可以被任意并发调用。
func ComputeBestPrice(items []LineItem, tier UserTier) PriceBreakdown {
	subtotal := Subtotal(items)
	threeForTwo := ThreeForTwo(items, subtotal).toBreakdown(items)

	switch tier {
	case TierVIP:
		vip := VipDiscount(subtotal).toBreakdown(items)
		if vip.FinalTotal.LessThan(threeForTwo.FinalTotal) {
			vip.RecommendationMessage = recommendation(vip, threeForTwo)
			return vip
		}
		threeForTwo.RecommendationMessage = recommendation(threeForTwo, vip)
		return threeForTwo
	default:
		return threeForTwo
	}
}

// recommendation 生成胜出促销的推荐语，节省金额为两者最终总价之差的绝对值。
func recommendation(winner, loser PriceBreakdown) string {
	savings := winner.FinalTotal.Sub(loser.FinalTotal).Abs().StringFixed(displayPlaces)
	if !winner.HasPromotion() {
		// 小计极小、VIP 折扣舍入后为 0 时才会走到这里
		return fmt.Sprintf("No promotion was applied. (Savings of $%s)", savings)
	}
	return fmt.Sprintf("Promotion '%s' was applied because it is the better deal. (Savings of $%s)",
		winner.PromotionApplied, savings)
}

// Savings 返回 PriceBreakdown 相对原价节省的金额，应用层用它记录折扣直方图。
func Savings(b PriceBreakdown) decimal.Decimal {
	return b.Subtotal.Sub(b.FinalTotal)
}
