package port

import (
	"context"

	promodomain "shopcart/internal/service/promotion/domain"
)

// PriceCalculator 是计价引擎的出站端口
type PriceCalculator interface {
	CalculateBestPrice(ctx context.Context, tier promodomain.UserTier, items []promodomain.LineItem) promodomain.PriceBreakdown
}
