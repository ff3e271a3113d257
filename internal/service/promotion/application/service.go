package application

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"shopcart/internal/pkg/metrics"
	"shopcart/internal/service/promotion/domain"
)

// PromotionService 是定价引擎的应用层外壳：负责链路追踪和指标，计算本身委托给领域层的纯函数。
type PromotionService struct {
	tracer  trace.Tracer
	metrics *metrics.Metrics
}

// NewPromotionService 创建一个新的促销服务实例。metrics 可以为 nil。
func NewPromotionService(tracer trace.Tracer, m *metrics.Metrics) *PromotionService {
	return &PromotionService{
		tracer:  tracer,
		metrics: m,
	}
}

// CalculateBestPrice 为给定的购物车行和用户等级计算最优价格。
// 它没有失败路径：调用方负责在进入引擎前完成输入校验。
func (s *PromotionService) CalculateBestPrice(ctx context.Context, tier domain.UserTier, items []domain.LineItem) domain.PriceBreakdown {
	_, span := s.tracer.Start(ctx, "service.CalculateBestPrice")
	defer span.End()

	span.SetAttributes(
		attribute.String("user.tier", tier.String()),
		attribute.Int("cart.lines", len(items)),
		attribute.Int("cart.units", domain.UnitCount(items)),
	)

	result := domain.ComputeBestPrice(items, tier)

	span.SetAttributes(
		attribute.String("pricing.promotion", promotionLabel(result)),
		attribute.String("pricing.final_total", result.FinalTotal.StringFixed(2)),
	)
	span.AddEvent("Best price calculated")

	if s.metrics != nil {
		s.metrics.PromotionSelected.WithLabelValues(promotionLabel(result)).Inc()
		s.metrics.DiscountAmount.Observe(domain.Savings(result).InexactFloat64())
	}
	return result
}

func promotionLabel(b domain.PriceBreakdown) string {
	if !b.HasPromotion() {
		return "none"
	}
	return b.PromotionApplied
}
