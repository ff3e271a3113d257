package port

import (
	"context"

	"shopcart/internal/service/cart/domain"
)

// EventPublisher 发布购物车领域事件
type EventPublisher interface {
	Publish(ctx context.Context, event *domain.CartEvent) error
}
