package infrastructure

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"shopcart/internal/pkg/logger"
	"shopcart/internal/pkg/mq"
	"shopcart/internal/service/cart/domain"
)

// CartEventProducer 把购物车事件写入 Kafka，按购物车 id 分区保证同一购物车的事件有序
type CartEventProducer struct {
	writer mq.MessageWriter
}

func NewCartEventProducer(writer mq.MessageWriter) *CartEventProducer {
	return &CartEventProducer{writer: writer}
}

func (p *CartEventProducer) Publish(ctx context.Context, event *domain.CartEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal cart event")
	}
	if err := mq.ProduceMessage(ctx, p.writer, []byte(event.CartID), eventBytes); err != nil {
		return err
	}
	logger.Ctx(ctx).Debug().Str("event_type", event.Type).Str("cart_id", event.CartID).Msg("cart event published")
	return nil
}

// NoopEventPublisher 在未配置 Kafka 时使用，只打日志
type NoopEventPublisher struct{}

func (NoopEventPublisher) Publish(ctx context.Context, event *domain.CartEvent) error {
	logger.Ctx(ctx).Debug().Str("event_type", event.Type).Str("cart_id", event.CartID).Msg("cart event dropped, no broker configured")
	return nil
}
