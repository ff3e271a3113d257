package infrastructure

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopcart/internal/service/cart/domain"
)

type recordingWriter struct {
	msgs []kafka.Message
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestCartEventProducer_Publish(t *testing.T) {
	w := &recordingWriter{}
	producer := NewCartEventProducer(w)

	event := &domain.CartEvent{
		EventID:    "e1",
		Type:       domain.EventItemAdded,
		CartID:     "cart-1",
		ItemID:     "item-1",
		ProductID:  "p1",
		Quantity:   2,
		OccurredAt: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, producer.Publish(context.Background(), event))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "cart-1", string(w.msgs[0].Key))

	var got domain.CartEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, *event, got)
}

func TestNoopEventPublisher(t *testing.T) {
	assert.NoError(t, NoopEventPublisher{}.Publish(context.Background(), &domain.CartEvent{Type: domain.EventItemRemoved}))
}
