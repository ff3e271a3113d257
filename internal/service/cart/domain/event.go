// internal/service/cart/domain/event.go
package domain

import "time"

const (
	EventItemAdded   = "cart.item_added"
	EventItemRemoved = "cart.item_removed"
)

// CartEvent 在购物车内容变化后发布
type CartEvent struct {
	EventID    string    `json:"eventId"`
	Type       string    `json:"type"`
	CartID     string    `json:"cartId"`
	ItemID     string    `json:"itemId"`
	ProductID  string    `json:"productId,omitempty"`
	Quantity   int       `json:"quantity,omitempty"`
	TraceID    string    `json:"traceId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
