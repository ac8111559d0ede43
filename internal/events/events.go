// Package events publishes cart changes to other services.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Event types, used as the last subject token.
const (
	TypeItemAdded   = "item_added"
	TypeItemRemoved = "item_removed"
)

// CartEvent describes a committed cart mutation.
// Quantity is the line quantity after the mutation (0 when the line is gone).
type CartEvent struct {
	Type       string          `json:"type"`
	CartID     int64           `json:"cartId"`
	UserID     int64           `json:"userId"`
	ProductID  int64           `json:"productId"`
	Quantity   int32           `json:"quantity"`
	Total      decimal.Decimal `json:"total"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// Publisher delivers cart events.
type Publisher interface {
	Publish(ctx context.Context, event CartEvent) error
	Close() error
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, CartEvent) error { return nil }
func (NopPublisher) Close() error                            { return nil }
