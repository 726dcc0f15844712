package domain

import (
	"time"

	"github.com/google/uuid"
)

type CartEventType string

const (
	ProductAdded         CartEventType = "cart.product.added"
	ProductRemoved       CartEventType = "cart.product.removed"
	ProductAmountUpdated CartEventType = "cart.product.amount_updated"
)

// CartEvent describes a committed cart mutation.
type CartEvent struct {
	ID         uuid.UUID     `json:"id"`
	Type       CartEventType `json:"type"`
	CartKey    string        `json:"cart_key"`
	ProductID  int64         `json:"product_id"`
	Amount     int           `json:"amount"`
	OccurredAt time.Time     `json:"occurred_at"`
}

func NewCartEvent(eventType CartEventType, cartKey string, productID int64, amount int) CartEvent {
	return CartEvent{
		ID:         uuid.New(),
		Type:       eventType,
		CartKey:    cartKey,
		ProductID:  productID,
		Amount:     amount,
		OccurredAt: time.Now().UTC(),
	}
}
