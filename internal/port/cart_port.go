package port

import (
	"context"

	"github.com/nikolayk812/rocketcart/internal/domain"
)

// CartStorage is a durable key-value store holding the serialized cart.
type CartStorage interface {
	Read(ctx context.Context, key string) (value string, found bool, err error)
	Write(ctx context.Context, key, value string) error
}

type CatalogService interface {
	GetProduct(ctx context.Context, productID int64) (domain.Product, error)
}

type StockService interface {
	GetStock(ctx context.Context, productID int64) (domain.Stock, error)
}

// Notifier surfaces user-visible messages. Implementations must not block.
type Notifier interface {
	Error(ctx context.Context, message string)
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.CartEvent) error
}
