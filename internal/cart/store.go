package cart

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nikolayk812/rocketcart/internal/domain"
	"github.com/nikolayk812/rocketcart/internal/metrics"
	"github.com/nikolayk812/rocketcart/internal/port"
)

const (
	opAdd    = "add"
	opRemove = "remove"
	opUpdate = "update"
)

// Messages are the texts shown to the user when an operation fails.
type Messages struct {
	AddFailed    string
	RemoveFailed string
	UpdateFailed string
	OutOfStock   string
}

func DefaultMessages() Messages {
	return Messages{
		AddFailed:    "failed to add product",
		RemoveFailed: "failed to remove product",
		UpdateFailed: "failed to update quantity",
		OutOfStock:   "requested quantity out of stock",
	}
}

// Store is the surface consumed by the UI. Its operations never fail from the caller's
// point of view: errors of the underlying Service become notifications and the cart is
// left as it was.
type Store struct {
	service  *Service
	notifier port.Notifier
	messages Messages
	metrics  *metrics.Collector
	log      *slog.Logger
}

type StoreOption func(*Store)

// WithMessages overrides the notification texts; empty fields keep their defaults.
func WithMessages(m Messages) StoreOption {
	return func(s *Store) {
		if m.AddFailed != "" {
			s.messages.AddFailed = m.AddFailed
		}
		if m.RemoveFailed != "" {
			s.messages.RemoveFailed = m.RemoveFailed
		}
		if m.UpdateFailed != "" {
			s.messages.UpdateFailed = m.UpdateFailed
		}
		if m.OutOfStock != "" {
			s.messages.OutOfStock = m.OutOfStock
		}
	}
}

func WithMetrics(c *metrics.Collector) StoreOption {
	return func(s *Store) {
		s.metrics = c
	}
}

func WithStoreLogger(log *slog.Logger) StoreOption {
	return func(s *Store) {
		s.log = log
	}
}

func NewStore(service *Service, notifier port.Notifier, opts ...StoreOption) *Store {
	s := &Store{
		service:  service,
		notifier: notifier,
		messages: DefaultMessages(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.metrics != nil {
		s.metrics.SetItems(service.Cart().Size())
	}

	return s
}

func (s *Store) Cart() domain.Cart {
	return s.service.Cart()
}

func (s *Store) AddProduct(ctx context.Context, productID int64) {
	err := s.service.AddProduct(ctx, productID)
	s.report(ctx, opAdd, err, s.messages.AddFailed)
}

func (s *Store) RemoveProduct(ctx context.Context, productID int64) {
	err := s.service.RemoveProduct(ctx, productID)
	s.report(ctx, opRemove, err, s.messages.RemoveFailed)
}

func (s *Store) UpdateProductAmount(ctx context.Context, req UpdateProductAmount) {
	err := s.service.UpdateProductAmount(ctx, req)
	s.report(ctx, opUpdate, err, s.messages.UpdateFailed)
}

func (s *Store) report(ctx context.Context, operation string, err error, failure string) {
	if s.metrics != nil {
		s.metrics.RecordOperation(operation, outcome(err))
		s.metrics.SetItems(s.service.Cart().Size())
	}

	if err == nil {
		return
	}

	s.log.InfoContext(ctx, "cart operation failed",
		slog.String("operation", operation),
		slog.Any("err", err))

	if errors.Is(err, ErrOutOfStock) {
		s.notifier.Error(ctx, s.messages.OutOfStock)
		return
	}
	s.notifier.Error(ctx, failure)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrOutOfStock):
		return metrics.OutcomeOutOfStock
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeFailed
	}
}
