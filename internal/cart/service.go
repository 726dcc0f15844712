// Package cart owns the shopping cart state: the only place where products are added,
// removed or have their amount changed.
package cart

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nikolayk812/rocketcart/internal/domain"
	"github.com/nikolayk812/rocketcart/internal/event"
	"github.com/nikolayk812/rocketcart/internal/port"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultStorageKey is the key the cart is persisted under.
const DefaultStorageKey = "@RocketShoes:cart"

const tracerName = "github.com/nikolayk812/rocketcart/internal/cart"

type UpdateProductAmount struct {
	ProductID int64
	Amount    int
}

// Service applies cart mutations and reports their failures as errors.
// Mutations are serialized; a mutation persists the new cart before it becomes visible
// through Cart.
type Service struct {
	storage port.CartStorage
	catalog port.CatalogService
	stock   port.StockService
	events  port.EventPublisher

	key    string
	log    *slog.Logger
	tracer trace.Tracer

	opMu sync.Mutex

	mu   sync.RWMutex
	cart domain.Cart
}

type Option func(*Service)

func WithStorageKey(key string) Option {
	return func(s *Service) {
		s.key = key
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

func WithEventPublisher(p port.EventPublisher) Option {
	return func(s *Service) {
		s.events = p
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// NewService restores the cart from storage. An unreadable stored cart is logged and
// replaced by an empty one; a failing storage is an error.
func NewService(
	ctx context.Context,
	storage port.CartStorage,
	catalog port.CatalogService,
	stock port.StockService,
	opts ...Option,
) (*Service, error) {
	s := &Service{
		storage: storage,
		catalog: catalog,
		stock:   stock,
		events:  event.Nop(),
		key:     DefaultStorageKey,
		log:     slog.Default(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.key == "" {
		return nil, fmt.Errorf("storage key is empty")
	}

	cart, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.load: %w", err)
	}
	s.cart = cart

	return s, nil
}

// Cart returns a copy of the current cart.
func (s *Service) Cart() domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cart.Clone()
}

// AddProduct puts one unit of productID in the cart, or increments its amount when it is
// already there. The increment goes through the same stock check as UpdateProductAmount.
func (s *Service) AddProduct(ctx context.Context, productID int64) (err error) {
	ctx, span := s.startSpan(ctx, "cart.AddProduct", productID)
	defer func() { endSpan(span, err) }()

	s.opMu.Lock()
	defer s.opMu.Unlock()

	current := s.Cart()
	if existing, found := current.Find(productID); found {
		return s.setAmount(ctx, current, productID, existing.Amount+1)
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("catalog.GetProduct: %w", err)
	}
	product.Amount = 1

	if err := s.commit(ctx, current.Append(product)); err != nil {
		return err
	}

	s.publish(ctx, domain.ProductAdded, productID, product.Amount)
	return nil
}

func (s *Service) RemoveProduct(ctx context.Context, productID int64) (err error) {
	ctx, span := s.startSpan(ctx, "cart.RemoveProduct", productID)
	defer func() { endSpan(span, err) }()

	s.opMu.Lock()
	defer s.opMu.Unlock()

	next, found := s.Cart().Without(productID)
	if !found {
		return fmt.Errorf("product[%d]: %w", productID, ErrNotFound)
	}

	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.publish(ctx, domain.ProductRemoved, productID, 0)
	return nil
}

func (s *Service) UpdateProductAmount(ctx context.Context, req UpdateProductAmount) (err error) {
	ctx, span := s.startSpan(ctx, "cart.UpdateProductAmount", req.ProductID)
	span.SetAttributes(attribute.Int("product.amount", req.Amount))
	defer func() { endSpan(span, err) }()

	s.opMu.Lock()
	defer s.opMu.Unlock()

	current := s.Cart()
	if current.Index(req.ProductID) == -1 {
		return fmt.Errorf("product[%d]: %w", req.ProductID, ErrNotFound)
	}

	return s.setAmount(ctx, current, req.ProductID, req.Amount)
}

// setAmount validates amount against the remote stock and commits it.
// The caller holds opMu and has checked that productID is in current.
func (s *Service) setAmount(ctx context.Context, current domain.Cart, productID int64, amount int) error {
	stock, err := s.stock.GetStock(ctx, productID)
	if err != nil {
		return fmt.Errorf("stock.GetStock: %w", err)
	}

	if amount <= 0 || amount > stock.Amount {
		return fmt.Errorf("product[%d] amount %d, stock %d: %w", productID, amount, stock.Amount, ErrOutOfStock)
	}

	next, found := current.WithAmount(productID, amount)
	if !found {
		return fmt.Errorf("product[%d]: %w", productID, ErrNotFound)
	}

	if err := s.commit(ctx, next); err != nil {
		return err
	}

	s.publish(ctx, domain.ProductAmountUpdated, productID, amount)
	return nil
}

// commit writes next to storage and only then makes it the current cart.
func (s *Service) commit(ctx context.Context, next domain.Cart) error {
	value, err := encodeCart(next)
	if err != nil {
		return fmt.Errorf("encodeCart: %w", err)
	}

	if err := s.storage.Write(ctx, s.key, value); err != nil {
		return fmt.Errorf("storage.Write: %w", err)
	}

	s.mu.Lock()
	s.cart = next
	s.mu.Unlock()

	return nil
}

func (s *Service) load(ctx context.Context) (domain.Cart, error) {
	value, found, err := s.storage.Read(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("storage.Read: %w", err)
	}
	if !found {
		return domain.Cart{}, nil
	}

	cart, err := decodeCart(value)
	if err != nil {
		s.log.WarnContext(ctx, "stored cart is unreadable, starting with an empty cart",
			slog.String("key", s.key),
			slog.Any("err", err))
		return domain.Cart{}, nil
	}

	return cart, nil
}

func (s *Service) publish(ctx context.Context, eventType domain.CartEventType, productID int64, amount int) {
	err := s.events.Publish(ctx, domain.NewCartEvent(eventType, s.key, productID, amount))
	if err != nil {
		s.log.WarnContext(ctx, "cart event is not published",
			slog.String("type", string(eventType)),
			slog.Int64("product_id", productID),
			slog.Any("err", err))
	}
}

func (s *Service) startSpan(ctx context.Context, name string, productID int64) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.Int64("product.id", productID)))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
