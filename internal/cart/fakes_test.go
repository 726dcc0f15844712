package cart_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/nikolayk812/rocketcart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type catalogMock struct {
	mock.Mock
}

func (m *catalogMock) GetProduct(ctx context.Context, productID int64) (domain.Product, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(domain.Product), args.Error(1)
}

type stockMock struct {
	mock.Mock
}

func (m *stockMock) GetStock(ctx context.Context, productID int64) (domain.Stock, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(domain.Stock), args.Error(1)
}

// failingStorage serves reads from values and fails every write.
type failingStorage struct {
	values  map[string]string
	readErr error
}

func (s *failingStorage) Read(_ context.Context, key string) (string, bool, error) {
	if s.readErr != nil {
		return "", false, s.readErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *failingStorage) Write(context.Context, string, string) error {
	return errors.New("disk full")
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Error(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

type eventRecorder struct {
	mu     sync.Mutex
	events []domain.CartEvent
	err    error
}

func (r *eventRecorder) Publish(_ context.Context, event domain.CartEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *eventRecorder) types() []domain.CartEventType {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.CartEventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func randomProduct(id int64, amount int) domain.Product {
	return domain.Product{
		ID:     id,
		Title:  gofakeit.ProductName(),
		Price:  decimal.NewFromFloat(gofakeit.Price(1, 500)).Round(2),
		Image:  gofakeit.URL(),
		Amount: amount,
	}
}

func assertCart(t *testing.T, expected, actual domain.Cart) {
	t.Helper()

	decimalComparer := cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	})

	diff := cmp.Diff(expected, actual, decimalComparer)
	assert.Empty(t, diff)
}
