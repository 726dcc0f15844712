package domain_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/rocketcart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestCart_Without(t *testing.T) {
	cart := domain.Cart{product(1, 1), product(2, 3), product(3, 2)}

	tests := []struct {
		name      string
		productID int64
		wantIDs   []int64
		wantFound bool
	}{
		{
			name:      "remove middle: order kept",
			productID: 2,
			wantIDs:   []int64{1, 3},
			wantFound: true,
		},
		{
			name:      "remove first",
			productID: 1,
			wantIDs:   []int64{2, 3},
			wantFound: true,
		},
		{
			name:      "remove missing: unchanged",
			productID: 42,
			wantIDs:   []int64{1, 2, 3},
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := cart.Without(tt.productID)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantIDs, ids(got))

			// receiver is never modified
			assert.Equal(t, []int64{1, 2, 3}, ids(cart))
		})
	}
}

func TestCart_WithAmount(t *testing.T) {
	cart := domain.Cart{product(1, 1), product(2, 3)}

	got, found := cart.WithAmount(2, 5)
	require.True(t, found)
	assert.Equal(t, 5, got[1].Amount)
	assert.Equal(t, 3, cart[1].Amount)

	_, found = cart.WithAmount(9, 5)
	assert.False(t, found)
}

func TestCart_Append(t *testing.T) {
	cart := domain.Cart{product(1, 1)}

	got := cart.Append(product(2, 1))
	assert.Equal(t, []int64{1, 2}, ids(got))
	assert.Len(t, cart, 1)
}

func TestCart_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cart      domain.Cart
		wantError string
	}{
		{
			name: "valid cart: ok",
			cart: domain.Cart{product(1, 1), product(2, 10)},
		},
		{
			name: "empty cart: ok",
			cart: domain.Cart{},
		},
		{
			name:      "zero amount: error",
			cart:      domain.Cart{product(1, 0)},
			wantError: "product[1] has amount 0",
		},
		{
			name:      "duplicated id: error",
			cart:      domain.Cart{product(7, 1), product(7, 2)},
			wantError: "product[7] is duplicated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cart.Validate()
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCart_Total(t *testing.T) {
	cart := domain.Cart{
		{ID: 1, Price: decimal.RequireFromString("139.90"), Amount: 2},
		{ID: 2, Price: decimal.RequireFromString("10.05"), Amount: 1},
	}

	total := cart.Total(currency.BRL)
	assert.True(t, decimal.RequireFromString("289.85").Equal(total.Amount), total.Amount.String())
	assert.Equal(t, currency.BRL, total.Currency)
	assert.Equal(t, 2, cart.Size())
}

func TestCart_Find(t *testing.T) {
	cart := domain.Cart{product(4, 2)}

	p, found := cart.Find(4)
	require.True(t, found)
	assert.Equal(t, 2, p.Amount)

	_, found = cart.Find(5)
	assert.False(t, found)
	assert.Equal(t, -1, cart.Index(5))
}

func product(id int64, amount int) domain.Product {
	return domain.Product{
		ID:     id,
		Title:  gofakeit.ProductName(),
		Price:  decimal.NewFromFloat(gofakeit.Price(1, 500)),
		Image:  gofakeit.URL(),
		Amount: amount,
	}
}

func ids(cart domain.Cart) []int64 {
	out := make([]int64, 0, len(cart))
	for _, p := range cart {
		out = append(out, p.ID)
	}
	return out
}
