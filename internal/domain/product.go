package domain

import "github.com/shopspring/decimal"

// Product is a catalog product merged with the quantity held in the cart.
type Product struct {
	ID     int64           `json:"id"`
	Title  string          `json:"title"`
	Price  decimal.Decimal `json:"price"`
	Image  string          `json:"image"`
	Amount int             `json:"amount"`
}

// Subtotal is the line price: Price * Amount.
func (p Product) Subtotal() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Amount)))
}

type Stock struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}
