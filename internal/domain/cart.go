package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Cart is the ordered list of products selected by the user.
// Entries are unique by ID and keep insertion order.
type Cart []Product

// Index returns the position of productID or -1.
func (c Cart) Index(productID int64) int {
	for i := range c {
		if c[i].ID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) Find(productID int64) (Product, bool) {
	i := c.Index(productID)
	if i == -1 {
		return Product{}, false
	}
	return c[i], true
}

func (c Cart) Clone() Cart {
	if c == nil {
		return Cart{}
	}
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// Append returns a copy of the cart with p added at the end.
func (c Cart) Append(p Product) Cart {
	out := make(Cart, 0, len(c)+1)
	out = append(out, c...)
	return append(out, p)
}

// Without returns a copy of the cart without productID, keeping the order of the rest.
// The second result is false if productID is not in the cart.
func (c Cart) Without(productID int64) (Cart, bool) {
	i := c.Index(productID)
	if i == -1 {
		return c, false
	}

	out := make(Cart, 0, len(c)-1)
	out = append(out, c[:i]...)
	out = append(out, c[i+1:]...)
	return out, true
}

// WithAmount returns a copy of the cart where productID has the given amount.
func (c Cart) WithAmount(productID int64, amount int) (Cart, bool) {
	i := c.Index(productID)
	if i == -1 {
		return c, false
	}

	out := c.Clone()
	out[i].Amount = amount
	return out, true
}

// Validate checks that every entry has a positive amount and that ids are unique.
func (c Cart) Validate() error {
	seen := make(map[int64]struct{}, len(c))
	for _, p := range c {
		if p.Amount < 1 {
			return fmt.Errorf("product[%d] has amount %d", p.ID, p.Amount)
		}
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("product[%d] is duplicated", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

// Size is the number of distinct products.
func (c Cart) Size() int {
	return len(c)
}

func (c Cart) Total(unit currency.Unit) Money {
	total := decimal.Zero
	for _, p := range c {
		total = total.Add(p.Subtotal())
	}
	return Money{Amount: total, Currency: unit}
}
