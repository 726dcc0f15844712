package fakeapi

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

//go:embed fixture.json
var defaultFixture []byte

// CatalogProduct is a product as the catalog serves it, without a cart amount.
type CatalogProduct struct {
	ID    int64           `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

type StockEntry struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}

type Fixture struct {
	Products []CatalogProduct `json:"products"`
	Stock    []StockEntry     `json:"stock"`
}

// LoadFixture reads a fixture file; an empty path returns the built-in fixture.
func LoadFixture(path string) (Fixture, error) {
	data := defaultFixture
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return Fixture{}, fmt.Errorf("os.ReadFile: %w", err)
		}
	}

	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	if err := f.validate(); err != nil {
		return Fixture{}, err
	}

	return f, nil
}

func (f Fixture) validate() error {
	seen := make(map[int64]bool, len(f.Products))
	for _, p := range f.Products {
		if seen[p.ID] {
			return fmt.Errorf("product[%d] is duplicated", p.ID)
		}
		seen[p.ID] = true
	}

	seen = make(map[int64]bool, len(f.Stock))
	for _, s := range f.Stock {
		if seen[s.ID] {
			return fmt.Errorf("stock[%d] is duplicated", s.ID)
		}
		if s.Amount < 0 {
			return fmt.Errorf("stock[%d] has amount %d", s.ID, s.Amount)
		}
		seen[s.ID] = true
	}

	return nil
}
