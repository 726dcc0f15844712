package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// Format renders the amount with the currency symbol using the number conventions of tag,
// e.g. "R$ 1.234,50" for BRL in pt-BR.
func (m Money) Format(tag language.Tag) string {
	value, _ := m.Amount.Round(2).Float64()

	p := message.NewPrinter(tag)
	return p.Sprint(currency.Symbol(m.Currency.Amount(value)))
}
