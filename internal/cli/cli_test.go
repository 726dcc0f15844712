package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/nikolayk812/rocketcart/internal/cart"
	"github.com/nikolayk812/rocketcart/internal/cli"
	"github.com/nikolayk812/rocketcart/internal/client"
	"github.com/nikolayk812/rocketcart/internal/domain"
	"github.com/nikolayk812/rocketcart/internal/notify"
	"github.com/nikolayk812/rocketcart/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

type fixedAPI struct {
	products map[int64]domain.Product
	stock    map[int64]int
}

func (f fixedAPI) GetProduct(_ context.Context, id int64) (domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, client.ErrNotFound
	}
	return p, nil
}

func (f fixedAPI) GetStock(_ context.Context, id int64) (domain.Stock, error) {
	amount, ok := f.stock[id]
	if !ok {
		return domain.Stock{}, client.ErrNotFound
	}
	return domain.Stock{ID: id, Amount: amount}, nil
}

func newApp(t *testing.T) (*cli.App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	api := fixedAPI{
		products: map[int64]domain.Product{
			1: {ID: 1, Title: "Tenis Leve", Price: decimal.RequireFromString("179.9")},
			2: {ID: 2, Title: "Tenis Couro", Price: decimal.RequireFromString("139.9")},
		},
		stock: map[int64]int{1: 3, 2: 1},
	}

	svc, err := cart.NewService(t.Context(), repository.NewMemory(), api, api)
	require.NoError(t, err)

	var out, notifications bytes.Buffer
	store := cart.NewStore(svc, notify.NewConsole(&notifications))

	return cli.New(store, &out, currency.BRL, language.BrazilianPortuguese), &out, &notifications
}

func TestApp_Run(t *testing.T) {
	app, out, notifications := newApp(t)
	ctx := t.Context()

	require.NoError(t, app.Run(ctx, []string{"list"}))
	assert.Contains(t, out.String(), "cart is empty")

	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"add", "1"}))
	require.NoError(t, app.Run(ctx, []string{"add", "1"}))
	require.NoError(t, app.Run(ctx, []string{"add", "2"}))
	assert.Contains(t, out.String(), "Tenis Leve")
	assert.Contains(t, out.String(), "TOTAL")
	assert.Empty(t, notifications.String())

	require.NoError(t, app.Run(ctx, []string{"update", "2", "2"}))
	assert.Equal(t, "error: requested quantity out of stock\n", notifications.String())

	notifications.Reset()
	require.NoError(t, app.Run(ctx, []string{"remove", "7"}))
	assert.Equal(t, "error: failed to remove product\n", notifications.String())

	out.Reset()
	require.NoError(t, app.Run(ctx, []string{"rm", "1"}))
	assert.NotContains(t, out.String(), "Tenis Leve")
	assert.Contains(t, out.String(), "Tenis Couro")
}

func TestApp_Run_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no command", args: nil},
		{name: "unknown command", args: []string{"checkout"}},
		{name: "add without id", args: []string{"add"}},
		{name: "add with text id", args: []string{"add", "one"}},
		{name: "update with one argument", args: []string{"update", "1"}},
		{name: "update with amount out of int range", args: []string{"update", "1", "99999999999999999999"}},
		{name: "update with text amount", args: []string{"update", "1", "two"}},
		{name: "list with argument", args: []string{"list", "all"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, _ := newApp(t)

			err := app.Run(t.Context(), tt.args)
			require.ErrorIs(t, err, cli.ErrUsage)
		})
	}
}

func TestApp_Shell(t *testing.T) {
	app, out, notifications := newApp(t)

	in := strings.NewReader("add 1\n\nbogus\nupdate 1 3\nadd 1\nexit\nadd 2\n")
	require.NoError(t, app.Shell(t.Context(), in))

	assert.Contains(t, out.String(), `unknown command "bogus"`)
	assert.Equal(t, "error: requested quantity out of stock\n", notifications.String())
	assert.NotContains(t, out.String(), "Tenis Couro")
}
