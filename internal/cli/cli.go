// Package cli drives a cart session from text commands.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/nikolayk812/rocketcart/internal/cart"
	"github.com/nikolayk812/rocketcart/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

var ErrUsage = errors.New("usage")

const usage = `commands:
  list                    show the cart
  add <id>                add one unit of a product
  remove <id>             remove a product
  update <id> <amount>    set the amount of a product
  help                    show this help
  exit                    leave the shell`

type App struct {
	store *cart.Store
	out   io.Writer
	unit  currency.Unit
	tag   language.Tag
}

func New(store *cart.Store, out io.Writer, unit currency.Unit, tag language.Tag) *App {
	return &App{
		store: store,
		out:   out,
		unit:  unit,
		tag:   tag,
	}
}

// Run executes one command. Failed cart operations are not errors here: the store has
// already notified the user about them.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command: %w", ErrUsage)
	}

	switch cmd, rest := strings.ToLower(args[0]), args[1:]; cmd {
	case "list", "ls":
		if len(rest) != 0 {
			return fmt.Errorf("list takes no arguments: %w", ErrUsage)
		}
	case "add":
		id, err := parseArgs(cmd, rest, 1)
		if err != nil {
			return err
		}
		a.store.AddProduct(ctx, id[0])
	case "remove", "rm":
		id, err := parseArgs(cmd, rest, 1)
		if err != nil {
			return err
		}
		a.store.RemoveProduct(ctx, id[0])
	case "update":
		if len(rest) != 2 {
			return fmt.Errorf("%s takes 2 arguments: %w", cmd, ErrUsage)
		}
		id, err := parseArgs(cmd, rest[:1], 1)
		if err != nil {
			return err
		}
		amount, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("%s: %q is not an amount: %w", cmd, rest[1], ErrUsage)
		}
		a.store.UpdateProductAmount(ctx, cart.UpdateProductAmount{ProductID: id[0], Amount: amount})
	case "help":
		_, err := fmt.Fprintln(a.out, usage)
		return err
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, ErrUsage)
	}

	return a.PrintCart()
}

// Shell reads commands line by line until exit or the end of in.
func (a *App) Shell(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for {
		if _, err := fmt.Fprint(a.out, "> "); err != nil {
			return err
		}
		if !scanner.Scan() {
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "exit" || fields[0] == "quit" {
			return nil
		}

		if err := a.Run(ctx, fields); err != nil {
			if !errors.Is(err, ErrUsage) {
				return err
			}
			fmt.Fprintf(a.out, "%v\n%s\n", err, usage)
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner.Scan: %w", err)
	}
	return nil
}

// PrintCart writes the cart lines with subtotals and the total.
func (a *App) PrintCart() error {
	items := a.store.Cart()
	if len(items) == 0 {
		_, err := fmt.Fprintln(a.out, "cart is empty")
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRODUCT\tPRICE\tAMOUNT\tSUBTOTAL")
	for _, p := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			p.ID,
			p.Title,
			a.money(p.Price).Format(a.tag),
			p.Amount,
			a.money(p.Subtotal()).Format(a.tag))
	}
	fmt.Fprintf(w, "TOTAL\t%d products\t\t\t%s\n", items.Size(), items.Total(a.unit).Format(a.tag))

	return w.Flush()
}

func (a *App) money(amount decimal.Decimal) domain.Money {
	return domain.Money{Amount: amount, Currency: a.unit}
}

func parseArgs(cmd string, args []string, n int) ([]int64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s takes %d arguments: %w", cmd, n, ErrUsage)
	}

	out := make([]int64, 0, n)
	for _, arg := range args {
		v, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number: %w", cmd, arg, ErrUsage)
		}
		out = append(out, v)
	}

	return out, nil
}
