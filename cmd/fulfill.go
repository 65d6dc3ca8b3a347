package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fulfillCmd struct {
	all bool
}

func (*fulfillCmd) Name() string     { return "fulfill" }
func (*fulfillCmd) Synopsis() string { return "execute pending requests at their locked prices" }
func (*fulfillCmd) Usage() string {
	return `p2f fulfill <name> | p2f fulfill -all

  Executes an investor's pending request at the price locked when it was
  requested: deposits issue units and credit the fund's balance,
  withdrawals burn units and debit it. Run after the currency has
  actually changed hands in game.
`
}

func (c *fulfillCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "Fulfill every pending request.")
}

func (c *fulfillCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.all == (f.NArg() == 1) {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	book, err := LoadBook(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load book: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.all {
		n, err := book.FulfillAll()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if n == 0 {
			fmt.Println("No pending requests.")
			return subcommands.ExitSuccess
		}
		fmt.Printf("Fulfilled %d pending request(s)\n", n)
	} else {
		entry, err := book.Fulfill(f.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Fulfilled %s of %s div for %q at unit price %s\n",
			entry.Kind, entry.Amount.StringFixed(2), f.Arg(0), entry.UnitPrice)
	}

	rates, listed := currentMarket()
	book.Recalc(book.Fund.NAV(rates, listed))

	if err := SaveBook(book); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save book: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
