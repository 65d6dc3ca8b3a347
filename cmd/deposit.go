package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/exilefund/fund"
)

// currentMarket returns the latest known rates and listed value, from
// the dashboard of the last fetch. Without one it falls back to the
// divine-only identity table, which is only right for a brand-new fund.
func currentMarket() (fund.Rates, decimal.Decimal) {
	if d, err := loadDashboard(); err == nil && d != nil {
		return d.ExchangeRates, d.ListedValue
	}
	return fund.DefaultRates(), decimal.Zero
}

type depositCmd struct {
	currency string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "record a pending deposit request" }
func (*depositCmd) Usage() string {
	return `p2f deposit [-c <currency>] <name> <amount>

  Records a pending deposit for an investor. The unit price is locked
  now; the deposit takes effect when the manager runs 'fulfill' after
  receiving the currency in game.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", fund.Divine, "Currency of the deposit.")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return createPending(c, f, c.currency, fund.Deposit)
}

type withdrawCmd struct {
	currency string
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "record a pending withdrawal request" }
func (*withdrawCmd) Usage() string {
	return `p2f withdraw [-c <currency>] <name> <amount>

  Records a pending withdrawal for an investor, in divine orbs unless
  another currency is requested. The unit price is locked now; the
  request fails if the divine equivalent exceeds the investor's current
  position value.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", fund.Divine, "Currency of the payout.")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return createPending(c, f, c.currency, fund.Withdraw)
}

func createPending(c subcommands.Command, f *flag.FlagSet, currency string, kind fund.RequestKind) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	amount, err := decimal.NewFromString(f.Arg(1))
	if err != nil || !amount.IsPositive() {
		fmt.Fprintf(os.Stderr, "Error: amount must be a positive number, got %q\n", f.Arg(1))
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

	rates, listed := currentMarket()
	nav := book.Fund.NAV(rates, listed)

	p, err := book.CreatePending(f.Arg(0), amount, currency, nav, rates, kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveBook(book); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save book: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Pending %s of %s div for %q at locked price %s\n",
		p.Kind, p.Amount.StringFixed(2), f.Arg(0), p.LockedPrice)
	return subcommands.ExitSuccess
}
