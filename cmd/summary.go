package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/exilefund/fund"
	"github.com/exilefund/fund/renderer"
)

// summaryView bundles what the summary report needs. fetch builds it
// from live data, summary rebuilds it from the saved dashboard.
type summaryView struct {
	book     *fund.Book
	rates    fund.Rates
	league   string
	listed   decimal.Decimal
	listings int
	sales    int
}

func (v *summaryView) markdown() string {
	f := v.book.Fund
	return renderer.SummaryMarkdown(&renderer.Summary{
		Date:        fund.Today(),
		League:      v.league,
		TotalNAV:    f.NAV(v.rates, v.listed),
		RawNAV:      f.RawNAV(v.rates, v.listed),
		LiquidValue: v.rates.LiquidValue(f.Currencies),
		ListedValue: v.listed,
		Haircut:     f.Haircut,
		Listings:    v.listings,
		Sales:       v.sales,
		Book:        v.book,
	})
}

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the fund summary from the last fetch" }
func (*summaryCmd) Usage() string {
	return `p2f summary

  Displays the fund summary: NAV, unit price, balances, investors and
  pending requests, using the market data saved by the last fetch.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	v := &summaryView{
		book:   book,
		rates:  fund.DefaultRates(),
		league: cfg.League,
		listed: decimal.Zero,
	}
	if d, err := loadDashboard(); err == nil && d != nil {
		v.rates = d.ExchangeRates
		v.league = d.League
		v.listed = d.ListedValue
		v.listings = len(d.Listings)
	}

	printMarkdown(v.markdown())
	return subcommands.ExitSuccess
}
