package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/exilefund/fund"
	"github.com/exilefund/fund/poe2"
)

type fetchCmd struct {
	dryRun bool
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch market data and update the fund" }
func (*fetchCmd) Usage() string {
	return `p2f fetch [-dry-run]

Fetches exchange rates, new sales and active listings, credits sale
revenue to the fund, recalculates the NAV, unit price and investor
positions, and rewrites the dashboard.

Requires POESESSID and POE2_ACCOUNT (environment or .env).

With -dry-run everything is fetched and reported but nothing is saved.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.dryRun, "dry-run", false, "Fetch and report without saving anything.")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := RequireSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	book, err := LoadBook(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load book: %v\n", err)
		return subcommands.ExitFailure
	}

	prev, err := loadDashboard()
	if err != nil {
		log.Printf("previous dashboard unreadable, no stale market data to fall back on: %v", err)
	}

	rates := fetchRates(cfg.League, prev)
	client := poe2.NewClient(cfg.Session, cfg.League, cfg.Account)

	seen, err := poe2.LoadTrades(tradesPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load trades: %v\n", err)
		return subcommands.ExitFailure
	}

	fetched, err := client.TradeHistory(rates)
	if err != nil {
		if errors.Is(err, poe2.ErrRateLimited) {
			log.Printf("trade history skipped: %v", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: could not fetch trade history: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	fresh := poe2.NewTrades(fetched, seen)
	for currency, amount := range poe2.Revenue(fresh) {
		book.Fund.Credit(currency, amount)
	}
	trades := poe2.MergeTrades(fresh, seen)

	listings, err := client.Listings(rates)
	listed := poe2.ListedValue(listings)
	if err != nil {
		if !errors.Is(err, poe2.ErrRateLimited) {
			fmt.Fprintf(os.Stderr, "Error: could not fetch listings: %v\n", err)
			return subcommands.ExitFailure
		}
		log.Printf("listings skipped, reusing the previous dashboard's inventory: %v", err)
		listings, listed = staleListings(prev)
	}
	nav := book.Fund.NAV(rates, listed)
	book.Recalc(nav)

	s := &summaryView{
		book:     book,
		rates:    rates,
		league:   cfg.League,
		listed:   listed,
		listings: len(listings),
		sales:    len(fresh),
	}
	printMarkdown(s.markdown())

	if c.dryRun {
		fmt.Println("Dry run: nothing saved.")
		return subcommands.ExitSuccess
	}

	if err := poe2.SaveTrades(tradesPath(), trades); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save trades: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := exportTradesCSV(trades); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not export trades: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := saveDashboard(buildDashboard(cfg.League, book, rates, listings, trades)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save dashboard: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveBook(book); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save book: %v\n", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

// fetchRates loads the day's exchange rates, falling back to stale data
// when poe2scout is unreachable.
func fetchRates(league string, prev *Dashboard) fund.Rates {
	pairs, err := poe2.SnapshotPairs(league)
	if err != nil {
		return staleRates(prev, err)
	}
	return fund.NewRates(pairs)
}

// staleRates reuses the previous dashboard's rate table when no fresh
// snapshot is available. Valuing against yesterday's rates keeps the NAV
// honest; collapsing to the divine-only table would understate it and
// mis-price any units issued before the next successful fetch.
func staleRates(prev *Dashboard, cause error) fund.Rates {
	if prev != nil && len(prev.ExchangeRates) > 0 {
		log.Printf("exchange rates unavailable, reusing the ones from %s: %v",
			prev.UpdatedAt.Format("2006-01-02"), cause)
		return prev.ExchangeRates
	}
	log.Printf("exchange rates unavailable, divine-only valuation: %v", cause)
	return fund.DefaultRates()
}

// staleListings reuses the previous dashboard's listed inventory when
// the trade API rate-limits the run, for the same reason as staleRates.
func staleListings(prev *Dashboard) ([]poe2.Listing, decimal.Decimal) {
	if prev == nil {
		return nil, decimal.Zero
	}
	return prev.Listings, prev.ListedValue
}
