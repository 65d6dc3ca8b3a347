package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/exilefund/fund"
	"github.com/exilefund/fund/poe2"
)

// recentSales caps the sales history published on the dashboard. The
// full log stays in the private trades file.
const recentSales = 50

// Dashboard is the JSON document investors see. It is rebuilt from
// scratch on every fetch and contains no plaintext invite codes: the
// book goes through its public projection.
type Dashboard struct {
	UpdatedAt     time.Time       `json:"updated_at"`
	League        string          `json:"league"`
	Currencies    fund.Currencies `json:"currencies"`
	RawDivines    decimal.Decimal `json:"raw_divines"`
	ListedValue   decimal.Decimal `json:"listed_value"`
	TotalNAV      decimal.Decimal `json:"total_nav"`
	RawNAV        decimal.Decimal `json:"raw_nav"`
	Haircut       decimal.Decimal `json:"haircut"`
	ExchangeRates fund.Rates      `json:"exchange_rates"`
	Listings      []poe2.Listing  `json:"listings"`
	RecentSales   []poe2.Trade    `json:"recent_sales"`
	Fund          *fund.Public    `json:"fund"`
}

// buildDashboard assembles the public document from the private state.
func buildDashboard(league string, b *fund.Book, rates fund.Rates, listings []poe2.Listing, trades []poe2.Trade) *Dashboard {
	liquid := rates.LiquidValue(b.Fund.Currencies)
	listed := poe2.ListedValue(listings)

	sales := trades
	if len(sales) > recentSales {
		sales = sales[:recentSales]
	}

	return &Dashboard{
		UpdatedAt:     time.Now().UTC(),
		League:        league,
		Currencies:    b.Fund.Currencies,
		RawDivines:    liquid,
		ListedValue:   listed.Round(2),
		TotalNAV:      b.Fund.NAV(rates, listed),
		RawNAV:        b.Fund.RawNAV(rates, listed),
		Haircut:       b.Fund.Haircut,
		ExchangeRates: rates,
		Listings:      listings,
		RecentSales:   sales,
		Fund:          b.PublicView(),
	}
}

func loadDashboard() (*Dashboard, error) {
	content, err := os.ReadFile(dashboardPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var d Dashboard
	if err := json.Unmarshal(content, &d); err != nil {
		return nil, fmt.Errorf("could not parse dashboard %q: %w", dashboardPath(), err)
	}
	return &d, nil
}

func saveDashboard(d *Dashboard) error {
	content, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dashboardPath()), ".dashboard-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), dashboardPath())
}
