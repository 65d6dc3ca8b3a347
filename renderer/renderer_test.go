package renderer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/exilefund/fund"
)

func newTestBook(t *testing.T) *fund.Book {
	t.Helper()
	b := fund.NewBook()
	if _, err := b.CreateInvestor("Alice"); err != nil {
		t.Fatal(err)
	}
	if _, err := b.CreateInvestor("Bob"); err != nil {
		t.Fatal(err)
	}
	rates := fund.DefaultRates()
	for _, req := range []struct {
		name   string
		amount string
		nav    string
	}{
		{"Alice", "60", "0"},
		{"Bob", "40", "60"},
	} {
		if _, err := b.CreatePending(req.name, decimal.RequireFromString(req.amount), fund.Divine, decimal.RequireFromString(req.nav), rates, fund.Deposit); err != nil {
			t.Fatal(err)
		}
		if _, err := b.Fulfill(req.name); err != nil {
			t.Fatal(err)
		}
	}
	b.Recalc(decimal.RequireFromString("100"))
	return b
}

func TestSummaryMarkdown(t *testing.T) {
	b := newTestBook(t)
	s := &Summary{
		Date:        fund.NewDate(2026, 1, 15),
		League:      "Standard",
		TotalNAV:    decimal.RequireFromString("100"),
		RawNAV:      decimal.RequireFromString("110"),
		LiquidValue: decimal.RequireFromString("83"),
		ListedValue: decimal.RequireFromString("20"),
		Haircut:     fund.DefaultHaircut,
		Listings:    3,
		Book:        b,
	}
	got := SummaryMarkdown(s)

	for _, want := range []string{
		"# Fund Summary on 2026-01-15 (Standard)",
		"Total NAV: 100.00 div",
		"## Investors",
		"Alice (manager)",
		"Bob",
		"60.00%",
		"40.00%",
		"## Valuation",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary misses %q in:\n%s", want, got)
		}
	}
}

func TestSummaryMarkdownPendingSection(t *testing.T) {
	b := newTestBook(t)
	if _, err := b.CreatePending("Bob", decimal.RequireFromString("10"), fund.Divine, decimal.RequireFromString("100"), fund.DefaultRates(), fund.Withdraw); err != nil {
		t.Fatal(err)
	}
	s := &Summary{
		Date:     fund.Today(),
		TotalNAV: decimal.RequireFromString("100"),
		Haircut:  fund.DefaultHaircut,
		Book:     b,
	}
	got := SummaryMarkdown(s)
	if !strings.Contains(got, "## Pending Requests") {
		t.Errorf("summary misses pending section in:\n%s", got)
	}
	if !strings.Contains(got, "withdraw") {
		t.Errorf("summary misses the withdraw row in:\n%s", got)
	}
}

func TestRenderStatement(t *testing.T) {
	b := newTestBook(t)
	alice := b.Find("alice")
	if alice == nil {
		t.Fatal("alice not found")
	}
	s := &Statement{
		Date:      fund.NewDate(2026, 1, 15),
		Investor:  alice,
		UnitPrice: b.Fund.UnitPrice,
	}
	got := RenderStatement(s)

	for _, want := range []string{
		"# Statement for Alice (manager) on 2026-01-15",
		"## Position",
		"## History",
		"deposit",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("statement misses %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "error") {
		t.Errorf("statement rendering failed:\n%s", got)
	}
}
