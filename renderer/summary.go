package renderer

import (
	"bytes"
	"fmt"
	"sort"

	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"

	"github.com/exilefund/fund"
)

// Summary is the fund-wide view the summary command assembles from the
// book and the latest market fetch.
type Summary struct {
	Date        fund.Date
	League      string
	TotalNAV    decimal.Decimal
	RawNAV      decimal.Decimal
	LiquidValue decimal.Decimal
	ListedValue decimal.Decimal
	Haircut     decimal.Decimal
	Listings    int
	Sales       int
	Book        *fund.Book
}

func SummaryMarkdown(s *Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := fmt.Sprintf("Fund Summary on %s", s.Date)
	if s.League != "" {
		title = fmt.Sprintf("Fund Summary on %s (%s)", s.Date, s.League)
	}
	doc.H1(title)
	doc.PlainText(fmt.Sprintf("Total NAV: %s div", s.TotalNAV.StringFixed(2)))

	doc.H2("Valuation")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Component", "Value (div)"},
		Rows: [][]string{
			{"Liquid balances", s.LiquidValue.StringFixed(2)},
			{fmt.Sprintf("Listed items ×%s haircut (%d listings)", s.Haircut.String(), s.Listings), s.ListedValue.Mul(s.Haircut).StringFixed(2)},
			{md.Bold("Total NAV"), md.Bold(s.TotalNAV.StringFixed(2))},
			{"Raw NAV (no haircut)", s.RawNAV.StringFixed(2)},
		},
	})

	f := s.Book.Fund
	doc.H2("Units")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", ""},
		Rows: [][]string{
			{"Unit price", f.UnitPrice.String()},
			{"Total units", f.TotalUnits.String()},
			{"High-water mark", f.HighWaterMark.String()},
			{"Total deposited", f.TotalDeposited.StringFixed(2)},
			{"Total profit", f.TotalProfit.StringFixed(2)},
		},
	})

	if len(f.Currencies) > 0 {
		doc.H2("Balances")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Currency", "Amount"},
			Rows:      [][]string{},
		}
		codes := make([]string, 0, len(f.Currencies))
		for code := range f.Currencies {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			table.Rows = append(table.Rows, []string{code, f.Currencies[code].String()})
		}
		doc.Table(table)
	}

	doc.H2("Investors")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Name", "Units", "Value", "Share", "Profit", "Change"},
		Rows:   [][]string{},
	}
	for _, inv := range s.Book.Investors {
		name := inv.Name
		if inv.Manager {
			name += " (manager)"
		}
		change := ""
		if inv.PctChange != nil {
			pct := *inv.PctChange
			if pct.IsNegative() {
				change = pct.StringFixed(1) + "%"
			} else {
				change = "+" + pct.StringFixed(1) + "%"
			}
		}
		table.Rows = append(table.Rows, []string{
			name,
			inv.Units.String(),
			inv.Value.StringFixed(2),
			inv.Share.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%",
			inv.Profit.StringFixed(2),
			change,
		})
	}
	doc.Table(table)

	pending := false
	for _, inv := range s.Book.Investors {
		if inv.Pending != nil {
			pending = true
			break
		}
	}
	if pending {
		doc.H2("Pending Requests")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignLeft,
			},
			Header: []string{"Name", "Kind", "Amount (div)", "Locked Price", "Since"},
			Rows:   [][]string{},
		}
		for _, inv := range s.Book.Investors {
			if inv.Pending == nil {
				continue
			}
			p := inv.Pending
			table.Rows = append(table.Rows, []string{
				inv.Name,
				string(p.Kind),
				p.Amount.StringFixed(2),
				p.LockedPrice.String(),
				p.Date.String(),
			})
		}
		doc.Table(table)
	}

	if s.Sales > 0 {
		doc.PlainText(fmt.Sprintf("%d new sales recorded this run.", s.Sales))
	}

	return doc.String()
}
