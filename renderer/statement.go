package renderer

import (
	"github.com/shopspring/decimal"

	"github.com/exilefund/fund"
)

// Statement is the per-investor view: position, pending request and
// deposit history.
type Statement struct {
	Date      fund.Date
	Investor  *fund.Investor
	UnitPrice decimal.Decimal
}

// SharePct renders the investor's share as a percentage.
func (s *Statement) SharePct() string {
	return s.Investor.Share.Mul(decimal.NewFromInt(100)).StringFixed(2)
}

// RenderStatement renders the Statement struct to a markdown string.
func RenderStatement(s *Statement) string {
	partials := map[string]string{
		"statement_title":    "statement_title.md",
		"statement_position": "statement_position.md",
		"statement_history":  "statement_history.md",
	}
	return renderTemplate("statement", "statement.md", partials, s)
}
