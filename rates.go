package fund

import (
	"log"

	"github.com/shopspring/decimal"
)

// Currencies maps a currency code to its raw balance in native units.
type Currencies map[string]decimal.Decimal

// Rates maps a currency code to its exchange rate expressed as divines
// per one unit of that currency. A Rates table always rates divine at 1.
//
// Only currencies with a direct pair against divine are rated. A currency
// that trades only against a third currency has no rate and silently
// drops out of liquid-value sums; chained rates are deliberately not
// derived. See the "rates" topic.
type Rates map[string]decimal.Decimal

// RatePair is one entry of a pairwise exchange snapshot: two currencies
// and their relative prices as reported by the trade site.
type RatePair struct {
	One      string
	Two      string
	OnePrice decimal.Decimal
	TwoPrice decimal.Decimal
}

// NewRates seeds a rate table from a pairwise exchange snapshot. Only
// pairs where one side is divine contribute; the first pair seen for a
// currency wins. A zero relative price on the divine side yields a zero
// rate, which ToDivine treats as unrateable.
func NewRates(pairs []RatePair) Rates {
	rates := Rates{Divine: decimal.NewFromInt(1)}
	for _, pair := range pairs {
		switch {
		case pair.One == Divine:
			if _, ok := rates[pair.Two]; ok {
				continue
			}
			rates[pair.Two] = ratio(pair.TwoPrice, pair.OnePrice)
		case pair.Two == Divine:
			if _, ok := rates[pair.One]; ok {
				continue
			}
			rates[pair.One] = ratio(pair.OnePrice, pair.TwoPrice)
		}
	}
	return rates
}

func ratio(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}

// DefaultRates returns the degenerate table used when no snapshot is
// available: only divine itself is convertible.
func DefaultRates() Rates {
	return Rates{Divine: decimal.NewFromInt(1)}
}

// ToDivine converts an amount in any currency to its divine equivalent,
// rounded to 2 decimals. Divine converts to itself with no lookup. The
// second return value is false when no positive rate is known; callers
// must exclude such amounts from aggregate totals rather than treat them
// as zero.
func (r Rates) ToDivine(amount decimal.Decimal, currency string) (decimal.Decimal, bool) {
	if currency == Divine {
		return amount, true
	}
	rate, ok := r[currency]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, false
	}
	return amount.Mul(rate).Round(2), true
}

// LiquidValue sums all currency balances in divine terms. Unrateable
// currencies contribute zero to the sum; that is a warning-level
// condition, not an error.
func (r Rates) LiquidValue(currencies Currencies) decimal.Decimal {
	total := decimal.Zero
	for cur, amount := range currencies {
		div, ok := r.ToDivine(amount, cur)
		if !ok {
			if !amount.IsZero() {
				log.Printf("warning: no exchange rate for %s, excluding %s from liquid value", cur, amount)
			}
			continue
		}
		total = total.Add(div)
	}
	return total
}
