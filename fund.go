package fund

import "github.com/shopspring/decimal"

// Default accounting parameters for a newly created fund. They become
// regular Fund fields so a persisted fund keeps the terms it was created
// with even if the defaults change later.
var (
	// DefaultHaircut discounts listed-but-unsold inventory in the NAV:
	// listings are not guaranteed to sell at their listed price.
	DefaultHaircut = decimal.RequireFromString("0.85")
	// DefaultPerfFeeRate is the performance fee charged on gains above
	// the high-water mark.
	DefaultPerfFeeRate = decimal.RequireFromString("0.25")
)

// Fund is the fund-wide accounting state: currency balances, the unit
// supply, and the fee terms. Aggregate totals are recomputed from the
// investors on every recalculation cycle.
type Fund struct {
	Currencies     Currencies      `json:"currencies"`
	TotalUnits     decimal.Decimal `json:"total_units"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	HighWaterMark  decimal.Decimal `json:"hwm"`
	Haircut        decimal.Decimal `json:"haircut"`
	PerfFeeRate    decimal.Decimal `json:"perf_fee_pct"`
	TotalDeposited decimal.Decimal `json:"total_deposited"`
	TotalProfit    decimal.Decimal `json:"total_profit"`
}

// NewFund returns a fund with default terms and an empty divine balance.
func NewFund() *Fund {
	return &Fund{
		Currencies:    Currencies{Divine: decimal.Zero},
		TotalUnits:    decimal.Zero,
		UnitPrice:     decimal.NewFromInt(1),
		HighWaterMark: decimal.NewFromInt(1),
		Haircut:       DefaultHaircut,
		PerfFeeRate:   DefaultPerfFeeRate,
	}
}

// UnitPriceFor derives the unit price from a NAV: nav / totalUnits, or
// 1.0 before any capital exists.
func (f *Fund) UnitPriceFor(nav decimal.Decimal) decimal.Decimal {
	if f.TotalUnits.IsPositive() {
		return nav.Div(f.TotalUnits)
	}
	return decimal.NewFromInt(1)
}

// NAV computes the authoritative net asset value: liquid currency
// balances in divine terms plus haircut-adjusted listed inventory value.
func (f *Fund) NAV(rates Rates, listedValue decimal.Decimal) decimal.Decimal {
	return rates.LiquidValue(f.Currencies).Add(listedValue.Mul(f.Haircut))
}

// RawNAV is the NAV without the listing haircut. It is tracked on the
// dashboard for transparency but never prices units.
func (f *Fund) RawNAV(rates Rates, listedValue decimal.Decimal) decimal.Decimal {
	return rates.LiquidValue(f.Currencies).Add(listedValue)
}

// Credit adds a native-currency amount to the fund's balances.
func (f *Fund) Credit(currency string, amount decimal.Decimal) {
	if f.Currencies == nil {
		f.Currencies = Currencies{}
	}
	f.Currencies[currency] = f.Currencies[currency].Add(amount)
}

// SetBalance overwrites a native-currency balance. This is the manual
// correction path; trading revenue and settlements go through Credit.
func (f *Fund) SetBalance(currency string, amount decimal.Decimal) {
	if f.Currencies == nil {
		f.Currencies = Currencies{}
	}
	f.Currencies[currency] = amount
}

// migrate fixes up funds deserialized from older snapshots that predate
// explicit fee terms or the multi-currency balances map.
func (f *Fund) migrate() {
	if f.Currencies == nil {
		f.Currencies = Currencies{Divine: decimal.Zero}
	}
	if f.Haircut.IsZero() {
		f.Haircut = DefaultHaircut
	}
	if f.PerfFeeRate.IsZero() {
		f.PerfFeeRate = DefaultPerfFeeRate
	}
	if f.HighWaterMark.IsZero() {
		f.HighWaterMark = decimal.NewFromInt(1)
	}
	if f.UnitPrice.IsZero() {
		f.UnitPrice = decimal.NewFromInt(1)
	}
}
