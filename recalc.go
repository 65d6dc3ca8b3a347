package fund

import (
	"log"

	"github.com/shopspring/decimal"
)

// Recalc recomputes the unit price and every investor's derived figures
// from the given NAV, crystallizing a performance fee first when the
// price exceeds the high-water mark. It is idempotent: a second call
// with an unchanged NAV and no new gain above the mark is a no-op.
func (b *Book) Recalc(nav decimal.Decimal) {
	f := b.Fund
	unitPrice := f.UnitPriceFor(nav)
	unitPrice = b.crystallizeFee(nav, unitPrice)
	f.UnitPrice = unitPrice.Round(6)

	totalDeposited := decimal.Zero
	totalProfit := decimal.Zero
	for _, inv := range b.Investors {
		inv.Value = inv.Units.Mul(unitPrice).Round(2)
		inv.Profit = inv.Value.Sub(inv.Deposited).Round(2)
		if f.TotalUnits.IsPositive() {
			inv.Share = inv.Units.Div(f.TotalUnits).Round(6)
		} else {
			inv.Share = decimal.Zero
		}
		if inv.Deposited.IsPositive() {
			pct := inv.Value.Sub(inv.Deposited).
				Div(inv.Deposited).
				Mul(decimal.NewFromInt(100)).
				Round(1)
			inv.PctChange = &pct
		} else {
			inv.PctChange = nil
		}
		totalDeposited = totalDeposited.Add(inv.Deposited)
		totalProfit = totalProfit.Add(inv.Profit)
	}
	f.TotalDeposited = totalDeposited.Round(2)
	f.TotalProfit = totalProfit.Round(2)
}

// crystallizeFee charges the performance fee when the unit price has
// risen above the high-water mark: the fee on the gain of all
// non-manager units is minted to the manager as new units. The manager
// pays no fee on self-investment.
//
// The price is then re-derived from the enlarged supply (NAV unchanged,
// more units, lower price) and the mark is reset to that post-mint
// price, never the pre-mint one. Resetting to the pre-mint price would
// let the mint itself register as a new gain next cycle.
func (b *Book) crystallizeFee(nav, unitPrice decimal.Decimal) decimal.Decimal {
	f := b.Fund
	// Comparing at the mark's stored precision keeps the engine
	// idempotent: the re-derived price rounds to exactly the new mark.
	if !unitPrice.Round(6).GreaterThan(f.HighWaterMark) || !f.TotalUnits.IsPositive() || len(b.Investors) == 0 {
		return unitPrice
	}
	manager := b.Manager()
	if manager == nil {
		return unitPrice
	}
	nonManagerUnits := f.TotalUnits.Sub(manager.Units)
	if !nonManagerUnits.IsPositive() {
		return unitPrice
	}

	gainPerUnit := unitPrice.Sub(f.HighWaterMark)
	feeValue := gainPerUnit.Mul(nonManagerUnits).Mul(f.PerfFeeRate)
	feeUnits := feeValue.Div(unitPrice)
	manager.Units = manager.Units.Add(feeUnits)
	f.TotalUnits = f.TotalUnits.Add(feeUnits)

	unitPrice = nav.Div(f.TotalUnits)
	f.HighWaterMark = unitPrice.Round(6)
	log.Printf("performance fee crystallized: %s div (%s units minted to %s)",
		feeValue.Round(2), feeUnits.Round(4), manager.Name)
	return unitPrice
}
