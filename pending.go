package fund

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RequestKind discriminates pending requests and history entries.
type RequestKind string

const (
	Deposit  RequestKind = "deposit"
	Withdraw RequestKind = "withdraw"
)

// Pending is an investor's outstanding deposit or withdrawal request.
// The divine-equivalent amount and the unit price are frozen at creation
// time, so a later NAV move between request and settlement changes
// neither the units exchanged nor the price paid. At most one request
// per investor can be outstanding.
type Pending struct {
	Kind           RequestKind     `json:"type"`
	Amount         decimal.Decimal `json:"amount"` // divine equivalent, 2dp
	OriginalAmount decimal.Decimal `json:"original_amount"`
	Currency       string          `json:"currency"`
	Date           Date            `json:"date"`
	LockedPrice    decimal.Decimal `json:"locked_price"` // 6dp
}

// CreatePending opens a deposit or withdrawal request for an investor,
// locking the unit price derived from the NAV at this moment.
//
// It fails when the investor is unknown, already has a pending request,
// or the currency has no exchange rate. Withdrawals additionally fail
// when the requested divine equivalent exceeds the investor's current
// position value. No state is mutated on failure.
func (b *Book) CreatePending(name string, amount decimal.Decimal, currency string, nav decimal.Decimal, rates Rates, kind RequestKind) (*Pending, error) {
	unitPrice := b.Fund.UnitPriceFor(nav)

	inv := b.Find(name)
	if inv == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInvestor, name)
	}
	if inv.Pending != nil {
		return nil, fmt.Errorf("%w: %s has a pending %s", ErrPendingExists, inv.Name, inv.Pending.Kind)
	}

	divEquivalent, ok := rates.ToDivine(amount, currency)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoRate, currency)
	}

	if kind == Withdraw {
		if value := inv.PositionValue(unitPrice); divEquivalent.GreaterThan(value) {
			return nil, fmt.Errorf("%w: requested %s div but position is worth %s div",
				ErrInsufficientValue, divEquivalent.Round(2), value.Round(2))
		}
	}

	inv.Pending = &Pending{
		Kind:           kind,
		Amount:         divEquivalent.Round(2),
		OriginalAmount: amount,
		Currency:       currency,
		Date:           Today(),
		LockedPrice:    unitPrice.Round(6),
	}
	return inv.Pending, nil
}

// Fulfill settles an investor's pending request at its locked price.
//
// Deposits issue amount/lockedPrice units and grow the fund's balance of
// the request's currency by the original native amount, not the divine
// equivalent. Withdrawals burn units, scale the investor's cost basis by
// the fraction of the position redeemed, and shrink the currency balance
// by the original amount. Both append one history entry and clear the
// pending slot.
//
// Derived figures (value, share, profit) are intentionally left stale:
// the caller batches any number of fulfillments and then runs Recalc
// once with the current NAV.
func (b *Book) Fulfill(name string) (*HistoryEntry, error) {
	inv := b.Find(name)
	if inv == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInvestor, name)
	}
	p := inv.Pending
	if p == nil {
		return nil, fmt.Errorf("%w for %s", ErrNoPending, inv.Name)
	}

	switch p.Kind {
	case Deposit:
		issued := p.Amount.Div(p.LockedPrice)
		inv.Units = inv.Units.Add(issued)
		inv.Deposited = inv.Deposited.Add(p.Amount)
		b.Fund.TotalUnits = b.Fund.TotalUnits.Add(issued)
		b.Fund.Credit(p.Currency, p.OriginalAmount)
	case Withdraw:
		burned := p.Amount.Div(p.LockedPrice)
		before := inv.Units
		inv.Units = inv.Units.Sub(burned)
		if before.IsPositive() {
			remaining := decimal.NewFromInt(1).Sub(burned.Div(before))
			inv.Deposited = inv.Deposited.Mul(remaining).Round(2)
		} else {
			inv.Deposited = decimal.Zero
		}
		b.Fund.TotalUnits = b.Fund.TotalUnits.Sub(burned)
		b.Fund.Credit(p.Currency, p.OriginalAmount.Neg())
	default:
		return nil, fmt.Errorf("unknown pending request type %q", p.Kind)
	}

	entry := HistoryEntry{
		Kind:      p.Kind,
		Amount:    p.Amount,
		Date:      Today(),
		UnitPrice: p.LockedPrice,
	}
	if p.Currency != Divine {
		entry.Currency = p.Currency
		entry.OriginalAmount = p.OriginalAmount
	}
	inv.History = append(inv.History, entry)
	inv.Pending = nil
	return &entry, nil
}

// FulfillAll settles every outstanding request and reports how many were
// settled. The caller runs Recalc afterwards.
func (b *Book) FulfillAll() (int, error) {
	n := 0
	for _, inv := range b.Investors {
		if inv.Pending == nil {
			continue
		}
		if _, err := b.Fulfill(inv.Name); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
