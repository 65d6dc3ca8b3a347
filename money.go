package fund

import (
	"sync"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Divine is the fund's common unit. Every other currency is converted to
// divine-orb equivalents for accounting.
const Divine = "divine"

// Game currencies are not ISO codes, so the well-known ones are
// registered with go-money up front. Anything else (the trade site keeps
// adding orbs) is registered lazily on first use.
func init() {
	for _, code := range []string{
		Divine, "exalted", "chaos", "annul", "regal", "vaal",
		"alchemy", "chance", "augmentation", "transmute", "mirror",
	} {
		registerCurrency(code)
	}
}

var registerMu sync.Mutex

func registerCurrency(code string) *money.Currency {
	registerMu.Lock()
	defer registerMu.Unlock()
	if cur := money.GetCurrency(code); cur != nil {
		return cur
	}
	return money.AddCurrency(code, code, "1 $", ".", ",", 2)
}

// Money represents an amount in a specific game currency. It is a display
// and bookkeeping pair; all arithmetic happens on the decimal value.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M builds a Money from any numeric value and a currency code.
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

func newDecimal(v any) decimal.Decimal {
	switch x := v.(type) {
	case decimal.Decimal:
		return x
	case float32:
		return decimal.NewFromFloat32(x)
	case float64:
		return decimal.NewFromFloat(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case int32:
		return decimal.NewFromInt32(x)
	case int64:
		return decimal.NewFromInt(x)
	default:
		panic("unsupported numeric type")
	}
}

// currency returns a never-nil go-money currency for this code.
func (m Money) currency() money.Currency {
	return *registerCurrency(m.cur)
}

// String renders the amount with the currency's formatter, e.g. "1,250.00 divine".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string        { return m.cur }
func (m Money) Amount() decimal.Decimal { return m.value }
func (m Money) IsZero() bool            { return m.value.IsZero() }
func (m Money) IsPositive() bool        { return m.value.IsPositive() }
func (m Money) Equal(n Money) bool      { return m.value.Equal(n.value) && m.cur == n.cur }
