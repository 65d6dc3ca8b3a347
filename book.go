package fund

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Validation errors returned by book operations. They abort the single
// offending operation only; the taxonomy lets callers keep a batch run
// going after reporting them.
var (
	ErrUnknownInvestor   = errors.New("unknown investor")
	ErrDuplicateInvestor = errors.New("investor already exists")
	ErrPendingExists     = errors.New("a pending request already exists")
	ErrNoPending         = errors.New("no pending request")
	ErrNoRate            = errors.New("no exchange rate for currency")
	ErrInsufficientValue = errors.New("requested amount exceeds position value")
)

// Book is the fund's complete private ledger: the fund-wide state plus
// every investor. It is the unit of persistence and mutation; one
// operator mutates it serially within a run.
type Book struct {
	Fund      *Fund       `json:"fund"`
	Investors []*Investor `json:"investors"`
}

// NewBook creates an empty book with a default fund.
func NewBook() *Book {
	return &Book{Fund: NewFund()}
}

// Find returns the investor with this name (case-insensitive), or nil.
func (b *Book) Find(name string) *Investor {
	for _, inv := range b.Investors {
		if SameName(inv.Name, name) {
			return inv
		}
	}
	return nil
}

// Manager returns the investor flagged as fund manager, the sole
// recipient of crystallized performance-fee units. Exactly one investor
// carries the flag; migrate enforces that on load.
func (b *Book) Manager() *Investor {
	for _, inv := range b.Investors {
		if inv.Manager {
			return inv
		}
	}
	return nil
}

// CreateInvestor registers a new investor with no position and a fresh
// invite code. The first investor ever created becomes the manager.
func (b *Book) CreateInvestor(name string) (*Investor, error) {
	if b.Find(name) != nil {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateInvestor, name)
	}
	code := NewInviteCode()
	inv := &Investor{
		Name:    name,
		Code:    code,
		Hash:    HashCode(code),
		Manager: len(b.Investors) == 0,
	}
	b.Investors = append(b.Investors, inv)
	return inv, nil
}

// RegenerateCode replaces an investor's invite code and hash. The old
// code stops identifying them immediately.
func (b *Book) RegenerateCode(name string) (*Investor, error) {
	inv := b.Find(name)
	if inv == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInvestor, name)
	}
	inv.Code = NewInviteCode()
	inv.Hash = HashCode(inv.Code)
	return inv, nil
}

// migrate fixes up a book decoded from an older snapshot: funds with
// missing terms, and investor lists predating the explicit manager flag
// (where "first in the list" was the implicit rule).
func (b *Book) migrate() {
	if b.Fund == nil {
		b.Fund = NewFund()
	}
	b.Fund.migrate()
	if b.Manager() == nil && len(b.Investors) > 0 {
		b.Investors[0].Manager = true
	}
	// a single manager; extra flags would double-pay fees.
	seen := false
	for _, inv := range b.Investors {
		if inv.Manager {
			if seen {
				inv.Manager = false
			}
			seen = true
		}
	}
}

// Public is the projection of the book that is safe to distribute to
// investors: plaintext invite codes are stripped, hashes remain.
type Public struct {
	Fund      *Fund             `json:"fund"`
	Investors []*PublicInvestor `json:"investors"`
}

// PublicInvestor mirrors Investor minus the plaintext code.
type PublicInvestor struct {
	Name      string           `json:"name"`
	Hash      string           `json:"hash"`
	Units     decimal.Decimal  `json:"units"`
	Deposited decimal.Decimal  `json:"deposited"`
	Value     decimal.Decimal  `json:"value"`
	Share     decimal.Decimal  `json:"share"`
	Profit    decimal.Decimal  `json:"profit"`
	PctChange *decimal.Decimal `json:"pct_change"`
	Pending   *Pending         `json:"pending"`
	History   []HistoryEntry   `json:"history"`
}

// PublicView builds the investor-facing projection of the book.
func (b *Book) PublicView() *Public {
	pub := &Public{Fund: b.Fund}
	for _, inv := range b.Investors {
		pub.Investors = append(pub.Investors, &PublicInvestor{
			Name:      inv.Name,
			Hash:      inv.Hash,
			Units:     inv.Units,
			Deposited: inv.Deposited,
			Value:     inv.Value,
			Share:     inv.Share,
			Profit:    inv.Profit,
			PctChange: inv.PctChange,
			Pending:   inv.Pending,
			History:   inv.History,
		})
	}
	return pub
}
