package fund

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/shopspring/decimal"
)

// Investor is one participant of the fund. Units is the investor's claim
// on the fund; Deposited is the cumulative divine-equivalent principal,
// scaled down proportionally on withdrawals to preserve cost basis.
//
// Code is the plaintext invite code. It lives only in the private
// snapshot and is shown once to the operator; every public projection
// carries the sha256 Hash instead.
type Investor struct {
	Name      string           `json:"name"`
	Code      string           `json:"code,omitempty"`
	Hash      string           `json:"hash"`
	Manager   bool             `json:"manager,omitempty"`
	Units     decimal.Decimal  `json:"units"`
	Deposited decimal.Decimal  `json:"deposited"`
	Value     decimal.Decimal  `json:"value"`
	Share     decimal.Decimal  `json:"share"`
	Profit    decimal.Decimal  `json:"profit"`
	PctChange *decimal.Decimal `json:"pct_change"`
	Pending   *Pending         `json:"pending"`
	History   []HistoryEntry   `json:"history"`
}

// HistoryEntry is one settled deposit or withdrawal. The log is
// append-only; entries are never edited after fulfillment.
type HistoryEntry struct {
	Kind           RequestKind     `json:"type"`
	Amount         decimal.Decimal `json:"amount"` // divine equivalent
	Date           Date            `json:"date"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Currency       string          `json:"currency,omitempty"`
	OriginalAmount decimal.Decimal `json:"original_amount,omitempty"`
}

// NewInviteCode generates a fresh URL-safe invite code.
func NewInviteCode() string {
	buf := make([]byte, 16)
	rand.Read(buf)
	return base64.RawURLEncoding.EncodeToString(buf)
}

// HashCode derives the one-way public identifier from a plaintext code.
func HashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// SameName compares investor names case-insensitively.
func SameName(a, b string) bool { return strings.EqualFold(a, b) }

// PositionValue is the current worth of the investor's units at the
// given unit price, unrounded.
func (inv *Investor) PositionValue(unitPrice decimal.Decimal) decimal.Decimal {
	return inv.Units.Mul(unitPrice)
}
