package fund

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file persists the book as a single JSON snapshot. The snapshot is
// meant to live in a private git repository next to the dashboard, so it
// is indented, field-ordered, and written atomically.

// DecodeBook reads a private snapshot. legacyDivines seeds the divine
// balance for snapshots that predate per-currency balances (the caller
// knows it from the previous dashboard).
func DecodeBook(r io.Reader, legacyDivines decimal.Decimal) (*Book, error) {
	var b Book
	dec := json.NewDecoder(r)
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("could not decode book: %w", err)
	}
	legacy := b.Fund != nil && b.Fund.Currencies == nil
	if b.Fund == nil {
		b.Fund = NewFund()
	}
	if legacy {
		b.Fund.Currencies = Currencies{Divine: legacyDivines}
	}
	b.migrate()
	return &b, nil
}

// EncodeBook writes the private snapshot, plaintext invite codes
// included. Never publish this stream; use PublicView for anything an
// investor can reach.
func EncodeBook(w io.Writer, b *Book) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// LoadBook reads the snapshot file, returning an empty book when the
// file does not exist yet.
func LoadBook(path string, legacyDivines decimal.Decimal) (*Book, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewBook(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open book %q: %w", path, err)
	}
	defer f.Close()
	b, err := DecodeBook(f, legacyDivines)
	if err != nil {
		return nil, fmt.Errorf("in %q: %w", path, err)
	}
	return b, nil
}

// SaveBook writes the snapshot atomically: a temp file in the same
// directory, then rename. A crash mid-write never corrupts the ledger.
func SaveBook(path string, b *Book) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".book-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := EncodeBook(tmp, b); err != nil {
		tmp.Close()
		return fmt.Errorf("could not encode book: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
