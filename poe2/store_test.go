package poe2

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTradesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.json")

	// Missing file is an empty log.
	trades, err := LoadTrades(path)
	if err != nil {
		t.Fatal(err)
	}
	if trades != nil {
		t.Fatalf("got %d trades from a missing file", len(trades))
	}

	div := decimal.RequireFromString("2.5")
	want := []Trade{
		{
			Timestamp:     "2026-08-29T10:00:00Z",
			ItemInfo:      ItemInfo{ItemName: "Doom Spiral", Rarity: "Rare"},
			SalePrice:     decimal.RequireFromString("200"),
			Currency:      "exalted",
			DivEquivalent: &div,
			ItemID:        "abc",
		},
	}
	if err := SaveTrades(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := LoadTrades(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d trades, want 1", len(got))
	}
	if got[0].ItemID != "abc" || got[0].ItemName != "Doom Spiral" {
		t.Errorf("trade = %+v", got[0])
	}
	if got[0].DivEquivalent == nil || !got[0].DivEquivalent.Equal(div) {
		t.Errorf("div equivalent = %v, want %s", got[0].DivEquivalent, div)
	}
}

func TestExportCSV(t *testing.T) {
	div := decimal.RequireFromString("2.5")
	trades := []Trade{
		{
			Timestamp:     "2026-08-29T10:00:00Z",
			ItemInfo:      ItemInfo{ItemName: "Doom Spiral", BaseType: "Gold Ring", Rarity: "Rare"},
			SalePrice:     decimal.RequireFromString("200"),
			Currency:      "exalted",
			DivEquivalent: &div,
		},
		{
			Timestamp: "2026-08-29T09:00:00Z",
			ItemInfo:  ItemInfo{ItemName: "Oddity"},
			SalePrice: decimal.RequireFromString("5"),
			Currency:  "unheard-of-orb",
		},
	}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, trades); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows:\n%s", len(lines), buf.String())
	}
	if lines[0] != "timestamp,item_name,base_type,rarity,sale_price,currency,div_equivalent" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "2026-08-29T10:00:00Z,Doom Spiral,Gold Ring,Rare,200,exalted,2.5" {
		t.Errorf("row 1 = %q", lines[1])
	}
	// No rate: the div column stays empty rather than lying with a 0.
	if !strings.HasSuffix(lines[2], "unheard-of-orb,") {
		t.Errorf("row 2 = %q, want an empty div_equivalent", lines[2])
	}
}
