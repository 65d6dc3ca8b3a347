package poe2

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/exilefund/fund"
)

const historyPayload = `{
  "result": [
    {
      "time": "2026-08-29T10:00:00Z",
      "item_id": "abc123",
      "item": {
        "name": "Doom Spiral",
        "typeLine": "Gold Ring",
        "baseType": "Gold Ring",
        "rarity": "Rare",
        "ilvl": 81,
        "corrupted": true,
        "explicitMods": ["+42 to maximum Life"]
      },
      "price": {"currency": "divine", "amount": 3.5}
    },
    {
      "time": "2026-08-29T09:00:00Z",
      "item_id": "def456",
      "item": {"typeLine": "Exalted Orb"},
      "price": {"currency": "exalted", "amount": 200}
    },
    {
      "time": "2026-08-29T08:00:00Z",
      "item_id": "ghi789",
      "item": {"name": "Oddity"},
      "price": {"currency": "unheard-of-orb", "amount": 5}
    }
  ]
}`

func TestTradeHistory(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(historyPayload))
	}))

	trades, err := c.TradeHistory(testRates(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(trades) != 3 {
		t.Fatalf("got %d trades, want 3", len(trades))
	}

	first := trades[0]
	if first.ItemName != "Doom Spiral" || first.Rarity != "Rare" || !first.Corrupted {
		t.Errorf("item metadata lost: %+v", first.ItemInfo)
	}
	if first.DivEquivalent == nil || !first.DivEquivalent.Equal(decimal.RequireFromString("3.5")) {
		t.Errorf("divine sale: div equivalent = %v, want 3.5", first.DivEquivalent)
	}

	second := trades[1]
	if second.ItemName != "Exalted Orb" {
		t.Errorf("name fallback to typeLine failed: %q", second.ItemName)
	}
	if second.DivEquivalent == nil || !second.DivEquivalent.Equal(decimal.RequireFromString("2.5")) {
		t.Errorf("200 exalted = %v div, want 2.5", second.DivEquivalent)
	}

	// An unrated currency still records the sale, just without a
	// divine equivalent.
	third := trades[2]
	if third.DivEquivalent != nil {
		t.Errorf("unrated currency got a div equivalent: %v", third.DivEquivalent)
	}
	if !third.SalePrice.Equal(decimal.RequireFromString("5")) || third.Currency != "unheard-of-orb" {
		t.Errorf("native price lost: %s %s", third.SalePrice, third.Currency)
	}
}

func TestNewTrades(t *testing.T) {
	seen := []Trade{{ItemID: "a"}, {ItemID: "b"}}
	fetched := []Trade{
		{ItemID: "a"}, // already recorded
		{ItemID: "c"},
		{ItemID: ""}, // no id: cannot dedupe, dropped
		{ItemID: "c"},
	}
	fresh := NewTrades(fetched, seen)
	if len(fresh) != 2 {
		t.Fatalf("got %d fresh trades, want 2", len(fresh))
	}
	for _, tr := range fresh {
		if tr.ItemID != "c" {
			t.Errorf("unexpected fresh trade %q", tr.ItemID)
		}
	}
}

func TestRevenue(t *testing.T) {
	trades := []Trade{
		{Currency: "divine", SalePrice: decimal.RequireFromString("2")},
		{Currency: "divine", SalePrice: decimal.RequireFromString("1.5")},
		{Currency: "exalted", SalePrice: decimal.RequireFromString("100")},
		{Currency: "", SalePrice: decimal.RequireFromString("9")},
		{Currency: "chaos", SalePrice: decimal.Zero},
	}
	rev := Revenue(trades)
	if want := decimal.RequireFromString("3.5"); !rev[fund.Divine].Equal(want) {
		t.Errorf("divine revenue = %s, want %s", rev[fund.Divine], want)
	}
	if want := decimal.RequireFromString("100"); !rev["exalted"].Equal(want) {
		t.Errorf("exalted revenue = %s, want %s", rev["exalted"], want)
	}
	if len(rev) != 2 {
		t.Errorf("revenue has %d currencies, want 2: %v", len(rev), rev)
	}
}

func TestMergeTradesCopies(t *testing.T) {
	backing := make([]Trade, 1, 4)
	backing[0] = Trade{ItemID: "a"}
	fresh := backing[:1]
	seen := []Trade{{ItemID: "b"}, {ItemID: "c"}}

	merged := MergeTrades(fresh, seen)

	want := []string{"a", "b", "c"}
	if len(merged) != len(want) {
		t.Fatalf("got %d trades, want %d", len(merged), len(want))
	}
	for i, id := range want {
		if merged[i].ItemID != id {
			t.Errorf("merged[%d] = %q, want %q", i, merged[i].ItemID, id)
		}
	}

	// fresh has spare capacity; the merge must not grow into it.
	if extra := backing[:2]; extra[1].ItemID == "b" {
		t.Error("merge wrote into fresh's backing array")
	}
	merged[0].ItemID = "mutated"
	if fresh[0].ItemID != "a" {
		t.Error("merged result aliases the fresh slice")
	}
}
