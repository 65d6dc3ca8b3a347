package poe2

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// listingsHandler serves a search with n ids and echoes each fetched id
// back as a one-divine listing.
func listingsHandler(t *testing.T, n int, fetchedBatches *[][]string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/search"):
			var query map[string]any
			if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
				t.Errorf("search payload is not JSON: %v", err)
			}
			ids := make([]string, n)
			for i := range ids {
				ids[i] = fmt.Sprintf("id%02d", i)
			}
			json.NewEncoder(w).Encode(map[string]any{"id": "queryid", "result": ids})
		case strings.HasPrefix(r.URL.Path, "/fetch"):
			ids := strings.Split(r.URL.Query().Get("ids"), ",")
			*fetchedBatches = append(*fetchedBatches, ids)
			if got := r.URL.Query().Get("query"); got != "queryid" {
				t.Errorf("fetch query id = %q, want %q", got, "queryid")
			}
			var result []map[string]any
			for _, id := range ids {
				result = append(result, map[string]any{
					"id":   id,
					"item": map[string]any{"name": "Item " + id},
					"listing": map[string]any{
						"indexed": "2026-08-29T10:00:00Z",
						"price":   map[string]any{"currency": "divine", "amount": 1},
						"stash":   map[string]any{"name": "Sell"},
					},
				})
			}
			json.NewEncoder(w).Encode(map[string]any{"result": result})
		default:
			t.Errorf("unexpected request %s", r.URL)
		}
	})
}

func TestListingsBatchesFetches(t *testing.T) {
	var batches [][]string
	c, sleeps := testClient(t, listingsHandler(t, 12, &batches))

	listings, err := c.Listings(testRates(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(listings) != 12 {
		t.Fatalf("got %d listings, want 12", len(listings))
	}
	if len(batches) != 2 || len(batches[0]) != 10 || len(batches[1]) != 2 {
		t.Errorf("batches = %v, want 10 then 2 ids", batches)
	}
	// One pause between the two fetches, none after the last.
	if len(*sleeps) != 1 || (*sleeps)[0] != 2*time.Second {
		t.Errorf("sleeps = %v, want one 2s pause", *sleeps)
	}

	first := listings[0]
	if first.ItemID != "id00" || first.ItemName != "Item id00" || first.Stash != "Sell" {
		t.Errorf("listing fields lost: %+v", first)
	}
	if first.DivEquivalent == nil || !first.DivEquivalent.Equal(decimal.NewFromInt(1)) {
		t.Errorf("div equivalent = %v, want 1", first.DivEquivalent)
	}
}

func TestListingsEmptySearch(t *testing.T) {
	var batches [][]string
	c, _ := testClient(t, listingsHandler(t, 0, &batches))

	listings, err := c.Listings(testRates(t))
	if err != nil {
		t.Fatal(err)
	}
	if listings != nil {
		t.Errorf("got %d listings, want none", len(listings))
	}
	if len(batches) != 0 {
		t.Error("fetch called despite an empty search result")
	}
}

func TestListedValue(t *testing.T) {
	one := decimal.NewFromInt(1)
	three := decimal.NewFromInt(3)
	listings := []Listing{
		{DivEquivalent: &one},
		{DivEquivalent: &three},
		{DivEquivalent: nil}, // unrated, excluded
	}
	if got := ListedValue(listings); !got.Equal(decimal.NewFromInt(4)) {
		t.Errorf("ListedValue = %s, want 4", got)
	}
}
