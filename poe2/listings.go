package poe2

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/exilefund/fund"
)

// The fetch endpoint accepts at most this many ids per call.
const fetchBatchSize = 10

// Listing is one item currently listed on the marketplace by the
// account. Listed value is illiquid: the NAV haircuts it.
type Listing struct {
	ItemID string `json:"item_id"`
	ItemInfo
	ListedPrice   decimal.Decimal  `json:"listed_price"`
	Currency      string           `json:"currency"`
	DivEquivalent *decimal.Decimal `json:"div_equivalent"`
	Indexed       string           `json:"indexed"`
	Stash         string           `json:"stash"`
}

type rawListing struct {
	ID      string  `json:"id"`
	Item    rawItem `json:"item"`
	Listing struct {
		Indexed string `json:"indexed"`
		Price   struct {
			Currency string          `json:"currency"`
			Amount   decimal.Decimal `json:"amount"`
		} `json:"price"`
		Stash struct {
			Name string `json:"name"`
		} `json:"stash"`
	} `json:"listing"`
}

func (l rawListing) parse(rates fund.Rates) Listing {
	listing := Listing{
		ItemID:      l.ID,
		ItemInfo:    l.Item.info(),
		ListedPrice: l.Listing.Price.Amount,
		Currency:    l.Listing.Price.Currency,
		Indexed:     l.Listing.Indexed,
		Stash:       l.Listing.Stash.Name,
	}
	if div, ok := rates.ToDivine(l.Listing.Price.Amount, l.Listing.Price.Currency); ok {
		listing.DivEquivalent = &div
	}
	return listing
}

// Listings fetches the account's active marketplace listings: one search
// for the ids, then batched fetches of at most ten items with a pause in
// between to stay clear of the rate limiter.
func (c *Client) Listings(rates fund.Rates) ([]Listing, error) {
	query := map[string]any{
		"query": map[string]any{
			"status": map[string]any{"option": "securable"},
			"stats":  []any{map[string]any{"type": "and", "filters": []any{}, "disabled": false}},
			"filters": map[string]any{
				"trade_filters": map[string]any{
					"filters":  map[string]any{"account": map[string]any{"input": c.account}},
					"disabled": false,
				},
			},
		},
		"sort": map[string]any{"price": "asc"},
	}

	resp, err := c.do(http.MethodPost, c.searchURL, query)
	if err != nil {
		return nil, err
	}
	var search struct {
		ID     string   `json:"id"`
		Result []string `json:"result"`
	}
	if err := decodeBody(resp, &search); err != nil {
		return nil, err
	}
	if len(search.Result) == 0 {
		return nil, nil
	}

	var listings []Listing
	for i := 0; i < len(search.Result); i += fetchBatchSize {
		batch := search.Result[i:min(i+fetchBatchSize, len(search.Result))]
		addr := fmt.Sprintf(c.fetchURL, strings.Join(batch, ","), search.ID)
		var fetched struct {
			Result []rawListing `json:"result"`
		}
		if err := c.jget(addr, &fetched); err != nil {
			return nil, err
		}
		for _, raw := range fetched.Result {
			listings = append(listings, raw.parse(rates))
		}
		if i+fetchBatchSize < len(search.Result) {
			c.sleep(2 * time.Second)
		}
	}
	return listings, nil
}

// ListedValue sums the divine equivalents of all listings, skipping
// unrateable currencies.
func ListedValue(listings []Listing) decimal.Decimal {
	total := decimal.Zero
	for _, l := range listings {
		if l.DivEquivalent != nil {
			total = total.Add(*l.DivEquivalent)
		}
	}
	return total
}
