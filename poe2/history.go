package poe2

import (
	"github.com/shopspring/decimal"

	"github.com/exilefund/fund"
)

// Trade is one completed sale from the account's trade history. The
// monetary fields feed the fund's currency balances; everything else is
// dashboard display data.
type Trade struct {
	Timestamp string `json:"timestamp"`
	ItemInfo
	SalePrice     decimal.Decimal  `json:"sale_price"`
	Currency      string           `json:"currency"`
	DivEquivalent *decimal.Decimal `json:"div_equivalent"` // nil when unrateable
	ItemID        string           `json:"item_id"`
}

// rawTrade is a history entry as the trade API serves it.
type rawTrade struct {
	Time   string  `json:"time"`
	ItemID string  `json:"item_id"`
	Item   rawItem `json:"item"`
	Price  struct {
		Currency string          `json:"currency"`
		Amount   decimal.Decimal `json:"amount"`
	} `json:"price"`
}

func (t rawTrade) parse(rates fund.Rates) Trade {
	trade := Trade{
		Timestamp: t.Time,
		ItemInfo:  t.Item.info(),
		SalePrice: t.Price.Amount,
		Currency:  t.Price.Currency,
		ItemID:    t.ItemID,
	}
	if div, ok := rates.ToDivine(t.Price.Amount, t.Price.Currency); ok {
		trade.DivEquivalent = &div
	}
	return trade
}

// TradeHistory fetches the account's completed trades, most recent
// first, with divine equivalents resolved against the given rates.
func (c *Client) TradeHistory(rates fund.Rates) ([]Trade, error) {
	var payload struct {
		Result []rawTrade `json:"result"`
	}
	if err := c.jget(c.historyURL, &payload); err != nil {
		return nil, err
	}
	trades := make([]Trade, 0, len(payload.Result))
	for _, raw := range payload.Result {
		trades = append(trades, raw.parse(rates))
	}
	return trades, nil
}

// NewTrades returns the fetched trades whose item id has not been seen
// before. Trades without an item id cannot be deduplicated and are
// dropped.
func NewTrades(fetched, seen []Trade) []Trade {
	seenIDs := make(map[string]struct{}, len(seen))
	for _, t := range seen {
		seenIDs[t.ItemID] = struct{}{}
	}
	var fresh []Trade
	for _, t := range fetched {
		if t.ItemID == "" {
			continue
		}
		if _, ok := seenIDs[t.ItemID]; !ok {
			fresh = append(fresh, t)
		}
	}
	return fresh
}

// MergeTrades concatenates fresh trades ahead of the already-seen ones
// into a new slice, so neither input's backing array is shared with the
// result.
func MergeTrades(fresh, seen []Trade) []Trade {
	merged := make([]Trade, 0, len(fresh)+len(seen))
	merged = append(merged, fresh...)
	return append(merged, seen...)
}

// Revenue aggregates sale prices per native currency. The caller credits
// these to the fund's balances.
func Revenue(trades []Trade) fund.Currencies {
	revenue := fund.Currencies{}
	for _, t := range trades {
		if t.Currency == "" || !t.SalePrice.IsPositive() {
			continue
		}
		revenue[t.Currency] = revenue[t.Currency].Add(t.SalePrice)
	}
	return revenue
}
