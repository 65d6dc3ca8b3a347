package poe2

import (
	"encoding/csv"
	"io"
)

// ExportCSV writes the trade log as CSV, one row per sale, newest order
// preserved. Div equivalents are left blank when no exchange rate was
// known at fetch time.
func ExportCSV(w io.Writer, trades []Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "item_name", "base_type", "rarity", "sale_price", "currency", "div_equivalent"}); err != nil {
		return err
	}
	for _, t := range trades {
		div := ""
		if t.DivEquivalent != nil {
			div = t.DivEquivalent.String()
		}
		row := []string{
			t.Timestamp,
			t.ItemName,
			t.BaseType,
			t.Rarity,
			t.SalePrice.String(),
			t.Currency,
			div,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
