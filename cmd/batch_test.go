package cmd

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/exilefund/fund"
)

func testBook(t *testing.T) *fund.Book {
	t.Helper()
	b := fund.NewBook()
	if _, err := b.CreateInvestor("Alice"); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestApplyOpLifecycle(t *testing.T) {
	b := testBook(t)
	rates := fund.DefaultRates()
	listed := decimal.Zero

	ops := []batchOp{
		{Action: "add-investor", Name: "Bob"},
		{Action: "deposit", Name: "Bob", Amount: decimal.RequireFromString("50")},
		{Action: "fulfill", Name: "Bob"},
		{Action: "withdraw", Name: "Bob", Amount: decimal.RequireFromString("10")},
		{Action: "fulfill", Name: "Bob"},
		{Action: "gen-code", Name: "Bob"},
	}
	for i, op := range ops {
		res := batchResult{Action: op.Action, Name: op.Name}
		if err := applyOp(b, op, rates, listed, &res); err != nil {
			t.Fatalf("op %d (%s): %v", i, op.Action, err)
		}
		if op.Action == "add-investor" && res.Code == "" {
			t.Error("add-investor must report the invite code")
		}
	}

	bob := b.Find("Bob")
	if bob == nil {
		t.Fatal("Bob not created")
	}
	if want := decimal.RequireFromString("40"); !bob.Units.Equal(want) {
		t.Errorf("units = %s, want %s (50 in, 10 out at price 1)", bob.Units, want)
	}
	if bob.Pending != nil {
		t.Error("pending left after fulfillment")
	}
}

func TestApplyOpFailures(t *testing.T) {
	b := testBook(t)
	rates := fund.DefaultRates()

	tests := []struct {
		name string
		op   batchOp
	}{
		{"unknown action", batchOp{Action: "liquidate", Name: "Alice"}},
		{"unknown investor", batchOp{Action: "fulfill", Name: "Nobody"}},
		{"duplicate investor", batchOp{Action: "add-investor", Name: "alice"}},
		{"unrated currency", batchOp{Action: "deposit", Name: "Alice",
			Amount: decimal.NewFromInt(1), Currency: "mirror"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := batchResult{}
			if err := applyOp(b, tc.op, rates, decimal.Zero, &res); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestSetBalanceOp(t *testing.T) {
	b := testBook(t)
	b.Fund.Credit("exalted", decimal.NewFromInt(10))

	op := batchOp{Action: "set-balance", Currency: "exalted",
		Amount: decimal.NewFromInt(250)}
	res := batchResult{}
	if err := applyOp(b, op, fund.DefaultRates(), decimal.Zero, &res); err != nil {
		t.Fatal(err)
	}
	if want := decimal.NewFromInt(250); !b.Fund.Currencies["exalted"].Equal(want) {
		t.Errorf("exalted balance = %s, want %s (overwrite, not credit)", b.Fund.Currencies["exalted"], want)
	}

	// defaults to divine, rejects negatives
	op = batchOp{Action: "set-balance", Amount: decimal.NewFromInt(5)}
	if err := applyOp(b, op, fund.DefaultRates(), decimal.Zero, &res); err != nil {
		t.Fatal(err)
	}
	if want := decimal.NewFromInt(5); !b.Fund.Currencies[fund.Divine].Equal(want) {
		t.Errorf("divine balance = %s, want %s", b.Fund.Currencies[fund.Divine], want)
	}
	op = batchOp{Action: "set-balance", Amount: decimal.NewFromInt(-1)}
	if err := applyOp(b, op, fund.DefaultRates(), decimal.Zero, &res); err == nil {
		t.Error("negative balance must be rejected")
	}
}

func TestWithdrawOpDefaultsToDivine(t *testing.T) {
	b := testBook(t)
	alice := b.Find("Alice")
	alice.Units = decimal.NewFromInt(100)
	alice.Deposited = decimal.NewFromInt(100)
	b.Fund.TotalUnits = alice.Units
	b.Fund.Credit(fund.Divine, decimal.NewFromInt(100))

	op := batchOp{Action: "withdraw", Name: "Alice", Amount: decimal.NewFromInt(10)}
	res := batchResult{}
	if err := applyOp(b, op, fund.DefaultRates(), decimal.Zero, &res); err != nil {
		t.Fatal(err)
	}
	if alice.Pending.Currency != fund.Divine {
		t.Errorf("withdrawal currency = %q, want divine when none requested", alice.Pending.Currency)
	}
}
