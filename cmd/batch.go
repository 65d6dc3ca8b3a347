package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/exilefund/fund"
)

// batchOp is one operation in a batch payload.
type batchOp struct {
	Action   string          `json:"action"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// batchResult reports one operation's outcome.
type batchResult struct {
	Action string `json:"action"`
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	Code   string `json:"code,omitempty"`
}

type batchCmd struct {
	input string
}

func (*batchCmd) Name() string     { return "batch" }
func (*batchCmd) Synopsis() string { return "apply a JSON payload of fund operations" }
func (*batchCmd) Usage() string {
	return `p2f batch [-i <file>]

  Applies a JSON array of operations to the book in one go, then saves
  once. Reads stdin by default. Each operation is an object:

    {"action": "add-investor", "name": "alice"}
    {"action": "deposit",      "name": "alice", "amount": 50, "currency": "divine"}
    {"action": "withdraw",     "name": "alice", "amount": 10}
    {"action": "fulfill",      "name": "alice"}
    {"action": "gen-code",     "name": "alice"}
    {"action": "set-balance",  "amount": 250, "currency": "exalted"}

  set-balance overwrites a fund currency balance, for manual
  corrections after trades the fetcher never saw.

  Results are reported as a JSON array on stdout. A failed operation
  does not stop the batch.
`
}

func (c *batchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Payload file. Defaults to stdin.")
}

func (c *batchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var r io.Reader = os.Stdin
	if c.input != "" {
		file, err := os.Open(c.input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not open %q: %v\n", c.input, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		r = file
	}

	var ops []batchOp
	if err := json.NewDecoder(r).Decode(&ops); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not parse payload: %v\n", err)
		return subcommands.ExitUsageError
	}

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	book, err := LoadBook(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load book: %v\n", err)
		return subcommands.ExitFailure
	}

	rates, listed := currentMarket()

	results := make([]batchResult, 0, len(ops))
	failed := false
	for _, op := range ops {
		res := batchResult{Action: op.Action, Name: op.Name, OK: true}
		if err := applyOp(book, op, rates, listed, &res); err != nil {
			res.OK = false
			res.Error = err.Error()
			failed = true
		}
		results = append(results, res)
	}

	book.Recalc(book.Fund.NAV(rates, listed))
	if err := SaveBook(book); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save book: %v\n", err)
		return subcommands.ExitFailure
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if failed {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func applyOp(book *fund.Book, op batchOp, rates fund.Rates, listed decimal.Decimal, res *batchResult) error {
	switch op.Action {
	case "add-investor":
		inv, err := book.CreateInvestor(op.Name)
		if err != nil {
			return err
		}
		res.Code = inv.Code
	case "gen-code":
		inv, err := book.RegenerateCode(op.Name)
		if err != nil {
			return err
		}
		res.Code = inv.Code
	case "deposit", "withdraw":
		kind := fund.Deposit
		if op.Action == "withdraw" {
			kind = fund.Withdraw
		}
		currency := op.Currency
		if currency == "" {
			currency = fund.Divine
		}
		nav := book.Fund.NAV(rates, listed)
		_, err := book.CreatePending(op.Name, op.Amount, currency, nav, rates, kind)
		return err
	case "fulfill":
		_, err := book.Fulfill(op.Name)
		return err
	case "set-balance":
		if op.Amount.IsNegative() {
			return fmt.Errorf("balance cannot be negative, got %s", op.Amount)
		}
		currency := op.Currency
		if currency == "" {
			currency = fund.Divine
		}
		book.Fund.SetBalance(currency, op.Amount)
	default:
		return fmt.Errorf("unknown action %q", op.Action)
	}
	return nil
}
