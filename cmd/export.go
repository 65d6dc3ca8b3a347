package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/exilefund/fund/poe2"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the sales log as CSV" }
func (*exportCmd) Usage() string {
	return `p2f export [-o <file>]

  Exports every recorded sale as CSV, for spreadsheets. Writes to
  stdout by default.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to stdout.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	trades, err := poe2.LoadTrades(tradesPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load trades: %v\n", err)
		return subcommands.ExitFailure
	}

	w := os.Stdout
	if c.output != "" {
		w, err = os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not create %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer w.Close()
	}

	if err := poe2.ExportCSV(w, trades); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not export: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.output != "" {
		fmt.Printf("Exported %d trade(s) to %s\n", len(trades), c.output)
	}
	return subcommands.ExitSuccess
}

// exportTradesCSV keeps a spreadsheet-ready copy of the sales log next
// to the JSON one. fetch rewrites it on every run.
func exportTradesCSV(trades []poe2.Trade) error {
	file, err := os.Create(filepath.Join(*dataDir, "trades.csv"))
	if err != nil {
		return err
	}
	if err := poe2.ExportCSV(file, trades); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
