package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/exilefund/fund"
	"github.com/exilefund/fund/renderer"
)

type statementCmd struct{}

func (*statementCmd) Name() string     { return "statement" }
func (*statementCmd) Synopsis() string { return "display one investor's statement" }
func (*statementCmd) Usage() string {
	return `p2f statement <name>

  Displays one investor's position, pending request and history.
`
}

func (c *statementCmd) SetFlags(f *flag.FlagSet) {}

func (c *statementCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
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
	inv := book.Find(f.Arg(0))
	if inv == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown investor %q\n", f.Arg(0))
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderStatement(&renderer.Statement{
		Date:      fund.Today(),
		Investor:  inv,
		UnitPrice: book.Fund.UnitPrice,
	}))
	return subcommands.ExitSuccess
}
