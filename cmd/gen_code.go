package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type genCodeCmd struct{}

func (*genCodeCmd) Name() string     { return "gen-code" }
func (*genCodeCmd) Synopsis() string { return "regenerate an investor's invite code" }
func (*genCodeCmd) Usage() string {
	return `p2f gen-code <name>

  Mints a fresh invite code for an investor and invalidates the old one.
  Use when a code leaks or was never delivered.
`
}

func (c *genCodeCmd) SetFlags(f *flag.FlagSet) {}

func (c *genCodeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	inv, err := book.RegenerateCode(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveBook(book); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save book: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("New invite code for %q: %s\n", inv.Name, inv.Code)
	return subcommands.ExitSuccess
}
