package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type addInvestorCmd struct{}

func (*addInvestorCmd) Name() string     { return "add-investor" }
func (*addInvestorCmd) Synopsis() string { return "register a new investor" }
func (*addInvestorCmd) Usage() string {
	return `p2f add-investor <name>

  Registers a new investor and prints their invite code. The first
  investor ever registered becomes the fund's manager.
`
}

func (c *addInvestorCmd) SetFlags(f *flag.FlagSet) {}

func (c *addInvestorCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	inv, err := book.CreateInvestor(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveBook(book); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save book: %v\n", err)
		return subcommands.ExitFailure
	}

	role := "investor"
	if inv.Manager {
		role = "manager"
	}
	fmt.Printf("Registered %s %q with invite code %s\n", role, inv.Name, inv.Code)
	return subcommands.ExitSuccess
}
