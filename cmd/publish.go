package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/subcommands"

	"github.com/exilefund/fund"
)

type publishCmd struct {
	message string
}

func (*publishCmd) Name() string     { return "publish" }
func (*publishCmd) Synopsis() string { return "commit and push the dashboard to the data repository" }
func (*publishCmd) Usage() string {
	return `p2f publish [-m <message>]

  Publishes the data directory: git add, commit and push of the
  dashboard and sales files, plus the private book encrypted with
  FUND_ENCRYPT_KEY. Without a key the book is not published at all:
  it holds plaintext invite codes, and nothing published may.
`
}

func (c *publishCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.message, "m", "", "Commit message. Defaults to a timestamped one.")
}

func (c *publishCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	encrypted := cfg.EncryptKey != ""
	if encrypted {
		if err := fund.EncryptBookFile(bookPath(), cfg.EncryptKey); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	} else {
		fmt.Fprintln(os.Stderr, "Warning: FUND_ENCRYPT_KEY is not set, the private book stays local.")
	}
	candidates := publishFiles(encrypted)

	// git add fails on pathspecs that match nothing, and a first publish
	// may not have every file yet.
	var files []string
	for _, f := range candidates {
		if _, err := os.Stat(filepath.Join(*dataDir, f)); err == nil {
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		fmt.Println("Nothing to publish.")
		return subcommands.ExitSuccess
	}

	message := c.message
	if message == "" {
		message = fmt.Sprintf("fund update %s", time.Now().UTC().Format("2006-01-02 15:04"))
	}

	steps := [][]string{
		append([]string{"add"}, files...),
		{"commit", "-m", message},
		{"push"},
	}
	for _, args := range steps {
		cmd := exec.Command("git", args...)
		cmd.Dir = *dataDir
		out, err := cmd.CombinedOutput()
		if err != nil {
			// An empty commit is not a failure, there was just nothing new.
			if args[0] == "commit" && strings.Contains(string(out), "nothing to commit") {
				fmt.Println("Nothing new to publish.")
				return subcommands.ExitSuccess
			}
			fmt.Fprintf(os.Stderr, "Error: git %s: %v\n%s", args[0], err, out)
			return subcommands.ExitFailure
		}
	}

	fmt.Println("Published.")
	return subcommands.ExitSuccess
}

// publishFiles lists what a publish may stage. The book carries
// plaintext invite codes, so it leaves the machine encrypted or not at
// all: investors clone this repository to read the dashboard.
func publishFiles(encrypted bool) []string {
	files := []string{dashboardFile, tradesFile, "trades.csv"}
	if encrypted {
		files = append(files, bookFile+".enc")
	}
	return files
}
