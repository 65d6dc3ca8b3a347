// Package cmd implements the CLI application to manage the fund.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/exilefund/fund"
)

// Commands lists every subcommand. A main package registers them all and
// executes the user-selected one.
var Commands = []subcommands.Command{
	&fetchCmd{},
	&summaryCmd{},
	&statementCmd{},
	&addInvestorCmd{},
	&depositCmd{},
	&withdrawCmd{},
	&fulfillCmd{},
	&genCodeCmd{},
	&exportCmd{},
	&publishCmd{},
	&batchCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data-dir", ".", "Directory holding the book, trades and dashboard files")

const (
	bookFile      = "book.json"
	tradesFile    = "trades.json"
	dashboardFile = "dashboard.json"
)

func bookPath() string      { return filepath.Join(*dataDir, bookFile) }
func tradesPath() string    { return filepath.Join(*dataDir, tradesFile) }
func dashboardPath() string { return filepath.Join(*dataDir, dashboardFile) }

// Config holds the environment-provided settings. Secrets live in the
// environment or a .env file in the data directory, never in the book.
type Config struct {
	Session    string // POESESSID cookie, required for trade API calls
	League     string
	Account    string
	EncryptKey string // optional, enables book encryption on publish
}

// LoadConfig reads the .env file from the data directory, if present,
// and then the environment. Environment variables win over the file.
func LoadConfig() (*Config, error) {
	// godotenv.Load never overrides variables already set.
	if err := godotenv.Load(filepath.Join(*dataDir, ".env")); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("could not read .env: %w", err)
	}
	c := &Config{
		Session:    os.Getenv("POESESSID"),
		League:     os.Getenv("POE2_LEAGUE"),
		Account:    os.Getenv("POE2_ACCOUNT"),
		EncryptKey: os.Getenv("FUND_ENCRYPT_KEY"),
	}
	if c.League == "" {
		c.League = "Standard"
	}
	return c, nil
}

// RequireSession is LoadConfig for the commands that talk to the trade
// API: they cannot run without a session cookie and an account name.
func RequireSession() (*Config, error) {
	c, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if c.Session == "" {
		return nil, fmt.Errorf("POESESSID is not set (environment or %s)", filepath.Join(*dataDir, ".env"))
	}
	if c.Account == "" {
		return nil, fmt.Errorf("POE2_ACCOUNT is not set (environment or %s)", filepath.Join(*dataDir, ".env"))
	}
	return c, nil
}

// LoadBook reads the private book, decrypting it first when an
// encrypted copy is all that remains. Legacy books without per-currency
// balances are seeded from the dashboard's divine total.
func LoadBook(cfg *Config) (*fund.Book, error) {
	if cfg != nil && cfg.EncryptKey != "" {
		// Only an encrypted copy survives a fresh clone of the data
		// repository. Never clobber an existing plaintext book.
		if _, err := os.Stat(bookPath()); os.IsNotExist(err) {
			if _, err := fund.DecryptBookFile(bookPath(), cfg.EncryptKey); err != nil {
				return nil, err
			}
		}
	}
	legacy := decimal.Zero
	if d, err := loadDashboard(); err == nil && d != nil {
		legacy = d.RawDivines
	}
	return fund.LoadBook(bookPath(), legacy)
}

// SaveBook writes the private book back to the data directory.
func SaveBook(b *fund.Book) error {
	return fund.SaveBook(bookPath(), b)
}

// printMarkdown renders markdown for the terminal. On render errors the
// raw markdown is printed instead, which is still readable.
func printMarkdown(md string) {
	out, err := glamour.RenderWithEnvironmentConfig(md)
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
