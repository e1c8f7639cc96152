// Package cmd implements the CLI application driving a trading session.
// Each subcommand maps 1:1 to a core operation; the session itself is
// persisted so one-shot commands share a current user.
package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/valutatrade"
	"github.com/etnz/valutatrade/coingecko"
	"github.com/etnz/valutatrade/exchangerate"
	"github.com/google/subcommands"
	"github.com/phuslu/log"
)

// as a CLI application with a very short lifecycle, globals are fine here.
var (
	cfg   valutatrade.Config
	store *valutatrade.Store
)

// Init prepares the shared application state from the environment. It must
// run once, after the optional .env file is loaded and before Execute.
func Init() {
	cfg = valutatrade.ConfigFromEnv()
	store = valutatrade.NewStore(cfg.DataDir)
	log.DefaultLogger = log.Logger{
		Level:      log.InfoLevel,
		TimeFormat: time.RFC3339,
		Writer: &log.FileWriter{
			Filename:   cfg.LogFile,
			MaxSize:    1_000_000,
			MaxBackups: 3,
		},
	}
}

// Register registers all subcommands on the commander.
func Register(c *subcommands.Commander) {
	c.Register(&registerCmd{}, "accounts")
	c.Register(&loginCmd{}, "accounts")
	c.Register(&logoutCmd{}, "accounts")
	c.Register(&showPortfolioCmd{}, "portfolio")
	c.Register(&buyCmd{}, "trading")
	c.Register(&sellCmd{}, "trading")
	c.Register(&getRateCmd{}, "rates")
	c.Register(&showRatesCmd{}, "rates")
	c.Register(&updateRatesCmd{}, "rates")
	c.Register(&watchCmd{}, "rates")
}

// newService builds the engine with the log-backed observer and resumes
// the persisted login session if one exists.
func newService() (*valutatrade.Service, error) {
	svc := valutatrade.NewService(store, cfg, logObserver{})
	sess, ok, err := store.LoginSession()
	if err != nil {
		return nil, err
	}
	if ok {
		users, err := store.Users()
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			if u.ID == sess.UserID {
				svc.SetUser(u)
				break
			}
		}
	}
	return svc, nil
}

// newUpdater builds the aggregator over all configured rate sources.
func newUpdater() *valutatrade.Updater {
	return valutatrade.NewUpdater(store, logObserver{},
		coingecko.New(cfg.RequestTimeout),
		exchangerate.New(cfg.ExchangeRateAPIKey, cfg.RequestTimeout),
	)
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
