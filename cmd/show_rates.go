package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/etnz/valutatrade/renderer"
	"github.com/google/subcommands"
)

type showRatesCmd struct {
	currency string
	top      int
}

func (*showRatesCmd) Name() string     { return "show-rates" }
func (*showRatesCmd) Synopsis() string { return "list the cached rates" }
func (*showRatesCmd) Usage() string {
	return `vth show-rates [-currency <CODE>] [-top <n>]

  Lists cached currency pairs sorted by descending rate, with their source
  and age. Optionally filters by currency code and keeps only the top n.
`
}

func (c *showRatesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "currency", "", "Keep only pairs mentioning this currency code.")
	f.IntVar(&c.top, "top", 0, "Keep only the n highest rates.")
}

func (c *showRatesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := newService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	listing, err := svc.RatesReport(strings.ToUpper(c.currency), c.top)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Rates(listing, time.Now()))
	return subcommands.ExitSuccess
}
