package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/valutatrade/renderer"
	"github.com/google/subcommands"
)

type showPortfolioCmd struct {
	base string
}

func (*showPortfolioCmd) Name() string     { return "show-portfolio" }
func (*showPortfolioCmd) Synopsis() string { return "display the current user's wallets and total" }
func (*showPortfolioCmd) Usage() string {
	return `vth show-portfolio [-base <CODE>]

  Displays every wallet's balance and its value in the base currency,
  home currency first, with a computed total. Wallets without an available
  rate are listed but count as zero.
`
}

func (c *showPortfolioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.base, "base", "USD", "Base currency for valuation.")
}

func (c *showPortfolioCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := newService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	report, err := svc.PortfolioReport(strings.ToUpper(c.base))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Portfolio(report))
	return subcommands.ExitSuccess
}
