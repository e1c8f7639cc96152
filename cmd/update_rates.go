package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type updateRatesCmd struct {
	source string
}

func (*updateRatesCmd) Name() string     { return "update-rates" }
func (*updateRatesCmd) Synopsis() string { return "fetch rates from all sources and merge them" }
func (*updateRatesCmd) Usage() string {
	return `vth update-rates [-source <name>]

  Fetches rates from every configured source (CoinGecko, ExchangeRate-API)
  and merges them into the cached rate table. A single failing source does
  not block the others; the run fails only when every source failed.
`
}

func (c *updateRatesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.source, "source", "", "Only query sources whose name contains this string.")
}

func (c *updateRatesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sum, err := newUpdater().Refresh(c.source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if sum.Updated == 0 {
		fmt.Println("No data to update.")
		return subcommands.ExitSuccess
	}
	fmt.Printf("Updated %d pairs, %d source errors.\n", sum.Updated, sum.Failed)
	return subcommands.ExitSuccess
}
