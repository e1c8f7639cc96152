package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/valutatrade"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type sellCmd struct {
	currency string
	amount   float64
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell a currency back into USD" }
func (*sellCmd) Usage() string {
	return `vth sell -currency <CODE> -amount <num>

  Sells the given amount from the currency's wallet at the current cached
  rate, crediting the proceeds to the USD wallet.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "currency", "", "Currency code to sell.")
	f.Float64Var(&c.amount, "amount", 0, "Amount to sell.")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.currency == "" {
		fmt.Fprintln(os.Stderr, "Error: -currency is required.")
		return subcommands.ExitUsageError
	}
	svc, err := newService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	conf, err := svc.Sell(strings.ToUpper(c.currency), decimal.NewFromFloat(c.amount))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Sold %s %s for %s.\nUSD balance: %s\n",
		conf.Amount.StringFixed(4), conf.Currency,
		valutatrade.M(conf.Value, valutatrade.USD),
		valutatrade.M(conf.USDBalance, valutatrade.USD))
	return subcommands.ExitSuccess
}
