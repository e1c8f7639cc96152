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

type buyCmd struct {
	currency string
	amount   float64
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy a currency against the USD wallet" }
func (*buyCmd) Usage() string {
	return `vth buy -currency <CODE> -amount <num>

  Buys the given amount of a currency at the current cached rate, debiting
  the USD wallet. Fails without any mutation when funds or rates are
  missing.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "currency", "", "Currency code to buy.")
	f.Float64Var(&c.amount, "amount", 0, "Amount to buy.")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.currency == "" {
		fmt.Fprintln(os.Stderr, "Error: -currency is required.")
		return subcommands.ExitUsageError
	}
	svc, err := newService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	conf, err := svc.Buy(strings.ToUpper(c.currency), decimal.NewFromFloat(c.amount))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Bought %s %s for %s.\nUSD balance: %s\n",
		conf.Amount.StringFixed(4), conf.Currency,
		valutatrade.M(conf.Value, valutatrade.USD),
		valutatrade.M(conf.USDBalance, valutatrade.USD))
	return subcommands.ExitSuccess
}
