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

type getRateCmd struct {
	from string
	to   string
}

func (*getRateCmd) Name() string     { return "get-rate" }
func (*getRateCmd) Synopsis() string { return "compute a cross rate between two currencies" }
func (*getRateCmd) Usage() string {
	return `vth get-rate -from <CODE> -to <CODE>

  Computes the cross rate between two currencies through the USD anchor,
  with the provenance timestamp of the underlying pair.
`
}

func (c *getRateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Source currency code.")
	f.StringVar(&c.to, "to", "", "Target currency code.")
}

func (c *getRateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" || c.to == "" {
		fmt.Fprintln(os.Stderr, "Error: -from and -to are required.")
		return subcommands.ExitUsageError
	}
	svc, err := newService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	info, err := svc.GetRate(strings.ToUpper(c.from), strings.ToUpper(c.to))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Print(renderer.Rate(info, cfg.RatesTTL))
	return subcommands.ExitSuccess
}
