package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/robfig/cron/v3"
)

type watchCmd struct{}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "refresh rates periodically in the foreground" }
func (*watchCmd) Usage() string {
	return `vth watch

  Runs update-rates immediately and then on a fixed schedule derived from
  the rates TTL, until interrupted. User commands in other terminals see
  the refreshed cache.
`
}

func (*watchCmd) SetFlags(_ *flag.FlagSet) {}

func (c *watchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	updater := newUpdater()
	refresh := func() {
		sum, err := updater.Refresh("")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		fmt.Printf("Refreshed: %d pairs, %d source errors.\n", sum.Updated, sum.Failed)
	}

	fmt.Printf("Watching rates, refresh every %s.\n", cfg.RatesTTL)
	refresh()

	runner := cron.New()
	if _, err := runner.AddFunc(fmt.Sprintf("@every %s", cfg.RatesTTL), refresh); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	// blocks until the process is interrupted
	runner.Run()
	return subcommands.ExitSuccess
}
