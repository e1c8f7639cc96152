package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/valutatrade"
	"github.com/google/subcommands"
)

type registerCmd struct {
	username string
	password string
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "create a new account with a starting USD bonus" }
func (*registerCmd) Usage() string {
	return `vth register -username <name> -password <pass>

  Creates a new account and seeds its portfolio with a USD wallet holding
  the starting bonus.
`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "username", "", "Account name, unique across all users.")
	f.StringVar(&c.password, "password", "", "Account password.")
}

func (c *registerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" || c.password == "" {
		fmt.Fprintln(os.Stderr, "Error: -username and -password are required.")
		return subcommands.ExitUsageError
	}
	svc, err := newService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	u, err := svc.Register(c.username, c.password)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("User %q registered (id=%d). Starting bonus of %s credited.\n",
		u.Name, u.ID, valutatrade.M(cfg.StartingBonus, valutatrade.USD))
	return subcommands.ExitSuccess
}
