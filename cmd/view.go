package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptotracker/renderer"
	"github.com/google/subcommands"
)

// show opens the page at path on a fresh store and prints it.
func show(ctx context.Context, path string) subcommands.ExitStatus {
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitUsageError
	}
	defer store.Close()

	out, err := Route(path).Open(ctx, store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", path, err)
		return subcommands.ExitFailure
	}
	printMarkdown(out + renderer.Footer(Footer()))
	if store.State().HasError() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the cryptocurrencies on the market" }
func (*listCmd) Usage() string {
	return `ct list

  Lists the cryptocurrencies with their price and 24h change.
`
}

func (*listCmd) SetFlags(f *flag.FlagSet) {}

func (*listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return show(ctx, "/")
}

type detailsCmd struct{}

func (*detailsCmd) Name() string     { return "details" }
func (*detailsCmd) Synopsis() string { return "display the details of a cryptocurrency" }
func (*detailsCmd) Usage() string {
	return `ct details <id>

  Displays the price, market cap, 24h volume and the amount held of a cryptocurrency.

Usage Examples:
$ ct details bitcoin
`
}

func (*detailsCmd) SetFlags(f *flag.FlagSet) {}

func (*detailsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: details requires exactly one cryptocurrency id")
		return subcommands.ExitUsageError
	}
	return show(ctx, "/details/"+f.Arg(0))
}

type portfolioCmd struct{}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "display the portfolio and its value" }
func (*portfolioCmd) Usage() string {
	return `ct [-portfolio <id=amount,...>] portfolio

  Displays the holdings with their current value, and the total value.
`
}

func (*portfolioCmd) SetFlags(f *flag.FlagSet) {}

func (*portfolioCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return show(ctx, "/portfolio")
}
