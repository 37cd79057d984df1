package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptotracker"
	"github.com/etnz/cryptotracker/renderer"
	"github.com/google/subcommands"
)

// editHolding applies a change to the configured portfolio, saves it and
// prints the resulting portfolio.
func editHolding(ctx context.Context, edit func(*cryptotracker.Store)) subcommands.ExitStatus {
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitUsageError
	}
	defer store.Close()

	out, err := applyEdit(ctx, store, edit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(out + renderer.Footer(Footer()))
	if store.State().HasError() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// applyEdit loads the portfolio page, applies edit and renders the page once
// the save is answered. Loading first keeps the list fetch from clearing a
// save failure.
func applyEdit(ctx context.Context, store *cryptotracker.Store, edit func(*cryptotracker.Store)) (string, error) {
	page := Route("/portfolio")
	if _, err := page.Open(ctx, store); err != nil {
		return "", err
	}
	edit(store)
	return page.Open(ctx, store)
}

type addCmd struct{}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a cryptocurrency to the portfolio" }
func (*addCmd) Usage() string {
	return `ct [-portfolio <id=amount,...>] add <id> <amount>

  Adds a holding to the portfolio and saves it. A cryptocurrency already held is left unchanged,
  use update to change its amount.

Usage Examples:
$ ct -portfolio bitcoin=0.5 add ethereum 2
`
}

func (*addCmd) SetFlags(f *flag.FlagSet) {}

func (*addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: add requires a cryptocurrency id and an amount")
		return subcommands.ExitUsageError
	}
	h, err := parseHolding(f.Arg(0), f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing holding: %v\n", err)
		return subcommands.ExitUsageError
	}
	return editHolding(ctx, func(s *cryptotracker.Store) { s.AddAndSave(h) })
}

type updateCmd struct{}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "change the amount of a holding" }
func (*updateCmd) Usage() string {
	return `ct [-portfolio <id=amount,...>] update <id> <amount>

  Replaces the amount held of a cryptocurrency and saves the portfolio.
  A cryptocurrency not held is ignored.
`
}

func (*updateCmd) SetFlags(f *flag.FlagSet) {}

func (*updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: update requires a cryptocurrency id and an amount")
		return subcommands.ExitUsageError
	}
	h, err := parseHolding(f.Arg(0), f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing holding: %v\n", err)
		return subcommands.ExitUsageError
	}
	return editHolding(ctx, func(s *cryptotracker.Store) { s.UpdateAndSave(h) })
}

type removeCmd struct{}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a cryptocurrency from the portfolio" }
func (*removeCmd) Usage() string {
	return `ct [-portfolio <id=amount,...>] remove <id>

  Removes a holding from the portfolio and saves it.
`
}

func (*removeCmd) SetFlags(f *flag.FlagSet) {}

func (*removeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: remove requires a cryptocurrency id")
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)
	return editHolding(ctx, func(s *cryptotracker.Store) { s.RemoveAndSave(id) })
}
