package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/cryptotracker"
	"github.com/etnz/cryptotracker/renderer"
	"github.com/google/subcommands"
)

const shellPrompt = "ct> "

const shellHelp = `Commands:
  open <path>          open a page: /, /details/<id> or /portfolio
  list                 same as open /
  details <id>         same as open /details/<id>
  portfolio            same as open /portfolio
  add <id> <amount>    add a holding and save the portfolio
  update <id> <amount> change the amount of a holding and save the portfolio
  remove <id>          remove a holding and save the portfolio
  clear                dismiss the current error
  help                 print this help
  bye                  exit
`

// Shell is an interactive session keeping one store alive across commands.
type Shell struct {
	store  *cryptotracker.Store
	w      io.Writer
	r      *bufio.Reader
	footer string
	// Print writes a markdown page.
	Print func(w io.Writer, md string)
}

// NewShell creates a Shell over store, writing to w and reading commands from r.
func NewShell(store *cryptotracker.Store, w io.Writer, r io.Reader) *Shell {
	return &Shell{
		store:  store,
		w:      w,
		r:      bufio.NewReader(r),
		footer: Footer(),
		Print:  fprintMarkdown,
	}
}

// Run starts the REPL. It first executes the given commands.
func (sh *Shell) Run(ctx context.Context, commands ...string) error {
	fmt.Fprintln(sh.w, "Welcome to the crypto tracker. Type 'help' for the commands, 'bye' to exit.")

	for {
		fmt.Fprint(sh.w, shellPrompt)
		var input string

		if len(commands) > 0 {
			input, commands = commands[0], commands[1:]
			fmt.Fprintln(sh.w, input)
		} else {
			var err error
			input, err = sh.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		quit, err := sh.Exec(ctx, input)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// Exec executes one command line. It reports whether the session is over.
//
// Invalid commands are reported to the user, only a canceled context is an
// error.
func (sh *Shell) Exec(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name, args := fields[0], fields[1:]

	switch name {
	case "bye", "exit", "quit":
		return true, nil
	case "help":
		fmt.Fprint(sh.w, shellHelp)
		return false, nil
	case "clear":
		sh.store.Dispatch(cryptotracker.ClearError{})
		fmt.Fprintln(sh.w, "Error cleared.")
		return false, nil
	case "list":
		return false, sh.open(ctx, "/")
	case "portfolio":
		return false, sh.open(ctx, "/portfolio")
	case "details":
		if len(args) != 1 {
			return false, sh.usage("details <id>")
		}
		return false, sh.open(ctx, "/details/"+args[0])
	case "open":
		if len(args) != 1 {
			return false, sh.usage("open <path>")
		}
		return false, sh.open(ctx, args[0])
	case "add", "update":
		if len(args) != 2 {
			return false, sh.usage(name + " <id> <amount>")
		}
		h, err := parseHolding(args[0], args[1])
		if err != nil {
			fmt.Fprintf(sh.w, "Error: %v\n", err)
			return false, nil
		}
		if name == "add" {
			return false, sh.edit(ctx, func(s *cryptotracker.Store) { s.AddAndSave(h) })
		}
		return false, sh.edit(ctx, func(s *cryptotracker.Store) { s.UpdateAndSave(h) })
	case "remove":
		if len(args) != 1 {
			return false, sh.usage("remove <id>")
		}
		id := args[0]
		return false, sh.edit(ctx, func(s *cryptotracker.Store) { s.RemoveAndSave(id) })
	default:
		if strings.HasPrefix(name, "/") {
			return false, sh.open(ctx, name)
		}
		fmt.Fprintf(sh.w, "Unknown command %q, type 'help' for the commands.\n", name)
		return false, nil
	}
}

func (sh *Shell) usage(u string) error {
	fmt.Fprintf(sh.w, "Usage: %s\n", u)
	return nil
}

func (sh *Shell) open(ctx context.Context, path string) error {
	out, err := Route(path).Open(ctx, sh.store)
	if err != nil {
		return err
	}
	sh.Print(sh.w, out+renderer.Footer(sh.footer))
	return nil
}

func (sh *Shell) edit(ctx context.Context, edit func(*cryptotracker.Store)) error {
	out, err := applyEdit(ctx, sh.store, edit)
	if err != nil {
		return err
	}
	sh.Print(sh.w, out+renderer.Footer(sh.footer))
	return nil
}

type shellCmd struct{}

func (*shellCmd) Name() string     { return "shell" }
func (*shellCmd) Synopsis() string { return "start an interactive session" }
func (*shellCmd) Usage() string {
	return `ct shell [<command>...]

  Starts an interactive session keeping the market data and the portfolio in memory
  across commands. Each argument is executed as a first command.

Usage Examples:
$ ct shell list "add bitcoin 0.5" portfolio
`
}

func (*shellCmd) SetFlags(f *flag.FlagSet) {}

func (*shellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitUsageError
	}
	defer store.Close()

	if err := NewShell(store, os.Stdout, os.Stdin).Run(ctx, f.Args()...); err != nil {
		fmt.Fprintf(os.Stderr, "Error in shell: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
