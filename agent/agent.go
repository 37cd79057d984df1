package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/cryptotracker"
	"google.golang.org/genai"
)

// Agent is an assistant session over the tracker's store.
type Agent struct {
	store *cryptotracker.Store
	w     io.Writer
	r     *bufio.Reader
	print func(w io.Writer, answer string)

	Facilitator *Expert
	Experts     []*Expert
}

// New creates an Agent answering questions about the market and the portfolio
// held by store, with the help of experts.
//
// The agent writes answers to w with print (plain text when nil) and reads
// user input from r.
func New(store *cryptotracker.Store, w io.Writer, r io.Reader, print func(io.Writer, string), experts ...*Expert) *Agent {
	if print == nil {
		print = func(w io.Writer, answer string) { fmt.Fprintln(w, answer) }
	}
	return &Agent{
		store:       store,
		w:           w,
		r:           bufio.NewReader(r),
		print:       print,
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
	}
}

// Start creates the chat sessions of every expert and of the facilitator.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return fmt.Errorf("cannot start %s: %w", e.Name, err)
		}
	}
	if err := a.Facilitator.Start(ctx, client); err != nil {
		return fmt.Errorf("cannot start %s: %w", a.Facilitator.Name, err)
	}
	return nil
}

const prompt = "assist> "

// Run starts the interactive session. The given prompts are asked first.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if !a.Facilitator.Started() {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	s := a.store.State()
	fmt.Fprintf(a.w, "Welcome to the crypto tracker assistant, %d holdings in your portfolio. Type 'bye' to exit.\n", len(s.Portfolio))

	for {
		fmt.Fprint(a.w, prompt)
		var input string

		if len(prompts) > 0 {
			input, prompts = strings.TrimSpace(prompts[0]), prompts[1:]
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
			input = strings.TrimSpace(input)
		}

		switch input {
		case "":
			continue
		case "bye":
			return nil
		}

		answer, err := a.Facilitator.Ask(ctx, Briefing(a.store.State()), &genai.Part{Text: input})
		if err != nil {
			return err
		}
		a.print(a.w, answer)
	}
}

// Briefing returns the part sent along each question, telling the facilitator
// what the user currently holds.
func Briefing(s cryptotracker.State) *genai.Part {
	var b strings.Builder
	b.WriteString("Context: ")
	if len(s.Portfolio) == 0 {
		b.WriteString("the user's portfolio is empty.")
	} else {
		b.WriteString("the user's portfolio holds")
		for i, h := range s.Portfolio {
			if i > 0 {
				b.WriteString(",")
			}
			fmt.Fprintf(&b, " %v %s", h.Amount, h.AssetID)
		}
		b.WriteString(".")
	}
	if len(s.Assets) > 0 {
		fmt.Fprintf(&b, " %d cryptocurrencies are priced.", len(s.Assets))
	}
	if s.HasError() {
		fmt.Fprintf(&b, " The last request failed with: %s.", s.Error)
	}
	return &genai.Part{Text: b.String()}
}
