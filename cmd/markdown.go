package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders md on stdout.
func printMarkdown(md string) { fprintMarkdown(os.Stdout, md) }

// fprintMarkdown renders md for the terminal, falling back to the raw
// markdown when it cannot be rendered.
func fprintMarkdown(w io.Writer, md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Fprint(w, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(w, md)
		return
	}
	fmt.Fprint(w, out)
}

// fprintPlain writes md as is.
func fprintPlain(w io.Writer, md string) { fmt.Fprint(w, md) }
