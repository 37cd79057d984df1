package renderer

import (
	"fmt"
	"math"
	"strconv"

	"github.com/etnz/cryptotracker"
	md "github.com/nao1215/markdown"
)

// finite reports whether v can be formatted as an exact decimal.
func finite(v float64) bool { return !math.IsInf(v, 0) && !math.IsNaN(v) }

// price formats a price in the reporting currency.
func price(v float64) string {
	if !finite(v) {
		return "-"
	}
	return cryptotracker.USD(v).String()
}

// billions formats a large amount in billions, e.g. "$1,245.68 B".
func billions(v float64) string {
	if !finite(v) {
		return "-"
	}
	return cryptotracker.USD(v).Shift(-9).String() + " B"
}

// change formats a 24h change with its sign, e.g. "+2.34%".
func change(pct float64) string { return fmt.Sprintf("%+.2f%%", pct) }

// amount formats a quantity without float noise.
func amount(v float64) string {
	if !finite(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return cryptotracker.Q(v).String()
}

// status writes the loading or error block, and reports whether it did.
func status(doc *md.Markdown, s cryptotracker.State, loading bool) bool {
	switch {
	case loading:
		doc.PlainText("Loading...")
		return true
	case s.HasError():
		doc.PlainText(md.Bold("Error") + ": " + s.Error)
		doc.PlainText("")
		doc.PlainText("Retry to fetch the data again.")
		return true
	}
	return false
}
