package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/cryptotracker"
	md "github.com/nao1215/markdown"
)

// Details renders the selected asset as a card, with the amount held of asset
// id if any.
func Details(s cryptotracker.State, id string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Cryptocurrency Details")

	if status(doc, s, s.Loading) {
		return doc.String()
	}
	a := s.Selected
	if a == nil || a.ID != id {
		doc.PlainText("No cryptocurrency data available.")
		return doc.String()
	}

	doc.H2(a.String())
	doc.Table(md.TableSet{
		Header:    []string{"Metric", "Value"},
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Rows: [][]string{
			{"Price", md.Bold(price(a.Price))},
			{"24h Change", change(a.PriceChange24h)},
			{"Market Cap", billions(a.MarketCap)},
			{"24h Volume", billions(a.Volume24h)},
		},
	})
	doc.PlainText("")

	if h, ok := s.Holding(a.ID); ok {
		doc.PlainText(fmt.Sprintf("In portfolio: %s %s", amount(h.Amount), a.Symbol))
	} else {
		doc.PlainText("Not in portfolio.")
	}
	return doc.String()
}
