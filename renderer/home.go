package renderer

import (
	"bytes"

	"github.com/etnz/cryptotracker"
	md "github.com/nao1215/markdown"
)

// Home renders the asset list.
func Home(s cryptotracker.State) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Cryptocurrencies")

	if status(doc, s, s.Loading) {
		return doc.String()
	}
	if len(s.Assets) == 0 {
		doc.PlainText("No cryptocurrencies available.")
		return doc.String()
	}

	table := md.TableSet{
		Header:    []string{"Name", "Symbol", "Price", "24h"},
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight},
	}
	for _, a := range s.Assets {
		table.Rows = append(table.Rows, []string{a.Name + " (" + a.ID + ")", a.Symbol, price(a.Price), change(a.PriceChange24h)})
	}
	doc.Table(table)
	return doc.String()
}
