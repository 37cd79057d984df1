package renderer

import (
	"bytes"

	"github.com/etnz/cryptotracker"
	md "github.com/nao1215/markdown"
)

// Portfolio renders the holdings and their value.
//
// The loading state only shows while no asset is known yet, a save in progress
// keeps the portfolio visible.
func Portfolio(s cryptotracker.State) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("My Portfolio")

	if status(doc, s, s.Loading && len(s.Assets) == 0) {
		return doc.String()
	}
	if len(s.Portfolio) == 0 {
		doc.PlainText("Your portfolio is empty. Add cryptocurrencies from the list.")
		return doc.String()
	}

	doc.PlainText("Total Value: " + md.Bold(cryptotracker.TotalValue(s).String()))
	doc.PlainText("")

	table := md.TableSet{
		Header:    []string{"Asset", "Amount", "Price", "Value"},
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
	}
	for _, v := range cryptotracker.Valuations(s) {
		if v.Asset == nil {
			table.Rows = append(table.Rows, []string{v.Holding.AssetID + " (Unknown asset)", amount(v.Holding.Amount), "-", "-"})
			continue
		}
		table.Rows = append(table.Rows, []string{
			v.Asset.String(),
			amount(v.Holding.Amount),
			price(v.Asset.Price),
			v.Value.String(),
		})
	}
	doc.Table(table)
	return doc.String()
}
