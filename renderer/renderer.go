// Package renderer renders the views of the tracker as markdown.
//
// Each view is a pure function of a cryptotracker.State snapshot.
package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"
)

// DefaultFooter is the footer text when none is configured.
const DefaultFooter = "© 2023 Crypto Tracker"

// NotFound renders the view of an unknown path.
func NotFound(path string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("404 - Page Not Found")
	doc.PlainText("The page you are looking for does not exist: " + "`" + path + "`")
	return doc.String()
}

// Footer renders the footer line.
func Footer(text string) string {
	if text == "" {
		text = DefaultFooter
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.PlainText("")
	doc.PlainText("***")
	doc.PlainText("_" + text + "_")
	return doc.String()
}
