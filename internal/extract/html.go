package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// contentSelectors are tried in order to find a page's main content.
var contentSelectors = []string{"main", "article", "#content", ".content", "body"}

const blockSelector = "p, div, section, li, h1, h2, h3, h4, h5, h6, pre, blockquote, tr, dt, dd, br"

// extractHTML returns the visible text of a page's main content area with
// one line per block element.
func extractHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	doc.Find("script, style, noscript, template, head").Remove()

	content := doc.Selection
	for _, selector := range contentSelectors {
		if selected := doc.Find(selector).First(); selected.Length() > 0 {
			content = selected
			break
		}
	}

	appendText(content.Find(blockSelector), "\n")
	appendText(content.Find("td, th"), " ")

	var lines []string
	for _, line := range strings.Split(content.Text(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// appendText adds a text node as the last child of every selected element.
func appendText(sel *goquery.Selection, text string) {
	for _, n := range sel.Nodes {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}
