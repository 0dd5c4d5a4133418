package extract

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// extractMarkdown flattens a Markdown document to plain text with one line per
// block (headings, paragraphs, list items, table rows, code lines). Markup is
// dropped.
func extractMarkdown(source []byte) string {
	if len(source) == 0 {
		return ""
	}

	doc := markdown.Parser().Parse(text.NewReader(source))

	var lines []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading, *ast.Paragraph, *ast.TextBlock:
			if line := inlineText(node, source); line != "" {
				lines = append(lines, line)
			}
			return ast.WalkSkipChildren, nil

		case *ast.CodeBlock, *ast.FencedCodeBlock:
			segments := node.Lines()
			for i := 0; i < segments.Len(); i++ {
				seg := segments.At(i)
				if line := strings.TrimRight(string(seg.Value(source)), "\r\n"); strings.TrimSpace(line) != "" {
					lines = append(lines, line)
				}
			}
			return ast.WalkSkipChildren, nil

		case *east.TableHeader, *east.TableRow:
			if row := tableRowText(node, source); row != "" {
				lines = append(lines, row)
			}
			return ast.WalkSkipChildren, nil

		case *ast.HTMLBlock, *ast.ThematicBreak:
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return strings.Join(lines, "\n")
}

// inlineText concatenates the text of a node's inline descendants. Soft line
// breaks become spaces and hard breaks become newlines.
func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(source))
			if v.HardLineBreak() {
				b.WriteByte('\n')
			} else if v.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		case *ast.AutoLink:
			b.Write(v.Label(source))
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(b.String())
}

// tableRowText joins the cells of a table row with " | ".
func tableRowText(row ast.Node, source []byte) string {
	var cells []string
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		if _, ok := c.(*east.TableCell); ok {
			cells = append(cells, inlineText(c, source))
		}
	}
	return strings.Join(cells, " | ")
}
