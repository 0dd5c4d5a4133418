// Package textproc turns extracted document text into the units the answer
// engines work with: normalized text, bounded chunks and scored paragraphs.
package textproc

import (
	"regexp"
	"strings"
)

var (
	blankLineRun  = regexp.MustCompile(`\n\s*\n`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// NormalizeParagraphs collapses every run of blank lines into a single blank
// line and trims the result. Line breaks survive, so paragraphs can still be
// recovered by splitting on "\n".
func NormalizeParagraphs(text string) string {
	text = blankLineRun.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Normalize collapses blank-line runs and then every whitespace run into a
// single space. The result is one flat line, used as LLM context.
func Normalize(text string) string {
	text = blankLineRun.ReplaceAllString(text, "\n\n")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
