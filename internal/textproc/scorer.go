package textproc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NotFoundAnswer is returned by FindAnswer when no paragraph shares a keyword
// with the question.
const NotFoundAnswer = "No encontré información relacionada con tu pregunta en el documento."

// minParagraphLength is the shortest paragraph (in characters, after trimming)
// that is considered as an answer.
const minParagraphLength = 20

// stopWords are Spanish function words that carry no topical signal.
var stopWords = map[string]struct{}{
	"el": {}, "la": {}, "los": {}, "las": {},
	"un": {}, "una": {}, "unos": {}, "unas": {},
	"y": {}, "o": {}, "a": {},
	"ante": {}, "bajo": {}, "con": {}, "de": {}, "desde": {}, "en": {}, "entre": {},
	"hacia": {}, "hasta": {}, "para": {}, "por": {}, "según": {}, "sin": {},
	"sobre": {}, "tras": {},
	"qué": {}, "cuál": {}, "cómo": {}, "dónde": {}, "cuándo": {}, "quién": {}, "cuánto": {},
}

// IsStopWord reports whether the lower-cased word is ignored by the scorer.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

// Keywords extracts the distinct, lower-cased, non-stop-word tokens of a
// question in order of first appearance. Punctuation such as "¿" or "?"
// wrapping a token is stripped.
func Keywords(question string) []string {
	fields := strings.Fields(question)
	keywords := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))

	for _, field := range fields {
		word := strings.ToLower(strings.TrimFunc(field, unicode.IsPunct))
		if word == "" || IsStopWord(word) {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}

	return keywords
}

// Score counts how many keywords occur in the paragraph, ignoring case.
func Score(paragraph string, keywords []string) int {
	lower := strings.ToLower(paragraph)
	score := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			score++
		}
	}
	return score
}

// FindAnswer returns the line of text that shares the most keywords with the
// question. Lines shorter than 20 characters are ignored and ties keep the
// earliest line. When nothing matches, NotFoundAnswer is returned.
func FindAnswer(text, question string) string {
	keywords := Keywords(question)

	best := ""
	highest := 0
	for _, paragraph := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(paragraph)
		if utf8.RuneCountInString(trimmed) < minParagraphLength {
			continue
		}

		if score := Score(trimmed, keywords); score > highest {
			highest = score
			best = trimmed
		}
	}

	if highest == 0 {
		return NotFoundAnswer
	}
	return best
}
