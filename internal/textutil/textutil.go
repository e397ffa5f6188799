// Package textutil holds the string canonicalisation shared by the extractor,
// the summarizer, the classifier and the statistics engine.
package textutil

import (
	"strings"
	"unicode/utf8"
)

// NormalizeSpace collapses every whitespace run (newlines included) into a
// single space and trims the result.
func NormalizeSpace(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeLines normalizes each line on its own and drops blank lines, so
// paragraph boundaries survive as single newlines.
func NormalizeLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = NormalizeSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

var quoteReplacer = strings.NewReplacer(
	"’", "'",
	"‘", "'",
	"“", `"`,
	"”", `"`,
)

// NormalizeQuotes maps typographic quotes to their ASCII forms.
func NormalizeQuotes(s string) string {
	return quoteReplacer.Replace(s)
}

// Truncate cuts s to at most limit characters and appends marker when
// anything was cut. The cut is a hard character cut, not word aware.
func Truncate(s string, limit int, marker string) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + marker
}

// Blank reports whether s has no non-space characters.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
