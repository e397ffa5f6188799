// Package classify assigns a thematic category to free text by weighted
// keyword scoring over a fixed catalogue.
package classify

import (
	"strings"

	"github.com/asisr38/scrapper/internal/textutil"
)

// ConfidenceFloor is the minimum score a winning category needs. Below it the
// default category is returned instead.
const ConfidenceFloor = 2

// Match is the outcome of scoring a text against the catalogue.
type Match struct {
	Category string
	// Winner is the top scorer before the confidence floor is applied.
	Winner string
	Score  int
}

// Prepare lowercases text and folds typographic quotes so keywords match
// curly and straight apostrophes alike.
func Prepare(text string) string {
	return strings.ToLower(textutil.NormalizeQuotes(text))
}

func (c Category) score(text string) int {
	total := 0
	for _, k := range c.Keywords {
		if strings.Contains(text, k.Phrase) {
			total += k.Weight
			if strings.Contains(k.Phrase, " ") {
				total++
			}
		}
	}
	return total
}

// Score evaluates every category in declaration order. Only a strictly
// higher score replaces the current winner, so ties go to the category
// declared first.
func Score(text string) Match {
	text = Prepare(text)

	best := catalogue[0].Name
	bestScore := 0
	for _, c := range catalogue {
		if s := c.score(text); s > bestScore {
			best, bestScore = c.Name, s
		}
	}

	m := Match{Category: best, Winner: best, Score: bestScore}
	if bestScore < ConfidenceFloor {
		m.Category = DefaultCategory
	}
	return m
}

// Classify returns the category for text.
func Classify(text string) string {
	return Score(text).Category
}

// ScoreRecord scores a title together with its summary, or together with the
// raw body when there is no summary.
func ScoreRecord(title, summary, body string) Match {
	if textutil.Blank(summary) {
		summary = body
	}
	return Score(title + " " + summary)
}

// ClassifyRecord is ScoreRecord's category.
func ClassifyRecord(title, summary, body string) string {
	return ScoreRecord(title, summary, body).Category
}

// Canonical maps name to the catalogue's spelling when it names a category,
// ignoring case and quote style.
func Canonical(name string) (string, bool) {
	want := Prepare(strings.TrimSpace(name))
	for _, c := range catalogue {
		if Prepare(c.Name) == want {
			return c.Name, true
		}
	}
	return name, false
}
