// Package summary produces extractive summaries: the most salient sentences of
// a text, scored by term frequency and returned in document order.
package summary

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultSentences is used when the caller passes a non-positive count.
const DefaultSentences = 5

var (
	sentenceEnd = regexp.MustCompile(`[.!?]\s+`)
	wordRe      = regexp.MustCompile(`[A-Za-z']+`)
)

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		a an the and or but if while of for on in at to from by with as is are was were be been being
		this that those these it its they them their we our you your he she his her not no yes do does did`) {
		stopWords[w] = struct{}{}
	}
}

// Sentences splits text on sentence-terminal punctuation followed by
// whitespace. The punctuation stays with its sentence; empty fragments are
// dropped.
func Sentences(text string) []string {
	var out []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[start : loc[0]+1]); s != "" {
			out = append(out, s)
		}
		start = loc[1]
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

// Summarize returns at most maxSentences sentences of text joined by a space.
// When the text already has that few sentences they are returned as they are.
// Otherwise each sentence scores the sum of its words' corpus frequencies (no
// length normalisation), the top scorers are kept and put back in the order
// they appear in the text. Equal scores keep input order.
func Summarize(text string, maxSentences int) string {
	if maxSentences <= 0 {
		maxSentences = DefaultSentences
	}
	sentences := Sentences(text)
	if len(sentences) <= maxSentences {
		return strings.Join(sentences, " ")
	}

	freq := termFrequencies(text)

	type scored struct {
		idx   int
		score int
	}
	scores := make([]scored, len(sentences))
	for i, s := range sentences {
		total := 0
		for _, w := range wordRe.FindAllString(strings.ToLower(s), -1) {
			total += freq[w]
		}
		scores[i] = scored{idx: i, score: total}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	top := make([]int, 0, maxSentences)
	for _, s := range scores[:maxSentences] {
		top = append(top, s.idx)
	}
	sort.Ints(top)

	picked := make([]string, len(top))
	for i, idx := range top {
		picked[i] = sentences[idx]
	}
	return strings.Join(picked, " ")
}

func termFrequencies(text string) map[string]int {
	freq := make(map[string]int)
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if len(w) <= 2 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		freq[w]++
	}
	return freq
}
