package stats

import (
	"sort"
	"strings"

	"github.com/asisr38/scrapper/internal/dataset"
)

const (
	uncategorized  = "Uncategorized"
	unknownSection = "unknown"
)

// CategoryCount is one bar of the category chart.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// SectionCount is one bar of the section chart.
type SectionCount struct {
	Section string `json:"section"`
	Count   int    `json:"count"`
}

// Series is a time series over year-month labels.
type Series struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

// SectionSeries is the per-label count of one section.
type SectionSeries struct {
	Section string `json:"section"`
	Counts  []int  `json:"counts"`
}

// Stacked is the monthly count of every section over shared labels.
type Stacked struct {
	Labels []string        `json:"labels"`
	Series []SectionSeries `json:"series"`
}

// Facets lists every known section and category of the whole corpus.
type Facets struct {
	Sections   []string `json:"sections"`
	Categories []string `json:"categories"`
}

// Result is the aggregate statistics response.
type Result struct {
	Total            int             `json:"total"`
	ByCategory       []CategoryCount `json:"by_category"`
	BySection        []SectionCount  `json:"by_section"`
	ByYearMonth      Series          `json:"by_year_month"`
	MonthlyBySection Stacked         `json:"monthly_by_section"`
	Facets           Facets          `json:"facets"`
}

// Aggregate filters corpus by q and groups the matches. Facets are computed
// over the unfiltered corpus. Every slice of the result is non-nil.
func Aggregate(corpus []dataset.Record, q Query) (Result, error) {
	filtered, err := Filter(corpus, q)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Total:  len(filtered),
		Facets: facets(corpus),
	}

	cats := newTally()
	secs := newTally()
	for _, r := range filtered {
		cats.add(bucket(r.Category, uncategorized))
		secs.add(bucket(r.Section, unknownSection))
	}
	res.ByCategory = make([]CategoryCount, 0, len(cats.order))
	for _, k := range cats.sorted() {
		res.ByCategory = append(res.ByCategory, CategoryCount{Category: k, Count: cats.counts[k]})
	}
	res.BySection = make([]SectionCount, 0, len(secs.order))
	for _, k := range secs.sorted() {
		res.BySection = append(res.BySection, SectionCount{Section: k, Count: secs.counts[k]})
	}

	res.ByYearMonth, res.MonthlyBySection = timeline(filtered)
	return res, nil
}

func bucket(v, blank string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return blank
	}
	return v
}

// tally counts keys and remembers their first appearance.
type tally struct {
	counts map[string]int
	order  []string
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(key string) {
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

// sorted returns keys by descending count; equal counts keep first-appearance order.
func (t *tally) sorted() []string {
	keys := append([]string(nil), t.order...)
	sort.SliceStable(keys, func(i, j int) bool {
		return t.counts[keys[i]] > t.counts[keys[j]]
	})
	return keys
}

func timeline(filtered []dataset.Record) (Series, Stacked) {
	labelSet := make(map[string]struct{})
	sectionSet := make(map[string]struct{})
	for _, r := range filtered {
		labelSet[DeriveYearMonth(r)] = struct{}{}
		sectionSet[bucket(r.Section, unknownSection)] = struct{}{}
	}

	labels := make([]string, 0, len(labelSet))
	for l := range labelSet {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return labelKey(labels[i]) < labelKey(labels[j]) })

	sections := make([]string, 0, len(sectionSet))
	for s := range sectionSet {
		sections = append(sections, s)
	}
	sort.Strings(sections)

	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}
	counts := make([]int, len(labels))
	perSection := make(map[string][]int, len(sections))
	for _, s := range sections {
		perSection[s] = make([]int, len(labels))
	}
	for _, r := range filtered {
		i := index[DeriveYearMonth(r)]
		counts[i]++
		perSection[bucket(r.Section, unknownSection)][i]++
	}

	series := make([]SectionSeries, 0, len(sections))
	for _, s := range sections {
		series = append(series, SectionSeries{Section: s, Counts: perSection[s]})
	}
	return Series{Labels: labels, Counts: counts}, Stacked{Labels: labels, Series: series}
}

func facets(corpus []dataset.Record) Facets {
	return Facets{
		Sections:   distinct(corpus, func(r dataset.Record) string { return r.Section }),
		Categories: distinct(corpus, func(r dataset.Record) string { return r.Category }),
	}
}

func distinct(corpus []dataset.Record, field func(dataset.Record) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range corpus {
		v := strings.TrimSpace(field(r))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
