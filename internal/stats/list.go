package stats

import (
	"sort"
	"strings"

	"github.com/asisr38/scrapper/internal/dataset"
	"github.com/asisr38/scrapper/internal/textutil"
)

const (
	DefaultLimit = 20
	MaxLimit     = 500

	// ShortSummaryChars is the budget of CompactRecord.ShortSummary before the
	// ellipsis.
	ShortSummaryChars = 200
)

// CompactRecord is one row of the listing response.
type CompactRecord struct {
	Section      string `json:"section"`
	Category     string `json:"category"`
	Title        string `json:"title"`
	Date         string `json:"date"`
	URL          string `json:"url"`
	Summary      string `json:"summary"`
	ShortSummary string `json:"shortSummary"`
}

// Page is the paginated listing response.
type Page struct {
	Total int             `json:"total"`
	Items []CompactRecord `json:"items"`
}

// ClampLimit bounds a page size to [1, MaxLimit].
func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// ClampOffset bounds an offset to >= 0.
func ClampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// List filters corpus by q, sorts newest first and returns the page
// [offset, offset+limit). Total is the full filtered count.
func List(corpus []dataset.Record, q Query, limit, offset int) (Page, error) {
	filtered, err := Filter(corpus, q)
	if err != nil {
		return Page{}, err
	}
	SortNewest(filtered)

	limit, offset = ClampLimit(limit), ClampOffset(offset)
	page := Page{Total: len(filtered), Items: make([]CompactRecord, 0)}
	if offset >= len(filtered) {
		return page, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	for _, r := range filtered[offset:end] {
		page.Items = append(page.Items, Compact(r))
	}
	return page, nil
}

// SortNewest orders records by descending date_iso, undated last, then by
// title ascending ignoring case.
func SortNewest(recs []dataset.Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		di, dj := dataset.DateKey(recs[i].DateISO), dataset.DateKey(recs[j].DateISO)
		if di != dj {
			return di > dj
		}
		return strings.ToLower(recs[i].Title) < strings.ToLower(recs[j].Title)
	})
}

// Compact shapes a record for the listing.
func Compact(r dataset.Record) CompactRecord {
	summary := r.Text()
	return CompactRecord{
		Section:      r.Section,
		Category:     r.Category,
		Title:        r.Title,
		Date:         r.Date,
		URL:          r.URL,
		Summary:      summary,
		ShortSummary: ShortSummary(summary, r.Title),
	}
}

// ShortSummary cuts summary, or title when summary is blank, to
// ShortSummaryChars characters plus an ellipsis.
func ShortSummary(summary, title string) string {
	s := textutil.NormalizeSpace(summary)
	if s == "" {
		s = textutil.NormalizeSpace(title)
	}
	return textutil.Truncate(s, ShortSummaryChars, "…")
}
