// Package dataset loads, merges and writes the JSON snapshots of scraped
// content records.
package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoItems is returned when a dataset has no "items" array.
var ErrNoItems = errors.New("dataset has no items array")

// Record is one scraped item. Every field is optional in the source; absent or
// mistyped fields decode to their zero value.
type Record struct {
	Section        string `json:"section"`
	Page           int    `json:"page"`
	Title          string `json:"title"`
	Date           string `json:"date"`
	DateISO        string `json:"date_iso"`
	Year           int    `json:"year"`
	Month          int    `json:"month"`
	Category       string `json:"category"`
	URL            string `json:"url"`
	Summary        string `json:"summary"`
	ArticleSummary string `json:"article_summary,omitempty"`
	ArticleText    string `json:"article_text,omitempty"`
}

// Text is the record's summary, or its article summary when the summary is
// blank.
func (r Record) Text() string {
	if strings.TrimSpace(r.Summary) != "" {
		return r.Summary
	}
	return r.ArticleSummary
}

// UnmarshalJSON decodes leniently: a non-object value becomes an empty
// record, strings accept numbers and integers accept numeric strings.
func (r *Record) UnmarshalJSON(data []byte) error {
	*r = Record{}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	r.Section = str(raw["section"])
	r.Page = integer(raw["page"])
	r.Title = str(raw["title"])
	r.Date = str(raw["date"])
	r.DateISO = str(raw["date_iso"])
	r.Year = integer(raw["year"])
	r.Month = integer(raw["month"])
	r.Category = str(raw["category"])
	r.URL = str(raw["url"])
	r.Summary = str(raw["summary"])
	r.ArticleSummary = str(raw["article_summary"])
	r.ArticleText = str(raw["article_text"])
	return nil
}

func str(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func integer(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n
		}
	}
	return 0
}

// Decode parses a dataset document of the form {"items": [...]}. Unknown top
// level fields are ignored. JSON null items are dropped.
func Decode(data []byte) ([]Record, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	rawItems, ok := doc["items"]
	if !ok {
		return nil, ErrNoItems
	}
	var items []json.RawMessage
	if err := json.Unmarshal(rawItems, &items); err != nil || items == nil {
		return nil, ErrNoItems
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			continue
		}
		var rec Record
		_ = rec.UnmarshalJSON(item)
		records = append(records, rec)
	}
	return records, nil
}
