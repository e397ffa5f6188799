// Package stats filters a corpus of records and groups it into chart-ready
// counts and paginated listings.
package stats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/asisr38/scrapper/internal/dataset"
)

// Unknown labels records whose year-month cannot be derived.
const Unknown = "Unknown"

// ErrInvalidYearMonth is returned for a range bound that is not YYYY-MM.
var ErrInvalidYearMonth = errors.New("year-month must be YYYY-MM")

// Query holds the optional filters. Empty fields, and "all" for Section and
// Category, mean no filter.
type Query struct {
	Section  string
	Category string
	Q        string
	StartYm  string
	EndYm    string
}

// Normalize trims every field and maps "all" to no filter.
func (q Query) Normalize() Query {
	q.Section = noFilter(q.Section)
	q.Category = noFilter(q.Category)
	q.Q = strings.TrimSpace(q.Q)
	q.StartYm = strings.TrimSpace(q.StartYm)
	q.EndYm = strings.TrimSpace(q.EndYm)
	return q
}

func noFilter(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}

// Validate checks the range bounds.
func (q Query) Validate() error {
	for _, ym := range []string{q.StartYm, q.EndYm} {
		if ym == "" {
			continue
		}
		if _, err := ParseYearMonth(ym); err != nil {
			return err
		}
	}
	return nil
}

// ParseYearMonth converts "YYYY-MM" to the integer key YYYYMM.
func ParseYearMonth(s string) (int, error) {
	if !isYearMonth(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidYearMonth, s)
	}
	year, _ := strconv.Atoi(s[:4])
	month, _ := strconv.Atoi(s[5:7])
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidYearMonth, s)
	}
	return year*100 + month, nil
}

func isYearMonth(s string) bool {
	if len(s) != 7 || s[4] != '-' {
		return false
	}
	return allDigits(s[:4]) && allDigits(s[5:])
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// DeriveYearMonth returns the record's YYYY-MM bucket: the date_iso prefix,
// else the year and month fields, else Unknown.
func DeriveYearMonth(r dataset.Record) string {
	iso := strings.TrimSpace(r.DateISO)
	if len(iso) >= 7 && isYearMonth(iso[:7]) {
		return iso[:7]
	}
	if r.Year > 0 && r.Year <= 9999 && r.Month >= 1 && r.Month <= 12 {
		return fmt.Sprintf("%04d-%02d", r.Year, r.Month)
	}
	return Unknown
}

// labelKey orders year-month labels; Unknown sorts first as 0.
func labelKey(label string) int {
	if label == Unknown || !isYearMonth(label) {
		return 0
	}
	n, _ := strconv.Atoi(label[:4] + label[5:])
	return n
}

type matcher struct {
	section  string
	category string
	q        string
	start    int
	end      int
	ranged   bool
}

func newMatcher(q Query) (matcher, error) {
	q = q.Normalize()
	m := matcher{
		section:  strings.ToLower(q.Section),
		category: strings.ToLower(q.Category),
		q:        strings.ToLower(q.Q),
	}
	if q.StartYm != "" {
		start, err := ParseYearMonth(q.StartYm)
		if err != nil {
			return m, err
		}
		m.start, m.ranged = start, true
	}
	if q.EndYm != "" {
		end, err := ParseYearMonth(q.EndYm)
		if err != nil {
			return m, err
		}
		m.end, m.ranged = end, true
	}
	return m, nil
}

func (m matcher) match(r dataset.Record) bool {
	if m.section != "" && strings.ToLower(strings.TrimSpace(r.Section)) != m.section {
		return false
	}
	if m.category != "" && strings.ToLower(strings.TrimSpace(r.Category)) != m.category {
		return false
	}
	if m.q != "" && !strings.Contains(strings.ToLower(r.Title+" "+r.Text()), m.q) {
		return false
	}
	if m.ranged {
		key := labelKey(DeriveYearMonth(r))
		if key == 0 {
			return false
		}
		if m.start != 0 && key < m.start {
			return false
		}
		if m.end != 0 && key > m.end {
			return false
		}
	}
	return true
}

// Filter returns the records of corpus that pass every filter of q, in corpus
// order.
func Filter(corpus []dataset.Record, q Query) ([]dataset.Record, error) {
	m, err := newMatcher(q)
	if err != nil {
		return nil, err
	}
	out := make([]dataset.Record, 0, len(corpus))
	for _, r := range corpus {
		if m.match(r) {
			out = append(out, r)
		}
	}
	return out, nil
}
