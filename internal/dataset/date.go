package dataset

import (
	"strings"
	"time"

	"github.com/asisr38/scrapper/internal/textutil"
)

// dateLayouts are tried in order; day-first numeric forms win over month-first.
var dateLayouts = []string{
	"2 January 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"2/1/2006",
	"1/2/2006",
	"02.01.2006",
	time.RFC3339,
}

// ParseDate turns a human date label into (YYYY-MM-DD, year, month). Labels
// that match no known layout yield ("", 0, 0).
func ParseDate(label string) (string, int, int) {
	s := textutil.NormalizeSpace(label)
	if s == "" {
		return "", 0, 0
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), t.Year(), int(t.Month())
		}
	}
	return "", 0, 0
}

// WithDate fills the date fields of r from a publish time.
func WithDate(r Record, t time.Time) Record {
	r.Date = t.Format("2 January 2006")
	r.DateISO = t.Format("2006-01-02")
	r.Year = t.Year()
	r.Month = int(t.Month())
	return r
}

// DateKey reads the YYYY-MM-DD prefix of an ISO date or timestamp as the
// integer YYYYMMDD. Anything else is 0.
func DateKey(iso string) int {
	iso = strings.TrimSpace(iso)
	if len(iso) < 10 || iso[4] != '-' || iso[7] != '-' {
		return 0
	}
	if len(iso) > 10 && iso[10] != 'T' && iso[10] != ' ' {
		return 0
	}
	key := 0
	for i := 0; i < 10; i++ {
		if i == 4 || i == 7 {
			continue
		}
		c := iso[i]
		if c < '0' || c > '9' {
			return 0
		}
		key = key*10 + int(c-'0')
	}
	return key
}
