package app

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/asisr38/scrapper/internal/dataset"
)

var csvHeader = []string{
	"section", "category", "title", "summary", "article_summary",
	"date", "date_iso", "year", "month", "url", "page",
}

// utf8BOM lets spreadsheet tools detect the encoding.
const utf8BOM = "\ufeff"

// SortForCSV orders records newest first, then by section and title, all
// descending.
func SortForCSV(items []dataset.Record) []dataset.Record {
	sorted := append([]dataset.Record(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if ka, kb := dataset.DateKey(a.DateISO), dataset.DateKey(b.DateISO); ka != kb {
			return ka > kb
		}
		if sa, sb := strings.ToLower(a.Section), strings.ToLower(b.Section); sa != sb {
			return sa > sb
		}
		return strings.ToLower(a.Title) > strings.ToLower(b.Title)
	})
	return sorted
}

// WriteCSV writes items sorted by SortForCSV with every field quoted.
func WriteCSV(path string, items []dataset.Record) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create csv dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	w.WriteString(utf8BOM)
	writeRow(w, csvHeader)
	for _, r := range SortForCSV(items) {
		writeRow(w, []string{
			r.Section, r.Category, r.Title, r.Summary, r.ArticleSummary,
			r.Date, r.DateISO, strconv.Itoa(r.Year), strconv.Itoa(r.Month), r.URL, strconv.Itoa(r.Page),
		})
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return f.Close()
}

func writeRow(w *bufio.Writer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(field, `"`, `""`))
		w.WriteByte('"')
	}
	w.WriteString("\r\n")
}

// DefaultOutputs names <dataDir>/<section>.csv and .json.
func DefaultOutputs(dataDir, section string) (csvPath, jsonPath string) {
	return filepath.Join(dataDir, section+".csv"), filepath.Join(dataDir, section+".json")
}

// JSONPathFor is the snapshot path next to a CSV path.
func JSONPathFor(csvPath string) string {
	return strings.TrimSuffix(csvPath, filepath.Ext(csvPath)) + ".json"
}

// WriteOutputs writes the CSV and the JSON snapshot of one run.
func WriteOutputs(items []dataset.Record, csvPath, jsonPath string, now time.Time) error {
	if err := WriteCSV(csvPath, items); err != nil {
		return err
	}
	return dataset.WriteSnapshot(jsonPath, items, now)
}
