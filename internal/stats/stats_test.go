package stats

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/asisr38/scrapper/internal/dataset"
)

func sampleCorpus() []dataset.Record {
	return []dataset.Record{
		{Section: "news", Category: "Fisheries and aquaculture", Title: "Women in fisheries value chains", DateISO: "2024-01-10"},
		{Section: "insights", Category: "Land and water", Title: "Land tenure and water rights", DateISO: "2024-01-20"},
		{Section: "news", Category: "Land and water", Title: "Irrigation schemes", Year: 2023, Month: 11, Summary: "Drip irrigation for smallholders"},
		{Section: "", Category: "", Title: "Undated note"},
	}
}

func TestDeriveYearMonth(t *testing.T) {
	tests := []struct {
		name string
		rec  dataset.Record
		want string
	}{
		{"iso prefix", dataset.Record{DateISO: "2024-03-15"}, "2024-03"},
		{"iso wins over fields", dataset.Record{DateISO: "2024-03-15", Year: 2020, Month: 1}, "2024-03"},
		{"year and month", dataset.Record{Year: 2023, Month: 7}, "2023-07"},
		{"bad iso falls back", dataset.Record{DateISO: "March", Year: 2022, Month: 12}, "2022-12"},
		{"month out of range", dataset.Record{Year: 2023, Month: 13}, Unknown},
		{"year only", dataset.Record{Year: 2023}, Unknown},
		{"empty", dataset.Record{}, Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveYearMonth(tt.rec); got != tt.want {
				t.Errorf("DeriveYearMonth = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseYearMonth(t *testing.T) {
	if n, err := ParseYearMonth("2024-03"); err != nil || n != 202403 {
		t.Errorf("ParseYearMonth = %d, %v", n, err)
	}
	for _, bad := range []string{"2024-3", "2024/03", "2024-13", "2024-00", "24-03", "abcd-ef"} {
		if _, err := ParseYearMonth(bad); !errors.Is(err, ErrInvalidYearMonth) {
			t.Errorf("ParseYearMonth(%q) err = %v", bad, err)
		}
	}
}

func TestAggregate_EndToEnd(t *testing.T) {
	corpus := []dataset.Record{
		{Title: "Women in fisheries value chains", DateISO: "2024-01-10"},
		{Title: "Land tenure and water rights", DateISO: "2024-01-20"},
	}
	res, err := Aggregate(corpus, Query{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 2 {
		t.Errorf("Total = %d", res.Total)
	}
	want := Series{Labels: []string{"2024-01"}, Counts: []int{2}}
	if !reflect.DeepEqual(res.ByYearMonth, want) {
		t.Errorf("ByYearMonth = %+v, want %+v", res.ByYearMonth, want)
	}
	if len(res.ByCategory) != 1 || res.ByCategory[0] != (CategoryCount{Category: "Uncategorized", Count: 2}) {
		t.Errorf("ByCategory = %+v", res.ByCategory)
	}
	if len(res.BySection) != 1 || res.BySection[0] != (SectionCount{Section: "unknown", Count: 2}) {
		t.Errorf("BySection = %+v", res.BySection)
	}
}

func TestAggregate_EmptyCorpus(t *testing.T) {
	res, err := Aggregate(nil, Query{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 0 || res.ByCategory == nil || res.BySection == nil ||
		res.ByYearMonth.Labels == nil || res.ByYearMonth.Counts == nil ||
		res.MonthlyBySection.Labels == nil || res.MonthlyBySection.Series == nil ||
		res.Facets.Sections == nil || res.Facets.Categories == nil {
		t.Errorf("empty corpus should give present, empty fields: %+v", res)
	}
}

func TestAggregate_Grouping(t *testing.T) {
	res, err := Aggregate(sampleCorpus(), Query{})
	if err != nil {
		t.Fatal(err)
	}
	wantCats := []CategoryCount{
		{"Land and water", 2},
		{"Fisheries and aquaculture", 1},
		{"Uncategorized", 1},
	}
	if !reflect.DeepEqual(res.ByCategory, wantCats) {
		t.Errorf("ByCategory = %+v", res.ByCategory)
	}
	wantSecs := []SectionCount{{"news", 2}, {"insights", 1}, {"unknown", 1}}
	if !reflect.DeepEqual(res.BySection, wantSecs) {
		t.Errorf("BySection = %+v", res.BySection)
	}

	wantLabels := []string{Unknown, "2023-11", "2024-01"}
	if !reflect.DeepEqual(res.ByYearMonth.Labels, wantLabels) {
		t.Errorf("labels = %v, want %v", res.ByYearMonth.Labels, wantLabels)
	}
	if !reflect.DeepEqual(res.ByYearMonth.Counts, []int{1, 1, 2}) {
		t.Errorf("counts = %v", res.ByYearMonth.Counts)
	}

	wantSeries := []SectionSeries{
		{Section: "insights", Counts: []int{0, 0, 1}},
		{Section: "news", Counts: []int{0, 1, 1}},
		{Section: "unknown", Counts: []int{1, 0, 0}},
	}
	if !reflect.DeepEqual(res.MonthlyBySection.Series, wantSeries) {
		t.Errorf("series = %+v", res.MonthlyBySection.Series)
	}
	if !reflect.DeepEqual(res.MonthlyBySection.Labels, wantLabels) {
		t.Errorf("stacked labels = %v", res.MonthlyBySection.Labels)
	}
}

func TestAggregate_NoSynthesizedMonths(t *testing.T) {
	corpus := []dataset.Record{{DateISO: "2024-01-01"}, {DateISO: "2024-04-01"}}
	res, _ := Aggregate(corpus, Query{})
	if !reflect.DeepEqual(res.ByYearMonth.Labels, []string{"2024-01", "2024-04"}) {
		t.Errorf("labels = %v", res.ByYearMonth.Labels)
	}
}

func TestAggregate_AllMeansNoFilter(t *testing.T) {
	corpus := sampleCorpus()
	plain, _ := Aggregate(corpus, Query{})
	for _, q := range []Query{{Category: "all"}, {Category: "ALL", Section: " all "}} {
		got, err := Aggregate(corpus, q)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got, plain) {
			t.Errorf("Aggregate(%+v) differs from the unfiltered result", q)
		}
	}
}

func TestAggregate_FacetsIgnoreFilters(t *testing.T) {
	corpus := sampleCorpus()
	plain, _ := Aggregate(corpus, Query{})
	filtered, _ := Aggregate(corpus, Query{Section: "insights", Q: "tenure"})
	if filtered.Total != 1 {
		t.Fatalf("Total = %d", filtered.Total)
	}
	if !reflect.DeepEqual(plain.Facets, filtered.Facets) {
		t.Errorf("facets changed under filter: %+v vs %+v", plain.Facets, filtered.Facets)
	}
	if !reflect.DeepEqual(plain.Facets.Sections, []string{"insights", "news"}) {
		t.Errorf("sections facet = %v", plain.Facets.Sections)
	}
}

func TestFilter(t *testing.T) {
	corpus := sampleCorpus()
	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{"section case-insensitive", Query{Section: "NEWS"}, []string{"Women in fisheries value chains", "Irrigation schemes"}},
		{"category exact", Query{Category: "land and water"}, []string{"Land tenure and water rights", "Irrigation schemes"}},
		{"category is not substring", Query{Category: "land"}, nil},
		{"q over summary", Query{Q: "DRIP"}, []string{"Irrigation schemes"}},
		{"range inclusive", Query{StartYm: "2023-11", EndYm: "2024-01"}, []string{"Women in fisheries value chains", "Land tenure and water rights", "Irrigation schemes"}},
		{"start only excludes unknown", Query{StartYm: "2024-01"}, []string{"Women in fisheries value chains", "Land tenure and water rights"}},
		{"end only", Query{EndYm: "2023-12"}, []string{"Irrigation schemes"}},
		{"combined", Query{Section: "news", StartYm: "2024-01"}, []string{"Women in fisheries value chains"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(corpus, tt.q)
			if err != nil {
				t.Fatal(err)
			}
			var titles []string
			for _, r := range got {
				titles = append(titles, r.Title)
			}
			if !reflect.DeepEqual(titles, tt.want) {
				t.Errorf("titles = %v, want %v", titles, tt.want)
			}
		})
	}
}

func TestFilter_InvalidRange(t *testing.T) {
	if _, err := Filter(sampleCorpus(), Query{StartYm: "2024-1"}); !errors.Is(err, ErrInvalidYearMonth) {
		t.Errorf("err = %v", err)
	}
}

func TestList_SortAndPaginate(t *testing.T) {
	corpus := []dataset.Record{
		{Title: "Women in fisheries value chains", DateISO: "2024-01-10"},
		{Title: "Land tenure and water rights", DateISO: "2024-01-20"},
	}
	page, err := List(corpus, Query{}, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 2 || len(page.Items) != 1 || page.Items[0].Title != "Women in fisheries value chains" {
		t.Errorf("page = %+v", page)
	}
}

func TestList_Order(t *testing.T) {
	corpus := []dataset.Record{
		{Title: "undated b"},
		{Title: "beta", DateISO: "2024-02-01"},
		{Title: "Alpha", DateISO: "2024-02-01"},
		{Title: "undated A"},
		{Title: "newest", DateISO: "2024-03-01"},
	}
	page, _ := List(corpus, Query{}, 50, 0)
	var titles []string
	for _, it := range page.Items {
		titles = append(titles, it.Title)
	}
	want := []string{"newest", "Alpha", "beta", "undated A", "undated b"}
	if !reflect.DeepEqual(titles, want) {
		t.Errorf("order = %v, want %v", titles, want)
	}
}

func TestList_OrderMixesTimestamps(t *testing.T) {
	corpus := []dataset.Record{
		{Title: "a", DateISO: "2024-03-15"},
		{Title: "b", DateISO: "2024-03-14T10:00:00Z"},
		{Title: "c", DateISO: "2024-03-16 08:30"},
	}
	page, _ := List(corpus, Query{}, 50, 0)
	var titles []string
	for _, it := range page.Items {
		titles = append(titles, it.Title)
	}
	if want := []string{"c", "a", "b"}; !reflect.DeepEqual(titles, want) {
		t.Errorf("order = %v, want %v", titles, want)
	}
}

func TestList_Clamping(t *testing.T) {
	corpus := sampleCorpus()
	page, _ := List(corpus, Query{}, 0, -5)
	if len(page.Items) != 1 || page.Total != 4 {
		t.Errorf("limit 0 should clamp to 1: %+v", page)
	}
	page, _ = List(corpus, Query{}, 10, 99)
	if page.Total != 4 || page.Items == nil || len(page.Items) != 0 {
		t.Errorf("offset past end: %+v", page)
	}
	if ClampLimit(10000) != MaxLimit || ClampLimit(-1) != 1 || ClampOffset(-3) != 0 {
		t.Error("clamp bounds")
	}
}

func TestShortSummary(t *testing.T) {
	long := strings.Repeat("a", ShortSummaryChars+10)
	got := ShortSummary(long, "title")
	if got != strings.Repeat("a", ShortSummaryChars)+"…" {
		t.Errorf("ShortSummary len = %d", len([]rune(got)))
	}
	if got := ShortSummary("  ", "Just  a title"); got != "Just a title" {
		t.Errorf("title fallback = %q", got)
	}
	if got := ShortSummary("short", "t"); got != "short" {
		t.Errorf("short summary altered: %q", got)
	}
}

func TestCompact_UsesArticleSummary(t *testing.T) {
	c := Compact(dataset.Record{Title: "T", ArticleSummary: "from the article"})
	if c.Summary != "from the article" || c.ShortSummary != "from the article" {
		t.Errorf("Compact = %+v", c)
	}
}
