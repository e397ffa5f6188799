package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/asisr38/scrapper/internal/textutil"
)

// DefaultBaseURL is the FAO site root.
const DefaultBaseURL = "https://www.fao.org"

// Section is a paginated listing of the FAO Gender site.
type Section struct {
	Key  string
	Path string
}

// Sections in their canonical order. This order is also the default dataset
// order.
var Sections = []Section{
	{Key: "news", Path: "news"},
	{Key: "insights", Path: "insights"},
	{Key: "success-stories", Path: "success-stories"},
	{Key: "e-learning", Path: "resources/e-learning"},
	{Key: "publications", Path: "resources/publications"},
}

// LookupSection finds a section by key.
func LookupSection(key string) (Section, bool) {
	for _, s := range Sections {
		if s.Key == key {
			return s, true
		}
	}
	return Section{}, false
}

// SectionKeys lists the known section keys.
func SectionKeys() []string {
	keys := make([]string, len(Sections))
	for i, s := range Sections {
		keys[i] = s.Key
	}
	return keys
}

// PageURL builds the listing URL. Page 1 has no page segment.
func (s Section) PageURL(base string, page int) string {
	base = strings.TrimRight(base, "/")
	if page <= 1 {
		return fmt.Sprintf("%s/gender/%s/en", base, s.Path)
	}
	return fmt.Sprintf("%s/gender/%s/%d/en", base, s.Path, page)
}

// Row is one card of a listing page, whitespace-normalized.
type Row struct {
	Title   string
	Date    string
	URL     string
	Summary string
}

func (r Row) empty() bool {
	return r.Title == "" && r.Date == "" && r.URL == "" && r.Summary == ""
}

// ParseListing extracts the cards of a listing page. E-learning pages use a
// card layout; every other section shares the list layout.
func ParseListing(section Section, base, html string) []Row {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	if section.Key == "e-learning" {
		return parseCards(doc, base)
	}
	return parseList(doc, base)
}

func parseList(doc *goquery.Document, base string) []Row {
	var rows []Row
	doc.Find("div.d-list-content").Each(func(_ int, content *goquery.Selection) {
		link := content.Find("h5.title-link a").First()
		href, _ := link.Attr("href")
		row := Row{
			Title:   textutil.NormalizeSpace(link.Text()),
			Date:    textutil.NormalizeSpace(content.Find("h6.date").First().Text()),
			URL:     absolute(base, href),
			Summary: textutil.NormalizeSpace(content.Find("div").First().Text()),
		}
		if !row.empty() {
			rows = append(rows, row)
		}
	})
	return rows
}

func parseCards(doc *goquery.Document, base string) []Row {
	var rows []Row
	doc.Find("div.card.card-elearning div.card-body").Each(func(_ int, card *goquery.Selection) {
		link := card.Find("h5.card-title a.title-link").First()
		href, _ := link.Attr("href")
		row := Row{
			Title:   textutil.NormalizeSpace(link.Text()),
			Date:    textutil.NormalizeSpace(card.Find("h6.date").First().Text()),
			URL:     absolute(base, href),
			Summary: textutil.NormalizeSpace(card.Find("p.card-text").First().Text()),
		}
		if !row.empty() {
			rows = append(rows, row)
		}
	})
	return rows
}

func absolute(base, href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "/") {
		return strings.TrimRight(base, "/") + href
	}
	return href
}
