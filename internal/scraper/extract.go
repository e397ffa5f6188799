package scraper

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/asisr38/scrapper/internal/textutil"
)

// boilerplateSelectors are removed before any candidate is scored.
var boilerplateSelectors = []string{
	"script", "style", "nav", "header", "footer", "aside", "form", "noscript",
	"div.share", "div.social", "ul.share-buttons",
}

// candidateSelectors are tried in order, article-like regions first and
// generic containers last. Only the first match of each is considered.
var candidateSelectors = []string{
	"article",
	"main article",
	"main .article",
	"div.article",
	"div.article-content",
	"div.entry-content",
	"div#content",
	"main",
	"section.content",
	"div.content",
	"div.text",
	"div#main-content",
}

// Article is the readable part of a fetched page.
type Article struct {
	Title string
	// Body holds one normalized paragraph per line.
	Body string
}

// Text is the body flattened into one normalized line.
func (a Article) Text() string {
	return textutil.NormalizeSpace(a.Body)
}

// ParseArticle reads the title and the main body from one parse of the page.
// The title is taken before boilerplate removal since headings often sit in
// a page header.
func ParseArticle(html string) Article {
	if strings.TrimSpace(html) == "" {
		return Article{}
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Article{}
	}
	title := extractTitle(doc)
	return Article{Title: title, Body: extractBody(doc)}
}

// ExtractBody returns the most likely article body of an HTML page, one
// normalized paragraph per line. Malformed or empty HTML yields "".
func ExtractBody(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return extractBody(doc)
}

// ExtractMainText is ExtractBody flattened into a single normalized line, the
// form the summarizer and classifier consume.
func ExtractMainText(html string) string {
	return textutil.NormalizeSpace(ExtractBody(html))
}

func extractBody(doc *goquery.Document) string {
	for _, sel := range boilerplateSelectors {
		doc.Find(sel).Remove()
	}

	best := ""
	bestLen := 0
	for _, sel := range candidateSelectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		text := joinText(node.Find("p, li"))
		if n := utf8.RuneCountInString(text); n > bestLen {
			best, bestLen = text, n
		}
	}
	if best == "" {
		best = joinText(doc.Find("p"))
	}
	return best
}

func joinText(s *goquery.Selection) string {
	var lines []string
	s.Each(func(_ int, el *goquery.Selection) {
		if text := nodeText(el); text != "" {
			lines = append(lines, text)
		}
	})
	return strings.Join(lines, "\n")
}

// nodeText joins the descendant text nodes of el with spaces, so words on
// either side of <br> or an inline tag stay apart.
func nodeText(el *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range el.Nodes {
		walk(n)
	}
	return textutil.NormalizeSpace(strings.Join(parts, " "))
}

// ExtractTitle gets the page title, preferring the first heading.
func ExtractTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return extractTitle(doc)
}

func extractTitle(doc *goquery.Document) string {
	selectors := []string{
		"h1",
		"meta[property='og:title']",
		"title",
		".article-title",
		".headline",
		".entry-title",
	}

	for _, selector := range selectors {
		node := doc.Find(selector).First()
		title := node.Text()
		if content, ok := node.Attr("content"); ok {
			title = content
		}
		if title = textutil.NormalizeSpace(title); title != "" {
			return title
		}
	}

	return ""
}
