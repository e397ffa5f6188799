package rss

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"github.com/asisr38/scrapper/internal/classify"
	"github.com/asisr38/scrapper/internal/dataset"
	"github.com/asisr38/scrapper/internal/logger"
	"github.com/asisr38/scrapper/internal/textutil"
)

// FeedsConfig is YAML config structure
// feeds:
//   - https://...
type FeedsConfig struct {
	Feeds []string `yaml:"feeds"`
}

// LoadFeeds reads RSS feeds list from YAML file
func LoadFeeds(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg.Feeds, nil
}

// Importer turns feed entries into dataset records.
type Importer struct {
	parser  *gofeed.Parser
	section string
}

func NewImporter(section string, timeout time.Duration, userAgent string) *Importer {
	p := gofeed.NewParser()
	if userAgent != "" {
		p.UserAgent = userAgent
	}
	if timeout > 0 {
		p.Client = &http.Client{Timeout: timeout}
	}
	return &Importer{parser: p, section: section}
}

// FetchFeed downloads and parses one feed.
func (im *Importer) FetchFeed(ctx context.Context, url string) ([]dataset.Record, error) {
	feed, err := im.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, err
	}
	return im.Records(feed), nil
}

// ParseFeed parses a feed document already in memory.
func (im *Importer) ParseFeed(data string) ([]dataset.Record, error) {
	feed, err := im.parser.ParseString(data)
	if err != nil {
		return nil, err
	}
	return im.Records(feed), nil
}

// FetchAllFeeds downloads every feed; failing feeds are logged and skipped.
func (im *Importer) FetchAllFeeds(ctx context.Context, urls []string) []dataset.Record {
	var all []dataset.Record
	successCount := 0

	for _, url := range urls {
		recs, err := im.FetchFeed(ctx, url)
		if err != nil {
			logger.Warn("error parsing feed", "url", url, "error", err)
			continue
		}
		all = append(all, recs...)
		successCount++
		logger.Info("loaded feed", "url", url, "items", len(recs))
	}

	logger.Info("processed feeds", "ok", successCount, "total", len(urls))
	return all
}

// Records converts feed items in feed order.
func (im *Importer) Records(feed *gofeed.Feed) []dataset.Record {
	if feed == nil {
		return nil
	}
	recs := make([]dataset.Record, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		recs = append(recs, im.record(item))
	}
	return recs
}

func (im *Importer) record(item *gofeed.Item) dataset.Record {
	summary := StripMarkup(item.Description)
	if summary == "" {
		summary = StripMarkup(item.Content)
	}
	title := textutil.NormalizeSpace(item.Title)

	rec := dataset.Record{
		Section: im.section,
		Title:   title,
		URL:     strings.TrimSpace(item.Link),
		Summary: summary,
	}
	switch {
	case item.PublishedParsed != nil:
		rec = dataset.WithDate(rec, item.PublishedParsed.UTC())
	case item.UpdatedParsed != nil:
		rec = dataset.WithDate(rec, item.UpdatedParsed.UTC())
	default:
		rec.Date = textutil.NormalizeSpace(item.Published)
		rec.DateISO, rec.Year, rec.Month = dataset.ParseDate(rec.Date)
	}
	rec.Category = classify.ClassifyRecord(title, summary, "")
	return rec
}

// StripMarkup returns the text of an HTML fragment, whitespace-normalized.
func StripMarkup(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return textutil.NormalizeSpace(fragment)
	}
	return textutil.NormalizeSpace(doc.Text())
}
