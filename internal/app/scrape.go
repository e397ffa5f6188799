// Package app runs the listing scrape job: page through a section, optionally
// deep-fetch each article, summarize and classify every item.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/asisr38/scrapper/internal/classify"
	"github.com/asisr38/scrapper/internal/dataset"
	"github.com/asisr38/scrapper/internal/logger"
	"github.com/asisr38/scrapper/internal/metrics"
	"github.com/asisr38/scrapper/internal/retry"
	"github.com/asisr38/scrapper/internal/scraper"
	"github.com/asisr38/scrapper/internal/summary"
)

const (
	DefaultSummarySentences = 3
	maxSummarySentences     = 8
)

// Options configure one scrape run.
type Options struct {
	Section   scraper.Section
	BaseURL   string
	StartPage int
	MaxPages  int
	// Delay paces listing page requests.
	Delay time.Duration

	FetchArticle     bool
	Summarize        bool
	SummarySentences int
	// Concurrency bounds parallel article fetches within one page.
	Concurrency int

	Retry retry.RetryConfig
}

// ClampSentences bounds a summary length to [1, 8].
func ClampSentences(n int) int {
	if n < 1 {
		return 1
	}
	if n > maxSummarySentences {
		return maxSummarySentences
	}
	return n
}

// Page is anything that can GET a page and extract an article.
type Page interface {
	Get(ctx context.Context, url string) (*scraper.Response, error)
	FetchArticle(ctx context.Context, url string) (scraper.Article, error)
}

type Job struct {
	fetcher Page
	opts    Options
	limiter *rate.Limiter
}

func NewJob(fetcher Page, opts Options) *Job {
	if opts.BaseURL == "" {
		opts.BaseURL = scraper.DefaultBaseURL
	}
	if opts.StartPage < 1 {
		opts.StartPage = 1
	}
	if opts.SummarySentences == 0 {
		opts.SummarySentences = DefaultSummarySentences
	}
	opts.SummarySentences = ClampSentences(opts.SummarySentences)
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if opts.Retry.MaxAttempts < 1 {
		opts.Retry.MaxAttempts = 1
	}
	opts.Retry.Retryable = retryable

	limit := rate.Inf
	if opts.Delay > 0 {
		limit = rate.Every(opts.Delay)
	}
	return &Job{fetcher: fetcher, opts: opts, limiter: rate.NewLimiter(limit, 1)}
}

// Run scrapes until MaxPages pages were fetched, a page answers 404 or a page
// has no items. Records come back in scrape order.
func (j *Job) Run(ctx context.Context) ([]dataset.Record, error) {
	var results []dataset.Record
	section := j.opts.Section

	page := j.opts.StartPage
	for fetched := 0; fetched < j.opts.MaxPages; fetched++ {
		if err := j.limiter.Wait(ctx); err != nil {
			return results, err
		}

		url := section.PageURL(j.opts.BaseURL, page)
		resp, err := j.getPage(ctx, url)
		if err != nil {
			return results, fmt.Errorf("fetch %s: %w", url, err)
		}
		if resp.StatusCode != http.StatusOK {
			logger.Warn("unexpected listing status", "status", resp.StatusCode, "url", url)
			if resp.StatusCode == http.StatusNotFound {
				break
			}
		}

		rows := scraper.ParseListing(section, j.opts.BaseURL, resp.Body)
		if len(rows) == 0 {
			logger.Info("no more items", "section", section.Key, "page", page)
			break
		}
		metrics.ScrapedItems.WithLabelValues(section.Key).Add(float64(len(rows)))
		logger.Info("scraped listing page", "section", section.Key, "page", page, "items", len(rows))

		recs, err := j.records(ctx, rows, page)
		if err != nil {
			return results, err
		}
		results = append(results, recs...)
		page++
	}
	return results, nil
}

func (j *Job) getPage(ctx context.Context, url string) (*scraper.Response, error) {
	var last *scraper.Response
	err := retry.WithRetry(ctx, j.opts.Retry, func() error {
		resp, err := j.fetcher.Get(ctx, url)
		if err != nil {
			return err
		}
		last = resp
		if retryableStatus(resp.StatusCode) {
			return fmt.Errorf("%w: %d", scraper.ErrStatus, resp.StatusCode)
		}
		return nil
	})
	if err != nil && (last == nil || !errors.Is(err, scraper.ErrStatus)) {
		return nil, err
	}
	return last, nil
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func retryable(err error) bool {
	return !errors.Is(err, context.Canceled)
}

// records builds the page's records, deep-fetching articles concurrently.
func (j *Job) records(ctx context.Context, rows []scraper.Row, page int) ([]dataset.Record, error) {
	out := make([]dataset.Record, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.opts.Concurrency)
	for i, row := range rows {
		g.Go(func() error {
			out[i] = j.record(gctx, row, page)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *Job) record(ctx context.Context, row scraper.Row, page int) dataset.Record {
	rec := dataset.Record{
		Section: j.opts.Section.Key,
		Page:    page,
		Title:   row.Title,
		Date:    row.Date,
		URL:     row.URL,
		Summary: row.Summary,
	}
	rec.DateISO, rec.Year, rec.Month = dataset.ParseDate(row.Date)
	rec.Category = classify.ClassifyRecord(row.Title, row.Summary, "")

	if j.opts.FetchArticle && row.URL != "" {
		article, err := j.fetcher.FetchArticle(ctx, row.URL)
		if err != nil {
			logger.Debug("article fetch failed", "url", row.URL, "error", err)
		} else {
			rec.ArticleText = article.Text()
			if j.opts.Summarize && rec.ArticleText != "" {
				rec.ArticleSummary = summary.Summarize(rec.ArticleText, j.opts.SummarySentences)
			}
		}
	}
	if j.opts.Summarize && rec.ArticleSummary == "" && rec.Summary != "" {
		rec.ArticleSummary = summary.Summarize(rec.Summary, j.opts.SummarySentences)
	}
	return rec
}
