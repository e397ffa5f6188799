// Package analyze turns an article URL into a title, summary and category,
// using the remote classifier when asked and available and the local
// heuristics otherwise.
package analyze

import (
	"context"

	"github.com/asisr38/scrapper/internal/agent"
	"github.com/asisr38/scrapper/internal/classify"
	"github.com/asisr38/scrapper/internal/logger"
	"github.com/asisr38/scrapper/internal/metrics"
	"github.com/asisr38/scrapper/internal/scraper"
	"github.com/asisr38/scrapper/internal/summary"
)

const (
	MethodHeuristic = "heuristic"
	MethodAgent     = "agent"
)

// Result is the classification response.
type Result struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Summary  string `json:"summary"`
	Category string `json:"category"`
	Method   string `json:"method"`

	// Degraded marks a result built without the article text because the
	// fetch failed.
	Degraded bool `json:"-"`
}

// ArticleFetcher downloads an article page.
type ArticleFetcher interface {
	FetchArticle(ctx context.Context, url string) (scraper.Article, error)
}

// Judge asks a remote model about an article.
type Judge interface {
	Judge(ctx context.Context, url, title, text string) agent.Outcome
}

type Analyzer struct {
	fetcher   ArticleFetcher
	judge     Judge
	sentences int
}

// New makes an analyzer. judge may be nil when no remote provider exists.
func New(fetcher ArticleFetcher, judge Judge) *Analyzer {
	return &Analyzer{fetcher: fetcher, judge: judge, sentences: summary.DefaultSentences}
}

// Analyze fetches url and judges it. A failed fetch is not an error: the
// heuristics run over the empty text and still produce a category.
func (a *Analyzer) Analyze(ctx context.Context, url string, useRemote bool) Result {
	article, err := a.fetcher.FetchArticle(ctx, url)
	degraded := err != nil
	if degraded {
		logger.Warn("article fetch failed", "url", url, "error", err)
		article = scraper.Article{}
	}
	text := article.Text()

	if useRemote && a.judge != nil {
		if out := a.judge.Judge(ctx, url, article.Title, text); out.Available {
			metrics.Classifications.WithLabelValues(MethodAgent).Inc()
			return Result{
				Title:    article.Title,
				URL:      url,
				Summary:  out.Judgment.Summary,
				Category: out.Judgment.Category,
				Method:   MethodAgent,
				Degraded: degraded,
			}
		}
	}

	metrics.Classifications.WithLabelValues(MethodHeuristic).Inc()
	res := Heuristic(url, article.Title, text, a.sentences)
	res.Degraded = degraded
	return res
}

// Heuristic is the local path: an extractive summary and a keyword category.
func Heuristic(url, title, text string, sentences int) Result {
	s := summary.Summarize(text, sentences)
	m := classify.ScoreRecord(title, s, text)
	if m.Category != m.Winner {
		logger.Debug("category below confidence floor", "url", url, "winner", m.Winner, "score", m.Score)
	}
	return Result{
		Title:    title,
		URL:      url,
		Summary:  s,
		Category: m.Category,
		Method:   MethodHeuristic,
	}
}
