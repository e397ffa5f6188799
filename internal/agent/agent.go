// Package agent asks a remote language model for a {summary, category}
// judgment of an article. Every failure is reported as an unavailable Outcome
// so callers can fall back to the local heuristics.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/asisr38/scrapper/internal/classify"
	"github.com/asisr38/scrapper/internal/logger"
	"github.com/asisr38/scrapper/internal/metrics"
	"github.com/asisr38/scrapper/internal/ratelimit"
	"github.com/asisr38/scrapper/internal/textutil"
)

const (
	DefaultTimeout  = 20 * time.Second
	DefaultMaxChars = 8000
)

// Reasons an Outcome is unavailable.
const (
	ReasonNotConfigured = "not_configured"
	ReasonRateLimited   = "rate_limited"
	ReasonTimeout       = "timeout"
	ReasonTransport     = "transport"
	ReasonUnparsable    = "unparsable"
	ReasonEmptySummary  = "empty_summary"
)

// Generator produces a completion for a prompt. Implementations are expected
// to request JSON output from their provider.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Judgment is the remote summary and category for one article.
type Judgment struct {
	Summary  string
	Category string
}

// Outcome is either an available Judgment or an unavailable reason.
type Outcome struct {
	Judgment  Judgment
	Available bool
	Reason    string
}

func available(j Judgment) Outcome { return Outcome{Judgment: j, Available: true} }

func unavailable(reason string) Outcome { return Outcome{Reason: reason} }

type Options struct {
	Timeout  time.Duration
	MaxChars int
	// Budget, when set, caps requests per provider.
	Budget *ratelimit.Budget
}

// Adapter wraps a Generator. A nil Generator means no credential is
// configured.
type Adapter struct {
	gen  Generator
	opts Options
}

func New(gen Generator, opts Options) *Adapter {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxChars <= 0 {
		opts.MaxChars = DefaultMaxChars
	}
	return &Adapter{gen: gen, opts: opts}
}

// Enabled reports whether a provider is configured.
func (a *Adapter) Enabled() bool {
	return a != nil && a.gen != nil
}

// Provider names the configured provider, or "" when none is.
func (a *Adapter) Provider() string {
	if !a.Enabled() {
		return ""
	}
	return a.gen.Name()
}

// Judge asks the provider about one article. It never returns an error.
func (a *Adapter) Judge(ctx context.Context, url, title, text string) Outcome {
	if !a.Enabled() {
		return unavailable(ReasonNotConfigured)
	}
	provider := a.gen.Name()

	out := a.judge(ctx, provider, url, title, text)
	if !out.Available {
		metrics.RemoteFailures.WithLabelValues(provider, out.Reason).Inc()
		logger.Warn("remote judgment unavailable", "provider", provider, "url", url, "reason", out.Reason)
	}
	return out
}

func (a *Adapter) judge(ctx context.Context, provider, url, title, text string) Outcome {
	if a.opts.Budget != nil {
		if err := a.opts.Budget.Use(provider); err != nil {
			return unavailable(ReasonRateLimited)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
	defer cancel()

	prompt := BuildPrompt(url, title, textutil.Truncate(text, a.opts.MaxChars, ""))
	start := time.Now()
	raw, err := a.gen.Generate(ctx, prompt)
	metrics.RemoteRequestDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	if err != nil {
		logger.Debug("remote generation failed", "provider", provider, "error", err)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return unavailable(ReasonTimeout)
		}
		return unavailable(ReasonTransport)
	}

	j, err := ParseJudgment(raw)
	if err != nil {
		logger.Debug("remote response unparsable", "provider", provider, "error", err)
		return unavailable(ReasonUnparsable)
	}
	if j.Summary == "" {
		return unavailable(ReasonEmptySummary)
	}
	if j.Category == "" {
		j.Category = classify.Classify(j.Summary)
	} else if name, ok := classify.Canonical(j.Category); ok {
		j.Category = name
	}
	return available(j)
}

// BuildPrompt asks for a JSON object with summary and category, offering the
// catalogue names as the allowed categories.
func BuildPrompt(url, title, text string) string {
	var b strings.Builder
	b.WriteString("You classify development news articles.\n")
	b.WriteString("Return only a JSON object with two string fields:\n")
	b.WriteString(`  "summary": a neutral summary of the article in at most 5 sentences,` + "\n")
	b.WriteString(`  "category": exactly one of the categories below.` + "\n\n")
	b.WriteString("Categories:\n")
	for _, name := range classify.Names() {
		b.WriteString("- ")
		b.WriteString(name)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nURL: %s\nTitle: %s\n\nArticle:\n%s\n", url, title, text)
	return b.String()
}

// ParseJudgment reads the first JSON object in raw, tolerating surrounding
// prose and code fences.
func ParseJudgment(raw string) (Judgment, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return Judgment{}, errors.New("no JSON object in response")
	}

	var payload struct {
		Summary  string `json:"summary"`
		Category string `json:"category"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
		return Judgment{}, fmt.Errorf("decode response: %w", err)
	}
	return Judgment{
		Summary:  textutil.NormalizeSpace(payload.Summary),
		Category: textutil.NormalizeSpace(payload.Category),
	}, nil
}
