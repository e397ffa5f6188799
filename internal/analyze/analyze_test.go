package analyze

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/asisr38/scrapper/internal/agent"
	"github.com/asisr38/scrapper/internal/classify"
	"github.com/asisr38/scrapper/internal/metrics"
	"github.com/asisr38/scrapper/internal/scraper"
)

type stubFetcher struct {
	article scraper.Article
	err     error
}

func (s stubFetcher) FetchArticle(context.Context, string) (scraper.Article, error) {
	return s.article, s.err
}

type stubJudge struct {
	out   agent.Outcome
	calls int
}

func (s *stubJudge) Judge(context.Context, string, string, string) agent.Outcome {
	s.calls++
	return s.out
}

var fishArticle = scraper.Article{
	Title: "Women in fisheries value chains",
	Body:  "Women process most of the catch.\nAquaculture is growing fast.",
}

func TestAnalyze_Heuristic(t *testing.T) {
	judge := &stubJudge{}
	a := New(stubFetcher{article: fishArticle}, judge)
	res := a.Analyze(context.Background(), "https://example.org/a", false)
	if judge.calls != 0 {
		t.Error("judge called without useRemote")
	}
	if res.Method != MethodHeuristic || res.Category != "Gender in fisheries and aquaculture" {
		t.Errorf("res = %+v", res)
	}
	if res.Summary != "Women process most of the catch. Aquaculture is growing fast." {
		t.Errorf("Summary = %q", res.Summary)
	}
	if res.Title != fishArticle.Title || res.URL != "https://example.org/a" || res.Degraded {
		t.Errorf("res = %+v", res)
	}
}

func TestAnalyze_Agent(t *testing.T) {
	judge := &stubJudge{out: agent.Outcome{Available: true, Judgment: agent.Judgment{Summary: "Remote.", Category: "C"}}}
	before := testutil.ToFloat64(metrics.Classifications.WithLabelValues(MethodAgent))
	res := New(stubFetcher{article: fishArticle}, judge).Analyze(context.Background(), "u", true)
	if res.Method != MethodAgent || res.Summary != "Remote." || res.Category != "C" || res.Title != fishArticle.Title {
		t.Errorf("res = %+v", res)
	}
	if got := testutil.ToFloat64(metrics.Classifications.WithLabelValues(MethodAgent)) - before; got != 1 {
		t.Errorf("agent classifications delta = %v", got)
	}
}

func TestAnalyze_AgentUnavailableFallsBack(t *testing.T) {
	judge := &stubJudge{out: agent.Outcome{Reason: agent.ReasonTransport}}
	res := New(stubFetcher{article: fishArticle}, judge).Analyze(context.Background(), "u", true)
	if judge.calls != 1 || res.Method != MethodHeuristic || res.Category != "Gender in fisheries and aquaculture" {
		t.Errorf("res = %+v, calls = %d", res, judge.calls)
	}
}

func TestAnalyze_NoJudge(t *testing.T) {
	res := New(stubFetcher{article: fishArticle}, nil).Analyze(context.Background(), "u", true)
	if res.Method != MethodHeuristic {
		t.Errorf("Method = %s", res.Method)
	}
}

func TestAnalyze_FetchFailureIsSoft(t *testing.T) {
	res := New(stubFetcher{err: errors.New("boom")}, nil).Analyze(context.Background(), "u", false)
	if res.Method != MethodHeuristic || res.Summary != "" || res.Title != "" {
		t.Errorf("res = %+v", res)
	}
	if res.Category != classify.DefaultCategory {
		t.Errorf("Category = %q", res.Category)
	}
	if !res.Degraded {
		t.Error("failed fetch not marked degraded")
	}
}

func TestAnalyze_RealFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Tenure</title></head><body>
			<nav><p>Home About</p></nav>
			<article><h1>Land tenure and water rights</h1>
			<p>Secure land tenure matters for rural women.</p>
			<p>Water rights follow land rights.</p></article></body></html>`))
	}))
	defer srv.Close()

	a := New(scraper.NewFetcher(time.Second, "test-agent"), agent.New(nil, agent.Options{}))
	res := a.Analyze(context.Background(), srv.URL, true)
	if res.Title != "Land tenure and water rights" || res.Method != MethodHeuristic {
		t.Errorf("res = %+v", res)
	}
	if res.Summary != "Secure land tenure matters for rural women. Water rights follow land rights." {
		t.Errorf("Summary = %q", res.Summary)
	}
}
