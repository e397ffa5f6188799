// Package server exposes classification, aggregation and listing over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/asisr38/scrapper/internal/analyze"
	"github.com/asisr38/scrapper/internal/cache"
	"github.com/asisr38/scrapper/internal/dataset"
	"github.com/asisr38/scrapper/internal/logger"
	"github.com/asisr38/scrapper/internal/metrics"
	"github.com/asisr38/scrapper/internal/ratelimit"
	"github.com/asisr38/scrapper/internal/stats"
)

// Error codes of the JSON error envelope.
const (
	CodeBadRequest = "bad_request"
	CodeInvalidURL = "invalid_url"
	CodeInvalidYm  = "invalid_year_month"
	CodeBadDataset = "invalid_dataset"
	CodeInternal   = "internal_error"
)

// maxBodyBytes caps a classify request body.
const maxBodyBytes = 1 << 20

// Corpus merges dataset locations into one record list.
type Corpus interface {
	Merge(ctx context.Context, locations []string) []dataset.Record
}

// Classifier analyzes one article URL.
type Classifier interface {
	Analyze(ctx context.Context, url string, useRemote bool) analyze.Result
}

// Deps are the collaborators of the handlers. Budget may be nil.
type Deps struct {
	Sources        dataset.Sources
	Corpus         Corpus
	Classifier     Classifier
	Budget         *ratelimit.Budget
	RemoteProvider string
	CacheTTL       time.Duration
}

type Server struct {
	deps    Deps
	results *cache.Cache[analyze.Result]
}

func New(deps Deps) *Server {
	return &Server{deps: deps, results: cache.New[analyze.Result](deps.CacheTTL)}
}

// Close stops the response cache.
func (s *Server) Close() {
	s.results.Close()
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(jsonRecoverer)
	r.Use(metrics.Middleware())

	r.Get("/health", s.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/classify", s.Classify)
		r.Get("/stats", s.Stats)
		r.Get("/items", s.Items)
	})
	return r
}

type classifyRequest struct {
	URL       string `json:"url"`
	UseRemote bool   `json:"useRemote"`
}

// Classify handles POST /api/classify.
func (s *Server) Classify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	target := strings.TrimSpace(req.URL)
	if !validURL(target) {
		writeError(w, http.StatusBadRequest, CodeInvalidURL, "url must be an http(s) URL")
		return
	}

	key := cache.Key(target, strconv.FormatBool(req.UseRemote))
	if res, ok := s.results.Get(key); ok {
		if s.deps.Budget != nil {
			s.deps.Budget.RecordCacheHit()
		}
		writeJSON(w, http.StatusOK, res)
		return
	}

	res := s.deps.Classifier.Analyze(r.Context(), target, req.UseRemote)
	if s.deps.CacheTTL > 0 && !res.Degraded {
		s.results.Set(key, res, s.deps.CacheTTL)
	}
	writeJSON(w, http.StatusOK, res)
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// Stats handles GET /api/stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	corpus, q, ok := s.corpus(w, r)
	if !ok {
		return
	}
	res, err := stats.Aggregate(corpus, q)
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Items handles GET /api/items.
func (s *Server) Items(w http.ResponseWriter, r *http.Request) {
	corpus, q, ok := s.corpus(w, r)
	if !ok {
		return
	}
	page, err := stats.List(corpus, q,
		intParam(r, "limit", stats.DefaultLimit),
		intParam(r, "offset", 0))
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// corpus validates the query and loads the datasets it names. It writes the
// error response itself and reports false when the request cannot proceed.
func (s *Server) corpus(w http.ResponseWriter, r *http.Request) ([]dataset.Record, stats.Query, bool) {
	v := r.URL.Query()
	q := stats.Query{
		Section:  v.Get("section"),
		Category: v.Get("category"),
		Q:        v.Get("q"),
		StartYm:  v.Get("startYm"),
		EndYm:    v.Get("endYm"),
	}.Normalize()
	if err := q.Validate(); err != nil {
		s.handleError(w, err)
		return nil, q, false
	}
	locations, err := s.deps.Sources.Resolve(v.Get("dataset"))
	if err != nil {
		s.handleError(w, err)
		return nil, q, false
	}
	return s.deps.Corpus.Merge(r.Context(), locations), q, true
}

// intParam reads an integer query parameter; missing or malformed values
// give def and range clamping is left to the caller.
func intParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	datasets, err := s.deps.Sources.Resolve("")
	if err != nil {
		datasets = []string{}
	}
	resp := map[string]any{
		"status":          "ok",
		"remote_provider": s.deps.RemoteProvider,
		"datasets":        datasets,
		"classify_cache":  s.results.Len(),
	}
	for k, v := range metrics.Global.GetStats() {
		resp[k] = v
	}
	if s.deps.Budget != nil {
		resp["remote_budget"] = s.deps.Budget.GetStats()
	}
	writeJSON(w, http.StatusOK, resp)
}

type errorMapping struct {
	sentinel error
	status   int
	code     string
}

var errorMappings = []errorMapping{
	{stats.ErrInvalidYearMonth, http.StatusBadRequest, CodeInvalidYm},
	{dataset.ErrOutsideDataDir, http.StatusBadRequest, CodeBadDataset},
}

func (s *Server) handleError(w http.ResponseWriter, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.sentinel) {
			writeError(w, m.status, m.code, err.Error())
			return
		}
	}
	logger.Error("unhandled error", "error", err)
	metrics.Global.SetError(err.Error())
	writeError(w, http.StatusInternalServerError, CodeInternal, "internal error")
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// jsonRecoverer returns a JSON 500 instead of a plain text stacktrace.
func jsonRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				logger.Error("panic recovered", "panic", rvr, "request_id", middleware.GetReqID(r.Context()))
				writeError(w, http.StatusInternalServerError, CodeInternal, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
