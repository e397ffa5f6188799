package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/asisr38/scrapper/internal/logger"
	"github.com/asisr38/scrapper/internal/metrics"
)

// ErrOutsideDataDir is returned for a caller-supplied local path that escapes
// the data directory.
var ErrOutsideDataDir = errors.New("dataset path is outside the data directory")

const maxDatasetBytes = 64 << 20

// IsURL reports whether location is an http(s) URL rather than a local path.
func IsURL(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// Result is the outcome of loading one dataset.
type Result struct {
	Location string
	Records  []Record
	Err      error
}

// Loader reads datasets from local files or URLs.
type Loader struct {
	client      *http.Client
	concurrency int
}

// NewLoader makes a loader. Remote datasets time out after timeout; at most
// concurrency datasets load at once.
func NewLoader(timeout time.Duration, concurrency int) *Loader {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Loader{
		client:      &http.Client{Timeout: timeout},
		concurrency: concurrency,
	}
}

// Load reads and decodes one dataset.
func (l *Loader) Load(ctx context.Context, location string) ([]Record, error) {
	data, err := l.read(ctx, location)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func (l *Loader) read(ctx context.Context, location string) ([]byte, error) {
	if !IsURL(location) {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("read dataset: %w", err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch dataset: HTTP %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDatasetBytes))
	if err != nil {
		return nil, fmt.Errorf("read dataset body: %w", err)
	}
	return data, nil
}

// LoadAll loads every location concurrently and waits for all of them. The
// results keep the order of locations.
func (l *Loader) LoadAll(ctx context.Context, locations []string) []Result {
	results := make([]Result, len(locations))
	var g errgroup.Group
	g.SetLimit(l.concurrency)
	for i, loc := range locations {
		g.Go(func() error {
			recs, err := l.Load(ctx, loc)
			results[i] = Result{Location: loc, Records: recs, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Merge builds the corpus: the records of every dataset that loaded, in
// location order. Failed datasets are logged and skipped. Duplicates across
// datasets are kept.
func (l *Loader) Merge(ctx context.Context, locations []string) []Record {
	return Concat(l.LoadAll(ctx, locations))
}

// Concat joins the records of the successful results in order.
func Concat(results []Result) []Record {
	total := 0
	for _, r := range results {
		total += len(r.Records)
	}
	corpus := make([]Record, 0, total)
	for _, r := range results {
		if r.Err != nil {
			metrics.DatasetLoads.WithLabelValues("error").Inc()
			if errors.Is(r.Err, fs.ErrNotExist) {
				logger.Debug("dataset file absent", "location", r.Location)
			} else {
				logger.Warn("skipping dataset", "location", r.Location, "error", r.Err)
			}
			continue
		}
		metrics.DatasetLoads.WithLabelValues("ok").Inc()
		logger.Debug("loaded dataset", "location", r.Location, "records", len(r.Records))
		corpus = append(corpus, r.Records...)
	}
	return corpus
}

// Sources decides which datasets a query reads.
type Sources struct {
	// DataDir anchors relative paths and confines caller overrides.
	DataDir string
	// EnvPath is the operator-configured single dataset, if any.
	EnvPath string
	// Defaults are read, all of them, when no override is present.
	Defaults []string
}

// Resolve returns the locations to merge. A caller override wins, then the
// configured path; only without either are all defaults used.
func (s Sources) Resolve(override string) ([]string, error) {
	if override = strings.TrimSpace(override); override != "" {
		if IsURL(override) {
			return []string{override}, nil
		}
		p, err := s.confine(override)
		if err != nil {
			return nil, err
		}
		return []string{p}, nil
	}
	if s.EnvPath != "" {
		return []string{s.EnvPath}, nil
	}
	locs := make([]string, len(s.Defaults))
	for i, d := range s.Defaults {
		locs[i] = s.anchor(d)
	}
	return locs, nil
}

func (s Sources) anchor(location string) string {
	if IsURL(location) || filepath.IsAbs(location) {
		return location
	}
	return filepath.Join(s.DataDir, location)
}

func (s Sources) confine(path string) (string, error) {
	root, err := filepath.Abs(s.DataDir)
	if err != nil {
		return "", fmt.Errorf("resolve data dir: %w", err)
	}
	candidate := path
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(root, candidate)
	}
	candidate = filepath.Clean(candidate)
	rel, err := filepath.Rel(root, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideDataDir, path)
	}
	return candidate, nil
}

// DefaultLocations names one JSON file per section key, in the given order.
func DefaultLocations(sections []string) []string {
	locs := make([]string, len(sections))
	for i, s := range sections {
		locs[i] = s + ".json"
	}
	return locs
}
