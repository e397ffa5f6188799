package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "scrapper"

var (
	// Classifications counts classification responses by method (heuristic, agent).
	Classifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Classification responses by method",
		},
		[]string{"method"},
	)

	// RemoteFailures counts remote judgments that came back unavailable.
	RemoteFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_unavailable_total",
			Help:      "Remote classifier calls that fell back to the heuristic path",
		},
		[]string{"provider", "reason"},
	)

	// RemoteRequestDuration observes remote generation latency.
	RemoteRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "remote_request_duration_seconds",
			Help:      "Remote classifier request duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
		},
		[]string{"provider"},
	)

	// DatasetLoads counts dataset loads by status (ok, error).
	DatasetLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_loads_total",
			Help:      "Dataset loads by status",
		},
		[]string{"status"},
	)

	// ScrapedItems counts listing rows scraped per section.
	ScrapedItems = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scraped_items_total",
			Help:      "Listing items scraped per section",
		},
		[]string{"section"},
	)
)

var registerOnce sync.Once

// Register adds every collector of this package to the default registry.
// Calling it more than once is harmless.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			Classifications,
			RemoteFailures,
			RemoteRequestDuration,
			DatasetLoads,
			ScrapedItems,
			httpRequestDuration,
			httpRequestsTotal,
		)
	})
}

// Health tracks the last run of a long-lived process for the health endpoint.
type Health struct {
	mu sync.RWMutex

	started   time.Time
	lastError string
	errorAt   time.Time
}

// Global is the process health record.
var Global = &Health{started: time.Now()}

func (h *Health) SetError(err string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastError = err
	h.errorAt = time.Now()
}

func (h *Health) GetStats() map[string]interface{} {
	h.mu.RLock()
	defer h.mu.RUnlock()

	stats := map[string]interface{}{
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
		"last_error":     h.lastError,
	}
	if !h.errorAt.IsZero() {
		stats["last_error_time"] = h.errorAt.Format(time.RFC3339)
	}
	return stats
}
