package ratelimit

import (
	"fmt"
	"sync"
	"time"

	"github.com/asisr38/scrapper/internal/logger"
)

// Budget caps remote requests per provider over a rolling day. A limit of 0
// means unlimited.
type Budget struct {
	mu        sync.Mutex
	limits    map[string]int
	counts    map[string]int
	maxTotal  int
	total     int
	cacheHits int
	resetTime time.Time
	now       func() time.Time
}

// NewBudget creates a budget. limits maps provider name to its daily limit.
func NewBudget(limits map[string]int, maxTotal int) *Budget {
	b := &Budget{
		limits:   make(map[string]int, len(limits)),
		counts:   make(map[string]int),
		maxTotal: maxTotal,
		now:      time.Now,
	}
	for k, v := range limits {
		b.limits[k] = v
	}
	b.resetTime = b.now().Add(24 * time.Hour)
	return b
}

// Use takes one request from provider's budget.
func (b *Budget) Use(provider string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.checkReset()
	if err := b.allowed(provider); err != nil {
		logger.Warn("remote request budget exhausted", "provider", provider, "used", b.counts[provider], "total", b.total)
		return err
	}

	b.counts[provider]++
	b.total++
	logger.Debug("remote usage", "provider", provider, "used", b.counts[provider], "limit", b.limits[provider], "total", b.total)
	return nil
}

func (b *Budget) allowed(provider string) error {
	if limit := b.limits[provider]; limit > 0 && b.counts[provider] >= limit {
		return fmt.Errorf("%s rate limit exceeded", provider)
	}
	if b.maxTotal > 0 && b.total >= b.maxTotal {
		return fmt.Errorf("total remote rate limit exceeded")
	}
	return nil
}

// RecordCacheHit counts a response served without a remote request.
func (b *Budget) RecordCacheHit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cacheHits++
}

// GetStats returns current usage.
func (b *Budget) GetStats() map[string]interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	stats := map[string]interface{}{
		"total_used":  b.total,
		"total_limit": b.maxTotal,
		"cache_hits":  b.cacheHits,
		"reset_time":  b.resetTime,
	}
	for p, limit := range b.limits {
		stats[p+"_used"] = b.counts[p]
		stats[p+"_limit"] = limit
	}
	return stats
}

// checkReset resets counters once the day is over. Callers hold mu.
func (b *Budget) checkReset() {
	if b.now().After(b.resetTime) {
		logger.Info("resetting remote request budget", "total_used", b.total, "cache_hits", b.cacheHits)
		b.counts = make(map[string]int)
		b.total = 0
		b.cacheHits = 0
		b.resetTime = b.now().Add(24 * time.Hour)
	}
}
