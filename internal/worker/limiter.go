package worker

import (
	"context"
	"path/filepath"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter throttles file opens per root path, so a slow mount named on the
// command line can be checked without starving the others
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a new rate limiter. A non-positive filesPerSecond
// means unlimited
func NewLimiter(filesPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  toLimit(filesPerSecond),
		defaultBurst: burst,
	}
}

// Wait waits for rate limit clearance for a file under root
func (l *Limiter) Wait(ctx context.Context, root string) error {
	return l.getLimiter(root).Wait(ctx)
}

// getLimiter returns the rate limiter for a root
func (l *Limiter) getLimiter(root string) *rate.Limiter {
	root = filepath.Clean(root)

	l.mu.RLock()
	limiter, exists := l.limiters[root]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[root]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[root] = limiter

	return limiter
}

// SetRootRate sets a custom rate limit for one root path
func (l *Limiter) SetRootRate(root string, filesPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}

	l.limiters[filepath.Clean(root)] = rate.NewLimiter(toLimit(filesPerSecond), burst)
}

func toLimit(perSecond float64) rate.Limit {
	if perSecond <= 0 {
		return rate.Inf
	}
	return rate.Limit(perSecond)
}
