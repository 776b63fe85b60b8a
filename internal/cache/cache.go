// Package cache memoizes per-token spelling verdicts for the duration of a run
package cache

import "time"

// Stats counts cache lookups
type Stats struct {
	Hits   uint64
	Misses uint64
	Items  int
}

// Default timings for a run-scoped cache
const (
	DefaultTTL             = 30 * time.Minute
	DefaultCleanupInterval = 10 * time.Minute
)
