// Package smoke checks a running dashboard end to end: it walks every site
// option, requests both charts and the launch listing, and verifies the
// aggregation and filter invariants over HTTP.
package smoke

import (
	"errors"
	"time"
)

// ErrCheckFailed is returned when at least one invariant is violated.
var ErrCheckFailed = errors.New("smoke check failed")

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL string        // Base URL of the dashboard
	Timeout time.Duration // HTTP request timeout
	Workers int           // Sites checked concurrently
	Verbose bool          // Log every check
}

// Stats holds run statistics.
type Stats struct {
	Sites      int
	Requests   int
	Launches   int
	Violations []string
	StartTime  time.Time
	Duration   time.Duration
}
