// Package types contains common types used across the application
package types

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// AllSites is the selector sentinel that covers every launch site.
const AllSites = "ALL"

// ErrInvalidRange is returned when a payload range is not a finite lo <= hi interval.
var ErrInvalidRange = errors.New("invalid payload range")

// Selector is the UI-chosen scope: AllSites or one launch site identifier.
type Selector string

// ParseSelector trims s and maps an empty value to AllSites.
func ParseSelector(s string) Selector {
	s = strings.TrimSpace(s)
	if s == "" {
		return AllSites
	}
	return Selector(s)
}

// IsAll reports whether the selector covers every site.
func (s Selector) IsAll() bool { return s == AllSites }

// Site returns the site name for a specific selector, or "" for AllSites.
func (s Selector) Site() string {
	if s.IsAll() {
		return ""
	}
	return string(s)
}

// Matches reports whether a record at site falls inside this selector's scope.
func (s Selector) Matches(site string) bool {
	return s.IsAll() || string(s) == site
}

// PayloadRange is a closed payload mass interval in kilograms.
type PayloadRange struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// Validate checks that both ends are finite and Lo <= Hi.
func (r PayloadRange) Validate() error {
	switch {
	case math.IsNaN(r.Lo) || math.IsNaN(r.Hi) || math.IsInf(r.Lo, 0) || math.IsInf(r.Hi, 0):
		return fmt.Errorf("%w: bounds must be finite", ErrInvalidRange)
	case r.Lo > r.Hi:
		return fmt.Errorf("%w: lo %.0f > hi %.0f", ErrInvalidRange, r.Lo, r.Hi)
	}
	return nil
}

// Contains reports whether mass lies in the closed interval.
func (r PayloadRange) Contains(mass float64) bool {
	return mass >= r.Lo && mass <= r.Hi
}

// SiteRate is the mean outcome class of one launch site.
type SiteRate struct {
	Site     string  `json:"launch_site"`
	Rate     float64 `json:"rate"`
	Launches int     `json:"launches"`
}

// OutcomeCounts holds success and failure counts for one launch site.
type OutcomeCounts struct {
	Site      string `json:"launch_site"`
	Successes int    `json:"successes"`
	Failures  int    `json:"failures"`
}

// Total returns Successes + Failures.
func (c OutcomeCounts) Total() int { return c.Successes + c.Failures }

// SiteSuccess is the Site Success Aggregator result. Exactly one of Rates
// (selector ALL) or Counts (specific site) is meaningful.
type SiteSuccess struct {
	Selector Selector      `json:"selector"`
	Rates    []SiteRate    `json:"rates,omitempty"`
	Counts   OutcomeCounts `json:"counts"`
}

// IsEmpty reports whether the aggregation matched no records.
func (s SiteSuccess) IsEmpty() bool {
	if s.Selector.IsAll() {
		return len(s.Rates) == 0
	}
	return s.Counts.Total() == 0
}

// SiteOption is one dropdown entry.
type SiteOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
