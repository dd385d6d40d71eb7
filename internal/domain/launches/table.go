// Package launches holds the immutable launch table and the pure
// aggregation and filter functions the dashboard callbacks are built on.
package launches

import (
	"errors"
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/okian/launchdash/internal/domain/model"
	"github.com/okian/launchdash/internal/domain/types"
)

// ErrEmptyTable is returned by operations that need at least one record.
var ErrEmptyTable = errors.New("launch table is empty")

// Table is the immutable, ordered sequence of launch records loaded at startup.
// It is safe for concurrent readers; nothing mutates it after NewTable returns.
type Table struct {
	records []model.LaunchRecord
	sites   []string // distinct sites, first appearance order
	bySite  map[string][]int
}

// NewTable copies records into a new Table.
func NewTable(records []model.LaunchRecord) *Table {
	t := &Table{
		records: make([]model.LaunchRecord, len(records)),
		bySite:  make(map[string][]int),
	}
	copy(t.records, records)

	for i, r := range t.records {
		if _, ok := t.bySite[r.Site]; !ok {
			t.sites = append(t.sites, r.Site)
		}
		t.bySite[r.Site] = append(t.bySite[r.Site], i)
	}
	return t
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.records) }

// Records returns a copy of every record in load order.
func (t *Table) Records() []model.LaunchRecord {
	out := make([]model.LaunchRecord, len(t.records))
	copy(out, t.records)
	return out
}

// Sites returns the distinct launch sites in order of first appearance.
func (t *Table) Sites() []string {
	out := make([]string, len(t.sites))
	copy(out, t.sites)
	return out
}

// HasSite reports whether any record was launched from site.
func (t *Table) HasSite(site string) bool {
	_, ok := t.bySite[site]
	return ok
}

// PayloadBounds returns the observed [min, max] payload mass.
func (t *Table) PayloadBounds() (types.PayloadRange, error) {
	if len(t.records) == 0 {
		return types.PayloadRange{}, ErrEmptyTable
	}
	masses := make(stats.Float64Data, len(t.records))
	for i, r := range t.records {
		masses[i] = r.PayloadMassKG
	}
	lo, err := stats.Min(masses)
	if err != nil {
		return types.PayloadRange{}, fmt.Errorf("payload min: %w", err)
	}
	hi, err := stats.Max(masses)
	if err != nil {
		return types.PayloadRange{}, fmt.Errorf("payload max: %w", err)
	}
	return types.PayloadRange{Lo: lo, Hi: hi}, nil
}
