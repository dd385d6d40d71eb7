package launches

import (
	"github.com/montanaflynn/stats"

	"github.com/okian/launchdash/internal/domain/types"
)

// SiteSuccess is the Site Success Aggregator. For ALL it returns the success
// rate of every site; otherwise the success/failure counts of the selected
// site. An unknown site yields an empty result, never an error.
func (t *Table) SiteSuccess(sel types.Selector) types.SiteSuccess {
	if sel.IsAll() {
		return types.SiteSuccess{Selector: sel, Rates: t.SiteSuccessRates()}
	}
	return types.SiteSuccess{Selector: sel, Counts: t.SiteOutcomes(sel.Site())}
}

// SiteSuccessRates returns the mean outcome class per site, ordered by the
// site's first appearance in the table.
func (t *Table) SiteSuccessRates() []types.SiteRate {
	rates := make([]types.SiteRate, 0, len(t.sites))
	for _, site := range t.sites {
		idx := t.bySite[site]
		classes := make(stats.Float64Data, len(idx))
		for i, j := range idx {
			classes[i] = float64(t.records[j].Class)
		}
		mean, err := stats.Mean(classes)
		if err != nil {
			// only possible for an empty group, which bySite never holds
			continue
		}
		rates = append(rates, types.SiteRate{Site: site, Rate: mean, Launches: len(idx)})
	}
	return rates
}

// SiteOutcomes counts successes and failures at one site.
func (t *Table) SiteOutcomes(site string) types.OutcomeCounts {
	counts := types.OutcomeCounts{Site: site}
	for _, j := range t.bySite[site] {
		if t.records[j].Succeeded() {
			counts.Successes++
		} else {
			counts.Failures++
		}
	}
	return counts
}
