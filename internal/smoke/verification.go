package smoke

import (
	"fmt"

	"github.com/okian/launchdash/internal/adapters/chart"
	"github.com/okian/launchdash/internal/domain/types"
)

// verifyRates checks every ALL pie slice is a rate in [0, 1].
func verifyRates(fig chart.Figure) []string {
	var out []string
	for _, s := range fig.Slices {
		if s.Value < 0 || s.Value > 1 {
			out = append(out, fmt.Sprintf("site %s: success rate %.4f outside [0, 1]", s.Label, s.Value))
		}
	}
	return out
}

// verifyCounts checks a site's success and failure slices add up to its
// full-range listing.
func verifyCounts(site string, fig chart.Figure, listed int) []string {
	total := 0.0
	for _, s := range fig.Slices {
		if s.Label != chart.LabelSuccess && s.Label != chart.LabelFailure {
			return []string{fmt.Sprintf("site %s: unexpected pie slice %q", site, s.Label)}
		}
		total += s.Value
	}
	if int(total) != listed {
		return []string{fmt.Sprintf("site %s: success+failure = %d, listing has %d", site, int(total), listed)}
	}
	return nil
}

// verifyListing checks every listed launch is in range and at the site.
func verifyListing(site types.Selector, rng types.PayloadRange, resp launchesResponse) []string {
	var out []string
	if resp.Count != len(resp.Launches) {
		out = append(out, fmt.Sprintf("site %s: count %d, %d launches listed", site, resp.Count, len(resp.Launches)))
	}
	for _, r := range resp.Launches {
		if !rng.Contains(r.PayloadMassKG) {
			out = append(out, fmt.Sprintf("site %s: payload %.0f outside [%.0f, %.0f]", site, r.PayloadMassKG, rng.Lo, rng.Hi))
		}
		if !site.Matches(r.Site) {
			out = append(out, fmt.Sprintf("site %s: listed launch from %s", site, r.Site))
		}
	}
	return out
}

// verifyScatter checks the scatter plots exactly the listed launches.
func verifyScatter(site types.Selector, rng types.PayloadRange, fig chart.Figure, listed int) []string {
	var out []string
	if fig.Points() != listed {
		out = append(out, fmt.Sprintf("site %s: scatter has %d points, listing has %d", site, fig.Points(), listed))
	}
	for _, s := range fig.Series {
		for _, p := range s.Points {
			if !rng.Contains(p.X) {
				out = append(out, fmt.Sprintf("site %s: scatter point %.0f outside [%.0f, %.0f]", site, p.X, rng.Lo, rng.Hi))
			}
		}
	}
	return out
}
