package launches

import (
	"github.com/okian/launchdash/internal/domain/model"
	"github.com/okian/launchdash/internal/domain/types"
)

// FilterByPayload is the Payload Range Filter: records whose payload mass lies
// in the closed interval, restricted to the selected site unless it is ALL.
// Load order is preserved. The caller guarantees rng.Lo <= rng.Hi.
func (t *Table) FilterByPayload(rng types.PayloadRange, sel types.Selector) []model.LaunchRecord {
	out := make([]model.LaunchRecord, 0)
	for _, r := range t.records {
		if !rng.Contains(r.PayloadMassKG) || !sel.Matches(r.Site) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// CategoryGroup is a run of records sharing a booster version category.
type CategoryGroup struct {
	Category string
	Records  []model.LaunchRecord
}

// GroupByBoosterCategory groups records by booster version category, keeping
// categories in first appearance order and records in input order.
func GroupByBoosterCategory(records []model.LaunchRecord) []CategoryGroup {
	var groups []CategoryGroup
	pos := make(map[string]int)
	for _, r := range records {
		i, ok := pos[r.BoosterVersionCategory]
		if !ok {
			i = len(groups)
			pos[r.BoosterVersionCategory] = i
			groups = append(groups, CategoryGroup{Category: r.BoosterVersionCategory})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}
