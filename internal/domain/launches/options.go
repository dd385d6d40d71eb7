package launches

import (
	"sort"

	"github.com/okian/launchdash/internal/domain/types"
)

// SiteOptions returns the dropdown options: ALL first, then every distinct
// site sorted ascending.
func (t *Table) SiteOptions() []types.SiteOption {
	sites := t.Sites()
	sort.Strings(sites)

	opts := make([]types.SiteOption, 0, len(sites)+1)
	opts = append(opts, types.SiteOption{Label: types.AllSites, Value: types.AllSites})
	for _, s := range sites {
		opts = append(opts, types.SiteOption{Label: s, Value: s})
	}
	return opts
}
