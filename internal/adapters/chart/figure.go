// Package chart builds chart figures from launch records and renders them
// to SVG or PNG.
package chart

import (
	"fmt"

	"github.com/okian/launchdash/internal/domain/launches"
	"github.com/okian/launchdash/internal/domain/model"
	"github.com/okian/launchdash/internal/domain/types"
)

// Kind names the chart type of a figure.
type Kind string

const (
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
)

// Figure titles.
const (
	PieTitleAll      = "Launch Success Rate by Launch Sites (ALL)"
	pieTitleSite     = "Launch Success Rate at %s"
	ScatterTitleAll  = "Correlation between Payload and Success for all Sites"
	scatterTitleSite = "Correlation between Payload and Success at site %s"
)

// Slice labels of a single-site pie.
const (
	LabelSuccess = "Success"
	LabelFailure = "Failure"
)

// Slice is one pie sector.
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Point is one scatter mark: payload mass against outcome class.
type Point struct {
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Site           string  `json:"launch_site"`
	BoosterVersion string  `json:"booster_version,omitempty"`
}

// Series is the set of scatter points sharing a booster version category.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Figure is a renderer-independent chart description.
type Figure struct {
	ID          string              `json:"id"`
	Kind        Kind                `json:"kind"`
	Title       string              `json:"title"`
	Slices      []Slice             `json:"slices,omitempty"`
	Series      []Series            `json:"series,omitempty"`
	XLabel      string              `json:"x_label,omitempty"`
	YLabel      string              `json:"y_label,omitempty"`
	XRange      *types.PayloadRange `json:"x_range,omitempty"`
	Correlation *float64            `json:"correlation,omitempty"`
}

// Empty reports whether the figure has nothing to draw.
func (f Figure) Empty() bool {
	switch f.Kind {
	case KindPie:
		for _, s := range f.Slices {
			if s.Value > 0 {
				return false
			}
		}
		return true
	case KindScatter:
		for _, s := range f.Series {
			if len(s.Points) > 0 {
				return false
			}
		}
		return true
	}
	return true
}

// Points returns the total number of scatter points.
func (f Figure) Points() int {
	n := 0
	for _, s := range f.Series {
		n += len(s.Points)
	}
	return n
}

// PieFigure turns an aggregation result into a pie chart. For ALL each site
// is a slice valued by its success rate; for one site the slices are its
// success and failure counts, with zero counts left out.
func PieFigure(res types.SiteSuccess) Figure {
	fig := Figure{Kind: KindPie, Slices: []Slice{}}
	if res.Selector.IsAll() {
		fig.Title = PieTitleAll
		for _, r := range res.Rates {
			fig.Slices = append(fig.Slices, Slice{Label: r.Site, Value: r.Rate})
		}
		return fig
	}

	fig.Title = fmt.Sprintf(pieTitleSite, res.Selector.Site())
	if res.Counts.Successes > 0 {
		fig.Slices = append(fig.Slices, Slice{Label: LabelSuccess, Value: float64(res.Counts.Successes)})
	}
	if res.Counts.Failures > 0 {
		fig.Slices = append(fig.Slices, Slice{Label: LabelFailure, Value: float64(res.Counts.Failures)})
	}
	return fig
}

// ScatterFigure plots filtered records as payload mass against class, one
// series per booster version category.
func ScatterFigure(records []model.LaunchRecord, sel types.Selector, rng types.PayloadRange) Figure {
	fig := Figure{
		Kind:   KindScatter,
		Title:  ScatterTitleAll,
		Series: []Series{},
		XLabel: "Payload Mass (kg)",
		YLabel: "class",
		XRange: &rng,
	}
	if !sel.IsAll() {
		fig.Title = fmt.Sprintf(scatterTitleSite, sel.Site())
	}

	for _, g := range launches.GroupByBoosterCategory(records) {
		s := Series{Name: g.Category, Points: make([]Point, 0, len(g.Records))}
		for _, r := range g.Records {
			s.Points = append(s.Points, Point{
				X:              r.PayloadMassKG,
				Y:              float64(r.Class),
				Site:           r.Site,
				BoosterVersion: r.BoosterVersion,
			})
		}
		fig.Series = append(fig.Series, s)
	}

	if r, ok := launches.PayloadOutcomeCorrelation(records); ok {
		fig.Correlation = &r
	}
	return fig
}
