package service

import (
	"strconv"

	"github.com/okian/launchdash/internal/domain/types"
)

const (
	dropdownPlaceholder = "Select a Launch Site here"
	markSpacing         = 2500.0
)

// SliderDomain is the selectable payload range and its step.
type SliderDomain struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// Mark is a labelled tick on the slider.
type Mark struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// Dropdown describes the launch site selector.
type Dropdown struct {
	ID          string             `json:"id"`
	Options     []types.SiteOption `json:"options"`
	Value       string             `json:"value"`
	Placeholder string             `json:"placeholder"`
	Searchable  bool               `json:"searchable"`
}

// Slider describes the payload range selector.
type Slider struct {
	ID string `json:"id"`
	SliderDomain
	Value [2]float64 `json:"value"`
	Marks []Mark     `json:"marks"`
}

// Graph is an output slot rendered as a chart.
type Graph struct {
	ID string `json:"id"`
}

// Layout is the static page description the browser shell builds from.
type Layout struct {
	Title     string         `json:"title"`
	Dropdown  Dropdown       `json:"dropdown"`
	Slider    Slider         `json:"slider"`
	Graphs    []Graph        `json:"graphs"`
	Callbacks []CallbackSpec `json:"callbacks"`
}

// Layout returns the page description: title, site dropdown, payload slider,
// the two graphs and which inputs drive each of them.
func (d *Dashboard) Layout() Layout {
	def := d.DefaultRange()
	return Layout{
		Title: d.title,
		Dropdown: Dropdown{
			ID:          SiteDropdownID,
			Options:     d.SiteOptions(),
			Value:       types.AllSites,
			Placeholder: dropdownPlaceholder,
			Searchable:  true,
		},
		Slider: Slider{
			ID:           PayloadSliderID,
			SliderDomain: d.slider,
			Value:        [2]float64{def.Lo, def.Hi},
			Marks:        marks(d.slider),
		},
		Graphs:    []Graph{{ID: PieChartID}, {ID: ScatterChartID}},
		Callbacks: d.bindings.Specs(),
	}
}

func marks(s SliderDomain) []Mark {
	var out []Mark
	for v := s.Min; v <= s.Max; v += markSpacing {
		out = append(out, Mark{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)})
	}
	return out
}
