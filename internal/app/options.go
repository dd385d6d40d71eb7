package service

import (
	"github.com/okian/launchdash/internal/adapters/chart"
	"github.com/okian/launchdash/pkg/logger"
)

// Option applies a configuration option to the Dashboard.
type Option func(*Dashboard)

// WithLogger sets a custom logger for the dashboard.
func WithLogger(l logger.Logger) Option {
	return func(d *Dashboard) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithTitle sets the page heading.
func WithTitle(title string) Option {
	return func(d *Dashboard) {
		if title != "" {
			d.title = title
		}
	}
}

// WithSlider sets the payload slider domain. Ignored unless min < max and step > 0.
func WithSlider(min, max, step float64) Option {
	return func(d *Dashboard) {
		if min < max && step > 0 {
			d.slider = SliderDomain{Min: min, Max: max, Step: step}
		}
	}
}

// WithRenderer sets the chart renderer.
func WithRenderer(r *chart.Renderer) Option {
	return func(d *Dashboard) {
		if r != nil {
			d.renderer = r
		}
	}
}
