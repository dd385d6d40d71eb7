// Package service provides the dashboard: the site success and payload
// callbacks, the layout they are bound to, and the reactive dispatcher the
// HTTP API calls into.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/launchdash/internal/adapters/chart"
	"github.com/okian/launchdash/internal/domain/launches"
	"github.com/okian/launchdash/internal/domain/model"
	"github.com/okian/launchdash/internal/domain/types"
	"github.com/okian/launchdash/pkg/logger"
	"github.com/okian/launchdash/pkg/metrics"
)

// DefaultTitle is the page heading used when none is configured.
const DefaultTitle = "SpaceX Launch Records Dashboard"

// Dashboard serves every view of one immutable launch table. It holds no
// mutable state once New returns, so concurrent requests share it freely.
type Dashboard struct {
	table    *launches.Table
	bounds   types.PayloadRange
	renderer *chart.Renderer
	bindings *Bindings

	title  string
	slider SliderDomain

	logger logger.Logger
}

// New constructs a Dashboard over table and registers its callbacks.
func New(table *launches.Table, opts ...Option) (*Dashboard, error) {
	if table == nil {
		return nil, ErrNoTable
	}
	bounds, err := table.PayloadBounds()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoTable, err)
	}

	d := &Dashboard{
		table:    table,
		bounds:   bounds,
		bindings: NewBindings(),
		title:    DefaultTitle,
		slider:   SliderDomain{Min: 0, Max: 10000, Step: 1000},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = logger.Get()
	}
	if d.renderer == nil {
		d.renderer = chart.NewRenderer(chart.WithLogger(d.logger))
	}

	if err := d.bindings.Register(PieChartID, []string{SiteDropdownID}, d.pieCallback); err != nil {
		return nil, err
	}
	if err := d.bindings.Register(ScatterChartID, []string{SiteDropdownID, PayloadSliderID}, d.scatterCallback); err != nil {
		return nil, err
	}
	return d, nil
}

// Table returns the launch table the dashboard was built over.
func (d *Dashboard) Table() *launches.Table { return d.table }

// DefaultRange is the slider's initial value: the observed payload bounds.
func (d *Dashboard) DefaultRange() types.PayloadRange { return d.bounds }

// SiteOptions returns the dropdown entries: ALL then every site sorted.
func (d *Dashboard) SiteOptions() []types.SiteOption { return d.table.SiteOptions() }

// SiteSuccess aggregates outcomes for the selector.
func (d *Dashboard) SiteSuccess(sel types.Selector) types.SiteSuccess {
	return d.table.SiteSuccess(sel)
}

// PieChart builds the success pie for the selector.
func (d *Dashboard) PieChart(_ context.Context, sel types.Selector) chart.Figure {
	fig := chart.PieFigure(d.table.SiteSuccess(sel))
	fig.ID = PieChartID
	return fig
}

// ScatterChart builds the payload/outcome scatter for the selector and range.
func (d *Dashboard) ScatterChart(ctx context.Context, sel types.Selector, rng types.PayloadRange) (chart.Figure, error) {
	records, err := d.Launches(ctx, sel, rng)
	if err != nil {
		return chart.Figure{}, err
	}
	fig := chart.ScatterFigure(records, sel, rng)
	fig.ID = ScatterChartID
	return fig, nil
}

// Launches returns the records behind the scatter chart.
func (d *Dashboard) Launches(_ context.Context, sel types.Selector, rng types.PayloadRange) ([]model.LaunchRecord, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	return d.table.FilterByPayload(rng, sel), nil
}

// Render encodes a figure as SVG or PNG.
func (d *Dashboard) Render(ctx context.Context, fig chart.Figure, format chart.Format) ([]byte, error) {
	return d.renderer.Render(ctx, fig, format)
}

// Callbacks lists the registered output/input dependencies.
func (d *Dashboard) Callbacks() []CallbackSpec { return d.bindings.Specs() }

// knownSite reports whether sel is ALL or a site present in the dataset.
func (d *Dashboard) knownSite(sel types.Selector) bool {
	return sel.IsAll() || d.table.HasSite(sel.Site())
}

// Dispatch recomputes one output from the current input values. Inputs the
// request omits take their layout defaults.
func (d *Dashboard) Dispatch(ctx context.Context, req UpdateRequest) (UpdateResponse, error) {
	start := time.Now()
	resp, err := d.dispatch(ctx, req)
	latency := float64(time.Since(start).Microseconds()) / 1000

	result := "ok"
	if err != nil {
		result = "error"
		if errors.Is(err, ErrUnknownOutput) || errors.Is(err, ErrBadInput) {
			result = "rejected"
		}
		d.logger.Warn(ctx, "callback failed",
			logger.String("output", req.Output),
			logger.Error(err),
		)
	} else if resp.Figure.Empty() {
		metrics.RecordCallbackEmpty(req.Output)
	}
	metrics.RecordCallback(req.Output, result, latency)
	return resp, err
}

func (d *Dashboard) dispatch(ctx context.Context, req UpdateRequest) (UpdateResponse, error) {
	bd, ok := d.bindings.lookup(req.Output)
	if !ok {
		return UpdateResponse{}, fmt.Errorf("%w: %q", ErrUnknownOutput, req.Output)
	}
	st, err := decodeState(req.Inputs, bd.spec.Inputs, State{Site: types.AllSites, Payload: d.bounds})
	if err != nil {
		return UpdateResponse{}, err
	}

	fig, err := bd.fn(ctx, st)
	if err != nil {
		return UpdateResponse{}, err
	}
	svg, err := d.renderer.Render(ctx, fig, chart.FormatSVG)
	if err != nil {
		return UpdateResponse{}, err
	}

	d.logger.Debug(ctx, "callback invoked",
		logger.String("output", req.Output),
		logger.String("site", string(st.Site)),
		logger.Bool("knownSite", d.knownSite(st.Site)),
		logger.Float64("payloadLo", st.Payload.Lo),
		logger.Float64("payloadHi", st.Payload.Hi),
	)
	return UpdateResponse{Output: req.Output, Figure: fig, SVG: string(svg)}, nil
}

func (d *Dashboard) pieCallback(ctx context.Context, st State) (chart.Figure, error) {
	return d.PieChart(ctx, st.Site), nil
}

func (d *Dashboard) scatterCallback(ctx context.Context, st State) (chart.Figure, error) {
	return d.ScatterChart(ctx, st.Site, st.Payload)
}

// GetStats returns dataset statistics for monitoring.
func (d *Dashboard) GetStats() map[string]interface{} {
	sites := d.table.Sites()
	rates := d.table.SiteSuccessRates()
	rateBySite := make(map[string]float64, len(rates))
	for _, r := range rates {
		rateBySite[r.Site] = r.Rate
	}
	return map[string]interface{}{
		"records":      d.table.Len(),
		"sites":        len(sites),
		"payloadMin":   d.bounds.Lo,
		"payloadMax":   d.bounds.Hi,
		"successRates": rateBySite,
		"callbacks":    len(d.bindings.Specs()),
	}
}
