package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/launchdash/internal/adapters/chart"
	"github.com/okian/launchdash/internal/domain/types"
)

// ChartsDependencies defines the interface for direct chart requests.
type ChartsDependencies interface {
	DefaultRange() types.PayloadRange
	PieChart(ctx context.Context, sel types.Selector) chart.Figure
	ScatterChart(ctx context.Context, sel types.Selector, rng types.PayloadRange) (chart.Figure, error)
	Render(ctx context.Context, fig chart.Figure, format chart.Format) ([]byte, error)
}

// ChartsHandler serves figures as JSON, SVG or PNG.
type ChartsHandler struct {
	deps ChartsDependencies
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(deps ChartsDependencies) *ChartsHandler {
	return &ChartsHandler{deps: deps}
}

// HandlePie handles GET /api/charts/pie?site=&format= requests.
func (h *ChartsHandler) HandlePie(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	format, err := parseFormat(q)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.write(w, r, h.deps.PieChart(r.Context(), parseSelector(q)), format)
}

// HandleScatter handles GET /api/charts/scatter?site=&min=&max=&format= requests.
func (h *ChartsHandler) HandleScatter(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	format, err := parseFormat(q)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	rng, err := parseRange(q, h.deps.DefaultRange())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	fig, err := h.deps.ScatterChart(r.Context(), parseSelector(q), rng)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.write(w, r, fig, format)
}

func (h *ChartsHandler) write(w http.ResponseWriter, r *http.Request, fig chart.Figure, format chart.Format) {
	if format == chart.FormatJSON {
		writeJSON(w, http.StatusOK, fig)
		return
	}
	body, err := h.deps.Render(r.Context(), fig, format)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
