// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/launchdash/internal/adapters/chart"
	service "github.com/okian/launchdash/internal/app"
	"github.com/okian/launchdash/internal/domain/model"
	"github.com/okian/launchdash/internal/domain/types"
	"github.com/okian/launchdash/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StatsProvider

	Layout() service.Layout
	Dispatch(ctx context.Context, req service.UpdateRequest) (service.UpdateResponse, error)

	SiteOptions() []types.SiteOption
	DefaultRange() types.PayloadRange
	PieChart(ctx context.Context, sel types.Selector) chart.Figure
	ScatterChart(ctx context.Context, sel types.Selector, rng types.PayloadRange) (chart.Figure, error)
	Launches(ctx context.Context, sel types.Selector, rng types.PayloadRange) ([]model.LaunchRecord, error)
	Render(ctx context.Context, fig chart.Figure, format chart.Format) ([]byte, error)
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	layoutHandler   *LayoutHandler
	updateHandler   *UpdateHandler
	chartsHandler   *ChartsHandler
	launchesHandler *LaunchesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(deps),
		layoutHandler:   NewLayoutHandler(deps),
		updateHandler:   NewUpdateHandler(deps),
		chartsHandler:   NewChartsHandler(deps),
		launchesHandler: NewLaunchesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux. Wrap the mux with
// RequestIDMiddleware to tag every response.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/layout", MetricsMiddleware(s.layoutHandler.HandleLayout, "layout"))
	mux.HandleFunc("/api/sites", MetricsMiddleware(s.layoutHandler.HandleSites, "sites"))
	mux.HandleFunc("/api/update", MetricsMiddleware(s.updateHandler.HandleUpdate, "update"))
	mux.HandleFunc("/api/charts/pie", MetricsMiddleware(s.chartsHandler.HandlePie, "chart_pie"))
	mux.HandleFunc("/api/charts/scatter", MetricsMiddleware(s.chartsHandler.HandleScatter, "chart_scatter"))
	mux.HandleFunc("/api/launches", MetricsMiddleware(s.launchesHandler.HandleLaunches, "launches"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes carried in errorResponse.Code.
const (
	codeBadRequest       = "bad_request"
	codeNotFound         = "not_found"
	codeMethodNotAllowed = "method_not_allowed"
	codeInternal         = "internal_error"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps dashboard errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownOutput):
		writeError(w, http.StatusNotFound, codeNotFound, err)
	case errors.Is(err, service.ErrBadInput),
		errors.Is(err, types.ErrInvalidRange),
		errors.Is(err, chart.ErrUnsupportedFormat),
		errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, codeBadRequest, err)
	default:
		logger.Get().Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.String("requestID", RequestID(r.Context())),
			logger.Error(err),
		)
		writeError(w, http.StatusInternalServerError, codeInternal, err)
	}
}

// allowMethod writes 405 and reports false unless r uses method.
func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method || (method == http.MethodGet && r.Method == http.MethodHead) {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, nil)
	return false
}
