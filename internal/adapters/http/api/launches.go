package api

import (
	"context"
	"net/http"

	"github.com/okian/launchdash/internal/domain/model"
	"github.com/okian/launchdash/internal/domain/types"
)

// LaunchesDependencies defines the interface for launch listings.
type LaunchesDependencies interface {
	DefaultRange() types.PayloadRange
	Launches(ctx context.Context, sel types.Selector, rng types.PayloadRange) ([]model.LaunchRecord, error)
}

// LaunchesHandler lists the records behind the scatter chart.
type LaunchesHandler struct {
	deps LaunchesDependencies
}

// NewLaunchesHandler creates a new launches handler.
func NewLaunchesHandler(deps LaunchesDependencies) *LaunchesHandler {
	return &LaunchesHandler{deps: deps}
}

type launchesResponse struct {
	Site     string               `json:"site"`
	Range    types.PayloadRange   `json:"range"`
	Count    int                  `json:"count"`
	Launches []model.LaunchRecord `json:"launches"`
}

// HandleLaunches handles GET /api/launches?site=&min=&max= requests.
func (h *LaunchesHandler) HandleLaunches(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	rng, err := parseRange(q, h.deps.DefaultRange())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	sel := parseSelector(q)
	recs, err := h.deps.Launches(r.Context(), sel, rng)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, launchesResponse{
		Site:     string(sel),
		Range:    rng,
		Count:    len(recs),
		Launches: recs,
	})
}
