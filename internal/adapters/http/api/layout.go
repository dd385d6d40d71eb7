package api

import (
	"net/http"

	service "github.com/okian/launchdash/internal/app"
	"github.com/okian/launchdash/internal/domain/types"
)

// LayoutDependencies defines the interface for page description lookups.
type LayoutDependencies interface {
	Layout() service.Layout
	SiteOptions() []types.SiteOption
}

// LayoutHandler serves the page layout and the dropdown options.
type LayoutHandler struct {
	deps LayoutDependencies
}

// NewLayoutHandler creates a new layout handler.
func NewLayoutHandler(deps LayoutDependencies) *LayoutHandler {
	return &LayoutHandler{deps: deps}
}

// HandleLayout handles GET /api/layout requests.
func (h *LayoutHandler) HandleLayout(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Layout())
}

// HandleSites handles GET /api/sites requests.
func (h *LayoutHandler) HandleSites(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, h.deps.SiteOptions())
}
