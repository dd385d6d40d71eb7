// Package site serves the embedded browser shell of the dashboard.
package site

import (
	"context"
	"net/http"
)

// Register attaches the dashboard shell at / to mux. The shell reads
// /api/layout and drives /api/update.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/", http.FileServer(FS()))
}
