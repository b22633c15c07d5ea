package handler

import (
	"net/http"

	"github.com/vj-tring/SalesBoostAI-V1/internal/store"
)

// DashboardHandler serves the aggregated business metrics view.
type DashboardHandler struct {
	store *store.Store
}

func NewDashboardHandler(st *store.Store) *DashboardHandler {
	return &DashboardHandler{store: st}
}

// Metrics returns a point-in-time snapshot of the store's business metrics.
func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Metrics())
}
