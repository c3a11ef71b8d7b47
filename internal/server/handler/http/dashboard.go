package http

import (
	"net/http"
	"strconv"

	"github.com/afigueiredo/werkstatt/internal/models"
	"github.com/afigueiredo/werkstatt/internal/repository"
)

// DashboardHandler serves workload and revenue summaries.
type DashboardHandler struct {
	Store repository.Storage
}

// Stats handles GET /api/dashboard/stats.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.GetDashboardStats(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to fetch dashboard stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// RecentServices handles GET /api/dashboard/recent-services?limit=.
// The limit defaults to 5.
func (h *DashboardHandler) RecentServices(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeMessage(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	services, err := h.Store.GetRecentServices(r.Context(), limit)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to fetch recent services")
		return
	}
	if services == nil {
		services = []models.Service{}
	}
	writeJSON(w, http.StatusOK, services)
}
