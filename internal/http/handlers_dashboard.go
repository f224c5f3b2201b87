package httpx

import (
	"net/http"

	"github.com/trackr-gov/trackr/internal/service"
)

// DashboardHandlers provides the HTTP handler for the dashboard aggregate.
type DashboardHandlers struct {
	Svc *service.DashboardService
}

// Get handles GET /api/dashboard. The payload shape depends on the caller's
// role: system-wide figures for officers and admins, own-scoped figures plus
// department assets for staff.
func (h *DashboardHandlers) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeNotAuthenticated(w)
		return
	}

	dashboard, err := h.Svc.Get(r.Context(), identity)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, dashboard)
}
