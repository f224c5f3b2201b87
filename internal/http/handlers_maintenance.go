package httpx

import (
	"net/http"

	"github.com/trackr-gov/trackr/internal/domain/model"
	"github.com/trackr-gov/trackr/internal/service"
)

// MaintenanceHandlers provides HTTP handlers for maintenance log operations.
type MaintenanceHandlers struct {
	Svc *service.MaintenanceService
}

// Create handles POST /api/maintenance. The technician is always the
// session user.
func (h *MaintenanceHandlers) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeNotAuthenticated(w)
		return
	}

	var req model.CreateMaintenanceLogRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	logEntry, err := h.Svc.Create(r.Context(), identity, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, logEntry)
}

// List handles GET /api/maintenance?asset_id=. Results are newest first and
// capped at the listing limit.
func (h *MaintenanceHandlers) List(w http.ResponseWriter, r *http.Request) {
	opts := &model.MaintenanceListOptions{Limit: model.MaxMaintenanceLogs}
	if assetID := r.URL.Query().Get("asset_id"); assetID != "" {
		opts.AssetID = &assetID
	}

	logs, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"maintenance": logs})
}
