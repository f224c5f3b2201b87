package httpx

import (
	"errors"
	"net/http"

	"github.com/trackr-gov/trackr/internal/domain/model"
	"github.com/trackr-gov/trackr/internal/service"
)

// AssetHandlers provides HTTP handlers for asset inventory operations.
type AssetHandlers struct {
	Svc *service.AssetService
}

const (
	defaultAssetListLimit = 50
	maxAssetListLimit     = 200 // Maximum number of assets that can be requested in one call
)

// Create handles POST /api/assets. Routing restricts this to asset writers.
func (h *AssetHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAssetRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	asset, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, asset)
}

// List handles GET /api/assets with optional department filtering.
func (h *AssetHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultAssetListLimit, maxAssetListLimit)
	opts := &model.AssetsListOptions{Limit: limit, Offset: offset}
	if department := r.URL.Query().Get("department"); department != "" {
		opts.Department = &department
	}

	assets, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"assets": assets,
		"limit":  limit,
		"offset": offset,
	})
}

// GetByID handles GET /api/assets/{id}. The response carries the asset's
// dependent ticket and maintenance counts.
func (h *AssetHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("asset id is required")},
		)
		return
	}

	asset, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, asset)
}

// Update handles PATCH /api/assets/{id}.
func (h *AssetHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("asset id is required")},
		)
		return
	}

	var req model.UpdateAssetRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	asset, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, asset)
}

// Delete handles DELETE /api/assets/{id}. Routing restricts this to admins;
// the delete cascades to the asset's tickets and maintenance history.
func (h *AssetHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("asset id is required")},
		)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// Types handles GET /api/assets/types: the closed set of asset types and
// the specification fields each type carries, for client form rendering.
func (h *AssetHandlers) Types(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"types":       model.AssetTypeCatalog(),
		"departments": model.Departments(),
	})
}
