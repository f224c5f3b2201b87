// Package httpx provides HTTP handlers and middleware for the trackr helpdesk API.
package httpx

import (
	"errors"
	"net/http"

	"github.com/trackr-gov/trackr/internal/domain/model"
	"github.com/trackr-gov/trackr/internal/service"
)

// TicketHandlers provides HTTP handlers for helpdesk ticket operations.
type TicketHandlers struct {
	Svc *service.TicketService
}

const (
	defaultTicketListLimit = 50
	maxTicketListLimit     = 200 // Maximum number of tickets that can be requested in one call
)

// Create handles POST /api/tickets. The reporter is always the session user.
func (h *TicketHandlers) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeNotAuthenticated(w)
		return
	}

	var req model.CreateTicketRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	ticket, err := h.Svc.Create(r.Context(), identity, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, ticket)
}

// List handles GET /api/tickets. Staff only ever see their own tickets.
func (h *TicketHandlers) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeNotAuthenticated(w)
		return
	}

	limit, offset := ParseLimitOffset(r, defaultTicketListLimit, maxTicketListLimit)
	opts := &model.TicketsListOptions{Limit: limit, Offset: offset}
	if status := r.URL.Query().Get("status"); status != "" {
		s := model.TicketStatus(status)
		opts.Status = &s
	}

	tickets, err := h.Svc.List(r.Context(), identity, opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"tickets": tickets,
		"limit":   limit,
		"offset":  offset,
	})
}

// GetByID handles GET /api/tickets/{id}.
func (h *TicketHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeNotAuthenticated(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("ticket id is required")},
		)
		return
	}

	ticket, err := h.Svc.Get(r.Context(), identity, id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, ticket)
}

// Update handles PATCH /api/tickets/{id}. Routing restricts this to ticket
// managers.
func (h *TicketHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("ticket id is required")},
		)
		return
	}

	var req model.UpdateTicketRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		return
	}

	ticket, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, ticket)
}

// Delete handles DELETE /api/tickets/{id}.
func (h *TicketHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("ticket id is required")},
		)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// writeNotAuthenticated is the shared 401 for handlers that need an identity
// but found none in the request context.
func writeNotAuthenticated(w http.ResponseWriter) {
	WriteError(w, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: "unauthorized",
		Err:     errors.New("Not authenticated"),
	})
}
