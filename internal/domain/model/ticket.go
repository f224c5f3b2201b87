package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxTitleLen       = 255
	maxDescriptionLen = 10000
	maxResolutionLen  = 10000
)

// TicketStatus is the lifecycle state of a ticket.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// Valid reports whether the ticket status is supported.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	default:
		return false
	}
}

// TicketPriority is the urgency of a ticket.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
	TicketPriorityUrgent TicketPriority = "URGENT"
)

// Valid reports whether the ticket priority is supported.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	default:
		return false
	}
}

// normalizeTicketPriority trims and uppercases the input, defaulting to
// MEDIUM when empty.
func normalizeTicketPriority(p TicketPriority) TicketPriority {
	normalized := TicketPriority(strings.ToUpper(strings.TrimSpace(string(p))))
	if normalized == "" {
		return TicketPriorityMedium
	}
	return normalized
}

// Ticket represents a helpdesk ticket. Reporter, assignee, and asset
// details come from joins and are populated on reads.
type Ticket struct {
	ID          string         `json:"id"                       db:"id"`
	Title       string         `json:"title"                    db:"title"`
	Description string         `json:"description"              db:"description"`
	Status      TicketStatus   `json:"status"                   db:"status"`
	Priority    TicketPriority `json:"priority"                 db:"priority"`
	Department  *string        `json:"department,omitempty"     db:"department"`
	AssetID     *string        `json:"asset_id,omitempty"       db:"asset_id"`
	ReportedBy  string         `json:"reported_by"              db:"reported_by"`
	AssignedTo  *string        `json:"assigned_to,omitempty"    db:"assigned_to"`
	Resolution  *string        `json:"resolution,omitempty"     db:"resolution"`
	CreatedAt   time.Time      `json:"created_at"               db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"               db:"updated_at"`

	ReporterName  *string `json:"reporter_name,omitempty"  db:"reporter_name"`
	ReporterEmail *string `json:"reporter_email,omitempty" db:"reporter_email"`
	AssetTag      *string `json:"asset_tag,omitempty"      db:"asset_tag"`
}

// CreateTicketRequest represents parameters to file a new ticket.
// Any authenticated user may file one; status always starts OPEN.
type CreateTicketRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    TicketPriority `json:"priority,omitempty"`
	AssetID     *string        `json:"asset_id,omitempty"`
	Department  *string        `json:"department,omitempty"`
}

// Validate validates CreateTicketRequest and normalizes the priority.
func (r *CreateTicketRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Title) > maxTitleLen {
		return errors.New("title cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.Description) == "" {
		return errors.New("description is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Description) > maxDescriptionLen {
		return errors.New("description cannot exceed 10000 characters")
	}
	r.Priority = normalizeTicketPriority(r.Priority)
	if !r.Priority.Valid() {
		return errors.New("invalid priority")
	}
	if r.AssetID != nil && strings.TrimSpace(*r.AssetID) == "" {
		r.AssetID = nil
	}
	if r.Department != nil && strings.TrimSpace(*r.Department) == "" {
		r.Department = nil
	}
	return nil
}

// UpdateTicketRequest represents a partial ticket update. Only ticket
// managers reach this path; routing enforces the role.
type UpdateTicketRequest struct {
	Status     *TicketStatus   `json:"status,omitempty"`
	Priority   *TicketPriority `json:"priority,omitempty"`
	Resolution *string         `json:"resolution,omitempty"`
	AssignedTo *string         `json:"assigned_to,omitempty"`
}

// HasUpdates reports whether any field is set in UpdateTicketRequest.
func (r *UpdateTicketRequest) HasUpdates() bool {
	return r.Status != nil || r.Priority != nil || r.Resolution != nil || r.AssignedTo != nil
}

// Validate validates UpdateTicketRequest, ensuring at least one field is
// set and enum values are sane.
func (r *UpdateTicketRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Status != nil {
		s := TicketStatus(strings.ToUpper(strings.TrimSpace(string(*r.Status))))
		if !s.Valid() {
			return errors.New("invalid status")
		}
		*r.Status = s
	}
	if r.Priority != nil {
		p := normalizeTicketPriority(*r.Priority)
		if !p.Valid() {
			return errors.New("invalid priority")
		}
		*r.Priority = p
	}
	if r.Resolution != nil && utf8.RuneCountInString(*r.Resolution) > maxResolutionLen {
		return errors.New("resolution cannot exceed 10000 characters")
	}
	if r.AssignedTo != nil && strings.TrimSpace(*r.AssignedTo) == "" {
		return errors.New("assigned_to cannot be empty")
	}
	return nil
}

// TicketsListOptions controls paging for ticket listings. ReportedBy
// restricts the listing to a single reporter; the service sets it for
// callers who may only see their own tickets.
type TicketsListOptions struct {
	Limit      int
	Offset     int
	ReportedBy *string
	Status     *TicketStatus
}
