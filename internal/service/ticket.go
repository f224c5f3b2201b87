package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/trackr-gov/trackr/internal/core"
	"github.com/trackr-gov/trackr/internal/data"
	domainauth "github.com/trackr-gov/trackr/internal/domain/auth"
	"github.com/trackr-gov/trackr/internal/domain/model"
	apperrors "github.com/trackr-gov/trackr/internal/errors"
)

// TicketServiceOptions groups dependencies for TicketService.
type TicketServiceOptions struct {
	Tickets core.TicketRepository // Required: ticket repository
	Logger  *slog.Logger          // Optional: structured logger
}

// TicketService provides business logic for helpdesk tickets, including the
// reporter scoping rule: callers without the view-all capability only ever
// see their own tickets.
type TicketService struct {
	tickets core.TicketRepository
	logger  *slog.Logger
}

// NewTicketService constructs a new TicketService.
func NewTicketService(opts TicketServiceOptions) (*TicketService, error) {
	if opts.Tickets == nil {
		return nil, errors.New("TicketRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "ticket_service")
	}

	return &TicketService{tickets: opts.Tickets, logger: logger}, nil
}

// Create files a new ticket reported by the caller.
func (s *TicketService) Create(ctx context.Context, identity domainauth.Identity, req *model.CreateTicketRequest) (*model.Ticket, error) {
	ticket, err := s.tickets.Create(ctx, identity.UserID, req)
	if err != nil {
		if apperrors.IsForeignKey(err) {
			return nil, apperrors.NotFound("Asset not found")
		}
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "ticket created", "ticket_id", ticket.ID, "reported_by", identity.UserID)
	}
	return ticket, nil
}

// List returns tickets visible to the caller. Staff listings are forced to
// their own tickets regardless of the requested options.
func (s *TicketService) List(ctx context.Context, identity domainauth.Identity, opts *model.TicketsListOptions) ([]*model.Ticket, error) {
	if opts == nil {
		opts = &model.TicketsListOptions{}
	}
	if !domainauth.Permits(identity.Role, domainauth.OpTicketViewAll) {
		opts.ReportedBy = &identity.UserID
	}

	tickets, err := s.tickets.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

// Get returns a single ticket. Callers without the view-all capability get
// NotFound for tickets they did not report, identical to a missing row.
func (s *TicketService) Get(ctx context.Context, identity domainauth.Identity, id string) (*model.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrTicketNotFound) {
			return nil, apperrors.NotFound("Ticket not found")
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	if !domainauth.Permits(identity.Role, domainauth.OpTicketViewAll) && ticket.ReportedBy != identity.UserID {
		return nil, apperrors.NotFound("Ticket not found")
	}
	return ticket, nil
}

// Update applies a partial update to a ticket. Routing restricts this to
// ticket managers.
func (s *TicketService) Update(ctx context.Context, id string, req model.UpdateTicketRequest) (*model.Ticket, error) {
	ticket, err := s.tickets.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, data.ErrTicketNotFound) {
			return nil, apperrors.NotFound("Ticket not found")
		}
		return nil, err
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "ticket updated", "ticket_id", id)
	}
	return ticket, nil
}

// Delete removes a ticket.
func (s *TicketService) Delete(ctx context.Context, id string) error {
	deleted, err := s.tickets.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	if !deleted {
		return apperrors.NotFound("Ticket not found")
	}
	return nil
}
