package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/trackr-gov/trackr/internal/data/pgxutil"
	"github.com/trackr-gov/trackr/internal/domain/model"
	apperrors "github.com/trackr-gov/trackr/internal/errors"
)

// TicketRepo provides database operations for helpdesk tickets.
type TicketRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewTicketRepo creates a new TicketRepo with real time provider.
func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewTicketRepoWithTimeProvider creates a new TicketRepo with a custom time provider (useful for tests).
func NewTicketRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *TicketRepo {
	return &TicketRepo{DB: db, timeProvider: tp}
}

// ticketSelect joins reporter and asset details into every ticket read.
const ticketSelect = `
	SELECT t.id, t.title, t.description, t.status, t.priority, t.department,
	       t.asset_id, t.reported_by, t.assigned_to, t.resolution,
	       t.created_at, t.updated_at,
	       u.name AS reporter_name, u.email AS reporter_email,
	       a.asset_tag AS asset_tag
	FROM tickets t
	JOIN users u ON u.id = t.reported_by
	LEFT JOIN assets a ON a.id = t.asset_id`

// Create files a new ticket for the given reporter. Status always starts OPEN.
func (r *TicketRepo) Create(ctx context.Context, reportedBy string, req *model.CreateTicketRequest) (*model.Ticket, error) {
	if req == nil {
		return nil, errors.New("create ticket request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(reportedBy) == "" {
		return nil, errors.New("reporter is required")
	}

	now := r.timeProvider.Now().UTC()
	id := uuid.NewString()
	var out model.Ticket
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		if _, err := conn.Exec(ctx, `
			INSERT INTO tickets (id, title, description, status, priority, department, asset_id, reported_by, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`,
			id,
			strings.TrimSpace(req.Title),
			req.Description,
			model.TicketStatusOpen,
			req.Priority,
			req.Department,
			req.AssetID,
			reportedBy,
			now,
		); err != nil {
			return err
		}
		rows, err := conn.Query(ctx, ticketSelect+` WHERE t.id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Ticket])
		return e
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a ticket by ID with reporter and asset details.
func (r *TicketRepo) GetByID(ctx context.Context, id string) (*model.Ticket, error) {
	var out model.Ticket
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, ticketSelect+` WHERE t.id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Ticket])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// List retrieves tickets newest first, optionally scoped to one reporter
// and status.
func (r *TicketRepo) List(ctx context.Context, opts *model.TicketsListOptions) ([]*model.Ticket, error) {
	if opts == nil {
		opts = &model.TicketsListOptions{}
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	where := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if opts.ReportedBy != nil {
		args = append(args, *opts.ReportedBy)
		where = append(where, "t.reported_by = $"+strconv.Itoa(len(args)))
	}
	if opts.Status != nil {
		args = append(args, *opts.Status)
		where = append(where, "t.status = $"+strconv.Itoa(len(args)))
	}

	query := ticketSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, limit)
	query += " ORDER BY t.created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	var rowsOut []model.Ticket
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Ticket])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	res := make([]*model.Ticket, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update applies a partial update to a ticket and returns the fresh row.
func (r *TicketRepo) Update(ctx context.Context, id string, req model.UpdateTicketRequest) (*model.Ticket, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setClause, args := r.buildUpdateClause(req)
	args = append(args, id)
	query := "UPDATE tickets SET " + setClause + " WHERE id = $" + strconv.Itoa(len(args))

	var out model.Ticket
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		rows, err := conn.Query(ctx, ticketSelect+` WHERE t.id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Ticket])
		return e
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// buildUpdateClause builds the SQL SET clause and args for a ticket update.
func (r *TicketRepo) buildUpdateClause(req model.UpdateTicketRequest) (string, []any) {
	setParts := make([]string, 0, 5)
	args := make([]any, 0, 5)
	nextIdx := func() int { return len(args) + 1 }

	if req.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", nextIdx()))
		args = append(args, *req.Status)
	}
	if req.Priority != nil {
		setParts = append(setParts, fmt.Sprintf("priority = $%d", nextIdx()))
		args = append(args, *req.Priority)
	}
	if req.Resolution != nil {
		setParts = append(setParts, fmt.Sprintf("resolution = $%d", nextIdx()))
		args = append(args, *req.Resolution)
	}
	if req.AssignedTo != nil {
		setParts = append(setParts, fmt.Sprintf("assigned_to = $%d", nextIdx()))
		args = append(args, *req.AssignedTo)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	return strings.Join(setParts, ", "), args
}

// Delete deletes a ticket by ID and reports whether a row was removed.
func (r *TicketRepo) Delete(ctx context.Context, id string) (bool, error) {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, apperrors.MapDBError(err)
	}
	return affected > 0, nil
}
