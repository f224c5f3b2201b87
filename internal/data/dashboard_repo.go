package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/trackr-gov/trackr/internal/data/pgxutil"
	"github.com/trackr-gov/trackr/internal/domain/model"
)

// DashboardRepo provides the aggregate queries behind the dashboard.
type DashboardRepo struct {
	DB *sql.DB
}

// NewDashboardRepo creates a new DashboardRepo.
func NewDashboardRepo(db *sql.DB) *DashboardRepo {
	return &DashboardRepo{DB: db}
}

// TicketCountByStatus counts tickets in the given status, optionally scoped
// to one reporter.
func (r *DashboardRepo) TicketCountByStatus(ctx context.Context, status model.TicketStatus, reportedBy *string) (int, error) {
	if reportedBy != nil {
		return r.count(ctx,
			`SELECT count(*) FROM tickets WHERE status = $1 AND reported_by = $2`,
			status, *reportedBy)
	}
	return r.count(ctx, `SELECT count(*) FROM tickets WHERE status = $1`, status)
}

// ActiveTicketCount counts tickets that are OPEN or IN_PROGRESS, optionally
// scoped to one reporter.
func (r *DashboardRepo) ActiveTicketCount(ctx context.Context, reportedBy *string) (int, error) {
	if reportedBy != nil {
		return r.count(ctx,
			`SELECT count(*) FROM tickets WHERE status IN ($1, $2) AND reported_by = $3`,
			model.TicketStatusOpen, model.TicketStatusInProgress, *reportedBy)
	}
	return r.count(ctx,
		`SELECT count(*) FROM tickets WHERE status IN ($1, $2)`,
		model.TicketStatusOpen, model.TicketStatusInProgress)
}

// FailedMaintenanceCount counts maintenance logs whose recorded test failed.
func (r *DashboardRepo) FailedMaintenanceCount(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT count(*) FROM maintenance_logs WHERE test_result = $1`, model.TestResultFail)
}

// AssetCount counts all registered assets.
func (r *DashboardRepo) AssetCount(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT count(*) FROM assets`)
}

// RecentTickets returns the newest tickets, optionally scoped to one reporter.
func (r *DashboardRepo) RecentTickets(ctx context.Context, reportedBy *string, limit int) ([]*model.Ticket, error) {
	if limit <= 0 {
		limit = 5
	}
	opts := &model.TicketsListOptions{Limit: limit, ReportedBy: reportedBy}
	return NewTicketRepo(r.DB).List(ctx, opts)
}

// RecentMaintenance returns the newest maintenance logs.
func (r *DashboardRepo) RecentMaintenance(ctx context.Context, limit int) ([]*model.MaintenanceLog, error) {
	if limit <= 0 {
		limit = 5
	}
	return NewMaintenanceRepo(r.DB).List(ctx, &model.MaintenanceListOptions{Limit: limit})
}

// AssetsByDepartment returns the newest assets in a department.
func (r *DashboardRepo) AssetsByDepartment(ctx context.Context, department string, limit int) ([]*model.Asset, error) {
	if limit <= 0 {
		limit = 5
	}
	opts := &model.AssetsListOptions{Limit: limit, Department: &department}
	return NewAssetRepo(r.DB).List(ctx, opts)
}

func (r *DashboardRepo) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(&n)
	}); err != nil {
		return 0, fmt.Errorf("dashboard count query: %w", err)
	}
	return n, nil
}
