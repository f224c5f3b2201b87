package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/trackr-gov/trackr/internal/data/pgxutil"
	"github.com/trackr-gov/trackr/internal/domain/model"
	apperrors "github.com/trackr-gov/trackr/internal/errors"
)

// MaintenanceRepo provides database operations for maintenance logs.
type MaintenanceRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewMaintenanceRepo creates a new MaintenanceRepo with real time provider.
func NewMaintenanceRepo(db *sql.DB) *MaintenanceRepo {
	return &MaintenanceRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewMaintenanceRepoWithTimeProvider creates a new MaintenanceRepo with a custom time provider (useful for tests).
func NewMaintenanceRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *MaintenanceRepo {
	return &MaintenanceRepo{DB: db, timeProvider: tp}
}

// maintenanceSelect joins asset and technician details into every read.
const maintenanceSelect = `
	SELECT m.id, m.asset_id, m.action, m.description, m.ram_details, m.test_result,
	       m.technician, m.created_at,
	       a.asset_tag AS asset_tag, u.name AS technician_name
	FROM maintenance_logs m
	JOIN assets a ON a.id = m.asset_id
	JOIN users u ON u.id = m.technician`

// Create records maintenance work performed by the given technician. A
// missing asset surfaces as ErrAssetNotFound via the foreign key.
func (r *MaintenanceRepo) Create(ctx context.Context, technician string, req *model.CreateMaintenanceLogRequest) (*model.MaintenanceLog, error) {
	if req == nil {
		return nil, errors.New("create maintenance log request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(technician) == "" {
		return nil, errors.New("technician is required")
	}

	now := r.timeProvider.Now().UTC()
	id := uuid.NewString()
	var out model.MaintenanceLog
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		if _, err := conn.Exec(ctx, `
			INSERT INTO maintenance_logs (id, asset_id, action, description, ram_details, test_result, technician, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			id,
			req.AssetID,
			strings.TrimSpace(req.Action),
			req.Description,
			req.RAMDetails,
			req.TestResult,
			technician,
			now,
		); err != nil {
			return err
		}
		rows, err := conn.Query(ctx, maintenanceSelect+` WHERE m.id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.MaintenanceLog])
		return e
	}); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return nil, ErrAssetNotFound
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// List retrieves maintenance logs newest first, optionally filtered by
// asset. The result size is always capped at model.MaxMaintenanceLogs.
func (r *MaintenanceRepo) List(ctx context.Context, opts *model.MaintenanceListOptions) ([]*model.MaintenanceLog, error) {
	if opts == nil {
		opts = &model.MaintenanceListOptions{}
	}
	limit := opts.Limit
	if limit <= 0 || limit > model.MaxMaintenanceLogs {
		limit = model.MaxMaintenanceLogs
	}

	query := maintenanceSelect
	args := make([]any, 0, 2)
	if opts.AssetID != nil {
		args = append(args, *opts.AssetID)
		query += " WHERE m.asset_id = $" + strconv.Itoa(len(args))
	}
	args = append(args, limit)
	query += " ORDER BY m.created_at DESC LIMIT $" + strconv.Itoa(len(args))

	var rowsOut []model.MaintenanceLog
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.MaintenanceLog])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list maintenance logs: %w", err)
	}

	res := make([]*model.MaintenanceLog, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
