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

// AssetRepo provides database operations for hardware assets.
type AssetRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAssetRepo creates a new AssetRepo with real time provider.
func NewAssetRepo(db *sql.DB) *AssetRepo {
	return &AssetRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewAssetRepoWithTimeProvider creates a new AssetRepo with a custom time provider (useful for tests).
func NewAssetRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *AssetRepo {
	return &AssetRepo{DB: db, timeProvider: tp}
}

// assetSelect attaches dependent ticket and maintenance counts to every
// asset read.
const assetSelect = `
	SELECT a.id, a.asset_tag, a.asset_type, a.department, a.cpu, a.ram, a.storage,
	       a.serial_number, a.specifications, a.created_at, a.updated_at,
	       (SELECT count(*) FROM tickets t WHERE t.asset_id = a.id)::int AS ticket_count,
	       (SELECT count(*) FROM maintenance_logs m WHERE m.asset_id = a.id)::int AS maintenance_count
	FROM assets a`

// Create registers a new asset.
func (r *AssetRepo) Create(ctx context.Context, req *model.CreateAssetRequest) (*model.Asset, error) {
	if req == nil {
		return nil, errors.New("create asset request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	id := uuid.NewString()
	var out model.Asset
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		if _, err := conn.Exec(ctx, `
			INSERT INTO assets (id, asset_tag, asset_type, department, cpu, ram, storage, serial_number, specifications, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`,
			id,
			strings.TrimSpace(req.AssetTag),
			req.AssetType,
			strings.TrimSpace(req.Department),
			req.CPU,
			req.RAM,
			req.Storage,
			strings.TrimSpace(req.SerialNumber),
			nullableJSON(req.Specifications),
			now,
		); err != nil {
			return err
		}
		rows, err := conn.Query(ctx, assetSelect+` WHERE a.id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Asset])
		return e
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves an asset by ID.
func (r *AssetRepo) GetByID(ctx context.Context, id string) (*model.Asset, error) {
	return r.getByQuery(ctx, assetSelect+` WHERE a.id = $1`, id)
}

// GetByTag retrieves an asset by its asset tag.
func (r *AssetRepo) GetByTag(ctx context.Context, assetTag string) (*model.Asset, error) {
	return r.getByQuery(ctx, assetSelect+` WHERE a.asset_tag = $1`, assetTag)
}

func (r *AssetRepo) getByQuery(ctx context.Context, query, arg string) (*model.Asset, error) {
	var out model.Asset
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Asset])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAssetNotFound
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// List retrieves assets newest first, optionally scoped to a department.
func (r *AssetRepo) List(ctx context.Context, opts *model.AssetsListOptions) ([]*model.Asset, error) {
	if opts == nil {
		opts = &model.AssetsListOptions{}
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	query := assetSelect
	args := make([]any, 0, 3)
	if opts.Department != nil {
		args = append(args, *opts.Department)
		query += " WHERE a.department = $" + strconv.Itoa(len(args))
	}
	args = append(args, limit)
	query += " ORDER BY a.created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	var rowsOut []model.Asset
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Asset])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	res := make([]*model.Asset, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update applies a partial update to an asset and returns the fresh row.
func (r *AssetRepo) Update(ctx context.Context, id string, req model.UpdateAssetRequest) (*model.Asset, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setClause, args := r.buildUpdateClause(req)
	args = append(args, id)
	query := "UPDATE assets SET " + setClause + " WHERE id = $" + strconv.Itoa(len(args))

	var out model.Asset
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		rows, err := conn.Query(ctx, assetSelect+` WHERE a.id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Asset])
		return e
	}); err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// buildUpdateClause builds the SQL SET clause and args for an asset update.
func (r *AssetRepo) buildUpdateClause(req model.UpdateAssetRequest) (string, []any) {
	setParts := make([]string, 0, 9)
	args := make([]any, 0, 9)
	nextIdx := func() int { return len(args) + 1 }

	if req.AssetTag != nil {
		setParts = append(setParts, fmt.Sprintf("asset_tag = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.AssetTag))
	}
	if req.AssetType != nil {
		setParts = append(setParts, fmt.Sprintf("asset_type = $%d", nextIdx()))
		args = append(args, *req.AssetType)
	}
	if req.Department != nil {
		setParts = append(setParts, fmt.Sprintf("department = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Department))
	}
	if req.CPU != nil {
		setParts = append(setParts, fmt.Sprintf("cpu = $%d", nextIdx()))
		args = append(args, *req.CPU)
	}
	if req.RAM != nil {
		setParts = append(setParts, fmt.Sprintf("ram = $%d", nextIdx()))
		args = append(args, *req.RAM)
	}
	if req.Storage != nil {
		setParts = append(setParts, fmt.Sprintf("storage = $%d", nextIdx()))
		args = append(args, *req.Storage)
	}
	if req.SerialNumber != nil {
		setParts = append(setParts, fmt.Sprintf("serial_number = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.SerialNumber))
	}
	if req.Specifications != nil {
		setParts = append(setParts, fmt.Sprintf("specifications = $%d", nextIdx()))
		args = append(args, nullableJSON(req.Specifications))
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	return strings.Join(setParts, ", "), args
}

// Delete deletes an asset by ID. The schema cascades the delete to the
// asset's tickets and maintenance logs.
func (r *AssetRepo) Delete(ctx context.Context, id string) (bool, error) {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
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

func (r *AssetRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrAssetNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		if strings.Contains(pgErr.ConstraintName, "serial_number") {
			return ErrSerialNumberExists
		}
		return ErrAssetTagExists
	}
	return apperrors.MapDBError(err)
}

// nullableJSON converts an empty raw document to SQL NULL.
func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
