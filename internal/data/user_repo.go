package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/trackr-gov/trackr/internal/core"
	"github.com/trackr-gov/trackr/internal/data/pgxutil"
	"github.com/trackr-gov/trackr/internal/domain/model"
	apperrors "github.com/trackr-gov/trackr/internal/errors"
)

// UserRepo provides database operations for user accounts.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider (useful for tests).
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

const userColumns = `id, email, password_hash, name, role, department, created_at, updated_at`

// Create inserts a new user account.
func (r *UserRepo) Create(ctx context.Context, params core.CreateUserParams) (*model.User, error) {
	if strings.TrimSpace(params.Email) == "" {
		return nil, errors.New("email is required")
	}
	if params.PasswordHash == "" {
		return nil, errors.New("password hash is required")
	}

	now := r.timeProvider.Now().UTC()
	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (id, email, password_hash, name, role, department, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
			RETURNING `+userColumns,
			uuid.NewString(),
			params.Email,
			params.PasswordHash,
			params.Name,
			params.Role,
			params.Department,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getByQuery(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail retrieves a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getByQuery(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepo) getByQuery(ctx context.Context, query, arg string) (*model.User, error) {
	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// List retrieves users with pagination, newest first.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*model.User, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+userColumns+` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
			limit, offset,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	res := make([]*model.User, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Delete deletes a user by ID and reports whether a row was removed.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
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

func (r *UserRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrUserNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrEmailExists
	}
	return apperrors.MapDBError(err)
}
