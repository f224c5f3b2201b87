package errors

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Regular expressions for parsing PgError.Detail messages.
var (
	// reKeyField extracts field name from unique violation detail: "Key (field)=(value) already exists.".
	reKeyField = regexp.MustCompile(`Key \(([^)]+)\)=`)
	// reReferencedFrom detects parent deletion: "... is still referenced from table ...".
	reReferencedFrom = regexp.MustCompile(`is still referenced from table "?([^"]+)"?`)
	// reNotPresent detects missing parent: "... is not present in table ...".
	reNotPresent = regexp.MustCompile(`is not present in table "?([^"]+)"?`)
)

// MapDBError maps database errors to AppError instances:
// - pgx.ErrNoRows → NotFound
// - unique constraint violations → Conflict
// - foreign key violations → ForeignKey
// - check and NOT NULL violations → Validation
// - context timeouts/cancellations → Timeout/Canceled
//
// If the error is not a recognized database error, it returns the original error.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "Request timed out. Please try again.",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "Request was canceled.",
			Cause:   err,
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return &AppError{
			Code:    ErrCodeNotFound,
			Message: "Resource not found",
			Cause:   err,
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr)
	}

	return err
}

func mapPgError(pgErr *pgconn.PgError) error {
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return mapUniqueViolation(pgErr)
	case pgerrcode.ForeignKeyViolation:
		return mapForeignKeyViolation(pgErr)
	case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
		return mapConstraintViolation(pgErr)
	default:
		return &AppError{
			Code:    ErrCodeInternal,
			Message: "A database error occurred. Please try again.",
			Cause:   pgErr,
		}
	}
}

// mapUniqueViolation maps unique constraint violations to Conflict errors.
func mapUniqueViolation(pgErr *pgconn.PgError) error {
	field := pgErr.ColumnName

	// Parse Detail for "Key (field)=(value) already exists." when column
	// metadata is absent.
	if field == "" && pgErr.Detail != "" {
		if m := reKeyField.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
			field = m[1]
		}
	}

	// Last resort: infer from constraint name, e.g. "users_email_key" → "email".
	if field == "" {
		field = inferFieldFromConstraint(pgErr.ConstraintName)
	}

	return &AppError{
		Code:    ErrCodeConflict,
		Message: conflictMessage(field),
		Field:   field,
		Cause:   pgErr,
	}
}

// conflictMessage phrases duplicate-key conflicts per field so API clients
// can surface them verbatim.
func conflictMessage(field string) string {
	switch field {
	case "email":
		return "Email already registered"
	case "asset_tag":
		return "Asset tag already exists"
	case "serial_number":
		return "Serial number already exists"
	default:
		return "This value already exists. Please choose a different one."
	}
}

// mapForeignKeyViolation maps foreign key constraint violations to
// ForeignKey errors, distinguishing deleting a referenced parent from
// referencing a missing parent.
func mapForeignKeyViolation(pgErr *pgconn.PgError) error {
	var message string

	if pgErr.Detail != "" {
		if m := reReferencedFrom.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
			message = "Cannot delete because this item is in use by " + mapTableToDomain(m[1]) + "."
		} else if m := reNotPresent.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
			message = "Cannot complete operation because the referenced " + mapTableToDomain(m[1]) + " does not exist."
		}
	}

	if message == "" && pgErr.TableName != "" {
		message = "Cannot complete operation because this item is in use by " + mapTableToDomain(pgErr.TableName) + "."
	}

	if message == "" {
		message = "Cannot complete operation because this item is in use."
	}

	return &AppError{
		Code:    ErrCodeForeignKey,
		Message: message,
		Cause:   pgErr,
	}
}

// mapConstraintViolation maps CHECK and NOT NULL violations to Validation errors.
func mapConstraintViolation(pgErr *pgconn.PgError) error {
	if pgErr.ColumnName != "" {
		return &AppError{
			Code:    ErrCodeValidation,
			Message: "This field has an invalid value.",
			Field:   pgErr.ColumnName,
			Cause:   pgErr,
		}
	}
	return &AppError{
		Code:    ErrCodeValidation,
		Message: "Invalid data. Please check your input.",
		Cause:   pgErr,
	}
}

// inferFieldFromConstraint attempts to infer the field name from a
// constraint name like "users_email_key". Multi-column constraints with
// more segments are ambiguous and return empty.
func inferFieldFromConstraint(constraintName string) string {
	if constraintName == "" {
		return ""
	}
	parts := strings.Split(constraintName, "_")
	if len(parts) < 3 {
		return ""
	}
	// Trailing suffixes are "key", "unique", or "idx"; everything between
	// the table name and the suffix is the column, possibly underscored
	// ("assets_asset_tag_key" → "asset_tag").
	suffix := parts[len(parts)-1]
	if suffix != "key" && suffix != "unique" && suffix != "idx" {
		return ""
	}
	return strings.Join(parts[1:len(parts)-1], "_")
}

// mapTableToDomain maps internal table names to user-facing domain names.
func mapTableToDomain(tableName string) string {
	switch strings.ToLower(strings.TrimSpace(tableName)) {
	case "users":
		return "User"
	case "assets":
		return "Asset"
	case "tickets":
		return "Ticket"
	case "maintenance_logs":
		return "Maintenance Log"
	default:
		return "another record"
	}
}
