// Package devseed populates a development database with demo accounts,
// assets, and a little helpdesk history so every page has something to show.
// Seeding is idempotent: existing rows are left alone.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/trackr-gov/trackr/internal/core"
	"github.com/trackr-gov/trackr/internal/data"
	"github.com/trackr-gov/trackr/internal/data/pgxutil"
	domainauth "github.com/trackr-gov/trackr/internal/domain/auth"
	"github.com/trackr-gov/trackr/internal/domain/model"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB     *sql.DB
	users  *data.UserRepo
	assets *data.AssetRepo
}

// NewServices constructs the repositories used for seeding from the provided DB.
func NewServices(db *sql.DB) Services {
	return Services{
		DB:     db,
		users:  data.NewUserRepo(db),
		assets: data.NewAssetRepo(db),
	}
}

type seedUser struct {
	Email      string
	Password   string
	Name       string
	Role       domainauth.Role
	Department string
}

var seedUsers = []seedUser{
	{"admin@trackr.gov", "AdminPassword123!", "System Administrator", domainauth.RoleAdmin, "IT Department"},
	{"officer@trackr.gov", "OfficerPassword123!", "IT Officer", domainauth.RoleITOfficer, "IT Department"},
	{"staff@trackr.gov", "StaffPassword123!", "Staff Member", domainauth.RoleStaff, "Finance"},
}

var seedAssets = []model.CreateAssetRequest{
	{
		AssetTag:     "ASSET-001",
		AssetType:    model.AssetTypeComputer,
		Department:   "Finance",
		CPU:          ptr("Intel Core i7-13700K"),
		RAM:          ptr("32GB DDR5"),
		Storage:      ptr("1TB SSD"),
		SerialNumber: "SN-2024-001",
	},
	{
		AssetTag:     "ASSET-002",
		AssetType:    model.AssetTypeComputer,
		Department:   "HR",
		CPU:          ptr("Intel Core i5-13600K"),
		RAM:          ptr("16GB DDR5"),
		Storage:      ptr("512GB SSD"),
		SerialNumber: "SN-2024-002",
	},
}

// Run executes the full development seeding workflow against the provided DB.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	userIDs, err := seedAccounts(ctx, svcs, logger)
	if err != nil {
		return err
	}

	assetIDs, err := seedInventory(ctx, svcs, logger)
	if err != nil {
		return err
	}

	if err := seedHistory(ctx, svcs, userIDs, assetIDs, logger); err != nil {
		return err
	}

	return nil
}

// seedAccounts creates the three demo accounts and returns their ids keyed
// by role.
func seedAccounts(ctx context.Context, svcs Services, logger *slog.Logger) (map[domainauth.Role]string, error) {
	ids := make(map[domainauth.Role]string, len(seedUsers))
	for _, u := range seedUsers {
		existing, err := svcs.users.GetByEmail(ctx, u.Email)
		if err == nil {
			ids[u.Role] = existing.ID
			continue
		}
		if !errors.Is(err, data.ErrUserNotFound) {
			return nil, fmt.Errorf("look up seed user %s: %w", u.Email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash seed password: %w", err)
		}

		dept := u.Department
		created, err := svcs.users.Create(ctx, core.CreateUserParams{
			Email:        u.Email,
			PasswordHash: string(hash),
			Name:         u.Name,
			Role:         u.Role,
			Department:   &dept,
		})
		if err != nil {
			// A concurrent seeder may have won the race; re-read.
			if errors.Is(err, data.ErrEmailExists) {
				existing, err := svcs.users.GetByEmail(ctx, u.Email)
				if err != nil {
					return nil, fmt.Errorf("re-read seed user %s: %w", u.Email, err)
				}
				ids[u.Role] = existing.ID
				continue
			}
			return nil, fmt.Errorf("create seed user %s: %w", u.Email, err)
		}

		ids[u.Role] = created.ID
		if logger != nil {
			logger.InfoContext(ctx, "seeded account", "email", u.Email, "role", u.Role)
		}
	}
	return ids, nil
}

// seedInventory registers the demo assets and returns their ids keyed by tag.
func seedInventory(ctx context.Context, svcs Services, logger *slog.Logger) (map[string]string, error) {
	ids := make(map[string]string, len(seedAssets))
	for i := range seedAssets {
		req := seedAssets[i]
		existing, err := svcs.assets.GetByTag(ctx, req.AssetTag)
		if err == nil {
			ids[req.AssetTag] = existing.ID
			continue
		}
		if !errors.Is(err, data.ErrAssetNotFound) {
			return nil, fmt.Errorf("look up seed asset %s: %w", req.AssetTag, err)
		}

		created, err := svcs.assets.Create(ctx, &req)
		if err != nil {
			if errors.Is(err, data.ErrAssetTagExists) || errors.Is(err, data.ErrSerialNumberExists) {
				continue
			}
			return nil, fmt.Errorf("create seed asset %s: %w", req.AssetTag, err)
		}

		ids[req.AssetTag] = created.ID
		if logger != nil {
			logger.InfoContext(ctx, "seeded asset", "asset_tag", req.AssetTag)
		}
	}
	return ids, nil
}

// seedHistory files one demo ticket and one maintenance log against the
// first seeded asset. Both rows go in a single transaction so a partial
// seed never leaves a ticket without its matching log.
func seedHistory(ctx context.Context, svcs Services, userIDs map[domainauth.Role]string, assetIDs map[string]string, logger *slog.Logger) error {
	staffID, okStaff := userIDs[domainauth.RoleStaff]
	officerID, okOfficer := userIDs[domainauth.RoleITOfficer]
	assetID, okAsset := assetIDs["ASSET-001"]
	if !okStaff || !okOfficer || !okAsset {
		// Rows already existed before this run; nothing to backfill.
		return nil
	}

	var count int
	if err := svcs.DB.QueryRowContext(ctx, `SELECT count(*) FROM tickets WHERE reported_by = $1`, staffID).Scan(&count); err != nil {
		return fmt.Errorf("count seed tickets: %w", err)
	}
	if count > 0 {
		return nil
	}

	err := pgxutil.WithPgxTx(ctx, svcs.DB, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO tickets (id, title, description, status, priority, asset_id, department, reported_by)
			VALUES ($1, 'Workstation will not boot', 'Machine powers on but never reaches login.', 'OPEN', 'HIGH', $2, 'Finance', $3)`,
			uuid.NewString(), assetID, staffID); err != nil {
			return fmt.Errorf("insert seed ticket: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO maintenance_logs (id, asset_id, action, description, ram_details, test_result, technician)
			VALUES ($1, $2, 'RAM reseat', 'Reseated both DIMMs and ran memory diagnostics.', '32GB DDR5', 'Pass', $3)`,
			uuid.NewString(), assetID, officerID); err != nil {
			return fmt.Errorf("insert seed maintenance log: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if logger != nil {
		logger.InfoContext(ctx, "seeded helpdesk history", "asset_id", assetID)
	}
	return nil
}

func ptr(s string) *string { return &s }
