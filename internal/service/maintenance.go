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

// MaintenanceServiceOptions groups dependencies for MaintenanceService.
type MaintenanceServiceOptions struct {
	Maintenance core.MaintenanceRepository // Required: maintenance repository
	Logger      *slog.Logger               // Optional: structured logger
}

// MaintenanceService provides business logic for maintenance logs.
type MaintenanceService struct {
	maintenance core.MaintenanceRepository
	logger      *slog.Logger
}

// NewMaintenanceService constructs a new MaintenanceService.
func NewMaintenanceService(opts MaintenanceServiceOptions) (*MaintenanceService, error) {
	if opts.Maintenance == nil {
		return nil, errors.New("MaintenanceRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "maintenance_service")
	}

	return &MaintenanceService{maintenance: opts.Maintenance, logger: logger}, nil
}

// Create records maintenance work. The technician is always the caller.
func (s *MaintenanceService) Create(ctx context.Context, identity domainauth.Identity, req *model.CreateMaintenanceLogRequest) (*model.MaintenanceLog, error) {
	logEntry, err := s.maintenance.Create(ctx, identity.UserID, req)
	if err != nil {
		if errors.Is(err, data.ErrAssetNotFound) {
			return nil, apperrors.NotFound("Asset not found")
		}
		return nil, err
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "maintenance recorded",
			"log_id", logEntry.ID, "asset_id", logEntry.AssetID, "technician", identity.UserID)
	}
	return logEntry, nil
}

// List returns maintenance logs, newest first, capped at the listing limit.
func (s *MaintenanceService) List(ctx context.Context, opts *model.MaintenanceListOptions) ([]*model.MaintenanceLog, error) {
	logs, err := s.maintenance.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list maintenance logs: %w", err)
	}
	return logs, nil
}
