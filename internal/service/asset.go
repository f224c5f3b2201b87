package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/trackr-gov/trackr/internal/core"
	"github.com/trackr-gov/trackr/internal/data"
	"github.com/trackr-gov/trackr/internal/domain/model"
	apperrors "github.com/trackr-gov/trackr/internal/errors"
)

// AssetServiceOptions groups dependencies for AssetService.
type AssetServiceOptions struct {
	Assets core.AssetRepository // Required: asset repository
	Logger *slog.Logger         // Optional: structured logger
}

// AssetService provides business logic for the asset inventory.
type AssetService struct {
	assets core.AssetRepository
	logger *slog.Logger
}

// NewAssetService constructs a new AssetService.
func NewAssetService(opts AssetServiceOptions) (*AssetService, error) {
	if opts.Assets == nil {
		return nil, errors.New("AssetRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "asset_service")
	}

	return &AssetService{assets: opts.Assets, logger: logger}, nil
}

// Create registers a new asset.
func (s *AssetService) Create(ctx context.Context, req *model.CreateAssetRequest) (*model.Asset, error) {
	asset, err := s.assets.Create(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrAssetTagExists):
			return nil, apperrors.Conflict("Asset tag already exists")
		case errors.Is(err, data.ErrSerialNumberExists):
			return nil, apperrors.Conflict("Serial number already exists")
		default:
			return nil, err
		}
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "asset created", "asset_id", asset.ID, "asset_tag", asset.AssetTag)
	}
	return asset, nil
}

// Get returns a single asset with its dependent counts.
func (s *AssetService) Get(ctx context.Context, id string) (*model.Asset, error) {
	asset, err := s.assets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrAssetNotFound) {
			return nil, apperrors.NotFound("Asset not found")
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return asset, nil
}

// List returns assets, newest first.
func (s *AssetService) List(ctx context.Context, opts *model.AssetsListOptions) ([]*model.Asset, error) {
	assets, err := s.assets.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	return assets, nil
}

// Update applies a partial update to an asset.
func (s *AssetService) Update(ctx context.Context, id string, req model.UpdateAssetRequest) (*model.Asset, error) {
	asset, err := s.assets.Update(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrAssetNotFound):
			return nil, apperrors.NotFound("Asset not found")
		case errors.Is(err, data.ErrAssetTagExists):
			return nil, apperrors.Conflict("Asset tag already exists")
		case errors.Is(err, data.ErrSerialNumberExists):
			return nil, apperrors.Conflict("Serial number already exists")
		default:
			return nil, err
		}
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "asset updated", "asset_id", id)
	}
	return asset, nil
}

// Delete removes an asset. The schema cascades the delete to the asset's
// tickets and maintenance logs, so a successful delete removes the full
// history. Routing restricts this to admins.
func (s *AssetService) Delete(ctx context.Context, id string) error {
	deleted, err := s.assets.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	if !deleted {
		return apperrors.NotFound("Asset not found")
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "asset deleted", "asset_id", id)
	}
	return nil
}
