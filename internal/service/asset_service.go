package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/owenj053/netone-backend/internal/domain"
	"github.com/owenj053/netone-backend/internal/repository"
	apperrors "github.com/owenj053/netone-backend/pkg/util"
)

// AssetService maintains the asset registry. Assets form a tree; an asset
// with children cannot be deleted.
type AssetService struct {
	assets repository.AssetRepository
	audit  *AuditTrail
	logger *zap.Logger
}

// AssetCreateInput describes asset creation payload.
type AssetCreateInput struct {
	Name          string
	Type          string
	QRCodeID      *string
	ParentAssetID *int64
	Latitude      *float64
	Longitude     *float64
}

// NewAssetService constructs the service.
func NewAssetService(assets repository.AssetRepository, audit *AuditTrail, logger *zap.Logger) *AssetService {
	return &AssetService{assets: assets, audit: audit, logger: logger}
}

// Create registers a new asset, optionally under a parent.
func (s *AssetService) Create(ctx context.Context, actorID int64, input AssetCreateInput) (*domain.Asset, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Type) == "" {
		return nil, apperrors.NewValidationError("asset_name and asset_type required", nil)
	}
	if input.ParentAssetID != nil {
		if _, err := s.assets.GetByID(ctx, *input.ParentAssetID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError("parent asset does not exist", map[string]any{"parent_asset_id": *input.ParentAssetID})
			}
			return nil, apperrors.MapError(err)
		}
	}

	asset := &domain.Asset{
		Name:          strings.TrimSpace(input.Name),
		Type:          strings.TrimSpace(input.Type),
		QRCodeID:      input.QRCodeID,
		ParentAssetID: input.ParentAssetID,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
	}
	if err := s.assets.Create(ctx, asset); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.audit.Append(ctx, actorID, domain.AuditCreateAsset, "asset", asset.ID, map[string]any{
		"asset_name": asset.Name,
		"asset_type": asset.Type,
	})
	return asset, nil
}

// List returns all assets, parents first.
func (s *AssetService) List(ctx context.Context) ([]domain.Asset, error) {
	assets, err := s.assets.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return assets, nil
}

// Delete removes a childless asset. Deleting an asset that still has
// children referencing it as parent fails with Conflict.
func (s *AssetService) Delete(ctx context.Context, actorID, assetID int64) error {
	if _, err := s.assets.GetByID(ctx, assetID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("asset", map[string]any{"asset_id": assetID})
		}
		return apperrors.MapError(err)
	}

	children, err := s.assets.CountChildren(ctx, assetID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if children > 0 {
		return apperrors.NewConflict("asset has child assets", map[string]any{
			"asset_id": assetID,
			"children": children,
		})
	}

	if err := s.assets.Delete(ctx, assetID); err != nil {
		// a ticket referencing the asset also blocks deletion
		if apperrors.IsForeignKeyViolation(err) {
			return apperrors.NewConflict("asset is referenced by other records", map[string]any{"asset_id": assetID})
		}
		return apperrors.MapError(err)
	}

	s.audit.Append(ctx, actorID, domain.AuditDeleteAsset, "asset", assetID, nil)
	return nil
}
