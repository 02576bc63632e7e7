package dto

import (
	"time"

	"github.com/owenj053/netone-backend/internal/domain"
	"github.com/owenj053/netone-backend/internal/service"
)

// CreateAssetRequest payload.
type CreateAssetRequest struct {
	Name          string   `json:"asset_name" validate:"required"`
	Type          string   `json:"asset_type" validate:"required"`
	QRCodeID      *string  `json:"qr_code_id"`
	ParentAssetID *int64   `json:"parent_asset_id"`
	Latitude      *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude     *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

// ToInput maps the request onto the service input.
func (r CreateAssetRequest) ToInput() service.AssetCreateInput {
	return service.AssetCreateInput{
		Name:          r.Name,
		Type:          r.Type,
		QRCodeID:      r.QRCodeID,
		ParentAssetID: r.ParentAssetID,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
	}
}

// AssetResponse provides full asset info.
type AssetResponse struct {
	ID            int64     `json:"asset_id"`
	Name          string    `json:"asset_name"`
	Type          string    `json:"asset_type"`
	QRCodeID      *string   `json:"qr_code_id"`
	ParentAssetID *int64    `json:"parent_asset_id"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewAssetResponse maps a domain asset.
func NewAssetResponse(asset *domain.Asset) AssetResponse {
	return AssetResponse{
		ID:            asset.ID,
		Name:          asset.Name,
		Type:          asset.Type,
		QRCodeID:      asset.QRCodeID,
		ParentAssetID: asset.ParentAssetID,
		Latitude:      asset.Latitude,
		Longitude:     asset.Longitude,
		CreatedAt:     asset.CreatedAt,
	}
}

// NewAssetListResponse maps a slice of assets.
func NewAssetListResponse(assets []domain.Asset) []AssetResponse {
	out := make([]AssetResponse, 0, len(assets))
	for i := range assets {
		out = append(out, NewAssetResponse(&assets[i]))
	}
	return out
}
