package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/owenj053/netone-backend/internal/domain"
)

// AssetRepository encapsulates asset persistence.
type AssetRepository interface {
	Create(ctx context.Context, asset *domain.Asset) error
	GetByID(ctx context.Context, id int64) (*domain.Asset, error)
	List(ctx context.Context) ([]domain.Asset, error)
	CountChildren(ctx context.Context, id int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type assetRepository struct {
	pool *pgxpool.Pool
}

// NewAssetRepository instantiates repository.
func NewAssetRepository(pool *pgxpool.Pool) AssetRepository {
	return &assetRepository{pool: pool}
}

func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	const query = `
        INSERT INTO assets (asset_name, asset_type, qr_code_id, parent_asset_id, latitude, longitude)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING asset_id, created_at`
	return r.pool.QueryRow(ctx, query,
		asset.Name,
		asset.Type,
		asset.QRCodeID,
		asset.ParentAssetID,
		asset.Latitude,
		asset.Longitude,
	).Scan(&asset.ID, &asset.CreatedAt)
}

func (r *assetRepository) GetByID(ctx context.Context, id int64) (*domain.Asset, error) {
	const query = `
        SELECT asset_id, asset_name, asset_type, qr_code_id, parent_asset_id, latitude, longitude, created_at
        FROM assets WHERE asset_id=$1`
	var asset domain.Asset
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&asset.ID,
		&asset.Name,
		&asset.Type,
		&asset.QRCodeID,
		&asset.ParentAssetID,
		&asset.Latitude,
		&asset.Longitude,
		&asset.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) List(ctx context.Context) ([]domain.Asset, error) {
	const query = `
        SELECT asset_id, asset_name, asset_type, qr_code_id, parent_asset_id, latitude, longitude, created_at
        FROM assets ORDER BY parent_asset_id NULLS FIRST, asset_name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Asset
	for rows.Next() {
		var asset domain.Asset
		if err := rows.Scan(
			&asset.ID,
			&asset.Name,
			&asset.Type,
			&asset.QRCodeID,
			&asset.ParentAssetID,
			&asset.Latitude,
			&asset.Longitude,
			&asset.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, asset)
	}
	return result, rows.Err()
}

func (r *assetRepository) CountChildren(ctx context.Context, id int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM assets WHERE parent_asset_id=$1`
	var count int64
	if err := r.pool.QueryRow(ctx, query, id).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *assetRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM assets WHERE asset_id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
