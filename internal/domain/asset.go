package domain

import "time"

// Asset is a physical or logical network item that tickets are raised
// against. Assets form a tree via ParentAssetID and may carry the static
// coordinates recorded when the asset was commissioned.
type Asset struct {
	ID            int64
	Name          string
	Type          string
	QRCodeID      *string
	ParentAssetID *int64
	Latitude      *float64
	Longitude     *float64
	CreatedAt     time.Time
}
