package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/owenj053/netone-backend/internal/observability"
)

func newAssetFixture(t *testing.T) (*AssetService, *fakeAssetRepo, *fakeAuditRepo) {
	t.Helper()
	assets := newFakeAssetRepo()
	audit := &fakeAuditRepo{}
	svc := NewAssetService(assets, NewAuditTrail(audit, zap.NewNop(), observability.NewMetrics()), zap.NewNop())
	return svc, assets, audit
}

func TestCreateAsset(t *testing.T) {
	svc, _, _ := newAssetFixture(t)

	asset, err := svc.Create(context.Background(), 1, AssetCreateInput{
		Name:     "BTS Site 12",
		Type:     "base_station",
		Latitude: ptr(-17.82),
	})
	require.NoError(t, err)
	assert.NotZero(t, asset.ID)
}

func TestCreateAssetRequiresNameAndType(t *testing.T) {
	svc, _, _ := newAssetFixture(t)

	_, err := svc.Create(context.Background(), 1, AssetCreateInput{Name: " ", Type: "tower"})
	assertCode(t, err, "VALIDATION_FAILED")
}

func TestCreateAssetUnknownParent(t *testing.T) {
	svc, _, _ := newAssetFixture(t)

	_, err := svc.Create(context.Background(), 1, AssetCreateInput{
		Name:          "Rectifier",
		Type:          "power",
		ParentAssetID: ptr(int64(404)),
	})
	assertCode(t, err, "VALIDATION_FAILED")
}

func TestDeleteAssetWithChildrenConflicts(t *testing.T) {
	svc, _, _ := newAssetFixture(t)

	parent, err := svc.Create(context.Background(), 1, AssetCreateInput{Name: "Site", Type: "site"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 1, AssetCreateInput{
		Name:          "Cabinet",
		Type:          "cabinet",
		ParentAssetID: &parent.ID,
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), 1, parent.ID)
	assertCode(t, err, "CONFLICT")
}

func TestDeleteLeafAsset(t *testing.T) {
	svc, assets, _ := newAssetFixture(t)

	asset, err := svc.Create(context.Background(), 1, AssetCreateInput{Name: "Site", Type: "site"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 1, asset.ID))
	assert.Empty(t, assets.assets)
}
