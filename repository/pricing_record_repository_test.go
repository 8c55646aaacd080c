package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixitlab/buyback-api/models"
	"github.com/fixitlab/buyback-api/repository"
	testhelpers "github.com/fixitlab/buyback-api/testing"
	"github.com/fixitlab/buyback-api/utils"
)

func TestExistingKeys_SingleLookup(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := repository.NewPricingRecordRepository(db)
	ctx := context.Background()

	testhelpers.CreateTestPricingRecord(t, db, nil)
	testhelpers.CreateTestPricingRecord(t, db, func(r *models.PricingRecord) {
		r.Model = "iPhone SE 64GB"
		r.Network = models.NetworkCarrierLocked
	})

	existing, err := repo.ExistingKeys(ctx, []models.NaturalKey{
		{Model: "iPhone 13 Pro 256GB Unlocked", Network: models.NetworkUnlocked},
		{Model: "iPhone SE 64GB", Network: models.NetworkCarrierLocked},
		{Model: "iPhone 15 1TB Unlocked", Network: models.NetworkUnlocked},
	})
	require.NoError(t, err)
	assert.Len(t, existing, 2)
	_, ok := existing[models.NaturalKey{Model: "iPhone 15 1TB Unlocked", Network: models.NetworkUnlocked}.Key()]
	assert.False(t, ok)
}

func TestExistingKeys_EmptyInput(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := repository.NewPricingRecordRepository(db)

	existing, err := repo.ExistingKeys(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, existing)
}

func TestUpsertBatch_InsertThenUpdate(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := repository.NewPricingRecordRepository(db)
	ctx := context.Background()

	record := models.PricingRecord{
		Model:      "iPhone 14 128GB Unlocked",
		DeviceType: models.DeviceTypeIPhone,
		Network:    models.NetworkUnlocked,
		PriceA:     utils.ToPtr(500.0),
		IsActive:   utils.ToPtr(true),
	}
	require.NoError(t, repo.UpsertBatch(ctx, []models.PricingRecord{record}))

	record.PriceA = utils.ToPtr(480.0)
	require.NoError(t, repo.UpsertBatch(ctx, []models.PricingRecord{record}))

	var count int64
	require.NoError(t, db.Model(&models.PricingRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	stored, err := repo.ByNaturalKey(ctx, models.NaturalKey{Model: record.Model, Network: record.Network})
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotNil(t, stored.PriceA)
	assert.InDelta(t, 480.0, *stored.PriceA, 0.0001)
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := repository.NewPricingRecordRepository(db)
	txManager := repository.NewGormTxManager(db)
	ctx := context.Background()

	err := txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := repo.UpsertBatch(txCtx, []models.PricingRecord{{
			Model:      "iPhone 14 128GB Unlocked",
			DeviceType: models.DeviceTypeIPhone,
			Network:    models.NetworkUnlocked,
		}}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.PricingRecord{}).Count(&count).Error)
	assert.Zero(t, count)
}
