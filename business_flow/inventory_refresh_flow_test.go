package businessflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixitlab/buyback-api/app/dto"
	"github.com/fixitlab/buyback-api/inventory"
	"github.com/fixitlab/buyback-api/models"
	"github.com/fixitlab/buyback-api/repository"
	"github.com/fixitlab/buyback-api/utils"
)

type fakeInventoryRepo struct {
	repository.InventoryItemRepository

	items  []models.InventoryItem
	nextID uint
}

func (r *fakeInventoryRepo) ListAvailable(ctx context.Context) ([]models.InventoryItem, error) {
	var available []models.InventoryItem
	for _, item := range r.items {
		if utils.IsTrue(item.IsAvailable) {
			available = append(available, item)
		}
	}
	return available, nil
}

func (r *fakeInventoryRepo) Save(ctx context.Context, item *models.InventoryItem) error {
	r.nextID++
	item.ID = r.nextID
	r.items = append(r.items, *item)
	return nil
}

func (r *fakeInventoryRepo) Update(ctx context.Context, item *models.InventoryItem) error {
	for i := range r.items {
		if r.items[i].ID == item.ID {
			r.items[i] = *item
			return nil
		}
	}
	return errors.New("not found")
}

type fakeInventoryCache struct {
	snapshot []dto.InventoryItemView
	storeErr error
	loadErr  error
}

func (c *fakeInventoryCache) StoreSnapshot(ctx context.Context, items []dto.InventoryItemView) error {
	if c.storeErr != nil {
		return c.storeErr
	}
	c.snapshot = items
	return nil
}

func (c *fakeInventoryCache) LoadSnapshot(ctx context.Context) ([]dto.InventoryItemView, error) {
	if c.loadErr != nil {
		return nil, c.loadErr
	}
	return c.snapshot, nil
}

func newInventoryFlow(repo *fakeInventoryRepo, cache *fakeInventoryCache, logs *fakeSyncLogRepo) *InventoryRefreshFlow {
	return NewInventoryRefreshFlow(repo, logs, fakeTxManager{}, cache, inventory.DefaultDetector())
}

func TestInventoryRefresh_ParsesAndCaches(t *testing.T) {
	repo := &fakeInventoryRepo{}
	cache := &fakeInventoryCache{}
	logs := &fakeSyncLogRepo{}

	result := newInventoryFlow(repo, cache, logs).Execute(context.Background(), &dto.InventoryRefreshRequest{
		Listings: []dto.InventoryListing{
			{Description: "Apple iPhone 12 Mini 64GB Verizon", Price: utils.ToPtr(299.0), Quantity: 2},
			{Description: "Samsung Galaxy S21 128GB T-Mobile", Quantity: 0},
		},
	})

	assert.True(t, result.Success)
	assert.True(t, result.CacheUpdated)
	assert.Equal(t, 2, result.ItemsUpserted)

	// Only in-stock listings make the storefront snapshot.
	require.Len(t, cache.snapshot, 1)
	assert.Equal(t, "Apple", cache.snapshot[0].Brand)
	assert.Equal(t, "64GB", cache.snapshot[0].Storage)
	assert.Equal(t, "Verizon", cache.snapshot[0].Carrier)

	require.Len(t, logs.entries, 1)
	assert.Equal(t, models.SyncSourceInventoryScan, logs.entries[0].Source)
	assert.Equal(t, models.SyncStatusSuccess, logs.entries[0].Status)
}

func TestInventoryRefresh_RetiresPreviousStock(t *testing.T) {
	repo := &fakeInventoryRepo{}
	cache := &fakeInventoryCache{}
	logs := &fakeSyncLogRepo{}
	flow := newInventoryFlow(repo, cache, logs)

	flow.Execute(context.Background(), &dto.InventoryRefreshRequest{
		Listings: []dto.InventoryListing{{Description: "Apple iPhone 11 64GB Unlocked", Quantity: 1}},
	})
	flow.Execute(context.Background(), &dto.InventoryRefreshRequest{
		Listings: []dto.InventoryListing{{Description: "Apple iPhone 12 128GB Unlocked", Quantity: 1}},
	})

	available, err := repo.ListAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Apple iPhone 12 128GB Unlocked", available[0].RawDescription)
}

func TestInventoryRefresh_CacheFailureStillSucceeds(t *testing.T) {
	repo := &fakeInventoryRepo{}
	cache := &fakeInventoryCache{storeErr: errors.New("redis down")}
	logs := &fakeSyncLogRepo{}

	result := newInventoryFlow(repo, cache, logs).Execute(context.Background(), &dto.InventoryRefreshRequest{
		Listings: []dto.InventoryListing{{Description: "Apple iPhone 11 64GB Unlocked", Quantity: 1}},
	})

	assert.True(t, result.Success)
	assert.False(t, result.CacheUpdated)
}

func TestListStorefront_FallsBackToDatabase(t *testing.T) {
	repo := &fakeInventoryRepo{}
	cache := &fakeInventoryCache{loadErr: errors.New("redis down")}
	logs := &fakeSyncLogRepo{}
	flow := newInventoryFlow(repo, cache, logs)

	require.NoError(t, repo.Save(context.Background(), &models.InventoryItem{
		RawDescription: "Apple iPhone 11 64GB Unlocked",
		Quantity:       1,
		IsAvailable:    utils.ToPtr(true),
	}))

	views, err := flow.ListStorefront(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Apple iPhone 11 64GB Unlocked", views[0].Description)
}
