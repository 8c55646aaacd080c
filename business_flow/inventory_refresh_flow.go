package businessflow

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/fixitlab/buyback-api/app/dto"
	"github.com/fixitlab/buyback-api/app/services"
	"github.com/fixitlab/buyback-api/inventory"
	"github.com/fixitlab/buyback-api/models"
	"github.com/fixitlab/buyback-api/repository"
	"github.com/fixitlab/buyback-api/utils"
)

// InventoryRefreshFlow rebuilds the storefront inventory from a point of
// sale export and materializes the snapshot into the cache.
type InventoryRefreshFlow struct {
	inventoryRepo repository.InventoryItemRepository
	syncLogRepo   repository.SyncLogRepository
	txManager     repository.TxManager
	cache         services.InventoryCache
	detector      inventory.Detector
}

func NewInventoryRefreshFlow(
	inventoryRepo repository.InventoryItemRepository,
	syncLogRepo repository.SyncLogRepository,
	txManager repository.TxManager,
	cache services.InventoryCache,
	detector inventory.Detector,
) *InventoryRefreshFlow {
	return &InventoryRefreshFlow{
		inventoryRepo: inventoryRepo,
		syncLogRepo:   syncLogRepo,
		txManager:     txManager,
		cache:         cache,
		detector:      detector,
	}
}

// Execute replaces the available inventory with the submitted listings. The
// cache write is best-effort: a refresh that persisted but failed to cache
// still reports success with CacheUpdated false.
func (f *InventoryRefreshFlow) Execute(ctx context.Context, req *dto.InventoryRefreshRequest) *dto.InventoryRefreshResult {
	startedAt := utils.UTCNow()
	result := &dto.InventoryRefreshResult{
		CorrelationID: uuid.New().String(),
		ItemsTotal:    len(req.Listings),
	}

	finish := func() *dto.InventoryRefreshResult {
		result.Duration = time.Since(startedAt).String()
		return result
	}

	var views []dto.InventoryItemView

	err := f.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		// Previous stock is marked unavailable rather than deleted so sold
		// items keep their history.
		existing, err := f.inventoryRepo.ListAvailable(txCtx)
		if err != nil {
			return fmt.Errorf("failed to load current inventory: %w", err)
		}
		for i := range existing {
			existing[i].IsAvailable = utils.ToPtr(false)
			if err := f.inventoryRepo.Update(txCtx, &existing[i]); err != nil {
				return fmt.Errorf("failed to retire inventory item %d: %w", existing[i].ID, err)
			}
		}

		now := utils.UTCNow()
		for _, listing := range req.Listings {
			attrs := f.detector.Parse(listing.Description)
			item := models.InventoryItem{
				RawDescription: listing.Description,
				Category:       attrs.Category,
				Brand:          attrs.Brand,
				ModelName:      attrs.ModelName,
				Storage:        attrs.Storage,
				Carrier:        attrs.Carrier,
				Price:          listing.Price,
				Quantity:       listing.Quantity,
				IsAvailable:    utils.ToPtr(listing.Quantity > 0),
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if err := f.inventoryRepo.Save(txCtx, &item); err != nil {
				return fmt.Errorf("failed to save inventory item: %w", err)
			}
			result.ItemsUpserted++
			if utils.IsTrue(item.IsAvailable) {
				views = append(views, dto.InventoryItemView{
					ID:          item.ID,
					Description: item.RawDescription,
					Category:    item.Category,
					Brand:       item.Brand,
					ModelName:   item.ModelName,
					Storage:     item.Storage,
					Carrier:     item.Carrier,
					Price:       item.Price,
					Quantity:    item.Quantity,
				})
			}
		}
		return nil
	})
	if err != nil {
		result.ItemsUpserted = 0
		result.Error = err.Error()
		f.writeSyncLog(ctx, result)
		return finish()
	}

	if err := f.cache.StoreSnapshot(ctx, views); err != nil {
		log.Printf("failed to cache inventory snapshot (correlation_id=%s): %v", result.CorrelationID, err)
	} else {
		result.CacheUpdated = true
	}

	result.Success = true
	f.writeSyncLog(ctx, result)
	return finish()
}

// ListStorefront serves the public inventory listing from the cache,
// falling back to the database when the snapshot is missing.
func (f *InventoryRefreshFlow) ListStorefront(ctx context.Context) ([]dto.InventoryItemView, error) {
	views, err := f.cache.LoadSnapshot(ctx)
	if err != nil {
		log.Printf("failed to load inventory snapshot, falling back to database: %v", err)
	}
	if views != nil {
		return views, nil
	}

	items, err := f.inventoryRepo.ListAvailable(ctx)
	if err != nil {
		return nil, NewBusinessError("DATABASE_ERROR", "failed to list inventory", err)
	}
	views = make([]dto.InventoryItemView, 0, len(items))
	for _, item := range items {
		views = append(views, dto.InventoryItemView{
			ID:          item.ID,
			Description: item.RawDescription,
			Category:    item.Category,
			Brand:       item.Brand,
			ModelName:   item.ModelName,
			Storage:     item.Storage,
			Carrier:     item.Carrier,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}
	return views, nil
}

func (f *InventoryRefreshFlow) writeSyncLog(ctx context.Context, result *dto.InventoryRefreshResult) {
	entry := &models.SyncLog{
		CorrelationID: result.CorrelationID,
		Source:        models.SyncSourceInventoryScan,
		RecordsAdded:  result.ItemsUpserted,
		Status:        models.SyncStatusSuccess,
		CreatedAt:     utils.UTCNow(),
	}
	if result.Error != "" {
		entry.Status = models.SyncStatusFailed
		entry.ErrorMessage = utils.ToPtr(result.Error)
	}
	if err := f.syncLogRepo.Save(ctx, entry); err != nil {
		log.Printf("failed to write sync log entry (correlation_id=%s): %v", result.CorrelationID, err)
	}
}
