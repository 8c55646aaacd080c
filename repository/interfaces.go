package repository

import (
	"context"

	"github.com/fixitlab/buyback-api/models"
)

// PricingRecordRepository is the persistence surface for device pricing rows.
type PricingRecordRepository interface {
	Save(ctx context.Context, record *models.PricingRecord) error
	Update(ctx context.Context, record *models.PricingRecord) error
	ByID(ctx context.Context, id uint) (*models.PricingRecord, error)
	ByFilter(ctx context.Context, filter models.PricingRecordFilter, orderBy string, limit int, offset int) ([]models.PricingRecord, error)
	CountByFilter(ctx context.Context, filter models.PricingRecordFilter) (int64, error)
	ByNaturalKey(ctx context.Context, key models.NaturalKey) (*models.PricingRecord, error)
	ExistingKeys(ctx context.Context, keys []models.NaturalKey) (map[string]struct{}, error)
	UpsertBatch(ctx context.Context, records []models.PricingRecord) error
	ListAll(ctx context.Context) ([]models.PricingRecord, error)
}

// SyncLogRepository is the persistence surface for the append-only sync log.
type SyncLogRepository interface {
	Save(ctx context.Context, log *models.SyncLog) error
	ByFilter(ctx context.Context, filter models.SyncLogFilter, orderBy string, limit int, offset int) ([]models.SyncLog, error)
	CountByFilter(ctx context.Context, filter models.SyncLogFilter) (int64, error)
}

// AdminRepository is the persistence surface for admin accounts.
type AdminRepository interface {
	Save(ctx context.Context, admin *models.Admin) error
	Update(ctx context.Context, admin *models.Admin) error
	ByID(ctx context.Context, id uint) (*models.Admin, error)
	ByUsername(ctx context.Context, username string) (*models.Admin, error)
}

// InventoryItemRepository is the persistence surface for storefront inventory.
type InventoryItemRepository interface {
	Save(ctx context.Context, item *models.InventoryItem) error
	Update(ctx context.Context, item *models.InventoryItem) error
	ByFilter(ctx context.Context, filter models.InventoryItemFilter, orderBy string, limit int, offset int) ([]models.InventoryItem, error)
	ListAvailable(ctx context.Context) ([]models.InventoryItem, error)
}
