package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fixitlab/buyback-api/models"
)

type inventoryItemRepository struct {
	*BaseRepository[models.InventoryItem, models.InventoryItemFilter]
}

func NewInventoryItemRepository(db *gorm.DB) InventoryItemRepository {
	return &inventoryItemRepository{
		BaseRepository: NewBaseRepository[models.InventoryItem, models.InventoryItemFilter](db),
	}
}

func (r *inventoryItemRepository) ListAvailable(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := r.getDB(ctx).
		Where("is_available = ?", true).
		Order("category ASC, brand ASC, model_name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
