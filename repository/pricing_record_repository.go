package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fixitlab/buyback-api/models"
)

type pricingRecordRepository struct {
	*BaseRepository[models.PricingRecord, models.PricingRecordFilter]
}

func NewPricingRecordRepository(db *gorm.DB) PricingRecordRepository {
	return &pricingRecordRepository{
		BaseRepository: NewBaseRepository[models.PricingRecord, models.PricingRecordFilter](db),
	}
}

func (r *pricingRecordRepository) ByNaturalKey(ctx context.Context, key models.NaturalKey) (*models.PricingRecord, error) {
	var record models.PricingRecord
	err := r.getDB(ctx).
		Where("model = ? AND network = ?", key.Model, key.Network).
		First(&record).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ExistingKeys returns which of the given natural keys already have a row,
// using a single query over the key set.
func (r *pricingRecordRepository) ExistingKeys(ctx context.Context, keys []models.NaturalKey) (map[string]struct{}, error) {
	existing := make(map[string]struct{}, len(keys))
	if len(keys) == 0 {
		return existing, nil
	}

	tuples := make([][]interface{}, 0, len(keys))
	for _, key := range keys {
		tuples = append(tuples, []interface{}{key.Model, key.Network})
	}

	var rows []models.PricingRecord
	err := r.getDB(ctx).
		Select("model", "network").
		Where("(model, network) IN ?", tuples).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		existing[models.NaturalKey{Model: row.Model, Network: row.Network}.Key()] = struct{}{}
	}
	return existing, nil
}

// UpsertBatch inserts the records in one statement, updating all columns on
// (model, network) conflicts.
func (r *pricingRecordRepository) UpsertBatch(ctx context.Context, records []models.PricingRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.getDB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "model"}, {Name: "network"}},
			UpdateAll: true,
		}).
		Create(&records).Error
}

func (r *pricingRecordRepository) ListAll(ctx context.Context) ([]models.PricingRecord, error) {
	var records []models.PricingRecord
	err := r.getDB(ctx).Order("model ASC, network ASC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
