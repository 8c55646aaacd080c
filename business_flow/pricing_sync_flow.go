// Package businessflow implements the application's use cases on top of the
// repository layer. Flows own transaction boundaries and translate domain
// failures into BusinessError values for the handlers.
package businessflow

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/fixitlab/buyback-api/app/dto"
	"github.com/fixitlab/buyback-api/app/services"
	"github.com/fixitlab/buyback-api/models"
	"github.com/fixitlab/buyback-api/pricing"
	"github.com/fixitlab/buyback-api/repository"
	"github.com/fixitlab/buyback-api/utils"
)

// PricingSyncConfig carries the sheet coordinates and batching knobs.
type PricingSyncConfig struct {
	SheetID   string
	SheetName string
	BatchSize int
}

// PricingSyncFlow synchronizes the buyback price list from the published
// pricing sheet into the database.
type PricingSyncFlow struct {
	sheetClient services.SheetClient
	pricingRepo repository.PricingRecordRepository
	syncLogRepo repository.SyncLogRepository
	txManager   repository.TxManager
	rules       pricing.RuleSet
	policy      pricing.MarginPolicy
	config      PricingSyncConfig
}

func NewPricingSyncFlow(
	sheetClient services.SheetClient,
	pricingRepo repository.PricingRecordRepository,
	syncLogRepo repository.SyncLogRepository,
	txManager repository.TxManager,
	rules pricing.RuleSet,
	policy pricing.MarginPolicy,
	config PricingSyncConfig,
) *PricingSyncFlow {
	if config.BatchSize <= 0 {
		config.BatchSize = 50
	}
	return &PricingSyncFlow{
		sheetClient: sheetClient,
		pricingRepo: pricingRepo,
		syncLogRepo: syncLogRepo,
		txManager:   txManager,
		rules:       rules,
		policy:      policy,
		config:      config,
	}
}

// Execute runs one full sync. It always returns a result summary; a failed
// run carries the error message and whatever counts were persisted before
// the failure.
func (f *PricingSyncFlow) Execute(ctx context.Context) *dto.PricingSyncResult {
	startedAt := utils.UTCNow()
	result := &dto.PricingSyncResult{
		CorrelationID: uuid.New().String(),
		StartedAt:     startedAt,
	}

	finish := func() *dto.PricingSyncResult {
		result.Duration = time.Since(startedAt).String()
		return result
	}

	// A missing source configuration is an operator mistake, not a sync
	// attempt, so no log entry is written for it.
	if f.config.SheetID == "" || f.config.SheetName == "" {
		result.Error = ErrPricingSourceNotConfigured.Error()
		return finish()
	}

	raw, err := f.sheetClient.FetchSheet(ctx, f.config.SheetID, f.config.SheetName)
	if err != nil {
		result.Error = fmt.Sprintf("%v: %v", ErrPricingSheetFetchFailed, err)
		f.writeSyncLog(ctx, result)
		return finish()
	}

	rows := pricing.ParseDelimited(raw)
	result.RowsTotal = len(rows)

	records := f.buildRecords(rows, &result.RowsSkipped)

	keys := make([]models.NaturalKey, 0, len(records))
	for _, record := range records {
		keys = append(keys, models.NaturalKey{Model: record.Model, Network: record.Network})
	}

	existing, err := f.pricingRepo.ExistingKeys(ctx, keys)
	if err != nil {
		result.Error = fmt.Sprintf("%v: %v", ErrDatabaseError, err)
		f.writeSyncLog(ctx, result)
		return finish()
	}

	for start := 0; start < len(records); start += f.config.BatchSize {
		end := start + f.config.BatchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		err := f.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			return f.pricingRepo.UpsertBatch(txCtx, batch)
		})
		if err != nil {
			// Earlier batches are committed and their counts stand.
			result.Error = fmt.Sprintf("batch starting at record %d failed: %v", start, err)
			f.writeSyncLog(ctx, result)
			return finish()
		}

		for _, record := range batch {
			key := models.NaturalKey{Model: record.Model, Network: record.Network}.Key()
			if _, ok := existing[key]; ok {
				result.RecordsUpdated++
			} else {
				result.RecordsAdded++
			}
		}
	}

	result.Success = true
	f.writeSyncLog(ctx, result)
	return finish()
}

// buildRecords classifies and normalizes the sheet rows. Rows the rule set
// rejects are counted as skipped. When a natural key repeats in one sheet the
// last row wins and the superseded occurrence counts as skipped, so
// added + updated + skipped always equals the row total.
func (f *PricingSyncFlow) buildRecords(rows [][]string, skipped *int) []models.PricingRecord {
	byKey := make(map[string]int)
	var records []models.PricingRecord
	now := utils.UTCNow()

	for _, row := range rows {
		fields, ok := f.rules.Classify(row)
		if !ok {
			*skipped++
			continue
		}

		prices := pricing.GradePrices{}
		for i, grade := range pricing.Grades {
			col := pricing.ColFirstPrice + i
			if col < len(row) {
				prices.Set(grade, pricing.ParsePrice(row[col]))
			}
		}
		offers := pricing.ComputeOffers(prices, fields.Series, f.policy)

		record := models.PricingRecord{
			Model:       fields.Model,
			DeviceType:  models.DeviceTypeIPhone,
			ModelName:   utils.ToPtr(fields.ModelName),
			Storage:     utils.ToPtr(fields.Storage),
			Network:     fields.Network,
			Series:      fields.Series,
			PriceSwap:   prices.Swap,
			PriceA:      prices.A,
			PriceB:      prices.B,
			PriceC:      prices.C,
			PriceD:      prices.D,
			PriceDOA:    prices.DOA,
			OfferSwap:   offers.Swap,
			OfferA:      offers.A,
			OfferB:      offers.B,
			OfferC:      offers.C,
			OfferD:      offers.D,
			OfferDOA:    offers.DOA,
			LastUpdated: now,
			IsActive:    utils.ToPtr(true),
		}
		record.OffersCalculatedAt = utils.ToPtr(now)

		key := models.NaturalKey{Model: record.Model, Network: record.Network}.Key()
		if idx, seen := byKey[key]; seen {
			records[idx] = record
			*skipped++
			continue
		}
		byKey[key] = len(records)
		records = append(records, record)
	}
	return records
}

// writeSyncLog appends the run outcome to the sync log. The log is advisory,
// so write failures never change the run result.
func (f *PricingSyncFlow) writeSyncLog(ctx context.Context, result *dto.PricingSyncResult) {
	entry := &models.SyncLog{
		CorrelationID:  result.CorrelationID,
		Source:         models.SyncSourcePricingSheet,
		RecordsAdded:   result.RecordsAdded,
		RecordsUpdated: result.RecordsUpdated,
		Status:         models.SyncStatusSuccess,
		CreatedAt:      utils.UTCNow(),
	}
	if result.Error != "" {
		entry.Status = models.SyncStatusFailed
		entry.ErrorMessage = utils.ToPtr(result.Error)
	}
	if err := f.syncLogRepo.Save(ctx, entry); err != nil {
		log.Printf("failed to write sync log entry (correlation_id=%s): %v", result.CorrelationID, err)
	}
}
