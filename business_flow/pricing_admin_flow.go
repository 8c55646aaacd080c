package businessflow

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fixitlab/buyback-api/app/dto"
	"github.com/fixitlab/buyback-api/models"
	"github.com/fixitlab/buyback-api/pricing"
	"github.com/fixitlab/buyback-api/repository"
	"github.com/fixitlab/buyback-api/utils"
)

// PricingAdminFlow serves the admin-facing price list operations.
type PricingAdminFlow struct {
	pricingRepo repository.PricingRecordRepository
	syncLogRepo repository.SyncLogRepository
	txManager   repository.TxManager
	policy      pricing.MarginPolicy
}

func NewPricingAdminFlow(
	pricingRepo repository.PricingRecordRepository,
	syncLogRepo repository.SyncLogRepository,
	txManager repository.TxManager,
	policy pricing.MarginPolicy,
) *PricingAdminFlow {
	return &PricingAdminFlow{
		pricingRepo: pricingRepo,
		syncLogRepo: syncLogRepo,
		txManager:   txManager,
		policy:      policy,
	}
}

func (f *PricingAdminFlow) ListRecords(ctx context.Context, req *dto.ListPricingRecordsRequest) (*dto.PaginatedResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 50
	}

	filter := models.PricingRecordFilter{}
	if req.Network != "" {
		filter.Network = utils.ToPtr(req.Network)
	}
	if req.DeviceType != "" {
		filter.DeviceType = utils.ToPtr(req.DeviceType)
	}

	records, err := f.pricingRepo.ByFilter(ctx, filter, "model ASC, network ASC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("DATABASE_ERROR", "failed to list pricing records", err)
	}

	// Search is a substring match over the descriptive model string. The
	// table stays small enough that filtering in memory beats maintaining a
	// trigram index.
	if req.Search != "" {
		needle := strings.ToLower(req.Search)
		filtered := records[:0]
		for _, record := range records {
			if strings.Contains(strings.ToLower(record.Model), needle) {
				filtered = append(filtered, record)
			}
		}
		records = filtered
	}

	total := int64(len(records))
	start := (page - 1) * pageSize
	if start > len(records) {
		start = len(records)
	}
	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}

	items := make([]dto.PricingRecordItem, 0, end-start)
	for _, record := range records[start:end] {
		items = append(items, toPricingRecordItem(record))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &dto.PaginatedResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (f *PricingAdminFlow) GetRecord(ctx context.Context, id uint) (*dto.PricingRecordItem, error) {
	record, err := f.pricingRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("DATABASE_ERROR", "failed to load pricing record", err)
	}
	if record == nil {
		return nil, NewBusinessError("RECORD_NOT_FOUND", "pricing record not found", ErrPricingRecordNotFound)
	}
	item := toPricingRecordItem(*record)
	return &item, nil
}

// UpdateRecord applies an admin manual override. Any touched wholesale price
// triggers a full offer recompute so the published offers never drift from
// the margin policy.
func (f *PricingAdminFlow) UpdateRecord(ctx context.Context, id uint, req *dto.UpdatePricingRecordRequest) (*dto.PricingRecordItem, error) {
	var updated *models.PricingRecord

	err := f.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		record, err := f.pricingRepo.ByID(txCtx, id)
		if err != nil {
			return NewBusinessError("DATABASE_ERROR", "failed to load pricing record", err)
		}
		if record == nil {
			return NewBusinessError("RECORD_NOT_FOUND", "pricing record not found", ErrPricingRecordNotFound)
		}

		pricesChanged := false
		applyPrice := func(dst **float64, src *float64) {
			if src != nil {
				*dst = src
				pricesChanged = true
			}
		}
		applyPrice(&record.PriceSwap, req.PriceSwap)
		applyPrice(&record.PriceA, req.PriceA)
		applyPrice(&record.PriceB, req.PriceB)
		applyPrice(&record.PriceC, req.PriceC)
		applyPrice(&record.PriceD, req.PriceD)
		applyPrice(&record.PriceDOA, req.PriceDOA)

		if req.IsActive != nil {
			record.IsActive = req.IsActive
		}

		now := utils.UTCNow()
		if pricesChanged {
			offers := pricing.ComputeOffers(pricing.GradePrices{
				Swap: record.PriceSwap,
				A:    record.PriceA,
				B:    record.PriceB,
				C:    record.PriceC,
				D:    record.PriceD,
				DOA:  record.PriceDOA,
			}, record.Series, f.policy)
			record.OfferSwap = offers.Swap
			record.OfferA = offers.A
			record.OfferB = offers.B
			record.OfferC = offers.C
			record.OfferD = offers.D
			record.OfferDOA = offers.DOA
			record.OffersCalculatedAt = utils.ToPtr(now)
		}
		record.LastUpdated = now

		if err := f.pricingRepo.Update(txCtx, record); err != nil {
			return NewBusinessError("DATABASE_ERROR", "failed to update pricing record", err)
		}
		updated = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	item := toPricingRecordItem(*updated)
	return &item, nil
}

// ExportRecords renders the full price list as an XLSX workbook.
func (f *PricingAdminFlow) ExportRecords(ctx context.Context) (*bytes.Buffer, error) {
	records, err := f.pricingRepo.ListAll(ctx)
	if err != nil {
		return nil, NewBusinessError("DATABASE_ERROR", "failed to list pricing records", err)
	}

	xl := excelize.NewFile()
	defer xl.Close()

	const sheet = "Price List"
	index, err := xl.NewSheet(sheet)
	if err != nil {
		return nil, NewBusinessError("EXPORT_FAILED", "failed to create export sheet", err)
	}
	xl.SetActiveSheet(index)
	xl.DeleteSheet("Sheet1")

	headers := []interface{}{
		"Model", "Network", "Model Name", "Storage", "Series",
		"Price Swap", "Price A", "Price B", "Price C", "Price D", "Price DOA",
		"Offer Swap", "Offer A", "Offer B", "Offer C", "Offer D", "Offer DOA",
		"Last Updated", "Active",
	}
	if err := xl.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, NewBusinessError("EXPORT_FAILED", "failed to write export header", err)
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, NewBusinessError("EXPORT_FAILED", "failed to address export row", err)
		}
		row := []interface{}{
			record.Model,
			record.Network,
			utils.Deref(record.ModelName, ""),
			utils.Deref(record.Storage, ""),
			utils.Deref(record.Series, ""),
			exportPrice(record.PriceSwap), exportPrice(record.PriceA), exportPrice(record.PriceB),
			exportPrice(record.PriceC), exportPrice(record.PriceD), exportPrice(record.PriceDOA),
			exportPrice(record.OfferSwap), exportPrice(record.OfferA), exportPrice(record.OfferB),
			exportPrice(record.OfferC), exportPrice(record.OfferD), exportPrice(record.OfferDOA),
			record.LastUpdated.Format("2006-01-02 15:04:05"),
			utils.IsTrue(record.IsActive),
		}
		if err := xl.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, NewBusinessError("EXPORT_FAILED", fmt.Sprintf("failed to write export row %d", i+2), err)
		}
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return nil, NewBusinessError("EXPORT_FAILED", "failed to serialize export", err)
	}
	return buf, nil
}

func (f *PricingAdminFlow) ListSyncLogs(ctx context.Context, req *dto.ListSyncLogsRequest) (*dto.PaginatedResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 50
	}

	filter := models.SyncLogFilter{}
	if req.Source != "" {
		filter.Source = utils.ToPtr(req.Source)
	}
	if req.Status != "" {
		filter.Status = utils.ToPtr(req.Status)
	}

	total, err := f.syncLogRepo.CountByFilter(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("DATABASE_ERROR", "failed to count sync logs", err)
	}

	logs, err := f.syncLogRepo.ByFilter(ctx, filter, "created_at DESC", pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewBusinessError("DATABASE_ERROR", "failed to list sync logs", err)
	}

	items := make([]dto.SyncLogItem, 0, len(logs))
	for _, entry := range logs {
		items = append(items, dto.SyncLogItem{
			ID:             entry.ID,
			CorrelationID:  entry.CorrelationID,
			Source:         entry.Source,
			RecordsAdded:   entry.RecordsAdded,
			RecordsUpdated: entry.RecordsUpdated,
			Status:         entry.Status,
			ErrorMessage:   entry.ErrorMessage,
			CreatedAt:      entry.CreatedAt,
		})
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &dto.PaginatedResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func toPricingRecordItem(record models.PricingRecord) dto.PricingRecordItem {
	return dto.PricingRecordItem{
		ID:                 record.ID,
		Model:              record.Model,
		DeviceType:         record.DeviceType,
		ModelName:          record.ModelName,
		Storage:            record.Storage,
		Network:            record.Network,
		Series:             record.Series,
		PriceSwap:          record.PriceSwap,
		PriceA:             record.PriceA,
		PriceB:             record.PriceB,
		PriceC:             record.PriceC,
		PriceD:             record.PriceD,
		PriceDOA:           record.PriceDOA,
		OfferSwap:          record.OfferSwap,
		OfferA:             record.OfferA,
		OfferB:             record.OfferB,
		OfferC:             record.OfferC,
		OfferD:             record.OfferD,
		OfferDOA:           record.OfferDOA,
		OffersCalculatedAt: record.OffersCalculatedAt,
		LastUpdated:        record.LastUpdated,
		IsActive:           utils.IsTrue(record.IsActive),
	}
}

func exportPrice(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
