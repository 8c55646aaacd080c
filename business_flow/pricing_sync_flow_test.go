package businessflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixitlab/buyback-api/models"
	"github.com/fixitlab/buyback-api/pricing"
	"github.com/fixitlab/buyback-api/repository"
)

type fakeSheetClient struct {
	payload string
	err     error
	calls   int
}

func (c *fakeSheetClient) FetchSheet(ctx context.Context, sheetID, sheetName string) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return c.payload, nil
}

// fakePricingRepo persists records in memory keyed by natural key and can be
// told to fail from the Nth upsert call onward.
type fakePricingRepo struct {
	repository.PricingRecordRepository

	store        map[string]models.PricingRecord
	upsertCalls  int
	failFromCall int
}

func newFakePricingRepo() *fakePricingRepo {
	return &fakePricingRepo{store: make(map[string]models.PricingRecord)}
}

func (r *fakePricingRepo) ExistingKeys(ctx context.Context, keys []models.NaturalKey) (map[string]struct{}, error) {
	existing := make(map[string]struct{})
	for _, key := range keys {
		if _, ok := r.store[key.Key()]; ok {
			existing[key.Key()] = struct{}{}
		}
	}
	return existing, nil
}

func (r *fakePricingRepo) UpsertBatch(ctx context.Context, records []models.PricingRecord) error {
	r.upsertCalls++
	if r.failFromCall > 0 && r.upsertCalls >= r.failFromCall {
		return errors.New("connection reset")
	}
	for _, record := range records {
		r.store[models.NaturalKey{Model: record.Model, Network: record.Network}.Key()] = record
	}
	return nil
}

type fakeSyncLogRepo struct {
	repository.SyncLogRepository

	entries []models.SyncLog
	err     error
}

func (r *fakeSyncLogRepo) Save(ctx context.Context, entry *models.SyncLog) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, *entry)
	return nil
}

// fakeTxManager runs the function directly; transactional behavior is
// covered by the repository integration tests.
type fakeTxManager struct{}

func (fakeTxManager) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func newTestFlow(client *fakeSheetClient, repo *fakePricingRepo, logs *fakeSyncLogRepo, batchSize int) *PricingSyncFlow {
	return NewPricingSyncFlow(
		client, repo, logs, fakeTxManager{},
		pricing.DefaultRules(), pricing.DefaultMarginPolicy(),
		PricingSyncConfig{SheetID: "sheet-id", SheetName: "Prices", BatchSize: batchSize},
	)
}

func sheetWithDevices(n int) string {
	var b strings.Builder
	b.WriteString("1,Model,Swap,A,B,C,D,DOA\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%d,iPhone 1%d Variant%d 128GB Unlocked,600,520,440,360,200,80\n", i+2, 2+i%4, i)
	}
	return b.String()
}

func TestPricingSync_AddsAndSkips(t *testing.T) {
	client := &fakeSheetClient{payload: "1,Model,Swap,A,B,C,D,DOA\n" +
		"2,iPhone 13 Pro 256GB Unlocked,$600,520,440,360,200,80\n" +
		"3,Cracked screens not accepted,,,,,,\n" +
		"4,iPhone SE 64GB,300,260,220,180,100,40\n"}
	repo := newFakePricingRepo()
	logs := &fakeSyncLogRepo{}

	result := newTestFlow(client, repo, logs, 50).Execute(context.Background())

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.RecordsAdded)
	assert.Equal(t, 0, result.RecordsUpdated)
	assert.Equal(t, 2, result.RowsSkipped)
	assert.Equal(t, 4, result.RowsTotal)
	assert.NotEmpty(t, result.CorrelationID)
	assert.NotEmpty(t, result.Duration)

	record, ok := repo.store[models.NaturalKey{Model: "iPhone 13 Pro 256GB Unlocked", Network: models.NetworkUnlocked}.Key()]
	require.True(t, ok)
	require.NotNil(t, record.PriceSwap)
	assert.InDelta(t, 600, *record.PriceSwap, 0.0001)
	require.NotNil(t, record.OfferA)
	assert.InDelta(t, 520*0.85, *record.OfferA, 0.0001)

	require.Len(t, logs.entries, 1)
	assert.Equal(t, models.SyncStatusSuccess, logs.entries[0].Status)
	assert.Equal(t, models.SyncSourcePricingSheet, logs.entries[0].Source)
}

func TestPricingSync_RunTwiceIsIdempotent(t *testing.T) {
	repo := newFakePricingRepo()
	logs := &fakeSyncLogRepo{}
	client := &fakeSheetClient{payload: sheetWithDevices(10)}

	first := newTestFlow(client, repo, logs, 50).Execute(context.Background())
	second := newTestFlow(client, repo, logs, 50).Execute(context.Background())

	assert.Equal(t, 10, first.RecordsAdded)
	assert.Equal(t, 0, first.RecordsUpdated)
	assert.Equal(t, 0, second.RecordsAdded)
	assert.Equal(t, 10, second.RecordsUpdated)
	assert.Len(t, repo.store, 10)
}

func TestPricingSync_CountsPartitionRows(t *testing.T) {
	repo := newFakePricingRepo()
	logs := &fakeSyncLogRepo{}
	client := &fakeSheetClient{payload: sheetWithDevices(30)}

	result := newTestFlow(client, repo, logs, 50).Execute(context.Background())

	require.True(t, result.Success)
	classified := result.RecordsAdded + result.RecordsUpdated
	assert.Equal(t, result.RowsTotal, classified+result.RowsSkipped)
}

func TestPricingSync_BatchFailurePreservesEarlierBatches(t *testing.T) {
	repo := newFakePricingRepo()
	repo.failFromCall = 3
	logs := &fakeSyncLogRepo{}
	client := &fakeSheetClient{payload: sheetWithDevices(120)}

	result := newTestFlow(client, repo, logs, 50).Execute(context.Background())

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "batch starting at record 100")
	assert.Equal(t, 100, result.RecordsAdded)
	assert.Len(t, repo.store, 100)

	require.Len(t, logs.entries, 1)
	assert.Equal(t, models.SyncStatusFailed, logs.entries[0].Status)
	require.NotNil(t, logs.entries[0].ErrorMessage)
	assert.Contains(t, *logs.entries[0].ErrorMessage, "connection reset")
	assert.Equal(t, 100, logs.entries[0].RecordsAdded)
}

func TestPricingSync_MissingConfigWritesNoLog(t *testing.T) {
	repo := newFakePricingRepo()
	logs := &fakeSyncLogRepo{}
	client := &fakeSheetClient{payload: sheetWithDevices(1)}

	flow := NewPricingSyncFlow(
		client, repo, logs, fakeTxManager{},
		pricing.DefaultRules(), pricing.DefaultMarginPolicy(),
		PricingSyncConfig{SheetID: "", SheetName: "Prices", BatchSize: 50},
	)
	result := flow.Execute(context.Background())

	assert.False(t, result.Success)
	assert.Equal(t, ErrPricingSourceNotConfigured.Error(), result.Error)
	assert.Zero(t, client.calls)
	assert.Empty(t, logs.entries)
}

func TestPricingSync_FetchFailureWritesFailedLog(t *testing.T) {
	repo := newFakePricingRepo()
	logs := &fakeSyncLogRepo{}
	client := &fakeSheetClient{err: errors.New("status 503")}

	result := newTestFlow(client, repo, logs, 50).Execute(context.Background())

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "status 503")
	require.Len(t, logs.entries, 1)
	assert.Equal(t, models.SyncStatusFailed, logs.entries[0].Status)
}

func TestPricingSync_LogWriteFailureIsSwallowed(t *testing.T) {
	repo := newFakePricingRepo()
	logs := &fakeSyncLogRepo{err: errors.New("log table gone")}
	client := &fakeSheetClient{payload: sheetWithDevices(3)}

	result := newTestFlow(client, repo, logs, 50).Execute(context.Background())

	assert.True(t, result.Success)
	assert.Equal(t, 3, result.RecordsAdded)
}

func TestPricingSync_LastDuplicateKeyWins(t *testing.T) {
	repo := newFakePricingRepo()
	logs := &fakeSyncLogRepo{}
	client := &fakeSheetClient{payload: "1,Model,Swap,A,B,C,D,DOA\n" +
		"2,iPhone 12 64GB Unlocked,500,450,400,350,300,100\n" +
		"3,iPhone 12 64GB Unlocked,510,460,410,360,310,110\n"}

	result := newTestFlow(client, repo, logs, 50).Execute(context.Background())

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.RecordsAdded)
	assert.Equal(t, 2, result.RowsSkipped)
	assert.Equal(t, result.RowsTotal, result.RecordsAdded+result.RecordsUpdated+result.RowsSkipped)

	record := repo.store[models.NaturalKey{Model: "iPhone 12 64GB Unlocked", Network: models.NetworkUnlocked}.Key()]
	require.NotNil(t, record.PriceSwap)
	assert.InDelta(t, 510, *record.PriceSwap, 0.0001)
}
