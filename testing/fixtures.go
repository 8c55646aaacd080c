package testing

import (
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fixitlab/buyback-api/models"
	"github.com/fixitlab/buyback-api/utils"
)

// CreateTestPricingRecord inserts a pricing record with sensible defaults,
// mutated by fn when given.
func CreateTestPricingRecord(t *testing.T, db *gorm.DB, fn func(*models.PricingRecord)) *models.PricingRecord {
	t.Helper()

	now := time.Now().UTC()
	record := &models.PricingRecord{
		Model:       "iPhone 13 Pro 256GB Unlocked",
		DeviceType:  models.DeviceTypeIPhone,
		ModelName:   utils.ToPtr("13 Pro"),
		Storage:     utils.ToPtr("256GB"),
		Network:     models.NetworkUnlocked,
		Series:      utils.ToPtr("13"),
		PriceA:      utils.ToPtr(520.0),
		OfferA:      utils.ToPtr(442.0),
		LastUpdated: now,
		IsActive:    utils.ToPtr(true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if fn != nil {
		fn(record)
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create pricing record fixture: %v", err)
	}
	return record
}

// CreateTestAdmin inserts an active admin with the given password.
func CreateTestAdmin(t *testing.T, db *gorm.DB, username, password string) *models.Admin {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash fixture password: %v", err)
	}
	now := time.Now().UTC()
	admin := &models.Admin{
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     utils.ToPtr(true),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("failed to create admin fixture: %v", err)
	}
	return admin
}

// CreateTestSyncLog inserts a sync log entry for the given source and status.
func CreateTestSyncLog(t *testing.T, db *gorm.DB, source, status string, seq int) *models.SyncLog {
	t.Helper()

	entry := &models.SyncLog{
		CorrelationID: fmt.Sprintf("00000000-0000-0000-0000-%012d", seq),
		Source:        source,
		Status:        status,
		CreatedAt:     time.Now().UTC(),
	}
	if status == models.SyncStatusFailed {
		entry.ErrorMessage = utils.ToPtr("fixture failure")
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create sync log fixture: %v", err)
	}
	return entry
}

// CreateTestInventoryItem inserts an available inventory item.
func CreateTestInventoryItem(t *testing.T, db *gorm.DB, description string) *models.InventoryItem {
	t.Helper()

	now := time.Now().UTC()
	item := &models.InventoryItem{
		RawDescription: description,
		Quantity:       1,
		IsAvailable:    utils.ToPtr(true),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create inventory item fixture: %v", err)
	}
	return item
}
