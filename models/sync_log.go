package models

import (
	"time"
)

// Sync log status values
const (
	SyncStatusSuccess = "success"
	SyncStatusFailed  = "failed"
)

// Sync source tags. Each tag identifies the trigger type of a run.
const (
	SyncSourcePricingSheet  = "pricing_sheet"
	SyncSourceInventoryScan = "inventory_scan"
)

// SyncLog is the append-only audit trail of ingestion runs. Exactly one entry
// is written per pipeline invocation, after the batch completes or when the
// pipeline fails. Entries are never updated.
type SyncLog struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CorrelationID  string    `gorm:"size:64;index:idx_sync_log_correlation_id" json:"correlation_id"`
	Source         string    `gorm:"size:64;not null;index:idx_sync_log_source" json:"source"`
	RecordsAdded   int       `gorm:"not null;default:0" json:"records_added"`
	RecordsUpdated int       `gorm:"not null;default:0" json:"records_updated"`
	Status         string    `gorm:"size:16;not null;index:idx_sync_log_status" json:"status"`
	ErrorMessage   *string   `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP;index:idx_sync_log_created_at" json:"created_at"`
}

func (SyncLog) TableName() string {
	return "pricing_sync_log"
}

// SyncLogFilter represents filter criteria for sync log queries
type SyncLogFilter struct {
	Source        *string
	Status        *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

func (s *SyncLog) IsFailed() bool {
	return s.Status == SyncStatusFailed
}
