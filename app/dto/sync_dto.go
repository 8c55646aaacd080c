package dto

import "time"

// PricingSyncResult summarizes one run of the pricing sheet sync. It is
// always returned, including for failed runs, so the caller sees partial
// progress counts.
type PricingSyncResult struct {
	Success        bool      `json:"success"`
	CorrelationID  string    `json:"correlation_id"`
	RecordsAdded   int       `json:"records_added"`
	RecordsUpdated int       `json:"records_updated"`
	RowsSkipped    int       `json:"rows_skipped"`
	RowsTotal      int       `json:"rows_total"`
	StartedAt      time.Time `json:"started_at"`
	Duration       string    `json:"duration"`
	Error          string    `json:"error,omitempty"`
}

// SyncLogItem is one row of the sync history listing.
type SyncLogItem struct {
	ID             uint      `json:"id"`
	CorrelationID  string    `json:"correlation_id"`
	Source         string    `json:"source"`
	RecordsAdded   int       `json:"records_added"`
	RecordsUpdated int       `json:"records_updated"`
	Status         string    `json:"status"`
	ErrorMessage   *string   `json:"error_message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ListSyncLogsRequest filters the sync history listing.
type ListSyncLogsRequest struct {
	Source   string `query:"source" validate:"omitempty,oneof=pricing_sheet inventory_scan"`
	Status   string `query:"status" validate:"omitempty,oneof=success failed"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=200"`
}
