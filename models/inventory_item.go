package models

import (
	"time"
)

// InventoryItem is one listing from the shop's inventory sheet. RawDescription
// is the free-text line as entered; the structured attribute columns are filled
// in by the inventory refresh pipeline and may be empty when detection failed.
type InventoryItem struct {
	ID             uint     `gorm:"primaryKey" json:"id"`
	RawDescription string   `gorm:"type:text;not null" json:"raw_description"`
	Category       string   `gorm:"size:32;index:idx_inventory_items_category" json:"category"`
	Brand          string   `gorm:"size:64;index:idx_inventory_items_brand" json:"brand"`
	ModelName      string   `gorm:"size:128" json:"model_name"`
	Storage        string   `gorm:"size:16" json:"storage"`
	Carrier        string   `gorm:"size:32" json:"carrier"`
	Price          *float64 `gorm:"type:numeric(10,2)" json:"price,omitempty"`
	Quantity       int      `gorm:"not null;default:1" json:"quantity"`
	IsAvailable    *bool    `gorm:"default:true;index:idx_inventory_items_is_available" json:"is_available"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

// InventoryItemFilter represents filter criteria for inventory queries
type InventoryItemFilter struct {
	Category    *string
	Brand       *string
	IsAvailable *bool
}
