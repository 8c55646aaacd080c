package dto

// InventoryRefreshRequest submits the raw listing lines scanned from the
// shop's point of sale export.
type InventoryRefreshRequest struct {
	Listings []InventoryListing `json:"listings" validate:"required,min=1,max=5000,dive"`
}

// InventoryListing is one raw line with its stock state.
type InventoryListing struct {
	Description string   `json:"description" validate:"required,max=512"`
	Price       *float64 `json:"price" validate:"omitempty,min=0"`
	Quantity    int      `json:"quantity" validate:"min=0"`
}

// InventoryRefreshResult summarizes one refresh run.
type InventoryRefreshResult struct {
	Success       bool   `json:"success"`
	CorrelationID string `json:"correlation_id"`
	ItemsUpserted int    `json:"items_upserted"`
	ItemsTotal    int    `json:"items_total"`
	CacheUpdated  bool   `json:"cache_updated"`
	Duration      string `json:"duration"`
	Error         string `json:"error,omitempty"`
}

// InventoryItemView is one structured storefront listing.
type InventoryItemView struct {
	ID          uint     `json:"id"`
	Description string   `json:"description"`
	Category    string   `json:"category,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	ModelName   string   `json:"model_name,omitempty"`
	Storage     string   `json:"storage,omitempty"`
	Carrier     string   `json:"carrier,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Quantity    int      `json:"quantity"`
}
