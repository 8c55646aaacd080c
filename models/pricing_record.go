// Package models contains domain entities and business models for the buyback platform
package models

import (
	"time"
)

// Network lock status values. The wholesale sheet only distinguishes unlocked
// devices from carrier-locked ones; the specific carrier is not preserved.
const (
	NetworkUnlocked      = "Unlocked"
	NetworkCarrierLocked = "Carrier Locked"
)

// DeviceTypeIPhone is the device family ingested by the pricing sync pipeline.
const DeviceTypeIPhone = "iPhone"

// PricingRecord stores wholesale grade prices and derived customer-facing offer
// prices for one device configuration. The pair (model, network) is the natural
// key; every sync fully replaces the matched row. Rows are never deleted by the
// sync pipeline, even when the key disappears from a later sheet export.
type PricingRecord struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Model   string `gorm:"size:255;not null;uniqueIndex:idx_pricing_records_model_network" json:"model"`
	Network string `gorm:"size:32;not null;uniqueIndex:idx_pricing_records_model_network" json:"network"`

	DeviceType string  `gorm:"size:32;not null;default:'iPhone'" json:"device_type"`
	ModelName  *string `gorm:"size:128;index:idx_pricing_records_model_name" json:"model_name,omitempty"`
	Storage    *string `gorm:"size:16" json:"storage,omitempty"`
	Series     *string `gorm:"size:8;index:idx_pricing_records_series" json:"series,omitempty"`

	// Wholesale grade prices from the sheet. Nil means the sheet had no usable
	// price for that grade; values are never negative.
	PriceSwap *float64 `gorm:"type:numeric(10,2)" json:"price_swap,omitempty"`
	PriceA    *float64 `gorm:"type:numeric(10,2)" json:"price_a,omitempty"`
	PriceB    *float64 `gorm:"type:numeric(10,2)" json:"price_b,omitempty"`
	PriceC    *float64 `gorm:"type:numeric(10,2)" json:"price_c,omitempty"`
	PriceD    *float64 `gorm:"type:numeric(10,2)" json:"price_d,omitempty"`
	PriceDOA  *float64 `gorm:"type:numeric(10,2)" json:"price_doa,omitempty"`

	// Customer-facing offers derived from the grade prices by the margin policy.
	// A nil grade price always yields a nil offer.
	OfferSwap *float64 `gorm:"type:numeric(10,2)" json:"offer_swap,omitempty"`
	OfferA    *float64 `gorm:"type:numeric(10,2)" json:"offer_a,omitempty"`
	OfferB    *float64 `gorm:"type:numeric(10,2)" json:"offer_b,omitempty"`
	OfferC    *float64 `gorm:"type:numeric(10,2)" json:"offer_c,omitempty"`
	OfferD    *float64 `gorm:"type:numeric(10,2)" json:"offer_d,omitempty"`
	OfferDOA  *float64 `gorm:"type:numeric(10,2)" json:"offer_doa,omitempty"`

	OffersCalculatedAt *time.Time `json:"offers_calculated_at,omitempty"`
	LastUpdated        time.Time  `gorm:"not null" json:"last_updated"`
	IsActive           *bool      `gorm:"default:true;index:idx_pricing_records_is_active" json:"is_active"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (PricingRecord) TableName() string {
	return "pricing_records"
}

// PricingRecordFilter represents filter criteria for pricing record queries
type PricingRecordFilter struct {
	Model      *string
	Network    *string
	DeviceType *string
	Series     *string
	IsActive   *bool
}

// NaturalKey identifies a pricing record by its business key.
type NaturalKey struct {
	Model   string
	Network string
}

// Key flattens the pair into a map key.
func (k NaturalKey) Key() string {
	return k.Model + "|" + k.Network
}

// NaturalKey returns the record's business key.
func (p *PricingRecord) NaturalKey() NaturalKey {
	return NaturalKey{Model: p.Model, Network: p.Network}
}
