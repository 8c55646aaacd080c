package dto

import "time"

// PricingRecordItem is one device pricing row as exposed to admins.
type PricingRecordItem struct {
	ID                 uint       `json:"id"`
	Model              string     `json:"model"`
	DeviceType         string     `json:"device_type"`
	ModelName          *string    `json:"model_name,omitempty"`
	Storage            *string    `json:"storage,omitempty"`
	Network            string     `json:"network"`
	Series             *string    `json:"series,omitempty"`
	PriceSwap          *float64   `json:"price_swap,omitempty"`
	PriceA             *float64   `json:"price_a,omitempty"`
	PriceB             *float64   `json:"price_b,omitempty"`
	PriceC             *float64   `json:"price_c,omitempty"`
	PriceD             *float64   `json:"price_d,omitempty"`
	PriceDOA           *float64   `json:"price_doa,omitempty"`
	OfferSwap          *float64   `json:"offer_swap,omitempty"`
	OfferA             *float64   `json:"offer_a,omitempty"`
	OfferB             *float64   `json:"offer_b,omitempty"`
	OfferC             *float64   `json:"offer_c,omitempty"`
	OfferD             *float64   `json:"offer_d,omitempty"`
	OfferDOA           *float64   `json:"offer_doa,omitempty"`
	OffersCalculatedAt *time.Time `json:"offers_calculated_at,omitempty"`
	LastUpdated        time.Time  `json:"last_updated"`
	IsActive           bool       `json:"is_active"`
}

// ListPricingRecordsRequest filters the admin pricing listing.
type ListPricingRecordsRequest struct {
	Network    string `query:"network" validate:"omitempty,oneof=Unlocked 'Carrier Locked'"`
	DeviceType string `query:"device_type" validate:"omitempty,max=64"`
	Search     string `query:"search" validate:"omitempty,max=128"`
	Page       int    `query:"page" validate:"omitempty,min=1"`
	PageSize   int    `query:"page_size" validate:"omitempty,min=1,max=200"`
}

// UpdatePricingRecordRequest is an admin manual override of one price column.
// Prices set to null clear the column; omitted fields are left untouched.
type UpdatePricingRecordRequest struct {
	PriceSwap *float64 `json:"price_swap" validate:"omitempty,min=0"`
	PriceA    *float64 `json:"price_a" validate:"omitempty,min=0"`
	PriceB    *float64 `json:"price_b" validate:"omitempty,min=0"`
	PriceC    *float64 `json:"price_c" validate:"omitempty,min=0"`
	PriceD    *float64 `json:"price_d" validate:"omitempty,min=0"`
	PriceDOA  *float64 `json:"price_doa" validate:"omitempty,min=0"`
	IsActive  *bool    `json:"is_active"`
}
