package dto

import "time"

// QuoteRequest asks for the buyback offer on one device.
type QuoteRequest struct {
	Model   string `query:"model" validate:"required,max=128"`
	Network string `query:"network" validate:"required,oneof=Unlocked 'Carrier Locked'"`
	Grade   string `query:"grade" validate:"required,max=8"`
}

// QuoteResponse is the public offer for one device and grade.
type QuoteResponse struct {
	Model       string    `json:"model"`
	Network     string    `json:"network"`
	Grade       string    `json:"grade"`
	Offer       float64   `json:"offer"`
	LastUpdated time.Time `json:"last_updated"`
}
