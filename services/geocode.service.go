package services

import "context"

// GeocodeResult is optional enrichment for a property location. A failed
// lookup never blocks the owning write.
type GeocodeResult struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Pincode   string  `json:"pincode"`
}

type GeocodeService interface {
	ReverseGeocode(ctx context.Context, latitude float64, longitude float64) (*GeocodeResult, error)
}
