package geoclient

import (
	"context"
	"time"

	"github.com/alexivanou/geofare/internal/geo"
	"github.com/alexivanou/geofare/internal/model"
	"github.com/alexivanou/geofare/internal/pricing"
)

// FareSource computes fares on the backend
type FareSource interface {
	CalculateFare(ctx context.Context, req model.FareCalculationRequest) (*model.FareBreakdown, error)
}

// FareCalculator offers the backend fare calculation next to local estimates.
// The two are independent: the backend formula is not assumed to match the
// local linear one.
type FareCalculator struct {
	source   FareSource
	timeout  time.Duration
	currency string
}

// NewFareCalculator creates a calculator; currency labels local quotes
func NewFareCalculator(source FareSource, timeout time.Duration, currency string) *FareCalculator {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &FareCalculator{source: source, timeout: timeout, currency: currency}
}

// CalculateFare requests the authoritative fare. Errors are returned unchanged.
func (f *FareCalculator) CalculateFare(ctx context.Context, req model.FareCalculationRequest) (*model.FareBreakdown, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	return f.source.CalculateFare(ctx, req)
}

// Estimate quotes a fare locally for a known distance
func (f *FareCalculator) Estimate(cab model.CabType, distanceKm float64, tripType model.TripType) model.FareQuote {
	return pricing.Quote(cab, distanceKm, tripType, f.currency)
}

// EstimateBetween quotes a fare locally over the straight-line distance
// between two cities. It is a quick approximation ahead of a route lookup.
func (f *FareCalculator) EstimateBetween(cab model.CabType, origin, destination model.City, tripType model.TripType) model.FareQuote {
	distance := geo.CalculateDistance(origin.Latitude, origin.Longitude, destination.Latitude, destination.Longitude)
	return f.Estimate(cab, distance, tripType)
}
