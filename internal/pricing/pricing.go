// Package pricing derives local fare estimates from a cab type's rate structure.
package pricing

import (
	"github.com/alexivanou/geofare/internal/model"
)

// Breakdown component keys
const (
	ComponentBase     = "base"
	ComponentDistance = "distance"
)

// CalculatePrice returns baseFare + distanceKm*perKmRate.
//
// Trip-type adjustments to the base fare are the caller's responsibility.
func CalculatePrice(distanceKm, perKmRate, baseFare float64) float64 {
	return baseFare + distanceKm*perKmRate
}

// Quote builds a FareQuote for a cab type. The base fare is scaled by the
// trip-type multiplier before the linear price is computed.
func Quote(cab model.CabType, distanceKm float64, tripType model.TripType, currency string) model.FareQuote {
	baseFare := cab.BasePrice * tripType.Multiplier()
	distanceFare := distanceKm * cab.PerKmRate

	return model.FareQuote{
		BaseFare:     baseFare,
		DistanceFare: distanceFare,
		Total:        CalculatePrice(distanceKm, cab.PerKmRate, baseFare),
		Currency:     currency,
		Breakdown: map[string]float64{
			ComponentBase:     baseFare,
			ComponentDistance: distanceFare,
		},
	}
}
