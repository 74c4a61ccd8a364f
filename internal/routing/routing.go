// Package routing resolves driving legs between two cities.
package routing

import (
	"context"
	"time"

	"github.com/alexivanou/geofare/internal/model"
)

// Leg is the driving part of a route
type Leg struct {
	DistanceKm float64
	Duration   time.Duration
	// Estimated is set when the leg was approximated rather than routed.
	Estimated bool
}

// Provider computes driving legs
type Provider interface {
	DrivingLeg(ctx context.Context, origin, destination model.City) (Leg, error)
}
