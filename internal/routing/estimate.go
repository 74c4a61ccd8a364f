package routing

import (
	"context"
	"time"

	"github.com/alexivanou/geofare/internal/config"
	"github.com/alexivanou/geofare/internal/geo"
	"github.com/alexivanou/geofare/internal/model"
)

// Estimator approximates a driving leg from the great-circle distance
type Estimator struct {
	roadFactor      float64
	averageSpeedKmh float64
}

// NewEstimator creates an estimator from routing configuration
func NewEstimator(cfg config.RoutingConfig) *Estimator {
	return &Estimator{
		roadFactor:      cfg.RoadFactor,
		averageSpeedKmh: cfg.AverageSpeedKmh,
	}
}

// DrivingLeg implements Provider. It never fails.
func (e *Estimator) DrivingLeg(_ context.Context, origin, destination model.City) (Leg, error) {
	straight := geo.CalculateDistance(origin.Latitude, origin.Longitude, destination.Latitude, destination.Longitude)
	km := straight * e.roadFactor
	hours := km / e.averageSpeedKmh

	return Leg{
		DistanceKm: km,
		Duration:   time.Duration(hours * float64(time.Hour)),
		Estimated:  true,
	}, nil
}
