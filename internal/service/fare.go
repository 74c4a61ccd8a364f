package service

import (
	"context"
	"fmt"

	"github.com/alexivanou/geofare/internal/model"
	"go.uber.org/zap"
)

// CalculateFare prices a trip between two coordinates for a cab type
func (s *Service) CalculateFare(ctx context.Context, req model.FareCalculationRequest) (*model.FareBreakdown, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	tripType, err := model.ParseTripType(req.TripType)
	if err != nil {
		return nil, fieldError(ErrInvalidInput, "trip_type", "must be one_way or round_trip")
	}

	cab, err := s.cabTypeRepo.GetCabType(ctx, req.CabType)
	if err != nil {
		return nil, fmt.Errorf("failed to get cab type: %w", err)
	}
	if cab == nil {
		return nil, fieldError(ErrUnknownCabType, "cab_type", fmt.Sprintf("unknown cab type %q", req.CabType))
	}

	pickup := model.City{Name: req.PickupCity, Latitude: req.PickupLat, Longitude: req.PickupLng}
	drop := model.City{Name: req.DropCity, Latitude: req.DropLat, Longitude: req.DropLng}

	// Fares are priced on the estimated leg, never the routed one.
	leg, _ := s.estimator.DrivingLeg(ctx, pickup, drop)

	multiplier := tripType.Multiplier()
	distanceKm := leg.DistanceKm * multiplier
	minutes := leg.Duration.Minutes() * multiplier

	surge := s.fare.SurgeMultiplier
	if surge < 1 {
		surge = 1
	}

	baseFare := cab.BasePrice * multiplier
	distanceFare := distanceKm * cab.PerKmRate
	timeFare := minutes * s.fare.PerMinuteRate
	total := (baseFare + distanceFare + timeFare) * surge

	s.logger.Debug("Fare calculated",
		zap.String("cab_type", cab.ID),
		zap.String("trip_type", string(tripType)),
		zap.Float64("distance_km", distanceKm),
		zap.Float64("total", total),
	)

	return &model.FareBreakdown{
		CabType:         cab.ID,
		TripType:        tripType,
		DistanceKm:      round2(distanceKm),
		DurationMinutes: round2(minutes),
		BaseFare:        round2(baseFare),
		DistanceFare:    round2(distanceFare),
		TimeFare:        round2(timeFare),
		SurgeMultiplier: surge,
		TotalFare:       round2(total),
		Currency:        s.fare.Currency,
	}, nil
}

// ListCabTypes returns all cab types
func (s *Service) ListCabTypes(ctx context.Context) ([]model.CabType, error) {
	cabTypes, err := s.cabTypeRepo.ListCabTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cab types: %w", err)
	}
	if cabTypes == nil {
		cabTypes = []model.CabType{}
	}
	return cabTypes, nil
}
