package service

import (
	"context"
	"fmt"
	"math"

	"github.com/alexivanou/geofare/internal/geo"
	"github.com/alexivanou/geofare/internal/model"
	"go.uber.org/zap"
)

// ListCities returns active cities, optionally only popular ones
func (s *Service) ListCities(ctx context.Context, popularOnly bool) ([]model.City, error) {
	cities, err := s.cityRepo.ListCities(ctx, popularOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	if cities == nil {
		cities = []model.City{}
	}
	return cities, nil
}

// GetRouteInfo resolves distance and driving time between two named cities
func (s *Service) GetRouteInfo(ctx context.Context, req model.RouteInfoRequest) (*model.RouteInfo, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	origin, err := s.findCity(ctx, "origin_city", req.OriginCity)
	if err != nil {
		return nil, err
	}
	destination, err := s.findCity(ctx, "destination_city", req.DestinationCity)
	if err != nil {
		return nil, err
	}

	info := &model.RouteInfo{
		OriginCity:      req.OriginCity,
		DestinationCity: req.DestinationCity,
	}
	if origin.ID == destination.ID {
		return info, nil
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, origin.ID, destination.ID)
		if err != nil {
			s.logger.Warn("Route cache read failed", zap.Error(err))
		} else if cached != nil {
			cached.OriginCity = req.OriginCity
			cached.DestinationCity = req.DestinationCity
			return cached, nil
		}
	}

	leg, err := s.provider.DrivingLeg(ctx, *origin, *destination)
	degraded := err != nil
	if degraded {
		s.logger.Warn("Route provider failed, estimating",
			zap.String("origin", origin.ID),
			zap.String("destination", destination.ID),
			zap.Error(err),
		)
		leg, _ = s.estimator.DrivingLeg(ctx, *origin, *destination)
	}

	straight := geo.CalculateDistance(origin.Latitude, origin.Longitude, destination.Latitude, destination.Longitude)
	info.StraightLineDistanceKm = round2(straight)
	info.DrivingDistanceKm = round2(math.Max(leg.DistanceKm, straight))
	info.DrivingDurationHours = round2(leg.Duration.Hours())
	info.IsEstimated = leg.Estimated

	// A degraded estimate is not cached so the provider is retried next time.
	if s.cache != nil && !degraded {
		if err := s.cache.Set(ctx, origin.ID, destination.ID, info); err != nil {
			s.logger.Warn("Route cache write failed", zap.Error(err))
		}
	}

	return info, nil
}

func (s *Service) findCity(ctx context.Context, field, name string) (*model.City, error) {
	city, err := s.cityRepo.GetCityByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get city: %w", err)
	}
	if city == nil {
		return nil, fieldError(ErrCityNotFound, field, fmt.Sprintf("unknown city %q", name))
	}
	return city, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
