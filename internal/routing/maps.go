package routing

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexivanou/geofare/internal/model"
	"googlemaps.github.io/maps"
)

// ErrNoRoute is returned when the directions service has no driving route
var ErrNoRoute = errors.New("no route found")

// MapsProvider routes legs with the Google Maps Directions API
type MapsProvider struct {
	client *maps.Client
}

// NewMapsProvider creates a provider with the given API key
func NewMapsProvider(apiKey string, opts ...maps.ClientOption) (*MapsProvider, error) {
	opts = append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &MapsProvider{client: client}, nil
}

// DrivingLeg implements Provider using coordinates, so names in any script work
func (p *MapsProvider) DrivingLeg(ctx context.Context, origin, destination model.City) (Leg, error) {
	r := &maps.DirectionsRequest{
		Origin:      latLng(origin),
		Destination: latLng(destination),
		Mode:        maps.TravelModeDriving,
	}

	routes, _, err := p.client.Directions(ctx, r)
	if err != nil {
		return Leg{}, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return Leg{}, ErrNoRoute
	}

	leg := routes[0].Legs[0]
	return Leg{
		DistanceKm: float64(leg.Distance.Meters) / 1000,
		Duration:   leg.Duration,
	}, nil
}

func latLng(c model.City) string {
	return fmt.Sprintf("%.6f,%.6f", c.Latitude, c.Longitude)
}
