package service

import (
	"context"

	"github.com/alexivanou/geofare/internal/model"
)

// ServiceInterface defines the service interface for testing
type ServiceInterface interface {
	ListCities(ctx context.Context, popularOnly bool) ([]model.City, error)
	GetRouteInfo(ctx context.Context, req model.RouteInfoRequest) (*model.RouteInfo, error)
	CalculateFare(ctx context.Context, req model.FareCalculationRequest) (*model.FareBreakdown, error)
	ListCabTypes(ctx context.Context) ([]model.CabType, error)
}

// RouteCache stores resolved routes between city ids
type RouteCache interface {
	// Get returns nil when the route is not cached
	Get(ctx context.Context, originID, destinationID string) (*model.RouteInfo, error)
	Set(ctx context.Context, originID, destinationID string, info *model.RouteInfo) error
}
