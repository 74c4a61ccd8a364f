package service

import (
	"context"

	"github.com/alexivanou/geofare/internal/model"
	"github.com/alexivanou/geofare/internal/routing"
	"github.com/stretchr/testify/mock"
)

// MockCityRepository implements repository.CityRepository interface
type MockCityRepository struct {
	mock.Mock
}

func (m *MockCityRepository) ListCities(ctx context.Context, popularOnly bool) ([]model.City, error) {
	args := m.Called(ctx, popularOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.City), args.Error(1)
}

func (m *MockCityRepository) GetCityByName(ctx context.Context, name string) (*model.City, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.City), args.Error(1)
}

func (m *MockCityRepository) BulkInsertCities(ctx context.Context, cities []model.City) error {
	args := m.Called(ctx, cities)
	return args.Error(0)
}

// MockCabTypeRepository implements repository.CabTypeRepository interface
type MockCabTypeRepository struct {
	mock.Mock
}

func (m *MockCabTypeRepository) ListCabTypes(ctx context.Context) ([]model.CabType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CabType), args.Error(1)
}

func (m *MockCabTypeRepository) GetCabType(ctx context.Context, id string) (*model.CabType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CabType), args.Error(1)
}

func (m *MockCabTypeRepository) BulkInsertCabTypes(ctx context.Context, cabTypes []model.CabType) error {
	args := m.Called(ctx, cabTypes)
	return args.Error(0)
}

// MockProvider implements routing.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) DrivingLeg(ctx context.Context, origin, destination model.City) (routing.Leg, error) {
	args := m.Called(ctx, origin, destination)
	return args.Get(0).(routing.Leg), args.Error(1)
}

// MockRouteCache implements RouteCache
type MockRouteCache struct {
	mock.Mock
}

func (m *MockRouteCache) Get(ctx context.Context, originID, destinationID string) (*model.RouteInfo, error) {
	args := m.Called(ctx, originID, destinationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RouteInfo), args.Error(1)
}

func (m *MockRouteCache) Set(ctx context.Context, originID, destinationID string, info *model.RouteInfo) error {
	args := m.Called(ctx, originID, destinationID, info)
	return args.Error(0)
}
