package geoclient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexivanou/geofare/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRouteSource implements RouteSource
type MockRouteSource struct {
	mock.Mock
}

func (m *MockRouteSource) GetRouteInfo(ctx context.Context, originCity, destinationCity string) (*model.RouteInfo, error) {
	args := m.Called(ctx, originCity, destinationCity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RouteInfo), args.Error(1)
}

func TestRouteResolver_GetRouteInfo(t *testing.T) {
	source := new(MockRouteSource)
	source.On("GetRouteInfo", mock.Anything, "Mumbai", "Pune").Return(&model.RouteInfo{
		OriginCity:             "Mumbai",
		DestinationCity:        "Pune",
		StraightLineDistanceKm: 120.1,
		DrivingDistanceKm:      148.6,
		DrivingDurationHours:   3.1,
	}, nil).Twice()

	resolver := NewRouteResolver(source, time.Second)

	info, err := resolver.GetRouteInfo(context.Background(), "Mumbai", "Pune")
	require.NoError(t, err)
	assert.Equal(t, 148.6, info.DrivingDistanceKm)

	// no caching: every call reaches the source
	_, err = resolver.GetRouteInfo(context.Background(), "Mumbai", "Pune")
	require.NoError(t, err)
	source.AssertNumberOfCalls(t, "GetRouteInfo", 2)
}

func TestRouteResolver_SameCity(t *testing.T) {
	source := new(MockRouteSource)
	source.On("GetRouteInfo", mock.Anything, "Goa", "Goa").Return(&model.RouteInfo{
		OriginCity:      "Goa",
		DestinationCity: "Goa",
	}, nil)

	info, err := NewRouteResolver(source, time.Second).GetRouteInfo(context.Background(), "Goa", "Goa")
	require.NoError(t, err)
	assert.Zero(t, info.DrivingDistanceKm)
	assert.Zero(t, info.DrivingDurationHours)
	source.AssertExpectations(t)
}

func TestRouteResolver_PropagatesError(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "network error", err: errors.New("dial tcp: connection refused")},
		{name: "api error", err: &APIError{Status: 404, Message: "city not found"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := new(MockRouteSource)
			source.On("GetRouteInfo", mock.Anything, "Atlantis", "Pune").Return(nil, tt.err)

			info, err := NewRouteResolver(source, time.Second).GetRouteInfo(context.Background(), "Atlantis", "Pune")
			assert.Nil(t, info)
			assert.Same(t, tt.err, err)
		})
	}
}

func TestRouteResolver_AppliesTimeout(t *testing.T) {
	source := new(MockRouteSource)
	source.On("GetRouteInfo", mock.Anything, "Pune", "Goa").
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
		}).
		Return(&model.RouteInfo{}, nil)

	_, err := NewRouteResolver(source, time.Second).GetRouteInfo(context.Background(), "Pune", "Goa")
	require.NoError(t, err)
}
