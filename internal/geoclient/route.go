package geoclient

import (
	"context"
	"time"

	"github.com/alexivanou/geofare/internal/model"
)

// RouteSource resolves a route between two named cities
type RouteSource interface {
	GetRouteInfo(ctx context.Context, originCity, destinationCity string) (*model.RouteInfo, error)
}

// RouteResolver resolves routes without caching. Failures are returned to
// the caller unchanged; there is no fallback.
type RouteResolver struct {
	source  RouteSource
	timeout time.Duration
}

// NewRouteResolver creates a resolver with a per-request timeout
func NewRouteResolver(source RouteSource, timeout time.Duration) *RouteResolver {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &RouteResolver{source: source, timeout: timeout}
}

// GetRouteInfo forwards the city names exactly as given
func (r *RouteResolver) GetRouteInfo(ctx context.Context, originCity, destinationCity string) (*model.RouteInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.source.GetRouteInfo(ctx, originCity, destinationCity)
}
