package model

// RouteInfoRequest is the body of POST /api/v1/cities/route-info
type RouteInfoRequest struct {
	OriginCity      string `json:"origin_city" validate:"required"`
	DestinationCity string `json:"destination_city" validate:"required"`
}

// RouteInfo describes a resolved trip between two cities
type RouteInfo struct {
	OriginCity             string  `json:"origin_city"`
	DestinationCity        string  `json:"destination_city"`
	StraightLineDistanceKm float64 `json:"straight_line_distance_km"`
	DrivingDistanceKm      float64 `json:"driving_distance_km"`
	DrivingDurationHours   float64 `json:"driving_duration_hours"`
	// IsEstimated is set when the driving figures are not an exact route.
	IsEstimated bool `json:"is_estimated"`
}
