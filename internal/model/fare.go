package model

import "fmt"

// TripType selects one-way or round-trip pricing
type TripType string

const (
	TripTypeOneWay    TripType = "one_way"
	TripTypeRoundTrip TripType = "round_trip"
)

// Multiplier returns the factor applied to the base fare for the trip type
func (t TripType) Multiplier() float64 {
	if t == TripTypeRoundTrip {
		return 2
	}
	return 1
}

// ParseTripType validates a wire value, defaulting the empty string to one way
func ParseTripType(s string) (TripType, error) {
	switch TripType(s) {
	case "", TripTypeOneWay:
		return TripTypeOneWay, nil
	case TripTypeRoundTrip:
		return TripTypeRoundTrip, nil
	default:
		return "", fmt.Errorf("unknown trip type %q", s)
	}
}

// CabType is a vehicle class with its rate structure
type CabType struct {
	ID        string  `json:"id" db:"id" validate:"required"`
	Name      string  `json:"name" db:"name" validate:"required"`
	PerKmRate float64 `json:"per_km_rate" db:"per_km_rate" validate:"gte=0"`
	BasePrice float64 `json:"base_price" db:"base_price" validate:"gte=0"`
	Capacity  int     `json:"capacity" db:"capacity" validate:"gte=1"`
}

// FareQuote is a locally derived price estimate
type FareQuote struct {
	BaseFare     float64            `json:"base_fare"`
	DistanceFare float64            `json:"distance_fare"`
	Total        float64            `json:"total"`
	Currency     string             `json:"currency"`
	Breakdown    map[string]float64 `json:"breakdown"`
}

// FareCalculationRequest is the body of POST /api/v1/bookings/calculate-fare
type FareCalculationRequest struct {
	PickupLat  float64 `json:"pickup_lat" validate:"gte=-90,lte=90"`
	PickupLng  float64 `json:"pickup_lng" validate:"gte=-180,lte=180"`
	DropLat    float64 `json:"drop_lat" validate:"gte=-90,lte=90"`
	DropLng    float64 `json:"drop_lng" validate:"gte=-180,lte=180"`
	CabType    string  `json:"cab_type" validate:"required"`
	TripType   string  `json:"trip_type"`
	PickupCity string  `json:"pickup_city"`
	DropCity   string  `json:"drop_city"`
}

// FareBreakdown is the backend-computed fare
type FareBreakdown struct {
	CabType         string   `json:"cab_type"`
	TripType        TripType `json:"trip_type"`
	DistanceKm      float64  `json:"distance_km"`
	DurationMinutes float64  `json:"duration_minutes"`
	BaseFare        float64  `json:"base_fare"`
	DistanceFare    float64  `json:"distance_fare"`
	TimeFare        float64  `json:"time_fare"`
	SurgeMultiplier float64  `json:"surge_multiplier"`
	TotalFare       float64  `json:"total_fare"`
	Currency        string   `json:"currency"`
}

// CabTypeListResponse is the body of GET /api/v1/cab-types.
// CabTypes is a pointer so that a missing field can be told apart from an empty list.
type CabTypeListResponse struct {
	CabTypes *[]CabType `json:"cab_types"`
}
