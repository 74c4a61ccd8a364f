// Package geo holds pure geographic helpers shared by the client and the backend.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances
const EarthRadiusKm = 6371.0

// CalculateDistance returns the great-circle distance in kilometres between
// two points given in decimal degrees. Identical points yield exactly 0 and
// NaN inputs propagate.
func CalculateDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)
	lat1Rad := toRadians(lat1)
	lat2Rad := toRadians(lat2)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	a := sinLat*sinLat + math.Cos(lat1Rad)*math.Cos(lat2Rad)*sinLng*sinLng

	// a can drift past 1 for antipodal points
	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a)))
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
