package shared

import (
	"fmt"
	"math"
)

const (
	// EarthRadiusKm is the mean Earth radius used for great-circle distances
	EarthRadiusKm = 6371.0

	// KmToNauticalMiles converts kilometres to nautical miles
	KmToNauticalMiles = 0.539957
)

// Position is a latitude/longitude pair in decimal degrees
type Position struct {
	Latitude  float64
	Longitude float64
}

// NewPosition creates a position, rejecting coordinates outside the globe
func NewPosition(lat, lon float64) (Position, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return Position{}, NewValidationError("latitude", fmt.Sprintf("must be within [-90, 90], got %v", lat))
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return Position{}, NewValidationError("longitude", fmt.Sprintf("must be within [-180, 180], got %v", lon))
	}
	return Position{Latitude: lat, Longitude: lon}, nil
}

// DistanceNM returns the haversine great-circle distance to other in nautical miles
func (p Position) DistanceNM(other Position) float64 {
	return HaversineNM(p.Latitude, p.Longitude, other.Latitude, other.Longitude)
}

func (p Position) String() string {
	return fmt.Sprintf("(%.5f, %.5f)", p.Latitude, p.Longitude)
}

// HaversineNM calculates the great-circle distance in nautical miles
// between two lat/lon points
func HaversineNM(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c * KmToNauticalMiles
}
