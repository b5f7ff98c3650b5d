package kernel

import (
	"errors"
	"fmt"
	"math"

	"hatod/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in decimal degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in decimal degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the minimum valid longitude in decimal degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in decimal degrees.
	LongitudeMax = 180.0

	// earthRadiusKm is the mean Earth radius used for great-circle distance.
	earthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errors.New("GeoPoint must be created via NewGeoPoint constructor")

// GeoPoint represents a geographic coordinate in decimal degrees.
// It is an immutable value object; the zero value is invalid and fails
// validation, so instances must be created through NewGeoPoint.
//
// GeoPoint is the unit of distance computation for delivery-fee estimation
// and dispatch candidate ranking. Distances are great-circle (haversine)
// kilometers, which is precise enough for in-city delivery ranges.
type GeoPoint struct {
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint from latitude and longitude in decimal degrees.
// Latitude must be within [-90, 90] and longitude within [-180, 180].
// Returns a validation error when either coordinate is out of bounds or NaN.
func NewGeoPoint(lat float64, lng float64) (GeoPoint, error) {
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		return GeoPoint{}, fmt.Errorf("latitude %v is out of range [%v, %v]", lat, LatitudeMin, LatitudeMax)
	}
	if math.IsNaN(lng) || lng < LongitudeMin || lng > LongitudeMax {
		return GeoPoint{}, fmt.Errorf("longitude %v is out of range [%v, %v]", lng, LongitudeMin, LongitudeMax)
	}

	return GeoPoint{
		lat:   lat,
		lng:   lng,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the GeoPoint was created through NewGeoPoint.
// The zero value fails this check.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.lat
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.lng
}

// IsEqual reports whether two points have identical coordinates.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.lat == other.lat && p.lng == other.lng
}

// DistanceKmTo returns the great-circle distance to other in kilometers,
// computed with the haversine formula. The result is deterministic for a
// given pair of points, which lets delivery fees derived from it be
// snapshotted at checkout and never drift afterwards.
func (p GeoPoint) DistanceKmTo(other GeoPoint) float64 {
	latA := p.lat * math.Pi / 180
	latB := other.lat * math.Pi / 180
	dLat := (other.lat - p.lat) * math.Pi / 180
	dLng := (other.lng - p.lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// String returns a human-readable representation, e.g. "GeoPoint(10.3157,123.8854)".
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%g,%g)", p.lat, p.lng)
}
