// Package geo holds the coordinate math: centroid aggregation and
// great-circle distance.
package geo

import (
	"errors"
	"math"

	"spotfinder/internal/model"
)

// ErrNoParticipants is returned when a centroid is requested for an empty
// participant set. Callers must not ask for one before anyone has been added.
var ErrNoParticipants = errors.New("geo: centroid requires at least one participant")

const earthRadiusMeters = 6371000.0

// Centroid returns the arithmetic mean of latitudes and longitudes
// independently. This is a planar approximation, not a geodesic midpoint:
// fine for the few-km radii this app works at, but it degrades near the
// poles and across the ±180° longitude seam, which get no special handling.
func Centroid(coords []model.GeoCoordinate) (model.GeoCoordinate, error) {
	if len(coords) == 0 {
		return model.GeoCoordinate{}, ErrNoParticipants
	}

	var totalLat, totalLng float64
	for _, c := range coords {
		totalLat += c.Latitude
		totalLng += c.Longitude
	}

	n := float64(len(coords))
	return model.GeoCoordinate{
		Latitude:  totalLat / n,
		Longitude: totalLng / n,
	}, nil
}

// Offset shifts a coordinate by the given meters north and east using a
// local flat-earth approximation, clamping latitude to the valid range.
// Used for manual center nudging; not meant for large offsets.
func Offset(c model.GeoCoordinate, northMeters, eastMeters float64) model.GeoCoordinate {
	const metersPerDegreeLat = 111320.0

	lat := c.Latitude + northMeters/metersPerDegreeLat
	if lat > 90 {
		lat = 90
	}
	if lat < -90 {
		lat = -90
	}

	lngScale := metersPerDegreeLat * math.Cos(c.Latitude*math.Pi/180)
	lng := c.Longitude
	if lngScale > 1 {
		lng += eastMeters / lngScale
	}

	return model.GeoCoordinate{Latitude: lat, Longitude: lng}
}

// Distance returns the great-circle distance in meters between two points
// using the haversine formula.
func Distance(a, b model.GeoCoordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
