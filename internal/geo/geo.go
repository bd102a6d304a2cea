// Package geo provides the great-circle math used by the search engine:
// haversine distances and radius-derived bounding boxes.
package geo

import (
	"math"

	"swapcycle/internal/models"
)

const earthRadiusKm = 6371.0

// kmPerDegree is the approximate surface distance of one degree of
// latitude, used when deriving a bounding box from a radius.
const kmPerDegree = 111.0

// HaversineKm returns the great-circle distance in kilometers between
// two coordinates. Inputs are assumed to be valid lat/lng pairs;
// validation belongs to the caller.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// BoundingBox approximates the rectangular window containing the circle
// of radiusKm around the center. Longitude degrees shrink with
// cos(latitude); near the poles the divisor collapses, so the box falls
// back to the full longitude span instead of blowing up.
func BoundingBox(centerLat, centerLng, radiusKm float64) models.Bounds {
	latDelta := radiusKm / kmPerDegree

	b := models.Bounds{
		North: centerLat + latDelta,
		South: centerLat - latDelta,
	}

	cosLat := math.Cos(centerLat * math.Pi / 180)
	if math.Abs(cosLat) < 1e-6 {
		b.West = -180
		b.East = 180
		return b
	}

	lngDelta := radiusKm / (kmPerDegree * cosLat)
	b.West = centerLng - lngDelta
	b.East = centerLng + lngDelta
	return b
}

// ValidCoordinates reports whether lat/lng form a real coordinate pair.
func ValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
