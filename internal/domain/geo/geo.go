// Package geo provides great-circle distance math for delivery fee pricing.
package geo

import "math"

// earthRadiusKm is the mean radius of the Earth used by the haversine formula.
const earthRadiusKm = 6371

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DistanceKm returns the great-circle distance between a and b in kilometers
// using the haversine formula. It is symmetric and returns 0 for identical
// points.
func DistanceKm(a, b Point) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + sinLng*sinLng*math.Cos(lat1)*math.Cos(lat2)

	return earthRadiusKm * 2 * math.Asin(math.Sqrt(h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
