// Package geo holds the coordinate math for the nearby-places ranking.
// Everything here is pure; ordering and truncation live in the service layer.
package geo

import (
	"math"
	"strconv"
)

// Mean Earth radius in kilometres.
const earthRadiusKM = 6371

// UAE bounding box for validating query origins.
const (
	MinLat = 22.0
	MaxLat = 27.0
	MinLng = 51.0
	MaxLng = 57.0
)

// Haversine returns the great-circle distance in kilometres between two
// coordinate pairs.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// ParseCoords converts stored decimal strings into floats. ok is false when
// either value is missing or unparseable, or when the pair is the (0,0)
// placeholder some submissions carry; such places rank last in nearby results.
func ParseCoords(lat, lng *string) (latF, lngF float64, ok bool) {
	if lat == nil || lng == nil {
		return 0, 0, false
	}
	latF, errLat := strconv.ParseFloat(*lat, 64)
	lngF, errLng := strconv.ParseFloat(*lng, 64)
	if errLat != nil || errLng != nil {
		return 0, 0, false
	}
	if latF == 0 && lngF == 0 {
		return 0, 0, false
	}
	return latF, lngF, true
}

// InUAEBounds reports whether the coordinate pair falls inside the UAE
// bounding box accepted for nearby queries.
func InUAEBounds(lat, lng float64) bool {
	return lat >= MinLat && lat <= MaxLat && lng >= MinLng && lng <= MaxLng
}
