package geo

import "math"

// EarthRadiusM is the mean Earth radius used for great-circle distances.
const EarthRadiusM = 6371000.0

// Haversine returns the great-circle distance in meters between two
// latitude/longitude pairs given in degrees. Inputs are not range checked.
// The result is bit-for-bit symmetric in its two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	// Floating point products are not associative, so always evaluate
	// the pair in the same order.
	if lat2 < lat1 || (lat2 == lat1 && lon2 < lon1) {
		lat1, lon1, lat2, lon2 = lat2, lon2, lat1, lon1
	}

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*
			math.Cos(toRad(lat1))*math.Cos(toRad(lat2))

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusM * c
}

// HaversineKm is Haversine in kilometers.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	return Haversine(lat1, lon1, lat2, lon2) / 1000
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
