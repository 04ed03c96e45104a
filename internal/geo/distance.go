// Package geo provides great-circle math for points along the route.
package geo

import "math"

// EarthRadiusMiles is the mean Earth radius in statute miles.
const EarthRadiusMiles = 3958.7613

// Point represents a geographic coordinate in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Valid reports whether the point is a usable coordinate.
// The zero value (0, 0) is treated as missing data, not a real location.
func (p Point) Valid() bool {
	if p.Lat == 0 && p.Lon == 0 {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// DistanceMiles returns the haversine great-circle distance between two
// points in statute miles.
func DistanceMiles(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMiles * c
}

// ProjectAlong returns the scalar projection of point p onto the axis from
// start to end, in the same equirectangular plane. The value orders points by
// their progress along the axis: 0 at start, 1 at end, with intermediate
// points falling in between when they lie inside the corridor. Latitude and
// longitude are scaled so the projection is not distorted at route latitudes.
func ProjectAlong(start, end, p Point) float64 {
	// Equirectangular approximation around the start latitude. Good enough
	// for ordering cities along a continental east-west corridor.
	cosLat := math.Cos(radians(start.Lat))

	ax := (end.Lon - start.Lon) * cosLat
	ay := end.Lat - start.Lat
	px := (p.Lon - start.Lon) * cosLat
	py := p.Lat - start.Lat

	axisLenSq := ax*ax + ay*ay
	if axisLenSq == 0 {
		return 0
	}

	return (px*ax + py*ay) / axisLenSq
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
