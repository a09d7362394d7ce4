package shared

import "math"

// Earth mean radius/diameter in miles, and the empirical scale factor
// applied to straight-line haversine distance to account for routes that
// are plotted as a sequence of straight segments rather than the true
// curve of the road.
const (
	earthRadiusMiles   = 3963.1
	earthDiameterMiles = 7926.2
	unplottedCurveScale = 1.02112

	// NearMissTolerance is the half-open coordinate delta defining a
	// near-miss pair: points within this distance on both
	// axes, but not exactly equal, are flagged.
	NearMissTolerance = 0.0005

	// SharpAngleDegrees is the datacheck turn threshold: two consecutive
	// segments form a "sharp angle" when they turn by more than this, i.e.
	// when AngleDegrees at the middle waypoint is below 180 minus it.
	SharpAngleDegrees = 135.0
)

// HaversineMiles returns the great-circle distance between two lat/lng
// points in decimal degrees, scaled by the unplotted-curve factor.
func HaversineMiles(lat1, lng1, lat2, lng2 float64) float64 {
	if lat1 == lat2 && lng1 == lng2 {
		return 0
	}
	rLat1 := degToRad(lat1)
	rLat2 := degToRad(lat2)
	dLat := degToRad(lat2 - lat1)
	dLng := degToRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c * unplottedCurveScale
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}

// UnitVector converts a lat/lng pair (degrees) to a 3D unit vector on the
// sphere, used by AngleDegrees for the dot-product angle formulation of
// the angle between three points.
func UnitVector(lat, lng float64) (x, y, z float64) {
	rLat := degToRad(lat)
	rLng := degToRad(lng)
	return math.Cos(rLat) * math.Cos(rLng),
		math.Cos(rLat) * math.Sin(rLng),
		math.Sin(rLat)
}

// AngleDegrees computes the angle at vertex b formed by the path a-b-c,
// using the 3D unit-vector dot-product formulation: 180 for a straight
// path, near 0 for a reversal. Returns 180 when a or c coincides with b,
// and clamps the dot product to [-1, 1] so floating-point drift cannot
// produce NaN.
func AngleDegrees(aLat, aLng, bLat, bLng, cLat, cLng float64) float64 {
	ax, ay, az := UnitVector(aLat, aLng)
	bx, by, bz := UnitVector(bLat, bLng)
	cx, cy, cz := UnitVector(cLat, cLng)

	v1x, v1y, v1z := ax-bx, ay-by, az-bz
	v2x, v2y, v2z := cx-bx, cy-by, cz-bz

	mag1 := math.Sqrt(v1x*v1x + v1y*v1y + v1z*v1z)
	mag2 := math.Sqrt(v2x*v2x + v2y*v2y + v2z*v2z)
	if mag1 == 0 || mag2 == 0 {
		return 180
	}

	dot := (v1x*v2x + v1y*v2y + v1z*v2z) / (mag1 * mag2)
	dot = math.Max(-1, math.Min(1, dot))
	return math.Acos(dot) * 180 / math.Pi
}
