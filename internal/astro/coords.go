// Package astro provides the astronomical primitives used by the transit
// tracker: Julian dates, sidereal time, equatorial-to-horizontal conversion,
// and low-precision solar and lunar ephemerides.
package astro

import (
	"math"
	"time"
)

// Observer is a geodetic location on Earth.
type Observer struct {
	LatDeg float64 // Latitude in degrees (north positive)
	LonDeg float64 // Longitude in degrees (east positive)
	ElevM  float64 // Elevation above sea level in meters
	Name   string  // Optional site name
}

// AltAz converts equatorial coordinates (RA/Dec, degrees, J2000) to horizontal
// coordinates for a given observer and UTC instant.
//
// Conventions:
//   - Azimuth: 0° = North, 90° = East, 180° = South, 270° = West
//   - Altitude: 0° = horizon, 90° = zenith
func AltAz(raDeg, decDeg float64, obs Observer, t time.Time) (altDeg, azDeg float64) {
	lat := degToRad(obs.LatDeg)
	ra := degToRad(raDeg)
	dec := degToRad(decDeg)

	lst := localSiderealTime(t, obs.LonDeg)

	// Hour Angle = LST - RA
	ha := degToRad(lst) - ra

	sinAlt := math.Sin(dec)*math.Sin(lat) + math.Cos(dec)*math.Cos(lat)*math.Cos(ha)
	alt := math.Asin(clamp1(sinAlt))

	cosAz := (math.Sin(dec) - math.Sin(alt)*math.Sin(lat)) / (math.Cos(alt) * math.Cos(lat))
	az := math.Acos(clamp1(cosAz))

	// Positive hour angle puts the object west of the meridian.
	if math.Sin(ha) > 0 {
		az = 2*math.Pi - az
	}

	return radToDeg(alt), radToDeg(az)
}

// Altitude returns only the altitude component of AltAz.
func Altitude(raDeg, decDeg float64, obs Observer, t time.Time) float64 {
	alt, _ := AltAz(raDeg, decDeg, obs, t)
	return alt
}

// localSiderealTime returns the Local Sidereal Time in degrees for a UTC
// instant and an east-positive longitude.
func localSiderealTime(t time.Time, lonDeg float64) float64 {
	return normalizeAngle360(greenwichMeanSiderealTime(t) + lonDeg)
}

// greenwichMeanSiderealTime returns GMST in degrees (IAU 1982 formula).
func greenwichMeanSiderealTime(t time.Time) float64 {
	jd := JulianDate(t)

	// Julian centuries since J2000.0
	T := (jd - 2451545.0) / 36525.0

	gmst := 280.46061837 +
		360.98564736629*(jd-2451545.0) +
		0.000387933*T*T -
		T*T*T/38710000.0

	return normalizeAngle360(gmst)
}

// JulianDate returns the Julian Date (UTC scale) for a time instant.
func JulianDate(t time.Time) float64 {
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	dayFrac := (float64(t.Hour()) +
		float64(t.Minute())/60 +
		float64(t.Second())/3600 +
		float64(t.Nanosecond())/3600e9) / 24.0

	// January and February count as months 13 and 14 of the previous year.
	if m <= 2 {
		y--
		m += 12
	}

	// Gregorian calendar correction
	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + dayFrac + B - 1524.5
}

// normalizeAngle360 normalizes an angle to [0, 360) degrees.
func normalizeAngle360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// clamp1 clamps x to [-1, 1] to keep Asin/Acos safe against rounding.
func clamp1(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
