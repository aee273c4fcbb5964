package astro

import (
	"math"
	"time"
)

// MoonPosition calculates the geocentric equatorial coordinates of the Moon.
// Uses a truncated lunar series (largest terms only).
// Accuracy: ~0.3 degrees, sufficient for Moon-separation constraints.
func MoonPosition(t time.Time) (raDeg, decDeg float64) {
	jd := JulianDate(t)

	// Julian centuries from J2000.0
	T := (jd - 2451545.0) / 36525.0

	// Mean longitude, mean anomaly, and argument of latitude (degrees)
	Lp := normalizeAngle360(218.3164477 + 481267.88123421*T)
	Mp := normalizeAngle360(134.9633964 + 477198.8675055*T)
	F := normalizeAngle360(93.2720950 + 483202.0175233*T)

	// Mean anomaly of the Sun and mean elongation of the Moon (degrees)
	M := normalizeAngle360(357.5291092 + 35999.0502909*T)
	D := normalizeAngle360(297.8501921 + 445267.1114034*T)

	// Ecliptic longitude: leading series terms
	lon := Lp +
		6.288774*math.Sin(degToRad(Mp)) +
		1.274027*math.Sin(degToRad(2*D-Mp)) +
		0.658314*math.Sin(degToRad(2*D)) +
		0.213618*math.Sin(degToRad(2*Mp)) -
		0.185116*math.Sin(degToRad(M)) -
		0.114332*math.Sin(degToRad(2*F))

	// Ecliptic latitude: leading series terms
	lat := 5.128122*math.Sin(degToRad(F)) +
		0.280602*math.Sin(degToRad(Mp+F)) +
		0.277693*math.Sin(degToRad(Mp-F)) +
		0.173237*math.Sin(degToRad(2*D-F))

	// Ecliptic to equatorial
	eps := degToRad(23.439291 - 0.0130042*T)
	lonRad := degToRad(normalizeAngle360(lon))
	latRad := degToRad(lat)

	sinDec := math.Sin(latRad)*math.Cos(eps) +
		math.Cos(latRad)*math.Sin(eps)*math.Sin(lonRad)
	decDeg = radToDeg(math.Asin(clamp1(sinDec)))

	y := math.Sin(lonRad)*math.Cos(eps) - math.Tan(latRad)*math.Sin(eps)
	x := math.Cos(lonRad)
	raDeg = radToDeg(math.Atan2(y, x))
	if raDeg < 0 {
		raDeg += 360
	}

	return raDeg, decDeg
}

// MoonSeparation calculates the angular separation between the Moon and a
// target in degrees at a given instant.
func MoonSeparation(targetRA, targetDec float64, t time.Time) float64 {
	moonRA, moonDec := MoonPosition(t)
	return AngularSeparation(moonRA, moonDec, targetRA, targetDec)
}
