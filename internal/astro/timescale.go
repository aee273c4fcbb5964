package astro

import "time"

// Catalog transit epochs are quoted as Barycentric Julian Dates on the TDB
// scale. Converting to and from UTC wall-clock time needs the TT-UTC offset:
// 37 accumulated leap seconds plus the fixed 32.184 s TT-TAI offset, valid
// since 2017. TDB differs from TT by a periodic term under 2 ms, which is far
// below transit-timing needs, so TDB is treated as TT here. Light-travel-time
// (barycentric vs topocentric) correction is not applied.
const ttMinusUTCSeconds = 69.184

// jdUnixEpoch is the Julian Date of 1970-01-01T00:00:00 UTC.
const jdUnixEpoch = 2440587.5

// TimeToBJD converts a UTC instant to a Barycentric Julian Date (TDB).
func TimeToBJD(t time.Time) float64 {
	return JulianDate(t) + ttMinusUTCSeconds/86400.0
}

// BJDToTime converts a Barycentric Julian Date (TDB) to a UTC instant.
func BJDToTime(bjd float64) time.Time {
	utcSec := (bjd-jdUnixEpoch)*86400.0 - ttMinusUTCSeconds
	sec := int64(utcSec)
	nsec := int64((utcSec - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).UTC()
}
