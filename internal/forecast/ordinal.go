package forecast

import "time"

// The demand model encodes dates as proleptic-Gregorian ordinals, where
// 0001-01-01 is day 1. 1970-01-01 is day 719163 on that scale, which lets
// the conversion ride on Unix time without ever overflowing a Duration.
const unixEpochOrdinal = 719163

var unixEpoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// DateToOrdinal converts a calendar date to its ordinal day number.
// Only the date part is significant; the time of day is discarded.
func DateToOrdinal(t time.Time) int {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(day.Unix()/86400) + unixEpochOrdinal
}

// OrdinalToDate is the inverse of DateToOrdinal. The round trip is exact
// across the supported date range.
func OrdinalToDate(ordinal int) time.Time {
	return unixEpoch.AddDate(0, 0, ordinal-unixEpochOrdinal)
}
