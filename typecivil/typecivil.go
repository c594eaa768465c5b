// Package typecivil converts decoded temporal values to and from the
// "github.com/golang-sql/civil" date and time types.
package typecivil

import (
	"time"

	"github.com/golang-sql/civil"

	tdsvalue "github.com/denisenkom/go-tdsvalue"
)

// DateOf returns the calendar date of t in the location it was decoded in.
func DateOf(t tdsvalue.Temporal) civil.Date {
	return civil.DateOf(t.Precise())
}

// TimeOf returns the time of day of t, sub-millisecond digits included.
func TimeOf(t tdsvalue.Temporal) civil.Time {
	return civil.TimeOf(t.Precise())
}

func DateTimeOf(t tdsvalue.Temporal) civil.DateTime {
	return civil.DateTimeOf(t.Precise())
}

var unixEpoch = civil.Date{Year: 1970, Month: time.January, Day: 1}

// Days returns the number of days since Jan 1 1, the day count of the date
// type on the wire.
func Days(d civil.Date) int {
	days := d.DaysSince(unixEpoch)
	return days + 1969*365 + 1969/4 - 1969/100 + 1969/400
}

// Ticks returns the time of day in 100ns units, the scale 7 encoding of
// the time type.
func Ticks(t civil.Time) uint64 {
	dur := time.Hour*time.Duration(t.Hour) +
		time.Minute*time.Duration(t.Minute) +
		time.Second*time.Duration(t.Second) +
		time.Duration(t.Nanosecond)
	return uint64(dur / 100)
}

// EncodeDate returns the 3 byte date payload of d.
func EncodeDate(d civil.Date) []byte {
	days := Days(d)
	return []byte{byte(days), byte(days >> 8), byte(days >> 16)}
}

// EncodeTime returns the 5 byte, scale 7 time payload of t.
func EncodeTime(t civil.Time) []byte {
	ns := Ticks(t)
	return []byte{byte(ns), byte(ns >> 8), byte(ns >> 16), byte(ns >> 24), byte(ns >> 32)}
}

// EncodeDateTime returns the 8 byte, scale 7 datetime2 payload of dt.
func EncodeDateTime(dt civil.DateTime) []byte {
	return append(EncodeTime(dt.Time), EncodeDate(dt.Date)...)
}
