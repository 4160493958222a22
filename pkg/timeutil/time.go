// Package timeutil holds the calendar-date helpers billing runs on. Invoice
// due dates are plain dates; they are carried as midnight UTC so that two
// dates subtract to a whole number of days.
package timeutil

import "time"

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// Clock returns the current instant. Services take a Clock so tests can pin "now".
type Clock func() time.Time

// Now is the production Clock
func Now() time.Time {
	return time.Now().UTC()
}

// DateOf returns the calendar date t shows in its own location, as midnight UTC
func DateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateIn returns the calendar date of t as seen from loc, as midnight UTC
func DateIn(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(t.In(loc))
}

// FormatDate renders the calendar date of t as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses YYYY-MM-DD into a date
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}
