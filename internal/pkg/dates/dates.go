// Package dates handles calendar dates as time.Time values pinned to midnight UTC,
// which is how pgx scans a Postgres DATE column.
package dates

import (
	"time"
)

const Layout = "2006-01-02"

// Of returns the calendar date of t in t's own location, as midnight UTC.
func Of(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date as seen in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return Of(now.In(loc))
}

func New(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func Parse(s string) (time.Time, error) {
	return time.ParseInLocation(Layout, s, time.UTC)
}

func Format(d time.Time) string {
	return d.Format(Layout)
}

// MonthBounds returns the first and last day of the month.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := New(year, month, 1)
	return first, first.AddDate(0, 1, -1)
}

// Between lists every date from..to inclusive. Empty when to is before from.
func Between(from, to time.Time) []time.Time {
	from, to = Of(from), Of(to)
	if to.Before(from) {
		return nil
	}
	out := make([]time.Time, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// DaysBetween counts calendar days from..to inclusive.
func DaysBetween(from, to time.Time) int {
	return int(Of(to).Sub(Of(from)).Hours()/24) + 1
}
