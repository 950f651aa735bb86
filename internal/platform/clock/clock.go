// Package clock anchors wall-clock time and calendar arithmetic to the
// service's fixed UTC-3 offset.
package clock

import (
	"errors"
	"time"
)

// Zone is the business timezone (America/Buenos_Aires, no DST).
var Zone = time.FixedZone("UTC-3", -3*60*60)

// ZoneLabel is used in log lines next to the formatted offset.
const ZoneLabel = "UTC"

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// System reads the operating system clock.
type System struct{}

// Now returns the current instant.
func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant. Useful in tests.
type Fixed struct {
	At time.Time
}

// Now returns the fixed instant.
func (f Fixed) Now() time.Time { return f.At }

// Func adapts a plain function to Clock.
type Func func() time.Time

// Now calls f.
func (f Func) Now() time.Time { return f() }

// Local returns c.Now() expressed in Zone.
func Local(c Clock) time.Time {
	if c == nil {
		c = System{}
	}
	return c.Now().In(Zone)
}

// MonthsAgo subtracts n calendar months from t. When the source day does not
// exist in the target month the day is clamped to that month's last day, so
// March 31 minus one month is February 28 (or 29).
func MonthsAgo(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m-time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(first.Year(), first.Month(), t.Location()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// MonthsAgoOverflow subtracts n months letting an out-of-range day roll into
// the following month (March 31 minus one month is March 3 or 2).
func MonthsAgoOverflow(t time.Time, n int) time.Time {
	return t.AddDate(0, -n, 0)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func daysIn(y int, m time.Month, loc *time.Location) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, loc).Day()
}

// ErrInvalidDate reports an unparseable or non-existent date.
var ErrInvalidDate = errors.New("clock: invalid date")

// ParseCalendarDate parses a strict YYYY-MM-DD value and rejects
// non-existent calendar days such as 2025-02-30.
func ParseCalendarDate(value string) (time.Time, error) {
	if len(value) != len(time.DateOnly) {
		return time.Time{}, ErrInvalidDate
	}
	t, err := time.ParseInLocation(time.DateOnly, value, Zone)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// AtTimeOfDay keeps the calendar day of date and copies the wall-clock time
// of ref. Both are interpreted in Zone.
func AtTimeOfDay(date, ref time.Time) time.Time {
	date = date.In(Zone)
	ref = ref.In(Zone)
	y, m, d := date.Date()
	return time.Date(y, m, d, ref.Hour(), ref.Minute(), ref.Second(), ref.Nanosecond(), Zone)
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

var isoLocalLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseISO parses an ISO-8601 date or date-time. A bare date is read as UTC
// midnight; a date-time without an offset is read in Zone.
func ParseISO(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}
	if len(value) == len(time.DateOnly) {
		t, err := time.Parse(time.DateOnly, value)
		if err != nil {
			return time.Time{}, ErrInvalidDate
		}
		return t, nil
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	for _, layout := range isoLocalLayouts {
		if t, err := time.ParseInLocation(layout, value, Zone); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}
