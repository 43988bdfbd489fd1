package rules

import (
	"time"

	"ngrash.dev/tzrules/internal/unixtime"
)

// Instant is a signed count of 100-ns ticks since 0001-01-01T00:00:00 UTC.
// It is the engine's only representation of an absolute point in time;
// nothing in this package ever consults time.Location.
type Instant int64

// MinInstant is the smallest representable Instant, 0001-01-01T00:00:00.0000000.
const MinInstant Instant = 0

// MaxInstant is the largest representable Instant, 9999-12-31T23:59:59.9999999.
var MaxInstant Instant = Instant(unixtime.FromCalendar(9999, 12, 31, 23, 59, 59, 999)) + 9999

// NewInstant builds an Instant from proleptic Gregorian calendar fields.
func NewInstant(year, month, day, hour, minute, second, millisecond int) Instant {
	return Instant(unixtime.FromCalendar(year, month, day, hour, minute, second, millisecond))
}

// AddMinutes returns i shifted by m minutes (positive or negative).
func (i Instant) AddMinutes(m int) Instant {
	return i + Instant(int64(m)*unixtime.TicksPerMinute)
}

// AddMilliseconds returns i shifted by ms milliseconds (positive or
// negative). Useful for nudging an Instant derived from a
// CalendarDateTime.Ticks() round-trip, since CalendarDateTime itself has no
// finer resolution than a millisecond.
func (i Instant) AddMilliseconds(ms int) Instant {
	return i + Instant(int64(ms)*unixtime.TicksPerMillisecond)
}

// AddOffset returns i shifted by o.
func (i Instant) AddOffset(o Offset) Instant {
	return i.AddMinutes(int(o))
}

// Before reports whether i occurs strictly before j.
func (i Instant) Before(j Instant) bool { return i < j }

// After reports whether i occurs strictly after j.
func (i Instant) After(j Instant) bool { return i > j }

// ToTime converts i to a time.Time in UTC.
func (i Instant) ToTime() time.Time {
	year, month, day, hour, minute, second, millisecond := unixtime.ToCalendar(int64(i))
	return time.Date(year, time.Month(month), day, hour, minute, second, millisecond*1_000_000, time.UTC)
}

// FromTime converts a time.Time to an Instant, normalizing it to UTC first.
func FromTime(t time.Time) Instant {
	t = t.UTC()
	return NewInstant(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/1_000_000)
}
