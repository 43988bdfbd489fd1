// Package calendarmath provides weekday-within-month arithmetic used to
// materialize floating transition rules (e.g. "the last Sunday in October")
// into a concrete day of a concrete year.
//
// The algorithms here are adapted from the day-of-month materialization
// logic that a tzdata rule compiler needs for its ON column (lastSun,
// Sun>=8, Sun<=25), generalized so it no longer depends on a specific
// source-file grammar.
package calendarmath

import (
	"time"

	"ngrash.dev/tzrules/internal/unixtime"
)

// FirstWeekdayOnOrAfter returns the day-of-month, in [1, DaysInMonth(year,month)],
// of the first occurrence of weekday on or after day 1 of the given month.
func FirstWeekdayOnOrAfter(year, month int, weekday time.Weekday) int {
	return nthWeekdayFrom(year, month, 1, weekday)
}

// NthWeekday returns the day-of-month of the n-th (1-based) occurrence of
// weekday in the given month. n must be in [1, 4]; callers that need "the
// last occurrence" should call LastWeekday instead.
func NthWeekday(year, month, n int, weekday time.Weekday) int {
	first := FirstWeekdayOnOrAfter(year, month, weekday)
	return first + (n-1)*7
}

// LastWeekday returns the day-of-month of the last occurrence of weekday in
// the given month.
func LastWeekday(year, month int, weekday time.Weekday) int {
	last := unixtime.DaysInMonth(year, month)
	lastWd := unixtime.DayOfWeek(year, month, last)
	offset := int(lastWd-weekday+7) % 7
	return last - offset
}

// nthWeekdayFrom returns the day-of-month, starting the search at fromDay,
// of the first occurrence of weekday on or after fromDay.
func nthWeekdayFrom(year, month, fromDay int, weekday time.Weekday) int {
	wd := unixtime.DayOfWeek(year, month, fromDay)
	offset := int(weekday-wd+7) % 7
	return fromDay + offset
}
