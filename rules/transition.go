package rules

import (
	"fmt"
	"time"

	"ngrash.dev/tzrules/internal/calendarmath"
	"ngrash.dev/tzrules/internal/unixtime"
)

// TransitionKind distinguishes the two shapes a yearly DST boundary can take.
type TransitionKind int

const (
	// FixedDateKind identifies a transition on a specific month/day.
	FixedDateKind TransitionKind = iota
	// FloatingKind identifies a transition on the n-th (or last) weekday of a month.
	FloatingKind
)

// TransitionTime is the discriminated value describing a yearly DST boundary:
// either a fixed month/day, or a floating weekday-of-week-of-month.
type TransitionTime struct {
	Kind TransitionKind

	// TimeOfDay carries Hour/Minute/Second/Millisecond; Year/Month/Day must be
	// 1/1/1 per the data model's "TimeOfDay must be Jan 1" invariant.
	TimeOfDay CalendarDateTime

	Month int // both kinds

	Day int // FixedDateKind only, [1..31]

	Week      int          // FloatingKind only, [1..5]; 5 means "last occurrence"
	DayOfWeek time.Weekday // FloatingKind only, [0..6]
}

// NewFixedDateTransitionTime validates and builds a FixedDateKind TransitionTime.
func NewFixedDateTransitionTime(timeOfDay CalendarDateTime, month, day int) (TransitionTime, error) {
	if err := validateTimeOfDay(timeOfDay); err != nil {
		return TransitionTime{}, err
	}
	if month < 1 || month > 12 {
		return TransitionTime{}, newError(ErrInvalidZone, fmt.Errorf("transition month %d out of range [1,12]", month))
	}
	if day < 1 || day > 31 {
		return TransitionTime{}, newError(ErrInvalidZone, fmt.Errorf("transition day %d out of range [1,31]", day))
	}
	return TransitionTime{Kind: FixedDateKind, TimeOfDay: timeOfDay, Month: month, Day: day}, nil
}

// NewFloatingDateTransitionTime validates and builds a FloatingKind TransitionTime.
func NewFloatingDateTransitionTime(timeOfDay CalendarDateTime, month, week int, dayOfWeek time.Weekday) (TransitionTime, error) {
	if err := validateTimeOfDay(timeOfDay); err != nil {
		return TransitionTime{}, err
	}
	if month < 1 || month > 12 {
		return TransitionTime{}, newError(ErrInvalidZone, fmt.Errorf("transition month %d out of range [1,12]", month))
	}
	if week < 1 || week > 5 {
		return TransitionTime{}, newError(ErrInvalidZone, fmt.Errorf("transition week %d out of range [1,5]", week))
	}
	if dayOfWeek < time.Sunday || dayOfWeek > time.Saturday {
		return TransitionTime{}, newError(ErrInvalidZone, fmt.Errorf("transition day-of-week %d out of range [0,6]", dayOfWeek))
	}
	return TransitionTime{Kind: FloatingKind, TimeOfDay: timeOfDay, Month: month, Week: week, DayOfWeek: dayOfWeek}, nil
}

// validateTimeOfDay enforces the data model's "TimeOfDay must be Jan 1"
// invariant. Day 2 is also accepted: the extended-future parser uses
// "Jan 2 00:00" as a sentinel for a /time field that overflowed past
// midnight (e.g. "26" meaning 02:00 the following day) — see the Design
// Notes' open question on this behavior.
func validateTimeOfDay(t CalendarDateTime) error {
	if t.Year != 1 || t.Month != 1 || (t.Day != 1 && t.Day != 2) {
		return newError(ErrInvalidZone, fmt.Errorf("transition time-of-day must have year=1, month=1, day in {1,2}, got %04d-%02d-%02d", t.Year, t.Month, t.Day))
	}
	return nil
}

// MaterializeIn returns the wall CalendarDateTime tt denotes in the given year,
// per §4.2's FixedDate/Floating materialization rules.
func (tt TransitionTime) MaterializeIn(year int) CalendarDateTime {
	var day int
	switch tt.Kind {
	case FixedDateKind:
		day = tt.Day
		if max := unixtime.DaysInMonth(year, tt.Month); day > max {
			day = max
		}
	case FloatingKind:
		if tt.Week == 5 {
			day = calendarmath.LastWeekday(year, tt.Month, tt.DayOfWeek)
		} else {
			day = calendarmath.NthWeekday(year, tt.Month, tt.Week, tt.DayOfWeek)
		}
	}
	result := CalendarDateTime{
		Year: year, Month: tt.Month, Day: day,
		Hour: tt.TimeOfDay.Hour, Minute: tt.TimeOfDay.Minute,
		Second: tt.TimeOfDay.Second, Millisecond: tt.TimeOfDay.Millisecond,
		Tag: Unspecified,
	}
	if tt.TimeOfDay.Day == 2 {
		// The extended-future parser's day-overflow sentinel: the transition
		// actually lands one calendar day later than the materialized weekday/date.
		result = FromInstant(result.Ticks().AddMinutes(24*60), Unspecified)
	}
	return result
}

// IsJan1Midnight reports whether tt is the year-edge marker: FixedDate at
// month=1, day=1, 00:00:00.000.
func (tt TransitionTime) IsJan1Midnight() bool {
	return tt.Kind == FixedDateKind && tt.Month == 1 && tt.Day == 1 &&
		tt.TimeOfDay.Hour == 0 && tt.TimeOfDay.Minute == 0 &&
		tt.TimeOfDay.Second == 0 && tt.TimeOfDay.Millisecond == 0
}
