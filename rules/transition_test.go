package rules

import (
	"testing"
	"time"
)

func TestTransitionTime_MaterializeIn_Fixed(t *testing.T) {
	tod := NewCalendarDateTime(1, 1, 1, 2, 0, 0, 0, Unspecified)
	tt, err := NewFixedDateTransitionTime(tod, 3, 31)
	if err != nil {
		t.Fatal(err)
	}
	got := tt.MaterializeIn(2021)
	if got.Month != 3 || got.Day != 31 || got.Hour != 2 {
		t.Errorf("MaterializeIn(2021) = %+v, want Mar 31 02:00", got)
	}
}

func TestTransitionTime_MaterializeIn_FixedClampsFeb29(t *testing.T) {
	tod := NewCalendarDateTime(1, 1, 1, 0, 0, 0, 0, Unspecified)
	tt, err := NewFixedDateTransitionTime(tod, 2, 29)
	if err != nil {
		t.Fatal(err)
	}
	got := tt.MaterializeIn(2023) // not a leap year
	if got.Month != 2 || got.Day != 28 {
		t.Errorf("MaterializeIn(2023) = %+v, want Feb 28", got)
	}
}

func TestTransitionTime_MaterializeIn_FloatingLastSunday(t *testing.T) {
	tod := NewCalendarDateTime(1, 1, 1, 1, 0, 0, 0, Unspecified)
	tt, err := NewFloatingDateTransitionTime(tod, 10, 5, time.Sunday)
	if err != nil {
		t.Fatal(err)
	}
	got := tt.MaterializeIn(2021)
	if got.Month != 10 || got.Day != 31 {
		t.Errorf("MaterializeIn(2021) = %+v, want Oct 31 (last Sunday)", got)
	}
}

func TestTransitionTime_MaterializeIn_FloatingNthWeekday(t *testing.T) {
	tod := NewCalendarDateTime(1, 1, 1, 2, 0, 0, 0, Unspecified)
	tt, err := NewFloatingDateTransitionTime(tod, 3, 2, time.Sunday)
	if err != nil {
		t.Fatal(err)
	}
	got := tt.MaterializeIn(2021)
	if got.Month != 3 || got.Day != 14 {
		t.Errorf("MaterializeIn(2021) = %+v, want Mar 14 (2nd Sunday)", got)
	}
}

func TestTransitionTime_MaterializeIn_DayOverflowSentinel(t *testing.T) {
	// The extended-future parser's sentinel for an hour field that overflowed
	// past midnight, e.g. "2/26" meaning 02:00 the day after.
	tod := NewCalendarDateTime(1, 1, 2, 2, 0, 0, 0, Unspecified)
	tt, err := NewFloatingDateTransitionTime(tod, 3, 2, time.Sunday)
	if err != nil {
		t.Fatal(err)
	}
	got := tt.MaterializeIn(2021)
	// nominal weekday is Mar 14; the sentinel shifts it one day later.
	if got.Month != 3 || got.Day != 15 || got.Hour != 2 {
		t.Errorf("MaterializeIn(2021) = %+v, want Mar 15 02:00", got)
	}
}

func TestTransitionTime_IsJan1Midnight(t *testing.T) {
	tod := NewCalendarDateTime(1, 1, 1, 0, 0, 0, 0, Unspecified)
	tt, err := NewFixedDateTransitionTime(tod, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !tt.IsJan1Midnight() {
		t.Errorf("expected IsJan1Midnight to be true")
	}

	tod2 := NewCalendarDateTime(1, 1, 1, 0, 0, 0, 1, Unspecified)
	tt2, err := NewFixedDateTransitionTime(tod2, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if tt2.IsJan1Midnight() {
		t.Errorf("expected IsJan1Midnight to be false when millisecond != 0")
	}
}

func TestNewFixedDateTransitionTime_RejectsOutOfRangeMonth(t *testing.T) {
	tod := NewCalendarDateTime(1, 1, 1, 0, 0, 0, 0, Unspecified)
	if _, err := NewFixedDateTransitionTime(tod, 13, 1); err == nil {
		t.Errorf("expected error for month 13")
	}
}

func TestNewFloatingDateTransitionTime_RejectsOutOfRangeWeek(t *testing.T) {
	tod := NewCalendarDateTime(1, 1, 1, 0, 0, 0, 0, Unspecified)
	if _, err := NewFloatingDateTransitionTime(tod, 1, 6, time.Sunday); err == nil {
		t.Errorf("expected error for week 6")
	}
}
