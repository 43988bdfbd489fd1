package rules

import (
	"testing"
	"time"
)

func TestInstant_ToTime_FromTime_RoundTrip(t *testing.T) {
	want := time.Date(2024, time.March, 10, 7, 30, 15, 250_000_000, time.UTC)
	i := FromTime(want)
	got := i.ToTime()
	if !got.Equal(want) {
		t.Errorf("round trip %v -> %v, want %v", want, got, want)
	}
}

func TestInstant_MinMaxOrdering(t *testing.T) {
	if !MinInstant.Before(MaxInstant) {
		t.Errorf("MinInstant must be before MaxInstant")
	}
	if MinInstant != 0 {
		t.Errorf("MinInstant = %d, want 0", MinInstant)
	}
}

func TestInstant_AddMinutes(t *testing.T) {
	base := NewInstant(2024, 1, 1, 0, 0, 0, 0)
	got := base.AddMinutes(90)
	want := NewInstant(2024, 1, 1, 1, 30, 0, 0)
	if got != want {
		t.Errorf("AddMinutes(90) = %v, want %v", got, want)
	}
	if got := base.AddMinutes(-30); got != NewInstant(2023, 12, 31, 23, 30, 0, 0) {
		t.Errorf("AddMinutes(-30) = %v, want 2023-12-31 23:30", got)
	}
}

func TestInstant_BeforeAfter(t *testing.T) {
	a := NewInstant(2024, 1, 1, 0, 0, 0, 0)
	b := NewInstant(2024, 1, 2, 0, 0, 0, 0)
	if !a.Before(b) || a.After(b) {
		t.Errorf("expected a before b")
	}
	if !b.After(a) || b.Before(a) {
		t.Errorf("expected b after a")
	}
}
