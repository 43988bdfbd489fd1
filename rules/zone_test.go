package rules

import "testing"

func TestNewZone_RejectsEmptyID(t *testing.T) {
	if _, err := NewZone("", 0, nil, "", "", ""); err == nil {
		t.Errorf("expected error for empty id")
	}
}

func TestNewZone_RejectsOutOfRangeBaseOffset(t *testing.T) {
	if _, err := NewZone("Test/Zone", MaxOffset+1, nil, "", "", ""); err == nil {
		t.Errorf("expected error for out-of-range baseUtcOffset")
	}
}

func TestNewZone_RejectsOverlappingRules(t *testing.T) {
	dateStart1 := NewCalendarDateTime(2020, 1, 1, 0, 0, 0, 0, Absolute)
	dateEnd1 := NewCalendarDateTime(2025, 1, 1, 0, 0, 0, 0, Absolute)
	r1, err := NewNoTransitionRule(dateStart1, dateEnd1, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	dateStart2 := NewCalendarDateTime(2024, 1, 1, 0, 0, 0, 0, Absolute) // overlaps r1
	dateEnd2 := NewCalendarDateTime(2030, 1, 1, 0, 0, 0, 0, Absolute)
	r2, err := NewNoTransitionRule(dateStart2, dateEnd2, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewZone("Test/Zone", 0, []AdjustmentRule{r1, r2}, "", "", ""); err == nil {
		t.Errorf("expected error for overlapping rules")
	}
}

func TestNewZone_AcceptsAdjacentNonOverlappingRules(t *testing.T) {
	dateStart1 := NewCalendarDateTime(2020, 1, 1, 0, 0, 0, 0, Absolute)
	dateEnd1 := NewCalendarDateTime(2025, 1, 1, 0, 0, 0, 0, Absolute)
	r1, err := NewNoTransitionRule(dateStart1, dateEnd1, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	dateStart2 := NewInstant(2025, 1, 1, 0, 0, 0, 1)
	dateEnd2 := NewCalendarDateTime(2030, 1, 1, 0, 0, 0, 0, Absolute)
	r2, err := NewNoTransitionRule(FromInstant(dateStart2, Absolute), dateEnd2, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewZone("Test/Zone", 0, []AdjustmentRule{r1, r2}, "", "", ""); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestZone_Equal(t *testing.T) {
	a, err := NewZone("Test/Zone", 60, nil, "Display A", "STD", "DST")
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewZone("TEST/ZONE", 60, nil, "Display B", "OTHER", "NAMES")
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Errorf("expected zones to be equal ignoring case and display names")
	}

	c, err := NewZone("Test/Zone", 120, nil, "Display A", "STD", "DST")
	if err != nil {
		t.Fatal(err)
	}
	if a.Equal(c) {
		t.Errorf("expected zones with different baseUtcOffset to be unequal")
	}
}

func TestZone_SupportsDaylightSavingTime(t *testing.T) {
	dateStart := NewCalendarDateTime(2020, 1, 1, 0, 0, 0, 0, Absolute)
	dateEnd := NewCalendarDateTime(2030, 1, 1, 0, 0, 0, 0, Absolute)
	r, err := NewNoTransitionRule(dateStart, dateEnd, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	z, err := NewZone("Test/Zone", 0, []AdjustmentRule{r}, "", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if z.SupportsDaylightSavingTime() {
		t.Errorf("zero-delta no-transition rule must not report DST support")
	}
}
