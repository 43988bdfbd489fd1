package rules

import (
	"errors"
	"fmt"
)

// AdjustmentRule is a contiguous validity window plus the two yearly DST
// transitions and the two deltas, or, when NoDaylightTransitions is set, a
// single fixed-offset window.
type AdjustmentRule struct {
	DateStart, DateEnd CalendarDateTime

	DaylightDelta Offset

	DaylightTransitionStart, DaylightTransitionEnd TransitionTime

	// BaseUtcOffsetDelta is an optional per-window correction added to the
	// zone's base offset.
	BaseUtcOffsetDelta Offset

	// NoDaylightTransitions, when set, means the rule fixes a single offset
	// over its whole validity window rather than oscillating yearly; in that
	// shape DateStart/DateEnd must both be Absolute and the TransitionTime
	// fields are carried but ignored by evaluation.
	NoDaylightTransitions bool
}

// NewTransitioningRule validates and builds a transitioning AdjustmentRule.
func NewTransitioningRule(dateStart, dateEnd CalendarDateTime, daylightDelta Offset, start, end TransitionTime, baseUtcOffsetDelta Offset) (AdjustmentRule, error) {
	r := AdjustmentRule{
		DateStart: dateStart, DateEnd: dateEnd,
		DaylightDelta:            daylightDelta,
		DaylightTransitionStart:  start,
		DaylightTransitionEnd:    end,
		BaseUtcOffsetDelta:       baseUtcOffsetDelta,
	}
	if err := r.validate(); err != nil {
		return AdjustmentRule{}, err
	}
	return r, nil
}

// NewNoTransitionRule validates and builds a no-transition AdjustmentRule.
// dateStart and dateEnd must both carry Tag=Absolute.
func NewNoTransitionRule(dateStart, dateEnd CalendarDateTime, daylightDelta, baseUtcOffsetDelta Offset) (AdjustmentRule, error) {
	r := AdjustmentRule{
		DateStart: dateStart, DateEnd: dateEnd,
		DaylightDelta:           daylightDelta,
		DaylightTransitionStart: jan1MidnightPlaceholder,
		DaylightTransitionEnd:   jan1MidnightPlaceholder,
		BaseUtcOffsetDelta:      baseUtcOffsetDelta,
		NoDaylightTransitions:   true,
	}
	if err := r.validate(); err != nil {
		return AdjustmentRule{}, err
	}
	return r, nil
}

// jan1MidnightPlaceholder fills DaylightTransitionStart/End on a
// no-transition rule, where they're ignored by evaluation but still need to
// be a validly-constructed TransitionTime to survive a textual round trip.
var jan1MidnightPlaceholder = TransitionTime{
	Kind:      FixedDateKind,
	TimeOfDay: CalendarDateTime{Year: 1, Month: 1, Day: 1},
	Month:     1,
	Day:       1,
}

func (r AdjustmentRule) validate() error {
	var errs []error
	if r.DateStart.Tag == Unspecified && !isZeroTimeOfDay(r.DateStart) {
		errs = append(errs, fmt.Errorf("unspecified dateStart must have zero time-of-day"))
	}
	if r.DateEnd.Tag == Unspecified && !isZeroTimeOfDay(r.DateEnd) {
		errs = append(errs, fmt.Errorf("unspecified dateEnd must have zero time-of-day"))
	}
	if r.DateStart.Ticks() > r.DateEnd.Ticks() {
		errs = append(errs, fmt.Errorf("dateStart %v is after dateEnd %v", r.DateStart, r.DateEnd))
	}
	if r.DaylightDelta < minDaylightDelta || r.DaylightDelta > maxDaylightDelta {
		errs = append(errs, fmt.Errorf("daylightDelta %v out of range [%v, %v]", r.DaylightDelta, minDaylightDelta, maxDaylightDelta))
	}
	if r.NoDaylightTransitions {
		if r.DateStart.Tag != Absolute || r.DateEnd.Tag != Absolute {
			errs = append(errs, fmt.Errorf("no-transition rule requires Absolute-tagged dateStart/dateEnd"))
		}
	}
	if len(errs) > 0 {
		return newError(ErrInvalidZone, errors.Join(errs...))
	}
	return nil
}

func isZeroTimeOfDay(t CalendarDateTime) bool {
	return t.Hour == 0 && t.Minute == 0 && t.Second == 0 && t.Millisecond == 0
}

// HasDaylightSaving reports whether r is a DST rule. A no-transition rule
// counts when DaylightDelta is nonzero or when its DaylightTransitionStart
// holds anything other than jan1MidnightPlaceholder (the binary decoder
// marks DST-typed windows that way, even when their delta is zero);
// transitioning rules always define a DST window by construction.
func (r AdjustmentRule) HasDaylightSaving() bool {
	if r.NoDaylightTransitions {
		return r.DaylightDelta != 0 || r.DaylightTransitionStart != jan1MidnightPlaceholder
	}
	return true
}
