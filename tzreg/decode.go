// Package tzreg decodes the small, fixed set of fields the host OS
// registry exposes for a zone (a default fixed record, an optional DST
// record, and an optional run of per-year dynamic records) into the
// rules engine's AdjustmentRule model.
package tzreg

import (
	"time"

	"ngrash.dev/tzrules/rules"
)

// Decode builds a *rules.Zone named id from fields, per the registry
// decoder's conversion rules: a default fixed offset, an optional single
// transitioning DST rule, or a run of per-year rules when the registry
// carries dynamic DST records.
func Decode(fields rules.RegistryFields, id string) (*rules.Zone, error) {
	baseUtcOffset, err := rules.NewOffset(-int(fields.Bias))
	if err != nil {
		return nil, rules.NewInvalidZoneError(err)
	}

	var ruleList []rules.AdjustmentRule
	switch {
	case fields.HasDynamicRecords:
		ruleList, err = dynamicRules(fields)
		if err != nil {
			return nil, rules.NewInvalidZoneError(err)
		}
	case fields.DaylightBias != 0:
		dateStart := rules.FromInstant(rules.MinInstant, rules.Absolute)
		dateEnd := rules.FromInstant(rules.MaxInstant, rules.Absolute)
		r, err := dstRule(fields, dateStart, dateEnd)
		if err != nil {
			return nil, rules.NewInvalidZoneError(err)
		}
		ruleList = []rules.AdjustmentRule{r}
	default:
		// §4.8's "no DST record" delta is (defaultBaseUtcOffset -
		// record.bias); baseUtcOffset above is derived from this same
		// fields.Bias, so the two terms are always equal and the delta
		// is always zero. A plain fixed-offset zone needs no explicit
		// rule at all.
	}

	return rules.NewZone(id, baseUtcOffset, ruleList, id, "", "")
}

// dynamicRules emits one transitioning rule per year in [FirstYear,
// LastYear], spanning Jan 1 to Dec 31 except the first (which starts at
// MinInstant) and the last (which ends at MaxInstant). Our RegistryFields
// carries a single StandardDate/DaylightDate/DaylightBias triple rather
// than a per-year override table, so every year in the span reuses it.
func dynamicRules(fields rules.RegistryFields) ([]rules.AdjustmentRule, error) {
	if fields.DaylightBias == 0 {
		return nil, nil
	}
	var out []rules.AdjustmentRule
	for year := fields.FirstYear; year <= fields.LastYear; year++ {
		var dateStart, dateEnd rules.CalendarDateTime
		if year == fields.FirstYear {
			dateStart = rules.FromInstant(rules.MinInstant, rules.Absolute)
		} else {
			dateStart = rules.NewCalendarDateTime(year, 1, 1, 0, 0, 0, 0, rules.Absolute)
		}
		if year == fields.LastYear {
			dateEnd = rules.FromInstant(rules.MaxInstant, rules.Absolute)
		} else {
			dateEnd = rules.NewCalendarDateTime(year, 12, 31, 23, 59, 59, 999, rules.Absolute)
		}
		r, err := dstRule(fields, dateStart, dateEnd)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// dstRule builds the single transitioning rule a DST record (or one year
// of dynamic records) describes, spanning [dateStart, dateEnd].
func dstRule(fields rules.RegistryFields, dateStart, dateEnd rules.CalendarDateTime) (rules.AdjustmentRule, error) {
	daylightDelta, err := rules.NewDaylightDelta(-int(fields.DaylightBias))
	if err != nil {
		return rules.AdjustmentRule{}, err
	}
	// DaylightDate is when the clock jumps forward into DST (the window's
	// start); StandardDate is when it falls back (the window's end).
	start, err := transitionFromSystemTime(fields.DaylightDate)
	if err != nil {
		return rules.AdjustmentRule{}, err
	}
	end, err := transitionFromSystemTime(fields.StandardDate)
	if err != nil {
		return rules.AdjustmentRule{}, err
	}
	return rules.NewTransitioningRule(dateStart, dateEnd, daylightDelta, start, end, 0)
}

// transitionFromSystemTime materializes a TransitionTime from the
// SYSTEMTIME-shaped [8]int16: year, month, dayOfWeek, day, hour, minute,
// second, millisecond. year == 0 denotes the floating "n-th weekday of
// month" form (day carries the week-of-month, dayOfWeek the weekday);
// any other year denotes a fixed month/day, with dayOfWeek ignored.
func transitionFromSystemTime(st [8]int16) (rules.TransitionTime, error) {
	year, month, dayOfWeek, day := st[0], st[1], st[2], st[3]
	hour, minute, second, millisecond := st[4], st[5], st[6], st[7]
	tod := rules.NewCalendarDateTime(1, 1, 1, int(hour), int(minute), int(second), int(millisecond), rules.Unspecified)
	if year == 0 {
		return rules.NewFloatingDateTransitionTime(tod, int(month), int(day), time.Weekday(dayOfWeek))
	}
	return rules.NewFixedDateTransitionTime(tod, int(month), int(day))
}
