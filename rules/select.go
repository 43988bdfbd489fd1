package rules

// selectRule implements §4.1: given a zone and a CalendarDateTime t, return
// the first rule (and its index) whose validity window contains t, or
// (nil, -1) if none matches.
func selectRule(z *Zone, t CalendarDateTime) (*AdjustmentRule, int) {
	utcAdjusted := t
	if t.Tag == Absolute {
		utcAdjusted = addOffset(t, z.baseUtcOffset)
	}

	for i := range z.rules {
		r := &z.rules[i]
		if !withinLowerBound(z, i, t, utcAdjusted, r) {
			continue
		}
		if !withinUpperBound(z, i, t, r) {
			continue
		}
		return r, i
	}
	return nil, -1
}

func withinLowerBound(z *Zone, idx int, original, utcAdjusted CalendarDateTime, r *AdjustmentRule) bool {
	if r.DateStart.Tag == Absolute {
		if original.Tag == Absolute {
			return original.Ticks() >= r.DateStart.Ticks()
		}
		prevOffset := z.baseUtcOffset
		if idx > 0 {
			prev := z.rules[idx-1]
			prevOffset += prev.BaseUtcOffsetDelta + prev.DaylightDelta
		}
		utcInstant := original.Ticks().AddOffset(-prevOffset)
		return utcInstant >= r.DateStart.Ticks()
	}
	return compareDateOnly(utcAdjusted, r.DateStart) >= 0
}

func withinUpperBound(z *Zone, idx int, original CalendarDateTime, r *AdjustmentRule) bool {
	if r.DateEnd.Tag == Absolute {
		var utcInstant Instant
		if original.Tag == Absolute {
			utcInstant = original.Ticks()
		} else {
			thisOffset := z.baseUtcOffset + r.BaseUtcOffsetDelta + r.DaylightDelta
			utcInstant = original.Ticks().AddOffset(-thisOffset)
		}
		return utcInstant <= r.DateEnd.Ticks()
	}
	utcAdjusted := original
	if original.Tag == Absolute {
		utcAdjusted = addOffset(original, z.baseUtcOffset)
	}
	return compareDateOnly(utcAdjusted, r.DateEnd) <= 0
}
