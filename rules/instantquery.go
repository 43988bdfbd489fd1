package rules

// startUtcOffset returns the total offset (relative to UTC) in effect just
// before rules[idx]'s DST window opens, per §4.5 plus the §4.4 year-spanning
// marker correction.
func startUtcOffset(z *Zone, rs []AdjustmentRule, idx int) Offset {
	r := rs[idx]
	if r.NoDaylightTransitions {
		// §4.5: rPrev is the rule immediately preceding r, or r itself when
		// none exists — idx==0 has no previous rule to fall back to.
		prev := r
		if idx > 0 {
			prev = rs[idx-1]
		}
		return z.baseUtcOffset + prev.BaseUtcOffsetDelta + prev.DaylightDelta
	}
	if isYearStartMarker(r) && idx > 0 {
		prev := rs[idx-1]
		if isYearEndMarker(prev) {
			return z.baseUtcOffset + prev.BaseUtcOffsetDelta + prev.DaylightDelta
		}
	}
	return z.baseUtcOffset + r.BaseUtcOffsetDelta
}

// endUtcOffset returns the total offset in effect just before rules[idx]'s
// DST window closes, per §4.5 plus the §4.4 year-spanning marker correction.
func endUtcOffset(z *Zone, rs []AdjustmentRule, idx int) Offset {
	r := rs[idx]
	if isYearEndMarker(r) && idx+1 < len(rs) {
		next := rs[idx+1]
		if isYearStartMarker(next) {
			return z.baseUtcOffset + next.BaseUtcOffsetDelta + next.DaylightDelta
		}
	}
	return z.baseUtcOffset + r.BaseUtcOffsetDelta + r.DaylightDelta
}

// utcWindow converts a dstWindow's wall bounds into the UTC instants they
// denote, per §4.5.
func utcWindow(z *Zone, rs []AdjustmentRule, idx int, win dstWindow) (startUtc, endUtc Instant) {
	startUtc = win.startWall.Ticks().AddOffset(-startUtcOffset(z, rs, idx))
	endUtc = win.endWall.Ticks().AddOffset(-endUtcOffset(z, rs, idx))
	return
}

// offsetFromInstant implements §4.4: given an Absolute instant u, return the
// total offset, whether u falls in DST, and whether u falls in the
// ambiguous-in-UTC window.
func offsetFromInstant(z *Zone, u Instant) (offset Offset, isDst, isAmbiguous bool) {
	offset = z.baseUtcOffset
	absT := FromInstant(u, Absolute)
	r, idx := selectRule(z, absT)
	if r == nil {
		return offset, false, false
	}
	offset += r.BaseUtcOffsetDelta
	if !r.HasDaylightSaving() {
		return offset, false, false
	}

	adjustedYear := FromInstant(u.AddOffset(z.baseUtcOffset), Unspecified).Year
	win := yearlyWindow(z, z.rules, idx, adjustedYear)
	startUtc, endUtc := utcWindow(z, z.rules, idx, win)

	isDst = instantInWindow(u, startUtc, endUtc, r, win)
	if isDst {
		offset += win.delta
	}

	isAmbiguous = instantAmbiguous(z, u, r, idx, adjustedYear, startUtc, endUtc, win)
	return offset, isDst, isAmbiguous
}

// instantInWindow mirrors §4.3's Is-DST structure in UTC-instant space.
func instantInWindow(u, startUtc, endUtc Instant, r *AdjustmentRule, win dstWindow) bool {
	if startUtc > endUtc {
		return u < endUtc || u >= startUtc
	}
	if r.NoDaylightTransitions {
		return u >= startUtc && u <= endUtc
	}
	return u >= startUtc && u < endUtc
}

// instantAmbiguousBounds computes the ambiguous-in-UTC window from §4.4 step 6.
func instantAmbiguousBounds(r *AdjustmentRule, win dstWindow, startUtc, endUtc Instant) (lo, hi Instant, ok bool) {
	if win.delta == 0 {
		return 0, 0, false
	}
	if win.delta > 0 {
		if win.endMarker {
			return 0, 0, false
		}
		return endUtc.AddOffset(-win.delta), endUtc, true
	}
	if win.startMarker {
		return 0, 0, false
	}
	return startUtc, startUtc.AddOffset(-win.delta), true
}

// instantAmbiguous applies the ±1-year shift corner case in UTC-instant space.
func instantAmbiguous(z *Zone, u Instant, r *AdjustmentRule, idx, year int, startUtc, endUtc Instant, win dstWindow) bool {
	lo, hi, ok := instantAmbiguousBounds(r, win, startUtc, endUtc)
	if ok && u >= lo && u < hi {
		return true
	}
	if r.NoDaylightTransitions {
		return false
	}
	for _, dy := range [2]int{-1, 1} {
		shiftedWin := yearlyWindow(z, z.rules, idx, year+dy)
		shiftedStart, shiftedEnd := utcWindow(z, z.rules, idx, shiftedWin)
		lo2, hi2, ok2 := instantAmbiguousBounds(r, shiftedWin, shiftedStart, shiftedEnd)
		if ok2 && u >= lo2 && u < hi2 {
			return true
		}
	}
	return false
}
