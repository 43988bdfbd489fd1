package rules

// effectiveRule selects the rule governing t and, for transitioning rules,
// materializes its DST window for t's own calendar year.
func effectiveRule(z *Zone, t CalendarDateTime) (*AdjustmentRule, int, dstWindow, bool) {
	r, idx := selectRule(z, t)
	if r == nil {
		return nil, -1, dstWindow{}, false
	}
	win := yearlyWindow(z, z.rules, idx, t.Year)
	return r, idx, win, true
}

// evaluateIsDst implements §4.3's Is-DST algorithm for a materialized window.
func evaluateIsDst(r *AdjustmentRule, win dstWindow, t CalendarDateTime) bool {
	if win.startWall.Ticks() > win.endWall.Ticks() {
		return t.Before(win.endWall) || !t.Before(win.startWall)
	}
	if r.NoDaylightTransitions {
		return !t.Before(win.startWall) && !t.After(win.endWall)
	}
	lo, hi := win.startWall, win.endWall
	switch {
	case win.delta > 0:
		lo = addOffset(win.startWall, win.delta)
	case win.delta < 0:
		hi = addOffset(win.endWall, -win.delta)
	}
	return !t.Before(lo) && t.Before(hi)
}

// isDstWall reports §4.3 Is-DST for a Wall/Unspecified-tagged t, including
// the final disambiguation-bit override for ambiguous results.
func isDstWall(z *Zone, t CalendarDateTime) bool {
	r, _, win, ok := effectiveRule(z, t)
	if !ok || !r.HasDaylightSaving() {
		return false
	}
	dst := evaluateIsDst(r, win, t)
	if dst && t.Tag != Absolute && isAmbiguousWindow(r, win, t) {
		return t.IsDstIfAmbiguous
	}
	return dst
}

// ambiguousBounds returns the ambiguous window for r/win per §4.3's
// Is-ambiguous rules, or ok=false when delta==0 or the relevant marker
// suppresses the window.
func ambiguousBounds(r *AdjustmentRule, win dstWindow) (lo, hi CalendarDateTime, ok bool) {
	if win.delta == 0 {
		return CalendarDateTime{}, CalendarDateTime{}, false
	}
	if win.delta > 0 {
		if win.endMarker {
			return CalendarDateTime{}, CalendarDateTime{}, false
		}
		return addOffset(win.endWall, -win.delta), win.endWall, true
	}
	if win.startMarker {
		return CalendarDateTime{}, CalendarDateTime{}, false
	}
	return addOffset(win.startWall, win.delta), win.startWall, true
}

// invalidBounds returns the invalid window for r/win per §4.3's Is-invalid
// rules, or ok=false when delta==0 or the relevant marker suppresses it.
func invalidBounds(r *AdjustmentRule, win dstWindow) (lo, hi CalendarDateTime, ok bool) {
	if win.delta == 0 {
		return CalendarDateTime{}, CalendarDateTime{}, false
	}
	if win.delta > 0 {
		if win.startMarker {
			return CalendarDateTime{}, CalendarDateTime{}, false
		}
		return win.startWall, addOffset(win.startWall, win.delta), true
	}
	if win.endMarker {
		return CalendarDateTime{}, CalendarDateTime{}, false
	}
	return win.endWall, addOffset(win.endWall, -win.delta), true
}

func inHalfOpenWindow(t, lo, hi CalendarDateTime) bool {
	return !t.Before(lo) && t.Before(hi)
}

// isAmbiguousWindow reports whether t falls in r/win's ambiguous window,
// applying the ±1-year shift corner case for windows straddling a year boundary.
func isAmbiguousWindow(r *AdjustmentRule, win dstWindow, t CalendarDateTime) bool {
	lo, hi, ok := ambiguousBounds(r, win)
	if !ok {
		return false
	}
	if inHalfOpenWindow(t, lo, hi) {
		return true
	}
	if r.NoDaylightTransitions {
		return false
	}
	for _, dy := range [2]int{-1, 1} {
		shifted := dstWindow{
			startWall:   r.DaylightTransitionStart.MaterializeIn(t.Year + dy),
			endWall:     r.DaylightTransitionEnd.MaterializeIn(t.Year + dy),
			delta:       r.DaylightDelta,
			startMarker: win.startMarker,
			endMarker:   win.endMarker,
		}
		lo2, hi2, ok2 := ambiguousBounds(r, shifted)
		if ok2 && inHalfOpenWindow(t, lo2, hi2) {
			return true
		}
	}
	return false
}

// isAmbiguousWall reports §4.3 Is-ambiguous for a Wall/Unspecified-tagged t.
func isAmbiguousWall(z *Zone, t CalendarDateTime) bool {
	r, _, win, ok := effectiveRule(z, t)
	if !ok || !r.HasDaylightSaving() {
		return false
	}
	return isAmbiguousWindow(r, win, t)
}

// isInvalidWall reports §4.3 Is-invalid for a Wall/Unspecified-tagged t.
func isInvalidWall(z *Zone, t CalendarDateTime) bool {
	r, _, win, ok := effectiveRule(z, t)
	if !ok || !r.HasDaylightSaving() {
		return false
	}
	lo, hi, ok := invalidBounds(r, win)
	if !ok {
		return false
	}
	if inHalfOpenWindow(t, lo, hi) {
		return true
	}
	if r.NoDaylightTransitions {
		return false
	}
	for _, dy := range [2]int{-1, 1} {
		shifted := dstWindow{
			startWall:   r.DaylightTransitionStart.MaterializeIn(t.Year + dy),
			endWall:     r.DaylightTransitionEnd.MaterializeIn(t.Year + dy),
			delta:       r.DaylightDelta,
			startMarker: win.startMarker,
			endMarker:   win.endMarker,
		}
		lo2, hi2, ok2 := invalidBounds(r, shifted)
		if ok2 && inHalfOpenWindow(t, lo2, hi2) {
			return true
		}
	}
	return false
}
