package tzbin

import (
	"fmt"
	"strconv"
	"time"

	"ngrash.dev/tzrules/rules"
)

// ParseExtendedFuture implements §4.10: parse the POSIX-style trailing
// string from a v2/v3 TZif blob ("std offset [dst [offset]
// [,start[/time],end[/time]]]") and produce the final AdjustmentRule,
// anchored at startInstant and open-ended to rules.MaxInstant.
func ParseExtendedFuture(s string, startInstant rules.Instant) (rules.AdjustmentRule, error) {
	p := &posixParser{s: s}

	if _, err := p.readName(); err != nil {
		return rules.AdjustmentRule{}, newInvalidZoneErr(err)
	}
	stdOffsetMin, err := p.readOffset()
	if err != nil {
		return rules.AdjustmentRule{}, newInvalidZoneErr(err)
	}

	dateStart := rules.FromInstant(startInstant, rules.Absolute)
	dateEnd := rules.NewCalendarDateTime(9999, 12, 31, 23, 59, 59, 999, rules.Absolute)

	if p.atEnd() {
		baseUtcOffsetDelta, err := rules.NewDaylightDelta(stdOffsetMin)
		if err != nil {
			return rules.AdjustmentRule{}, newInvalidZoneErr(err)
		}
		r, err := rules.NewNoTransitionRule(dateStart, dateEnd, 0, baseUtcOffsetDelta)
		if err != nil {
			return rules.AdjustmentRule{}, newInvalidZoneErr(err)
		}
		return r, nil
	}

	if _, err := p.readName(); err != nil {
		return rules.AdjustmentRule{}, newInvalidZoneErr(err)
	}

	daylightDeltaMin := 60 // defaults to +1h when the dst offset is absent
	if !p.atEnd() && p.peek() != ',' {
		dstOffsetMin, err := p.readOffset()
		if err != nil {
			return rules.AdjustmentRule{}, newInvalidZoneErr(err)
		}
		daylightDeltaMin = dstOffsetMin - stdOffsetMin
	}

	startTT, err := defaultTransition()
	endTT := startTT
	if !p.atEnd() && p.peek() == ',' {
		p.next()
		startTT, err = p.readRule()
		if err != nil {
			return rules.AdjustmentRule{}, newInvalidZoneErr(err)
		}
		if err := p.expect(','); err != nil {
			return rules.AdjustmentRule{}, newInvalidZoneErr(err)
		}
		endTT, err = p.readRule()
		if err != nil {
			return rules.AdjustmentRule{}, newInvalidZoneErr(err)
		}
	}
	if err != nil {
		return rules.AdjustmentRule{}, newInvalidZoneErr(err)
	}

	daylightDelta, err := rules.NewDaylightDelta(daylightDeltaMin)
	if err != nil {
		return rules.AdjustmentRule{}, newInvalidZoneErr(err)
	}
	baseUtcOffsetDelta, err := rules.NewDaylightDelta(stdOffsetMin)
	if err != nil {
		return rules.AdjustmentRule{}, newInvalidZoneErr(err)
	}
	r, err := rules.NewTransitioningRule(dateStart, dateEnd, daylightDelta, startTT, endTT, baseUtcOffsetDelta)
	if err != nil {
		return rules.AdjustmentRule{}, newInvalidZoneErr(err)
	}
	return r, nil
}

func newInvalidZoneErr(err error) error {
	return rules.NewInvalidZoneError(fmt.Errorf("extended-future string: %w", err))
}

func defaultTransition() (rules.TransitionTime, error) {
	tod := rules.NewCalendarDateTime(1, 1, 1, 2, 0, 0, 0, rules.Unspecified)
	return rules.TransitionTime{Kind: rules.FloatingKind, TimeOfDay: tod}, nil
}

type posixParser struct {
	s   string
	pos int
}

func (p *posixParser) atEnd() bool   { return p.pos >= len(p.s) }
func (p *posixParser) peek() byte    { return p.s[p.pos] }
func (p *posixParser) next() byte    { c := p.s[p.pos]; p.pos++; return c }
func (p *posixParser) expect(c byte) error {
	if p.atEnd() || p.next() != c {
		return fmt.Errorf("expected %q", c)
	}
	return nil
}

// readName consumes a std/dst name: characters other than digits, '+', '-', ','.
func (p *posixParser) readName() (string, error) {
	start := p.pos
	for !p.atEnd() {
		c := p.peek()
		if (c >= '0' && c <= '9') || c == '+' || c == '-' || c == ',' {
			break
		}
		p.pos++
	}
	if p.pos == start {
		return "", fmt.Errorf("expected a name at position %d", start)
	}
	return p.s[start:p.pos], nil
}

// readOffset consumes "[±]H[:M[:S]]", returning whole minutes with the sign
// inverted per POSIX convention (positive means west of UTC in the input,
// east in our Offset), rounded to the nearest minute.
func (p *posixParser) readOffset() (int, error) {
	sign := 1
	if !p.atEnd() && (p.peek() == '+' || p.peek() == '-') {
		if p.next() == '-' {
			sign = -1
		}
	}
	h, err := p.readInt()
	if err != nil {
		return 0, fmt.Errorf("offset hour: %w", err)
	}
	m, s := 0, 0
	if !p.atEnd() && p.peek() == ':' {
		p.next()
		m, err = p.readInt()
		if err != nil {
			return 0, fmt.Errorf("offset minute: %w", err)
		}
		if !p.atEnd() && p.peek() == ':' {
			p.next()
			s, err = p.readInt()
			if err != nil {
				return 0, fmt.Errorf("offset second: %w", err)
			}
		}
	}
	totalSeconds := sign * (h*3600 + m*60 + s)
	minutes := roundToMinute(totalSeconds)
	return -minutes, nil
}

func roundToMinute(totalSeconds int) int {
	if totalSeconds >= 0 {
		return (totalSeconds + 30) / 60
	}
	return -((-totalSeconds + 30) / 60)
}

func (p *posixParser) readInt() (int, error) {
	start := p.pos
	for !p.atEnd() && p.peek() >= '0' && p.peek() <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0, fmt.Errorf("expected digits at position %d", start)
	}
	return strconv.Atoi(p.s[start:p.pos])
}

// readRule consumes one "start" or "end" spec: Mm.w.d [ "/" time ].
// Jn and bare n (Julian day forms) are rejected.
func (p *posixParser) readRule() (rules.TransitionTime, error) {
	if p.atEnd() || p.peek() != 'M' {
		return rules.TransitionTime{}, fmt.Errorf("unsupported date form: Jn/bare-day (Julian) forms are not supported")
	}
	p.next()
	month, err := p.readInt()
	if err != nil {
		return rules.TransitionTime{}, fmt.Errorf("month: %w", err)
	}
	if err := p.expect('.'); err != nil {
		return rules.TransitionTime{}, err
	}
	week, err := p.readInt()
	if err != nil {
		return rules.TransitionTime{}, fmt.Errorf("week: %w", err)
	}
	if err := p.expect('.'); err != nil {
		return rules.TransitionTime{}, err
	}
	dow, err := p.readInt()
	if err != nil {
		return rules.TransitionTime{}, fmt.Errorf("day-of-week: %w", err)
	}

	hour, minute, second, dayOverflow := 2, 0, 0, false
	if !p.atEnd() && p.peek() == '/' {
		p.next()
		hour, minute, second, dayOverflow, err = p.readTimeOfDay()
		if err != nil {
			return rules.TransitionTime{}, err
		}
	}

	day := 1
	if dayOverflow {
		day = 2
	}
	tod := rules.NewCalendarDateTime(1, 1, day, hour, minute, second, 0, rules.Unspecified)
	return rules.NewFloatingDateTransitionTime(tod, month, week, time.Weekday(dow))
}

// readTimeOfDay consumes "H[:M[:S]]", clamping H to [0,23] and reporting
// whether the raw hour overflowed a day boundary (e.g. "26" -> hour 2 of
// the following day). See the Design Notes' open question on this sentinel.
func (p *posixParser) readTimeOfDay() (hour, minute, second int, dayOverflow bool, err error) {
	rawHour, err := p.readInt()
	if err != nil {
		return 0, 0, 0, false, fmt.Errorf("time hour: %w", err)
	}
	if !p.atEnd() && p.peek() == ':' {
		p.next()
		minute, err = p.readInt()
		if err != nil {
			return 0, 0, 0, false, fmt.Errorf("time minute: %w", err)
		}
		if !p.atEnd() && p.peek() == ':' {
			p.next()
			second, err = p.readInt()
			if err != nil {
				return 0, 0, 0, false, fmt.Errorf("time second: %w", err)
			}
		}
	}
	if rawHour >= 24 {
		dayOverflow = true
		rawHour %= 24
	}
	return rawHour, minute, second, dayOverflow, nil
}
