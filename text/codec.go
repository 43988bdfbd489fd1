package text

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ngrash.dev/tzrules/rules"
)

// Encode serializes z per the grammar in the rules engine's textual wire
// format: top-level tokens separated by ';', rules and transitions bracketed
// by '[' ']'.
func Encode(z *rules.Zone) string {
	var b strings.Builder
	b.WriteString(escape(z.ID()))
	b.WriteByte(fieldSep)
	fmt.Fprintf(&b, "%d", int(z.BaseUtcOffset()))
	b.WriteByte(fieldSep)
	b.WriteString(escape(z.DisplayName()))
	b.WriteByte(fieldSep)
	b.WriteString(escape(z.StandardName()))
	b.WriteByte(fieldSep)
	b.WriteString(escape(z.DaylightName()))
	b.WriteByte(fieldSep)
	for _, r := range z.Rules() {
		encodeRule(&b, r)
		b.WriteByte(fieldSep)
	}
	b.WriteByte(fieldSep)
	return b.String()
}

func encodeRule(b *strings.Builder, r rules.AdjustmentRule) {
	b.WriteByte(ruleOpen)
	b.WriteString(encodeDate(r.DateStart))
	b.WriteByte(fieldSep)
	b.WriteString(encodeDate(r.DateEnd))
	b.WriteByte(fieldSep)
	fmt.Fprintf(b, "%d", int(r.DaylightDelta))
	b.WriteByte(fieldSep)
	encodeTransition(b, r.DaylightTransitionStart)
	b.WriteByte(fieldSep)
	encodeTransition(b, r.DaylightTransitionEnd)
	b.WriteByte(fieldSep)
	if r.BaseUtcOffsetDelta != 0 || r.NoDaylightTransitions {
		fmt.Fprintf(b, "%d", int(r.BaseUtcOffsetDelta))
		b.WriteByte(fieldSep)
	}
	if r.NoDaylightTransitions {
		b.WriteByte('1')
		b.WriteByte(fieldSep)
	}
	b.WriteByte(ruleClose)
}

func encodeDate(t rules.CalendarDateTime) string {
	return fmt.Sprintf("%02d:%02d:%04d", t.Month, t.Day, t.Year)
}

func encodeTimeOfDay(t rules.CalendarDateTime) string {
	return fmt.Sprintf("%02d:%02d:%02d.%03d", t.Hour, t.Minute, t.Second, t.Millisecond)
}

func encodeTransition(b *strings.Builder, tt rules.TransitionTime) {
	b.WriteByte(ruleOpen)
	if tt.Kind == rules.FixedDateKind {
		b.WriteByte('1')
	} else {
		b.WriteByte('0')
	}
	b.WriteByte(fieldSep)
	b.WriteString(encodeTimeOfDay(tt.TimeOfDay))
	b.WriteByte(fieldSep)
	fmt.Fprintf(b, "%d", tt.Month)
	b.WriteByte(fieldSep)
	if tt.Kind == rules.FixedDateKind {
		fmt.Fprintf(b, "%d", tt.Day)
		b.WriteByte(fieldSep)
	} else {
		fmt.Fprintf(b, "%d", tt.Week)
		b.WriteByte(fieldSep)
		fmt.Fprintf(b, "%d", int(tt.DayOfWeek))
		b.WriteByte(fieldSep)
	}
	b.WriteByte(ruleClose)
}

// Decode parses s per the same grammar, producing a *rules.Zone. Decoding
// failures surface as SerializationError.
func Decode(s string) (*rules.Zone, error) {
	p := &parser{runes: []rune(s)}

	id, err := p.readField()
	if err != nil {
		return nil, newSerializationError("zone id: " + err.Error())
	}
	if err := p.expect(fieldSep); err != nil {
		return nil, newSerializationError("after zone id: " + err.Error())
	}

	baseOffsetStr, err := p.readField()
	if err != nil {
		return nil, newSerializationError("baseUtcOffset: " + err.Error())
	}
	if err := p.expect(fieldSep); err != nil {
		return nil, newSerializationError("after baseUtcOffset: " + err.Error())
	}
	baseOffsetMin, err := strconv.Atoi(baseOffsetStr)
	if err != nil {
		return nil, newSerializationError("baseUtcOffset not numeric: " + baseOffsetStr)
	}

	display, err := readAndSkip(p)
	if err != nil {
		return nil, newSerializationError("displayName: " + err.Error())
	}
	standard, err := readAndSkip(p)
	if err != nil {
		return nil, newSerializationError("standardName: " + err.Error())
	}
	daylight, err := readAndSkip(p)
	if err != nil {
		return nil, newSerializationError("daylightName: " + err.Error())
	}

	var ruleList []rules.AdjustmentRule
	for {
		c, ok := p.peek()
		if !ok || c != ruleOpen {
			break
		}
		r, err := parseRule(p)
		if err != nil {
			return nil, newSerializationError("rule: " + err.Error())
		}
		ruleList = append(ruleList, r)
		if c2, ok2 := p.peek(); ok2 && c2 == fieldSep {
			p.next()
		}
	}

	baseOffset, err := rules.NewOffset(baseOffsetMin)
	if err != nil {
		return nil, newSerializationError(err.Error())
	}
	z, err := rules.NewZone(id, baseOffset, ruleList, display, standard, daylight)
	if err != nil {
		return nil, newSerializationError(err.Error())
	}
	return z, nil
}

func readAndSkip(p *parser) (string, error) {
	v, err := p.readField()
	if err != nil {
		return "", err
	}
	return v, p.expect(fieldSep)
}

func parseRule(p *parser) (rules.AdjustmentRule, error) {
	if err := p.expect(ruleOpen); err != nil {
		return rules.AdjustmentRule{}, err
	}
	dateStartStr, err := readAndSkip(p)
	if err != nil {
		return rules.AdjustmentRule{}, err
	}
	dateEndStr, err := readAndSkip(p)
	if err != nil {
		return rules.AdjustmentRule{}, err
	}
	deltaStr, err := readAndSkip(p)
	if err != nil {
		return rules.AdjustmentRule{}, err
	}
	daylightDeltaMin, err := strconv.Atoi(deltaStr)
	if err != nil {
		return rules.AdjustmentRule{}, fmt.Errorf("daylightDelta not numeric: %s", deltaStr)
	}
	start, err := parseTransition(p)
	if err != nil {
		return rules.AdjustmentRule{}, err
	}
	if err := p.expect(fieldSep); err != nil {
		return rules.AdjustmentRule{}, err
	}
	end, err := parseTransition(p)
	if err != nil {
		return rules.AdjustmentRule{}, err
	}
	if err := p.expect(fieldSep); err != nil {
		return rules.AdjustmentRule{}, err
	}

	var extras []string
	for {
		c, ok := p.peek()
		if !ok {
			return rules.AdjustmentRule{}, fmt.Errorf("unterminated rule")
		}
		if c == ruleClose {
			p.next()
			break
		}
		field, err := p.readField()
		if err != nil {
			return rules.AdjustmentRule{}, err
		}
		extras = append(extras, field)
		if c2, ok2 := p.peek(); ok2 && c2 == fieldSep {
			p.next()
		}
	}

	var baseUtcOffsetDeltaMin int
	noDaylightTransitions := false
	switch {
	case len(extras) >= 2 && extras[1] == "1":
		noDaylightTransitions = true
		baseUtcOffsetDeltaMin, err = strconv.Atoi(extras[0])
		if err != nil {
			return rules.AdjustmentRule{}, fmt.Errorf("baseUtcOffsetDelta not numeric: %s", extras[0])
		}
	case len(extras) == 1 && extras[0] == "1":
		noDaylightTransitions = true
	case len(extras) >= 1:
		baseUtcOffsetDeltaMin, err = strconv.Atoi(extras[0])
		if err != nil {
			return rules.AdjustmentRule{}, fmt.Errorf("baseUtcOffsetDelta not numeric: %s", extras[0])
		}
	}

	dateStart, err := parseDate(dateStartStr, noDaylightTransitions)
	if err != nil {
		return rules.AdjustmentRule{}, err
	}
	dateEnd, err := parseDate(dateEndStr, noDaylightTransitions)
	if err != nil {
		return rules.AdjustmentRule{}, err
	}
	daylightDelta, err := rules.NewDaylightDelta(daylightDeltaMin)
	if err != nil {
		return rules.AdjustmentRule{}, err
	}
	baseUtcOffsetDelta, err := rules.NewDaylightDelta(baseUtcOffsetDeltaMin)
	if err != nil {
		return rules.AdjustmentRule{}, err
	}

	if noDaylightTransitions {
		r, err := rules.NewNoTransitionRule(dateStart, dateEnd, daylightDelta, baseUtcOffsetDelta)
		if err != nil {
			return rules.AdjustmentRule{}, err
		}
		// The grammar always carries ttStart/ttEnd even for no-transition
		// rules; preserve them (the binary decoder's DST sentinel rides
		// here) so a decode-encode-decode cycle is the identity.
		r.DaylightTransitionStart = start
		r.DaylightTransitionEnd = end
		return r, nil
	}
	r, err := rules.NewTransitioningRule(dateStart, dateEnd, daylightDelta, start, end, baseUtcOffsetDelta)
	if err != nil {
		return rules.AdjustmentRule{}, err
	}
	return r, nil
}

// parseDate parses the "MM:dd:yyyy" dateStart/dateEnd form. No-transition
// rules require Tag=Absolute endpoints; transitioning rules use Unspecified
// with zero time-of-day, matching the grammar's date-only (no time) field.
func parseDate(s string, absolute bool) (rules.CalendarDateTime, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return rules.CalendarDateTime{}, fmt.Errorf("date %q not MM:dd:yyyy", s)
	}
	month, err1 := strconv.Atoi(parts[0])
	day, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return rules.CalendarDateTime{}, fmt.Errorf("date %q has non-numeric field", s)
	}
	tag := rules.Unspecified
	if absolute {
		tag = rules.Absolute
	}
	return rules.NewCalendarDateTime(year, month, day, 0, 0, 0, 0, tag), nil
}

func parseTransition(p *parser) (rules.TransitionTime, error) {
	if err := p.expect(ruleOpen); err != nil {
		return rules.TransitionTime{}, err
	}
	isFixedStr, err := readAndSkip(p)
	if err != nil {
		return rules.TransitionTime{}, err
	}
	timeOfDayStr, err := readAndSkip(p)
	if err != nil {
		return rules.TransitionTime{}, err
	}
	monthStr, err := readAndSkip(p)
	if err != nil {
		return rules.TransitionTime{}, err
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return rules.TransitionTime{}, fmt.Errorf("transition month not numeric: %s", monthStr)
	}
	timeOfDay, err := parseTimeOfDay(timeOfDayStr)
	if err != nil {
		return rules.TransitionTime{}, err
	}

	isFixed := isFixedStr == "1"
	var tt rules.TransitionTime
	if isFixed {
		dayStr, err := readAndSkip(p)
		if err != nil {
			return rules.TransitionTime{}, err
		}
		day, err := strconv.Atoi(dayStr)
		if err != nil {
			return rules.TransitionTime{}, fmt.Errorf("transition day not numeric: %s", dayStr)
		}
		if err := skipUnknownFields(p); err != nil {
			return rules.TransitionTime{}, err
		}
		if err := p.expect(ruleClose); err != nil {
			return rules.TransitionTime{}, err
		}
		tt, err = rules.NewFixedDateTransitionTime(timeOfDay, month, day)
		if err != nil {
			return rules.TransitionTime{}, err
		}
	} else {
		weekStr, err := readAndSkip(p)
		if err != nil {
			return rules.TransitionTime{}, err
		}
		dowStr, err := readAndSkip(p)
		if err != nil {
			return rules.TransitionTime{}, err
		}
		week, err := strconv.Atoi(weekStr)
		if err != nil {
			return rules.TransitionTime{}, fmt.Errorf("transition week not numeric: %s", weekStr)
		}
		dow, err := strconv.Atoi(dowStr)
		if err != nil {
			return rules.TransitionTime{}, fmt.Errorf("transition dayOfWeek not numeric: %s", dowStr)
		}
		if err := skipUnknownFields(p); err != nil {
			return rules.TransitionTime{}, err
		}
		if err := p.expect(ruleClose); err != nil {
			return rules.TransitionTime{}, err
		}
		tt, err = rules.NewFloatingDateTransitionTime(timeOfDay, month, week, time.Weekday(dow))
		if err != nil {
			return rules.TransitionTime{}, err
		}
	}
	return tt, nil
}

func parseTimeOfDay(s string) (rules.CalendarDateTime, error) {
	var hour, minute, second, millisecond int
	if _, err := fmt.Sscanf(s, "%d:%d:%d.%d", &hour, &minute, &second, &millisecond); err != nil {
		return rules.CalendarDateTime{}, fmt.Errorf("timeOfDay %q not HH:mm:ss.FFF", s)
	}
	return rules.NewCalendarDateTime(1, 1, 1, hour, minute, second, millisecond, rules.Unspecified), nil
}

func skipUnknownFields(p *parser) error {
	for {
		c, ok := p.peek()
		if !ok {
			return fmt.Errorf("unterminated transition")
		}
		if c == ruleClose {
			return nil
		}
		if _, err := p.readField(); err != nil {
			return err
		}
		if c2, ok2 := p.peek(); ok2 && c2 == fieldSep {
			p.next()
		}
	}
}

type parser struct {
	runes []rune
	pos   int
}

func (p *parser) peek() (rune, bool) {
	if p.pos >= len(p.runes) {
		return 0, false
	}
	return p.runes[p.pos], true
}

func (p *parser) next() (rune, bool) {
	r, ok := p.peek()
	if ok {
		p.pos++
	}
	return r, ok
}

func (p *parser) expect(r rune) error {
	c, ok := p.next()
	if !ok || c != r {
		return fmt.Errorf("expected %q", r)
	}
	return nil
}

// readField reads characters up to (but not consuming) the next unescaped
// field/rule delimiter, resolving backslash escapes as it goes.
func (p *parser) readField() (string, error) {
	var b strings.Builder
	for {
		c, ok := p.peek()
		if !ok {
			return "", fmt.Errorf("unexpected end of input")
		}
		if c == escapeChar {
			p.next()
			c2, ok2 := p.next()
			if !ok2 || !strings.ContainsRune(escapedChars, c2) {
				return "", fmt.Errorf("invalid escape sequence")
			}
			b.WriteRune(c2)
			continue
		}
		if c == fieldSep || c == ruleOpen || c == ruleClose {
			return b.String(), nil
		}
		p.next()
		b.WriteRune(c)
	}
}
