// Package tzbin decodes compiled tz-database binary blobs (RFC 8536,
// versions 1-3) into the rules engine's AdjustmentRule model, dispatching
// the trailing extended-future string (if any) to the POSIX mini-parser.
package tzbin

import (
	"bytes"
	"fmt"
	"time"

	"ngrash.dev/tzrules/rules"
	"ngrash.dev/tzrules/tzif"
)

// Decode parses a TZif blob into a *rules.Zone identified by id.
func Decode(data []byte, id string) (*rules.Zone, error) {
	// DecodeData and Validate already classify their failures as
	// rules.ErrInvalidZone; wrapping only adds the zone id for context.
	d, err := tzif.DecodeData(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zone %q: %w", id, err)
	}
	if err := tzif.Validate(d); err != nil {
		return nil, fmt.Errorf("zone %q: %w", id, err)
	}

	var transitions []int64
	var typeIdx []uint8
	var types []tzif.LocalTimeTypeRecord
	var designation []byte
	var tzString string

	if d.Version > tzif.V1 {
		transitions = d.V2Data.TransitionTimes
		typeIdx = d.V2Data.TransitionTypes
		types = d.V2Data.LocalTimeTypeRecord
		designation = d.V2Data.TimeZoneDesignation
		tzString = string(d.V2Footer.TZString)
	} else {
		transitions = widen32(d.V1Data.TransitionTimes)
		typeIdx = d.V1Data.TransitionTypes
		types = d.V1Data.LocalTimeTypeRecord
		designation = d.V1Data.TimeZoneDesignation
	}

	if len(types) == 0 {
		return nil, rules.NewInvalidZoneError(fmt.Errorf("zone %q: no local time type records", id))
	}

	zoneBaseSeconds, standardAbbrev, daylightAbbrev := scanZoneBase(transitions, typeIdx, types, designation, time.Now().Unix())
	zoneBaseMinutes := roundToMinutes(int64(zoneBaseSeconds))
	baseUtcOffset, err := rules.NewOffset(zoneBaseMinutes)
	if err != nil {
		return nil, rules.NewInvalidZoneError(err)
	}

	var adjustmentRules []rules.AdjustmentRule

	firstIdx := 0
	for firstIdx < len(transitions) && unixToInstant(transitions[firstIdx]) < rules.MinInstant {
		firstIdx++
	}

	if firstIdx < len(transitions) {
		openType := firstStandardOrFirst(types)
		end := unixToInstant(transitions[firstIdx]) - 1
		r, err := buildNoTransitionRule(rules.MinInstant, end, openType, zoneBaseSeconds)
		if err != nil {
			return nil, rules.NewInvalidZoneError(err)
		}
		adjustmentRules = append(adjustmentRules, r)
	}

	for i := firstIdx; i < len(transitions); i++ {
		start := unixToInstant(transitions[i])
		var end rules.Instant
		switch {
		case i+1 < len(transitions):
			end = unixToInstant(transitions[i+1]) - 1
		case tzString != "":
			// The POSIX tail rule takes over from here; leave this rule's
			// window no wider than the last transition's own instant
			// instead of claiming all the way to MaxInstant. MaxInstant
			// carries a sub-millisecond remainder that CalendarDateTime
			// can't represent, so boundedTailStart's +1ms nudge would
			// round right back down to the same millisecond and collide
			// with this rule's end.
			end = start
		default:
			end = rules.MaxInstant
		}
		typeRec := types[typeIdx[i]]
		r, err := buildNoTransitionRule(start, end, typeRec, zoneBaseSeconds)
		if err != nil {
			return nil, rules.NewInvalidZoneError(err)
		}
		adjustmentRules = append(adjustmentRules, r)
	}

	if tzString != "" {
		tail, err := ParseExtendedFuture(tzString, boundedTailStart(adjustmentRules))
		if err != nil {
			return nil, err
		}
		// ParseExtendedFuture reports the string's standard offset from UTC;
		// rebase it onto this zone's base offset like every other rule's
		// BaseUtcOffsetDelta.
		tail.BaseUtcOffsetDelta -= baseUtcOffset
		adjustmentRules = append(adjustmentRules, tail)
	}

	return rules.NewZone(id, baseUtcOffset, adjustmentRules, id, standardAbbrev, daylightAbbrev)
}

// boundedTailStart anchors the extended-future tail rule one millisecond
// after the last decoded rule's window, or at MinInstant when there were
// none. The last decoded rule's DateEnd is already millisecond-rounded (it
// came from a CalendarDateTime), so nudging by a full millisecond — not a
// single tick — is what guarantees the tail's own DateStart lands strictly
// after it once it's rounded the same way.
func boundedTailStart(rs []rules.AdjustmentRule) rules.Instant {
	if len(rs) == 0 {
		return rules.MinInstant
	}
	return rs[len(rs)-1].DateEnd.Ticks().AddMilliseconds(1)
}

func buildNoTransitionRule(start, end rules.Instant, typeRec tzif.LocalTimeTypeRecord, zoneBaseSeconds int32) (rules.AdjustmentRule, error) {
	deltaMin := roundToMinutes(int64(typeRec.Utoff) - int64(zoneBaseSeconds))
	var daylightMin, baseMin int
	if typeRec.Dst {
		daylightMin = deltaMin
	} else {
		baseMin = deltaMin
	}
	dateStart := rules.FromInstant(start, rules.Absolute)
	dateEnd := rules.FromInstant(end, rules.Absolute)
	daylightDelta, err := rules.NewDaylightDelta(daylightMin)
	if err != nil {
		return rules.AdjustmentRule{}, err
	}
	baseDelta, err := rules.NewDaylightDelta(baseMin)
	if err != nil {
		return rules.AdjustmentRule{}, err
	}
	r, err := rules.NewNoTransitionRule(dateStart, dateEnd, daylightDelta, baseDelta)
	if err != nil {
		return rules.AdjustmentRule{}, err
	}
	if typeRec.Dst {
		// Carried-over kludge from the source format: tag the rule with a
		// synthetic transition so a later textual round-trip preserves the
		// DST classification bit even if daylightDelta happens to be zero.
		r.DaylightTransitionStart = dstSentinel
	}
	return r, nil
}

var dstSentinel = mustSentinel()

func mustSentinel() rules.TransitionTime {
	tod := rules.NewCalendarDateTime(1, 1, 1, 0, 0, 0, 2, rules.Unspecified)
	tt, err := rules.NewFixedDateTransitionTime(tod, 1, 1)
	if err != nil {
		panic(err)
	}
	return tt
}

func firstStandardOrFirst(types []tzif.LocalTimeTypeRecord) tzif.LocalTimeTypeRecord {
	for _, t := range types {
		if !t.Dst {
			return t
		}
	}
	return types[0]
}

// scanZoneBase implements §4.7's zoneBaseUtcOffset heuristic plus the §6.1
// supplement that also tracks the most-recently-active standard/DST
// abbreviation for display purposes.
func scanZoneBase(transitions []int64, typeIdx []uint8, types []tzif.LocalTimeTypeRecord, designation []byte, now int64) (zoneBase int32, standardAbbrev, daylightAbbrev string) {
	standardAbbrev = abbrevAt(designation, firstStandardOrFirst(types).Idx)
	for _, t := range types {
		if t.Dst {
			daylightAbbrev = abbrevAt(designation, t.Idx)
			break
		}
	}

	for i := len(transitions) - 1; i >= 0; i-- {
		if transitions[i] > now {
			continue
		}
		t := types[typeIdx[i]]
		if t.Dst {
			if daylightAbbrev == "" {
				daylightAbbrev = abbrevAt(designation, t.Idx)
			}
			continue
		}
		return t.Utoff, abbrevAt(designation, t.Idx), daylightAbbrev
	}
	for _, t := range types {
		if !t.Dst {
			return t.Utoff, abbrevAt(designation, t.Idx), daylightAbbrev
		}
	}
	return types[0].Utoff, abbrevAt(designation, types[0].Idx), daylightAbbrev
}

func abbrevAt(designation []byte, idx uint8) string {
	if int(idx) >= len(designation) {
		return ""
	}
	end := int(idx)
	for end < len(designation) && designation[end] != 0 {
		end++
	}
	return string(designation[idx:end])
}

func widen32(ts []int32) []int64 {
	out := make([]int64, len(ts))
	for i, t := range ts {
		out[i] = int64(t)
	}
	return out
}

func unixToInstant(unixSeconds int64) rules.Instant {
	t := time.Unix(unixSeconds, 0).UTC()
	return rules.FromTime(t)
}

func roundToMinutes(totalSeconds int64) int {
	if totalSeconds >= 0 {
		return int((totalSeconds + 30) / 60)
	}
	return -int((-totalSeconds + 30) / 60)
}
