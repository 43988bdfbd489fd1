package rules

import (
	"fmt"
	"strings"
)

// GetOffset implements §4.6 getOffset: the total UTC offset in effect at t.
func (z *Zone) GetOffset(t CalendarDateTime) Offset {
	if t.Tag == Absolute {
		offset, _, _ := offsetFromInstant(z, t.Ticks())
		return offset
	}
	r, _ := selectRule(z, t)
	offset := z.baseUtcOffset
	if r == nil {
		return offset
	}
	offset += r.BaseUtcOffsetDelta
	if isDstWall(z, t) {
		offset += r.DaylightDelta
	}
	return offset
}

// IsDaylightSaving implements §4.6 isDaylightSaving.
func (z *Zone) IsDaylightSaving(t CalendarDateTime) bool {
	if t.Tag == Absolute {
		_, dst, _ := offsetFromInstant(z, t.Ticks())
		return dst
	}
	return isDstWall(z, t)
}

// IsAmbiguous implements §4.6 isAmbiguous.
func (z *Zone) IsAmbiguous(t CalendarDateTime) bool {
	if t.Tag == Absolute {
		_, _, amb := offsetFromInstant(z, t.Ticks())
		return amb
	}
	return isAmbiguousWall(z, t)
}

// IsInvalid implements §4.6 isInvalid. Absolute instants always exist, so
// this is only meaningful for Wall/Unspecified times.
func (z *Zone) IsInvalid(t CalendarDateTime) bool {
	if t.Tag == Absolute {
		return false
	}
	return isInvalidWall(z, t)
}

// Convert implements §4.6 convert. The receiver is the source zone t is
// interpreted in; destZone is where the result is expressed.
func (sourceZone *Zone) Convert(t CalendarDateTime, destZone *Zone, opts ConversionOptions) (CalendarDateTime, error) {
	if t.Tag == Absolute && !strings.EqualFold(sourceZone.ID(), "UTC") {
		return CalendarDateTime{}, newError(ErrTagMismatch, fmt.Errorf("tag Absolute requires sourceZone UTC, got %q", sourceZone.ID()))
	}
	if t.Tag != Absolute && !opts.NoThrowOnInvalidTime && isInvalidWall(sourceZone, t) {
		return CalendarDateTime{}, newError(ErrInvalidTime, fmt.Errorf("wall time %04d-%02d-%02d %02d:%02d:%02d.%03d is invalid in zone %q",
			t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second, t.Millisecond, sourceZone.ID()))
	}

	var u Instant
	if t.Tag == Absolute {
		u = t.Ticks()
	} else {
		u = t.Ticks().AddOffset(-sourceZone.GetOffset(t))
	}

	destOffset, _, _ := offsetFromInstant(destZone, u)
	destTag := Wall
	if strings.EqualFold(destZone.ID(), "UTC") {
		destTag = Absolute
	}
	return FromInstant(u.AddOffset(destOffset), destTag), nil
}

// GetAmbiguousOffsets implements §4.6 getAmbiguousOffsets: the standard and
// daylight offsets straddling an ambiguous time, in ascending order.
func (z *Zone) GetAmbiguousOffsets(t CalendarDateTime) ([2]Offset, error) {
	if !z.SupportsDaylightSavingTime() || !z.IsAmbiguous(t) {
		return [2]Offset{}, newError(ErrNotAmbiguous, fmt.Errorf("time is not ambiguous in zone %q", z.ID()))
	}
	r, _ := selectRule(z, t)
	if r == nil {
		return [2]Offset{}, newError(ErrNotAmbiguous, fmt.Errorf("time is not ambiguous in zone %q", z.ID()))
	}
	standard := z.baseUtcOffset + r.BaseUtcOffsetDelta
	daylight := standard + r.DaylightDelta
	if standard <= daylight {
		return [2]Offset{standard, daylight}, nil
	}
	return [2]Offset{daylight, standard}, nil
}
