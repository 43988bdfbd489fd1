package rules

import (
	"fmt"
	"time"
)

// Offset is a signed number of minutes away from UTC.
type Offset int32

const (
	// MinOffset is the smallest valid zone offset, -14h.
	MinOffset Offset = -14 * 60
	// MaxOffset is the largest valid zone offset, +14h.
	MaxOffset Offset = 14 * 60
	// minDaylightDelta is the smallest valid AdjustmentRule.DaylightDelta, -23h.
	minDaylightDelta Offset = -23 * 60
	// maxDaylightDelta is the largest valid AdjustmentRule.DaylightDelta, +14h.
	maxDaylightDelta Offset = 14 * 60
)

// NewOffset validates minutes against [MinOffset, MaxOffset] and returns an Offset.
func NewOffset(minutes int) (Offset, error) {
	o := Offset(minutes)
	if o < MinOffset || o > MaxOffset {
		return 0, newError(ErrInvalidZone, fmt.Errorf("offset %d minutes out of range [%d, %d]", minutes, MinOffset, MaxOffset))
	}
	return o, nil
}

// NewDaylightDelta validates minutes against the wider daylightDelta range.
func NewDaylightDelta(minutes int) (Offset, error) {
	o := Offset(minutes)
	if o < minDaylightDelta || o > maxDaylightDelta {
		return 0, newError(ErrInvalidZone, fmt.Errorf("daylight delta %d minutes out of range [%d, %d]", minutes, minDaylightDelta, maxDaylightDelta))
	}
	return o, nil
}

// Duration returns o as a time.Duration.
func (o Offset) Duration() time.Duration {
	return time.Duration(o) * time.Minute
}

// String renders o as ±HH:MM.
func (o Offset) String() string {
	sign := "+"
	m := int(o)
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%02d:%02d", sign, m/60, m%60)
}
