package rules

import (
	"errors"
	"fmt"
	"strings"
)

// Zone owns an ordered, non-overlapping set of AdjustmentRules plus the base
// offset and identifiers that together answer every conversion and
// classification query. Zone values are immutable once constructed.
type Zone struct {
	id                        string
	displayName               string
	standardName, daylightName string
	baseUtcOffset             Offset
	rules                     []AdjustmentRule
}

// UTC is the process-wide sentinel zone with no daylight saving rules.
var UTC = &Zone{
	id:            "UTC",
	displayName:   "Coordinated Universal Time",
	standardName:  "UTC",
	daylightName:  "UTC",
	baseUtcOffset: 0,
}

// NewZone validates and constructs a Zone. rules must be ordered and
// non-overlapping: rules[i].DateStart must be strictly after rules[i-1].DateEnd.
func NewZone(id string, baseUtcOffset Offset, rules []AdjustmentRule, displayName, standardName, daylightName string) (*Zone, error) {
	var errs []error
	if id == "" {
		errs = append(errs, fmt.Errorf("zone id must not be empty"))
	}
	if strings.ContainsRune(id, 0) {
		errs = append(errs, fmt.Errorf("zone id must not contain NUL"))
	}
	if baseUtcOffset < MinOffset || baseUtcOffset > MaxOffset {
		errs = append(errs, fmt.Errorf("baseUtcOffset %v out of range [%v, %v]", baseUtcOffset, MinOffset, MaxOffset))
	}
	for i := 1; i < len(rules); i++ {
		if rules[i].DateStart.Ticks() <= rules[i-1].DateEnd.Ticks() {
			errs = append(errs, fmt.Errorf("rule %d starts at or before rule %d ends", i, i-1))
		}
	}
	if len(errs) > 0 {
		return nil, newError(ErrInvalidZone, errors.Join(errs...))
	}
	cp := make([]AdjustmentRule, len(rules))
	copy(cp, rules)
	return &Zone{
		id:            id,
		displayName:   displayName,
		standardName:  standardName,
		daylightName:  daylightName,
		baseUtcOffset: baseUtcOffset,
		rules:         cp,
	}, nil
}

func (z *Zone) ID() string             { return z.id }
func (z *Zone) DisplayName() string    { return z.displayName }
func (z *Zone) StandardName() string   { return z.standardName }
func (z *Zone) DaylightName() string   { return z.daylightName }
func (z *Zone) BaseUtcOffset() Offset  { return z.baseUtcOffset }

// Rules returns a copy of z's ordered rule array.
func (z *Zone) Rules() []AdjustmentRule {
	cp := make([]AdjustmentRule, len(z.rules))
	copy(cp, z.rules)
	return cp
}

// SupportsDaylightSavingTime reports whether any rule in z has HasDaylightSaving.
func (z *Zone) SupportsDaylightSavingTime() bool {
	for _, r := range z.rules {
		if r.HasDaylightSaving() {
			return true
		}
	}
	return false
}

// Equal compares z and other per the data model's equality contract: id
// case-insensitively, plus structural equality of BaseUtcOffset and Rules.
// Display names are excluded.
func (z *Zone) Equal(other *Zone) bool {
	if z == nil || other == nil {
		return z == other
	}
	if !strings.EqualFold(z.id, other.id) {
		return false
	}
	if z.baseUtcOffset != other.baseUtcOffset {
		return false
	}
	if len(z.rules) != len(other.rules) {
		return false
	}
	for i := range z.rules {
		if z.rules[i] != other.rules[i] {
			return false
		}
	}
	return true
}
