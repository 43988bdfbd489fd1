// Package tzif implements the RFC 8536 TZif binary layout: header, data
// block, and extended-future footer, for both the 32-bit (V1) and 64-bit
// (V2+) transition-time encodings.
// https://datatracker.ietf.org/doc/html/rfc8536
package tzif

import (
	"encoding/binary"
	"fmt"
	"io"
)

// order is fixed by RFC 8536 §3: every multi-octet field is big-endian,
// two's-complement for signed values.
var order = binary.BigEndian

// Version is the single version octet that follows the "TZif" magic. V1
// carries only 32-bit transition times; V2 and later add a second,
// 64-bit-transition data block plus a footer and widen the representable
// range far enough to need it.
type Version byte

const (
	V1 Version = 0x00
	V2 Version = 0x32 // '2'
	V3 Version = 0x33 // '3'
	// V4 isn't in RFC 8536 itself but is documented in the tzfile(5) man
	// page: it changes how the last leap-second record is interpreted but
	// doesn't otherwise affect decoding here.
	V4 Version = 0x34 // '4'
)

func (v Version) String() string {
	switch v {
	case V1:
		return "V1 (0x00)"
	case V2:
		return "V2 (0x32)"
	case V3:
		return "V3 (0x33)"
	case V4:
		return "V4 (0x34)"
	default:
		return fmt.Sprintf("<undefined version (%d)>", v)
	}
}

// Magic is the four-octet sequence that opens every TZif file.
var Magic = [4]byte{'T', 'Z', 'i', 'f'}

// Header carries the six data-block element counts RFC 8536 §3.1 defines,
// plus the version octet and its 15 reserved bytes.
type Header struct {
	Version  Version
	Reserved [15]byte

	// Isutcnt and Isstdcnt must each be 0 or equal to Typecnt.
	Isutcnt  uint32
	Isstdcnt uint32
	Leapcnt  uint32
	Timecnt  uint32
	// Typecnt and Charcnt must both be nonzero.
	Typecnt uint32
	Charcnt uint32
}

func (h Header) Write(w io.Writer) error {
	if _, err := w.Write(Magic[:]); err != nil {
		return err
	}
	return binary.Write(w, order, h)
}

// V1DataBlock is the 32-bit-transition-time data block used by V1 files,
// and by the leading half of every V2+ file (RFC 8536 §3.2-3.3 requires
// the V1 block to be present even when the V2+ block supersedes it).
type V1DataBlock struct {
	TransitionTimes        []int32
	TransitionTypes        []uint8
	LocalTimeTypeRecord    []LocalTimeTypeRecord
	TimeZoneDesignation    []byte
	LeapSecondRecords      []V1LeapSecondRecord
	StandardWallIndicators []bool
	UTLocalIndicators      []bool
}

func (b V1DataBlock) Write(w io.Writer) error {
	if err := binary.Write(w, order, b.TransitionTimes); err != nil {
		return err
	}
	if err := binary.Write(w, order, b.TransitionTypes); err != nil {
		return err
	}
	for _, r := range b.LocalTimeTypeRecord {
		if err := r.Write(w); err != nil {
			return err
		}
	}
	if _, err := w.Write(b.TimeZoneDesignation); err != nil {
		return err
	}
	for _, r := range b.LeapSecondRecords {
		if err := r.Write(w); err != nil {
			return err
		}
	}
	return writeIndicators(w, b.StandardWallIndicators, b.UTLocalIndicators)
}

// V1LeapSecondRecord pairs a leap-second occurrence with the correction
// in effect from that point on.
type V1LeapSecondRecord struct {
	Occur int32
	Corr  int32
}

func (r V1LeapSecondRecord) Write(w io.Writer) error {
	if err := binary.Write(w, order, r.Occur); err != nil {
		return err
	}
	return binary.Write(w, order, r.Corr)
}

// V2DataBlock mirrors V1DataBlock field-for-field except that transition
// times are 64-bit, wide enough to represent the proleptic range this
// engine's Instant needs.
type V2DataBlock struct {
	TransitionTimes        []int64
	TransitionTypes        []uint8
	LocalTimeTypeRecord    []LocalTimeTypeRecord
	TimeZoneDesignation    []byte
	LeapSecondRecords      []V2LeapSecondRecord
	StandardWallIndicators []bool
	UTLocalIndicators      []bool
}

func (b V2DataBlock) Write(w io.Writer) error {
	if err := binary.Write(w, order, b.TransitionTimes); err != nil {
		return err
	}
	if err := binary.Write(w, order, b.TransitionTypes); err != nil {
		return err
	}
	for _, r := range b.LocalTimeTypeRecord {
		if err := r.Write(w); err != nil {
			return err
		}
	}
	if _, err := w.Write(b.TimeZoneDesignation); err != nil {
		return err
	}
	for _, r := range b.LeapSecondRecords {
		if err := r.Write(w); err != nil {
			return err
		}
	}
	return writeIndicators(w, b.StandardWallIndicators, b.UTLocalIndicators)
}

// V2LeapSecondRecord is V1LeapSecondRecord with a wider occurrence field.
type V2LeapSecondRecord struct {
	Occur int64
	Corr  int32
}

func (r V2LeapSecondRecord) Write(w io.Writer) error {
	if err := binary.Write(w, order, r.Occur); err != nil {
		return err
	}
	return binary.Write(w, order, r.Corr)
}

// LocalTimeTypeRecord is one entry in the zone's type table: a UTC
// offset, whether it's DST, and which designation string names it.
type LocalTimeTypeRecord struct {
	// Utoff is seconds to add to UT to get local time.
	Utoff int32
	Dst   bool
	// Idx indexes into the NUL-terminated designation string table.
	Idx uint8
}

func (r LocalTimeTypeRecord) Write(w io.Writer) error {
	if err := binary.Write(w, order, r.Utoff); err != nil {
		return err
	}
	if err := binary.Write(w, order, r.Dst); err != nil {
		return err
	}
	return binary.Write(w, order, r.Idx)
}

// Footer is the V2+ extended-future POSIX TZ string, newline-delimited.
// An empty TZString means the file has no information past its last
// transition.
type Footer struct {
	TZString []byte
}

var asciiNewLine = byte(0x0A)

func (f Footer) Write(w io.Writer) error {
	if _, err := w.Write([]byte{asciiNewLine}); err != nil {
		return err
	}
	if _, err := w.Write(f.TZString); err != nil {
		return err
	}
	_, err := w.Write([]byte{asciiNewLine})
	return err
}

func writeIndicators(w io.Writer, standardWall, utLocal []bool) error {
	for _, r := range standardWall {
		if err := binary.Write(w, order, r); err != nil {
			return err
		}
	}
	for _, r := range utLocal {
		if err := binary.Write(w, order, r); err != nil {
			return err
		}
	}
	return nil
}
