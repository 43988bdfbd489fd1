package tzif

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"ngrash.dev/tzrules/rules"
)

// ReadHeader reads and validates the magic sequence, then the fixed-size
// header that follows it. A bad magic or a short read is classified as
// rules.ErrInvalidZone at this boundary, rather than by a caller further
// up, since nothing below this package recovers or retries a malformed
// stream.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	magic := make([]byte, len(Magic))
	if err := binary.Read(r, order, &magic); err != nil {
		return h, rules.NewInvalidZoneError(fmt.Errorf("reading magic: %w", err))
	}
	if !bytes.Equal(magic, Magic[:]) {
		return h, rules.NewInvalidZoneError(fmt.Errorf("invalid magic: %v", magic))
	}
	if err := binary.Read(r, order, &h); err != nil {
		return h, rules.NewInvalidZoneError(fmt.Errorf("reading header: %w", err))
	}
	return h, nil
}

// ReadV1DataBlock reads the 32-bit-transition-time data block sized by h's
// element counts.
func ReadV1DataBlock(r io.Reader, h Header) (V1DataBlock, error) {
	var b V1DataBlock
	if h.Timecnt > 0 {
		b.TransitionTimes = make([]int32, h.Timecnt)
		if err := binary.Read(r, order, &b.TransitionTimes); err != nil {
			return b, rules.NewInvalidZoneError(fmt.Errorf("reading transition times: %w", err))
		}
		b.TransitionTypes = make([]uint8, h.Timecnt)
		if err := binary.Read(r, order, &b.TransitionTypes); err != nil {
			return b, rules.NewInvalidZoneError(fmt.Errorf("reading transition types: %w", err))
		}
	}
	if h.Typecnt > 0 {
		b.LocalTimeTypeRecord = make([]LocalTimeTypeRecord, h.Typecnt)
		for i := range b.LocalTimeTypeRecord {
			if err := binary.Read(r, order, &b.LocalTimeTypeRecord[i]); err != nil {
				return b, rules.NewInvalidZoneError(fmt.Errorf("reading local time type record %d: %w", i, err))
			}
		}
	}
	if h.Charcnt > 0 {
		b.TimeZoneDesignation = make([]byte, h.Charcnt)
		if _, err := io.ReadFull(r, b.TimeZoneDesignation); err != nil {
			return b, rules.NewInvalidZoneError(fmt.Errorf("reading time zone designations: %w", err))
		}
	}
	if h.Leapcnt > 0 {
		b.LeapSecondRecords = make([]V1LeapSecondRecord, h.Leapcnt)
		for i := range b.LeapSecondRecords {
			if err := binary.Read(r, order, &b.LeapSecondRecords[i]); err != nil {
				return b, rules.NewInvalidZoneError(fmt.Errorf("reading leap second record %d: %w", i, err))
			}
		}
	}
	var err error
	if b.StandardWallIndicators, err = readIndicators(r, h.Isstdcnt, "standard/wall"); err != nil {
		return b, err
	}
	if b.UTLocalIndicators, err = readIndicators(r, h.Isutcnt, "UT/local"); err != nil {
		return b, err
	}
	return b, nil
}

// ReadV2DataBlock reads the 64-bit-transition-time data block V2 and later
// files carry after their V1 block. h must itself be a V2+ header.
func ReadV2DataBlock(r io.Reader, h Header) (V2DataBlock, error) {
	if h.Version < V2 {
		return V2DataBlock{}, rules.NewInvalidZoneError(fmt.Errorf("invalid header version for v2+ data block: %v", h.Version))
	}

	var b V2DataBlock
	if h.Timecnt > 0 {
		b.TransitionTimes = make([]int64, h.Timecnt)
		if err := binary.Read(r, order, &b.TransitionTimes); err != nil {
			return b, rules.NewInvalidZoneError(fmt.Errorf("reading transition times: %w", err))
		}
		b.TransitionTypes = make([]uint8, h.Timecnt)
		if err := binary.Read(r, order, &b.TransitionTypes); err != nil {
			return b, rules.NewInvalidZoneError(fmt.Errorf("reading transition types: %w", err))
		}
	}
	if h.Typecnt > 0 {
		b.LocalTimeTypeRecord = make([]LocalTimeTypeRecord, h.Typecnt)
		for i := range b.LocalTimeTypeRecord {
			if err := binary.Read(r, order, &b.LocalTimeTypeRecord[i]); err != nil {
				return b, rules.NewInvalidZoneError(fmt.Errorf("reading local time type record %d: %w", i, err))
			}
		}
	}
	if h.Charcnt > 0 {
		b.TimeZoneDesignation = make([]byte, h.Charcnt)
		if _, err := io.ReadFull(r, b.TimeZoneDesignation); err != nil {
			return b, rules.NewInvalidZoneError(fmt.Errorf("reading time zone designations: %w", err))
		}
	}
	if h.Leapcnt > 0 {
		b.LeapSecondRecords = make([]V2LeapSecondRecord, h.Leapcnt)
		for i := range b.LeapSecondRecords {
			if err := binary.Read(r, order, &b.LeapSecondRecords[i]); err != nil {
				return b, rules.NewInvalidZoneError(fmt.Errorf("reading leap second record %d: %w", i, err))
			}
		}
	}
	var err error
	if b.StandardWallIndicators, err = readIndicators(r, h.Isstdcnt, "standard/wall"); err != nil {
		return b, err
	}
	if b.UTLocalIndicators, err = readIndicators(r, h.Isutcnt, "UT/local"); err != nil {
		return b, err
	}
	return b, nil
}

func readIndicators(r io.Reader, count uint32, name string) ([]bool, error) {
	if count == 0 {
		return nil, nil
	}
	out := make([]bool, count)
	for i := range out {
		if err := binary.Read(r, order, &out[i]); err != nil {
			return nil, rules.NewInvalidZoneError(fmt.Errorf("reading %s indicator %d: %w", name, i, err))
		}
	}
	return out, nil
}

// ReadFooter reads the newline-delimited POSIX TZ string that follows the
// V2+ data block.
func ReadFooter(r io.Reader) (Footer, error) {
	var f Footer
	buf := make([]byte, 1)
	if _, err := io.ReadFull(r, buf); err != nil {
		return f, rules.NewInvalidZoneError(fmt.Errorf("reading footer opening newline: %w", err))
	}
	if buf[0] != asciiNewLine {
		return f, rules.NewInvalidZoneError(fmt.Errorf("footer does not start with a newline: %#x", buf[0]))
	}
	var b []byte
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return f, rules.NewInvalidZoneError(fmt.Errorf("reading TZ string: %w", err))
		}
		if buf[0] == asciiNewLine {
			break
		}
		b = append(b, buf[0])
	}
	f.TZString = b
	return f, nil
}
