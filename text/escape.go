// Package text implements the delimited textual serialization of a zone:
// the grammar from the rules engine's wire format, including the escaping
// rules that let any display string survive round-trip.
package text

import (
	"strings"

	"ngrash.dev/tzrules/rules"
)

const (
	fieldSep = ';'
	ruleOpen = '['
	ruleClose = ']'
	escapeChar = '\\'
)

var escapedChars = string([]rune{escapeChar, fieldSep, ruleOpen, ruleClose})

// escape backslash-escapes each of \, ;, [, ] in s.
func escape(s string) string {
	if !strings.ContainsAny(s, escapedChars) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(escapedChars, r) {
			b.WriteByte(escapeChar)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func newSerializationError(msg string) error {
	return rules.NewSerializationError(errString(msg))
}

type errString string

func (e errString) Error() string { return string(e) }
