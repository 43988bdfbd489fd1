package rules

// ConversionOptions configures Zone.Convert. The zero value matches
// convert's documented default (NoThrowOnInvalidTime=false).
type ConversionOptions struct {
	// NoThrowOnInvalidTime, when true, suppresses InvalidTime on wall times
	// that fall in a DST invalid window; the hot-path offset query always
	// behaves as if this were true.
	NoThrowOnInvalidTime bool
}
