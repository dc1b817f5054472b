package decimalfmt

import "errors"

// ErrMalformedFormat indicates locale number format data that cannot become a FormatSpec.
var ErrMalformedFormat = errors.New("decimalfmt: malformed number format")

// ErrMissingFormat indicates that no number format was found for a locale.
var ErrMissingFormat = errors.New("decimalfmt: missing number format")

// ErrMalformedNumber marks text that does not parse under a FormatSpec
var ErrMalformedNumber = errors.New("decimalfmt: malformed number")

// ErrMalformedValue marks values that have no canonical decimal form
var ErrMalformedValue = errors.New("decimalfmt: malformed value")

// ErrUnsupportedField is returned by StructStore for fields it cannot map to a name.
var ErrUnsupportedField = errors.New("decimalfmt: unsupported field")
