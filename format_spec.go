package decimalfmt

import (
	"fmt"
	"unicode/utf8"
)

// Precision is the optional number of fractional digits kept by the codec.
// The zero value is unset and keeps every digit.
type Precision struct {
	digits int
	set    bool
}

// Digits returns a Precision that keeps at most n fractional digits.
// Negative values are clamped to zero.
func Digits(n int) Precision {
	if n < 0 {
		n = 0
	}
	return Precision{digits: n, set: true}
}

// Value returns the digit count and whether the precision is set
func (p Precision) Value() (int, bool) {
	return p.digits, p.set
}

func (p Precision) String() string {
	if !p.set {
		return "unset"
	}
	return fmt.Sprintf("%d", p.digits)
}

// FormatSpec holds the parameters used to render and read decimal strings.
type FormatSpec struct {
	Separator string
	Delimiter string
	Precision Precision
}

// DefaultFormatSpec is used whenever locale resolution fails.
var DefaultFormatSpec = FormatSpec{
	Separator: ".",
	Delimiter: "",
	Precision: Digits(3),
}

func (s FormatSpec) String() string {
	return fmt.Sprintf("separator=%q delimiter=%q precision=%s", s.Separator, s.Delimiter, s.Precision)
}

// NumberFormat is the per-locale number format as found in locale files:
//
//	it:
//	  number:
//	    format:
//	      separator: ","
//	      delimiter: "'"
//	      precision: 2
type NumberFormat struct {
	Separator *string `json:"separator" yaml:"separator" mapstructure:"separator"`
	Delimiter *string `json:"delimiter" yaml:"delimiter" mapstructure:"delimiter"`
	Precision *int    `json:"precision,omitempty" yaml:"precision,omitempty" mapstructure:"precision"`
}

// NewNumberFormat builds a NumberFormat with every key present.
func NewNumberFormat(separator, delimiter string, precision int) NumberFormat {
	return NumberFormat{
		Separator: &separator,
		Delimiter: &delimiter,
		Precision: &precision,
	}
}

// FormatSpec validates the raw format. Separator and delimiter keys are
// required, precision is optional.
func (f NumberFormat) FormatSpec() (FormatSpec, error) {
	if f.Separator == nil {
		return FormatSpec{}, fmt.Errorf("%w: separator is missing", ErrMalformedFormat)
	}
	if f.Delimiter == nil {
		return FormatSpec{}, fmt.Errorf("%w: delimiter is missing", ErrMalformedFormat)
	}

	separator, delimiter := *f.Separator, *f.Delimiter
	if utf8.RuneCountInString(separator) != 1 {
		return FormatSpec{}, fmt.Errorf("%w: separator %q must be a single character", ErrMalformedFormat, separator)
	}
	if utf8.RuneCountInString(delimiter) > 1 {
		return FormatSpec{}, fmt.Errorf("%w: delimiter %q must be empty or a single character", ErrMalformedFormat, delimiter)
	}
	if delimiter == separator {
		return FormatSpec{}, fmt.Errorf("%w: delimiter and separator are both %q", ErrMalformedFormat, separator)
	}

	spec := FormatSpec{Separator: separator, Delimiter: delimiter}
	if f.Precision != nil {
		if *f.Precision < 0 {
			return FormatSpec{}, fmt.Errorf("%w: precision %d is negative", ErrMalformedFormat, *f.Precision)
		}
		spec.Precision = Digits(*f.Precision)
	}
	return spec, nil
}

func (f NumberFormat) clone() NumberFormat {
	out := NumberFormat{}
	if f.Separator != nil {
		v := *f.Separator
		out.Separator = &v
	}
	if f.Delimiter != nil {
		v := *f.Delimiter
		out.Delimiter = &v
	}
	if f.Precision != nil {
		v := *f.Precision
		out.Precision = &v
	}
	return out
}
