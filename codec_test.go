package decimalfmt

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

var (
	swissSpec = FormatSpec{Separator: ",", Delimiter: "'", Precision: Digits(2)}
	plainSpec = FormatSpec{Separator: ".", Delimiter: "", Precision: Digits(2)}
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		spec     FormatSpec
		expected string
	}{
		{"grouped_and_truncated", decimal.RequireFromString("1234567.891"), swissSpec, "1'234'567,89"},
		{"truncates_not_rounds", decimal.RequireFromString("1.999"), plainSpec, "1.99"},
		{"precision_zero_drops_fraction", 1234567, FormatSpec{Separator: ",", Delimiter: "'", Precision: Digits(0)}, "1'234'567"},
		{"precision_zero_with_fraction", decimal.RequireFromString("12.75"), FormatSpec{Separator: ",", Delimiter: "'", Precision: Digits(0)}, "12"},
		{"negative", decimal.RequireFromString("-1234567.5"), swissSpec, "-1'234'567,5"},
		{"short_integer", 999, swissSpec, "999"},
		{"four_digits", 1000, swissSpec, "1'000"},
		{"keeps_exponent_zeros", decimal.RequireFromString("1.50"), swissSpec, "1,50"},
		{"does_not_pad", decimal.RequireFromString("1.5"), FormatSpec{Separator: ".", Precision: Digits(3)}, "1.5"},
		{"unset_precision", decimal.RequireFromString("3.14159"), FormatSpec{Separator: ".", Delimiter: ","}, "3.14159"},
		{"default_spec", decimal.RequireFromString("1234567.8915"), DefaultFormatSpec, "1234567.891"},
		{"float_input", 1234.5, swissSpec, "1'234,5"},
		{"canonical_string_input", "1234.5", swissSpec, "1'234,5"},
		{"signed_string_input", "+1234.5", swissSpec, "1'234,5"},
		{"json_number_input", json.Number("-1234.5"), swissSpec, "-1'234,5"},
		{"uint_input", uint64(1234567), swissSpec, "1'234'567"},
		{"decimal_pointer", func() *decimal.Decimal { d := decimal.NewFromInt(42000); return &d }(), swissSpec, "42'000"},
		{"null_decimal", decimal.NewNullDecimal(decimal.RequireFromString("0.125")), swissSpec, "0,12"},
		{"empty_separator_uses_radix", decimal.RequireFromString("2.5"), FormatSpec{}, "2.5"},
		{"multi_byte_delimiter", 1234567, FormatSpec{Separator: ",", Delimiter: "\u202f"}, "1\u202f234\u202f567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.value, tt.spec)
			if got != tt.expected {
				t.Errorf("Format(%v) = %q; want %q", tt.value, got, tt.expected)
			}
		})
	}
}

func TestFormatFallback(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"non_numeric_string", "abc", "abc"},
		{"nil", nil, ""},
		{"nil_decimal_pointer", (*decimal.Decimal)(nil), ""},
		{"invalid_null_decimal", decimal.NullDecimal{}, ""},
		{"nan", math.NaN(), "NaN"},
		{"unsupported_type", struct{ A int }{A: 1}, "{1}"},
		{"exponent_string", "1e200000000", "1e200000000"},
		{"small_exponent_string", "1e5", "1e5"},
		{"exponent_json_number", json.Number("1E9"), "1E9"},
		{"plus_before_minus", "+-5", "+-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.value, swissSpec); got != tt.expected {
				t.Errorf("Format(%v) = %q; want %q", tt.value, got, tt.expected)
			}
			if _, err := TryFormat(tt.value, swissSpec); !errors.Is(err, ErrMalformedValue) {
				t.Errorf("TryFormat(%v) error = %v; want ErrMalformedValue", tt.value, err)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		spec     FormatSpec
		expected string
	}{
		{"grouped", "1'234'567,89", swissSpec, "1234567.89"},
		{"truncates_fraction", "1,999", swissSpec, "1.99"},
		{"integer_only", "1'234", swissSpec, "1234"},
		{"negative", "-1'234,5", swissSpec, "-1234.5"},
		{"explicit_plus", "+12,5", swissSpec, "12.5"},
		{"leading_separator", ",5", swissSpec, "0.5"},
		{"trailing_separator", "12,", swissSpec, "12"},
		{"surrounding_spaces", "  12,5 ", swissSpec, "12.5"},
		{"precision_zero", "1'234,99", FormatSpec{Separator: ",", Delimiter: "'", Precision: Digits(0)}, "1234"},
		{"unset_precision", "3.14159", FormatSpec{Separator: "."}, "3.14159"},
		{"ungrouped_input", "1234567,8", swissSpec, "1234567.8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TryParse(tt.text, tt.spec)
			if err != nil {
				t.Fatalf("TryParse(%q) error: %v", tt.text, err)
			}
			want := decimal.RequireFromString(tt.expected)
			if !got.Equal(want) {
				t.Errorf("TryParse(%q) = %s; want %s", tt.text, got, want)
			}

			value, ok := Parse(tt.text, tt.spec).(decimal.Decimal)
			if !ok || !value.Equal(want) {
				t.Errorf("Parse(%q) = %v; want %s", tt.text, value, want)
			}
		})
	}
}

func TestParseFallback(t *testing.T) {
	inputs := []string{
		"not-a-number",
		"",
		"   ",
		"1,2,3",
		"1e5",
		"1e200000000",
		"+-5",
		"+-5,5",
		"++5",
		"12abc,5",
		"-",
		",",
		"1.234,5",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got := Parse(input, swissSpec)
			if text, ok := got.(string); !ok || text != input {
				t.Errorf("Parse(%q) = %#v; want the input unchanged", input, got)
			}
			if _, err := TryParse(input, swissSpec); !errors.Is(err, ErrMalformedNumber) {
				t.Errorf("TryParse(%q) error = %v; want ErrMalformedNumber", input, err)
			}
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	values := []string{"0", "7", "1234567.89", "-1000.5", "0.01", "1.50", "999999999999999999999.12"}
	specs := []FormatSpec{
		swissSpec,
		plainSpec,
		{Separator: ",", Delimiter: "."},
		{Separator: ".", Delimiter: ",", Precision: Digits(4)},
	}

	for _, spec := range specs {
		for _, raw := range values {
			value := decimal.RequireFromString(raw)
			text := FormatDecimal(value, spec)
			got, err := TryParse(text, spec)
			if err != nil {
				t.Fatalf("TryParse(%q) [%s] error: %v", text, spec, err)
			}
			if !got.Equal(value) {
				t.Errorf("round trip %s [%s] = %s via %q", raw, spec, got, text)
			}
		}
	}
}

func TestFormatParseIdempotent(t *testing.T) {
	texts := []string{"1'234'567,89", "0,50", "-1'234", "12", "999,9"}

	for _, text := range texts {
		got := Format(Parse(text, swissSpec), swissSpec)
		if got != text {
			t.Errorf("Format(Parse(%q)) = %q", text, got)
		}
	}
}
