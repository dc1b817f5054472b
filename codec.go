package decimalfmt

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// canonicalPattern matches the rewritten input handed to the decimal parser.
var canonicalPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// Format renders value under spec. It never fails: values without a
// canonical decimal form are returned in their string form unchanged.
func Format(value any, spec FormatSpec) string {
	formatted, err := TryFormat(value, spec)
	if err != nil {
		return fallbackString(value)
	}
	return formatted
}

// TryFormat is the strict form of Format.
func TryFormat(value any, spec FormatSpec) (string, error) {
	d, err := toDecimal(value)
	if err != nil {
		return "", err
	}
	return FormatDecimal(d, spec), nil
}

// FormatDecimal groups the integer digits with the delimiter, truncates the
// fraction to the precision and joins both parts with the separator.
// Precision is applied by truncation, never rounding.
func FormatDecimal(d decimal.Decimal, spec FormatSpec) string {
	integer, fraction, _ := strings.Cut(canonicalString(d), ".")

	integer = groupDigits(integer, spec.Delimiter)
	fraction = truncateFraction(fraction, spec.Precision)

	if fraction == "" {
		return integer
	}
	return integer + separatorOf(spec) + fraction
}

// Parse reads text written under spec. It never fails: text that does not
// parse is returned unchanged as a string, otherwise the result is a
// decimal.Decimal.
func Parse(text string, spec FormatSpec) any {
	value, err := TryParse(text, spec)
	if err != nil {
		return text
	}
	return value
}

// TryParse is the strict form of Parse.
func TryParse(text string, spec FormatSpec) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: empty input", ErrMalformedNumber)
	}

	integer, fraction, hasFraction := strings.Cut(trimmed, separatorOf(spec))
	if spec.Delimiter != "" {
		integer = strings.ReplaceAll(integer, spec.Delimiter, "")
	}
	if hasFraction {
		fraction = truncateFraction(fraction, spec.Precision)
	}

	integer = stripPlus(integer)
	if integer == "" || integer == "-" {
		if fraction == "" {
			return decimal.Decimal{}, fmt.Errorf("%w: %q has no digits", ErrMalformedNumber, text)
		}
		integer += "0"
	}

	canonical := integer
	if fraction != "" {
		canonical += "." + fraction
	}

	if !canonicalPattern.MatchString(canonical) {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrMalformedNumber, text)
	}

	value, err := decimal.NewFromString(canonical)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q: %v", ErrMalformedNumber, text, err)
	}
	return value, nil
}

// canonicalString renders d with '.' as radix point and no grouping, keeping
// the fractional digits carried by the exponent (1.50 stays "1.50").
func canonicalString(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

func groupDigits(integer, delimiter string) string {
	if delimiter == "" {
		return integer
	}

	sign := ""
	if strings.HasPrefix(integer, "-") {
		sign, integer = "-", integer[1:]
	}
	if len(integer) <= 3 {
		return sign + integer
	}

	var result strings.Builder
	result.Grow(len(sign) + len(integer) + (len(integer)/3)*len(delimiter))
	result.WriteString(sign)
	for i, digit := range integer {
		if i > 0 && (len(integer)-i)%3 == 0 {
			result.WriteString(delimiter)
		}
		result.WriteRune(digit)
	}
	return result.String()
}

func truncateFraction(fraction string, precision Precision) string {
	digits, ok := precision.Value()
	if !ok || len(fraction) <= digits {
		return fraction
	}
	return fraction[:digits]
}

// separatorOf falls back to the canonical radix point for specs built
// without a separator.
func separatorOf(spec FormatSpec) string {
	if spec.Separator == "" {
		return "."
	}
	return spec.Separator
}

func toDecimal(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, nil
	case *decimal.Decimal:
		if v == nil {
			return decimal.Decimal{}, fmt.Errorf("%w: nil decimal", ErrMalformedValue)
		}
		return *v, nil
	case decimal.NullDecimal:
		if !v.Valid {
			return decimal.Decimal{}, fmt.Errorf("%w: null decimal", ErrMalformedValue)
		}
		return v.Decimal, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int8:
		return decimal.NewFromInt(int64(v)), nil
	case int16:
		return decimal.NewFromInt(int64(v)), nil
	case int32:
		return decimal.NewFromInt32(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case uint:
		return decimalFromUint(uint64(v)), nil
	case uint8:
		return decimalFromUint(uint64(v)), nil
	case uint16:
		return decimalFromUint(uint64(v)), nil
	case uint32:
		return decimalFromUint(uint64(v)), nil
	case uint64:
		return decimalFromUint(v), nil
	case float32:
		if isNonFinite(float64(v)) {
			return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrMalformedValue, v)
		}
		return decimal.NewFromFloat32(v), nil
	case float64:
		if isNonFinite(v) {
			return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrMalformedValue, v)
		}
		return decimal.NewFromFloat(v), nil
	case json.Number:
		return decimalFromString(string(v))
	case string:
		return decimalFromString(v)
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: unsupported type %T", ErrMalformedValue, value)
	}
}

// decimalFromString accepts plain decimal notation only. Exponent forms are
// rejected since expanding them costs time proportional to the exponent.
func decimalFromString(raw string) (decimal.Decimal, error) {
	trimmed := stripPlus(strings.TrimSpace(raw))
	if !canonicalPattern.MatchString(trimmed) {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrMalformedValue, raw)
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrMalformedValue, raw)
	}
	return d, nil
}

// stripPlus drops an explicit plus sign when a digit, or nothing, follows it.
// "+-5" keeps its sign so it fails validation.
func stripPlus(s string) string {
	rest, ok := strings.CutPrefix(s, "+")
	if !ok || (rest != "" && (rest[0] < '0' || rest[0] > '9')) {
		return s
	}
	return rest
}

func decimalFromUint(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}

func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

func fallbackString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case *decimal.Decimal:
		if v == nil {
			return ""
		}
	case decimal.NullDecimal:
		if !v.Valid {
			return ""
		}
	}
	return fmt.Sprint(value)
}
