// Package decimalfmt converts between canonical decimals and their locale
// formatted strings, and binds formatted read/write views over the numeric
// attributes of a host object.
//
// # Number Formats
//
// A FormatSpec carries the decimal separator, the thousands delimiter and an
// optional precision. Precision is applied by truncation in both directions:
//
//	spec := decimalfmt.FormatSpec{Separator: ",", Delimiter: "'", Precision: decimalfmt.Digits(2)}
//	decimalfmt.Format(decimal.RequireFromString("1234567.891"), spec) // "1'234'567,89"
//	decimalfmt.Parse("1'234'567,891", spec)                            // decimal 1234567.89
//
// Format and Parse never fail. Input they cannot handle comes back unchanged;
// TryFormat and TryParse report the error instead.
//
// # Providers
//
// A ConfigProvider maps a locale to its FormatSpec and falls back to
// DefaultFormatSpec when the locale has no usable entry. Catalog reads
// `<locale>.number.format` entries loaded from YAML or JSON files, walks
// locale parents (de-CH -> de) and configured fallbacks. ViperProvider serves
// the same entries from a viper instance and can reload on file change.
// CLDRProvider derives symbols from CLDR data.
//
// # Formatted Accessors
//
// Bind exposes formatted_<name> accessors over an AttributeStore:
//
//	accessors := decimalfmt.Bind([]string{"total"}, store, provider)
//	accessors["formatted_total"].Get("it")             // "1'234,5"
//	accessors["formatted_total"].Set("it", "1'500,25") // stores decimal 1500.25
package decimalfmt
