package decimalfmt

import "strings"

const defaultLocaleKey = "locale"

// HelperConfig configures template helper exports
type HelperConfig struct {
	// LocaleKey names the entry holding the locale when a helper receives a
	// map instead of a locale string. Defaults to "locale".
	LocaleKey string
}

// TemplateHelpers exposes the codec as go-template functions. Each helper takes
// either a locale string or a template context map as its first argument:
//
//	{{format_decimal . .Total}}
//	{{parse_decimal "it" "1'234,5"}}
//	{{number_format "de"}}
func TemplateHelpers(provider ConfigProvider, cfg HelperConfig) map[string]any {
	key := strings.TrimSpace(cfg.LocaleKey)
	if key == "" {
		key = defaultLocaleKey
	}

	localeOf := func(src any) string {
		return localeFromContext(src, key)
	}

	return map[string]any{
		"format_decimal": func(src any, value any) string {
			return Format(value, resolveOrDefault(provider, localeOf(src)))
		},
		"parse_decimal": func(src any, text string) any {
			return Parse(text, resolveOrDefault(provider, localeOf(src)))
		},
		"number_format": func(src any) FormatSpec {
			return resolveOrDefault(provider, localeOf(src))
		},
		"current_locale": localeOf,
	}
}

func localeFromContext(src any, key string) string {
	switch v := src.(type) {
	case string:
		return v
	case map[string]any:
		if locale, ok := v[key].(string); ok {
			return locale
		}
	case map[string]string:
		return v[key]
	case interface{ Locale() string }:
		return v.Locale()
	}
	return ""
}
