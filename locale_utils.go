package decimalfmt

import (
	"strings"

	"golang.org/x/text/language"
)

// normalizeLocale trims the identifier, replaces underscores with hyphens and
// restores BCP 47 casing, so "pt_br", "pt-br" and "pt-BR" resolve alike.
// Identifiers x/text cannot parse are kept as written.
func normalizeLocale(locale string) string {
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if locale == "" {
		return ""
	}
	if tag, err := language.Parse(locale); err == nil {
		return tag.String()
	}
	return locale
}

// normalizeLocales normalizes locales in order, dropping blanks, duplicates
// and any locale listed in exclude.
func normalizeLocales(locales []string, exclude ...string) []string {
	if len(locales) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(locales)+len(exclude))
	for _, locale := range exclude {
		seen[normalizeLocale(locale)] = struct{}{}
	}

	result := make([]string, 0, len(locales))
	for _, locale := range locales {
		normalized := normalizeLocale(locale)
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}
	return result
}

func localeParentTag(locale string) string {
	if locale == "" {
		return ""
	}

	if tag, err := language.Parse(locale); err == nil {
		parent := tag.Parent()
		if parent == language.Und {
			return ""
		}
		if value := parent.String(); value != "" && value != "und" {
			return value
		}
		return ""
	}

	if idx := strings.LastIndex(locale, "-"); idx > 0 {
		return locale[:idx]
	}
	return ""
}

// localeParentChain returns the parents of locale, closest first:
// "de-CH" yields ["de"], "zh-Hant-TW" yields ["zh-Hant", ...].
func localeParentChain(locale string) []string {
	if locale == "" {
		return nil
	}

	var chain []string
	seen := map[string]struct{}{locale: {}}

	for current := localeParentTag(locale); current != ""; current = localeParentTag(current) {
		if _, exists := seen[current]; exists {
			break
		}
		seen[current] = struct{}{}
		chain = append(chain, current)
	}

	return chain
}
