package decimalfmt

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Catalog is an immutable locale -> NumberFormat table. Lookups walk the
// locale, its parents, then the configured fallbacks and their parents.
type Catalog struct {
	defaultLocale string
	formats       map[string]NumberFormat
	resolver      FallbackResolver
	logger        *zap.Logger
}

var _ ConfigProvider = &Catalog{}

type CatalogOption func(*Catalog)

// WithCatalogDefaultLocale sets the locale used for empty lookups
func WithCatalogDefaultLocale(locale string) CatalogOption {
	return func(c *Catalog) {
		c.defaultLocale = normalizeLocale(locale)
	}
}

func WithCatalogResolver(resolver FallbackResolver) CatalogOption {
	return func(c *Catalog) {
		c.resolver = resolver
	}
}

func WithCatalogLogger(logger *zap.Logger) CatalogOption {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCatalog copies formats into a new Catalog.
func NewCatalog(formats map[string]NumberFormat, opts ...CatalogOption) *Catalog {
	catalog := &Catalog{
		formats: make(map[string]NumberFormat, len(formats)),
		logger:  zap.NewNop(),
	}

	for locale, format := range formats {
		locale = normalizeLocale(locale)
		if locale == "" {
			continue
		}
		catalog.formats[locale] = format.clone()
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(catalog)
	}

	return catalog
}

// Resolve implements ConfigProvider. Missing or malformed locale data yields
// DefaultFormatSpec.
func (c *Catalog) Resolve(locale string) FormatSpec {
	spec, err := c.Lookup(locale)
	if err != nil {
		if c != nil {
			c.logger.Debug("number format fallback",
				zap.String("locale", locale),
				zap.Stringer("spec", DefaultFormatSpec),
				zap.Error(err),
			)
		}
		return DefaultFormatSpec
	}
	return spec
}

// Lookup is the strict form of Resolve. It returns ErrMissingFormat when no
// candidate locale has data and ErrMalformedFormat when the matching entry
// is invalid.
func (c *Catalog) Lookup(locale string) (FormatSpec, error) {
	if c == nil {
		return FormatSpec{}, fmt.Errorf("%w: no catalog", ErrMissingFormat)
	}

	for _, candidate := range c.candidates(locale) {
		format, ok := c.formats[candidate]
		if !ok {
			continue
		}
		spec, err := format.FormatSpec()
		if err != nil {
			return FormatSpec{}, fmt.Errorf("locale %q: %w", candidate, err)
		}
		return spec, nil
	}

	return FormatSpec{}, fmt.Errorf("%w for locale %q", ErrMissingFormat, locale)
}

// Format returns the raw entry stored for locale, without fallbacks.
func (c *Catalog) Format(locale string) (NumberFormat, bool) {
	if c == nil {
		return NumberFormat{}, false
	}
	format, ok := c.formats[normalizeLocale(locale)]
	if !ok {
		return NumberFormat{}, false
	}
	return format.clone(), true
}

// Locales returns the sorted locale codes held by the catalog
func (c *Catalog) Locales() []string {
	if c == nil || len(c.formats) == 0 {
		return nil
	}
	locales := make([]string, 0, len(c.formats))
	for locale := range c.formats {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

// Validate reports every malformed entry in the catalog.
func (c *Catalog) Validate() error {
	var errs []error
	for _, locale := range c.Locales() {
		if _, err := c.formats[locale].FormatSpec(); err != nil {
			errs = append(errs, fmt.Errorf("locale %q: %w", locale, err))
		}
	}
	return errors.Join(errs...)
}

func (c *Catalog) candidates(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		locale = c.defaultLocale
	}
	if locale == "" {
		return nil
	}

	seen := make(map[string]struct{}, 4)
	candidates := make([]string, 0, 4)

	appendLocale := func(value string) {
		if value == "" {
			return
		}
		if _, ok := seen[value]; ok {
			return
		}
		seen[value] = struct{}{}
		candidates = append(candidates, value)
	}

	bases := append([]string{locale}, localeParentChain(locale)...)
	for _, base := range bases {
		appendLocale(base)
	}

	if c.resolver != nil {
		for _, base := range bases {
			for _, fallback := range c.resolver.Resolve(base) {
				appendLocale(fallback)
				for _, parent := range localeParentChain(fallback) {
					appendLocale(parent)
				}
			}
		}
	}

	return candidates
}
