package decimalfmt

import (
	"fmt"

	"go.uber.org/zap"
)

// Config captures provider and binder setup
type Config struct {
	DefaultLocale string
	Loader        Loader
	Resolver      FallbackResolver
	Logger        *zap.Logger

	formats       map[string]NumberFormat
	strict        bool
	cldrEnabled   bool
	cldrPrecision *int

	catalog  *Catalog
	provider ConfigProvider
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options. Number formats come from the
// loader first, then from WithNumberFormat, later keys winning.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Resolver == nil {
		cfg.Resolver = NewStaticFallbackResolver()
	}
	cfg.DefaultLocale = normalizeLocale(cfg.DefaultLocale)

	formats := make(map[string]NumberFormat)
	if cfg.Loader != nil {
		loaded, err := cfg.Loader.Load()
		if err != nil {
			return nil, err
		}
		mergeNumberFormats(formats, loaded)
	}
	mergeNumberFormats(formats, cfg.formats)

	cfg.catalog = NewCatalog(formats,
		WithCatalogDefaultLocale(cfg.DefaultLocale),
		WithCatalogResolver(cfg.Resolver),
		WithCatalogLogger(cfg.Logger),
	)

	if cfg.strict {
		if err := cfg.catalog.Validate(); err != nil {
			return nil, err
		}
	}

	cfg.provider = cfg.catalog
	if cfg.cldrEnabled {
		cldrOpts := []CLDROption{WithCLDRLogger(cfg.Logger)}
		if cfg.cldrPrecision != nil {
			cldrOpts = append(cldrOpts, WithCLDRPrecision(*cfg.cldrPrecision))
		}
		cfg.provider = NewChainProvider(cfg.catalog, cldrLookup{
			provider:      NewCLDRProvider(cldrOpts...),
			defaultLocale: cfg.DefaultLocale,
		}).WithLogger(cfg.Logger)
	}

	return cfg, nil
}

// WithDefaultLocale sets the locale used when callers pass an empty locale
func WithDefaultLocale(locale string) Option {
	return func(c *Config) error {
		c.DefaultLocale = locale
		return nil
	}
}

func WithLoader(loader Loader) Option {
	return func(c *Config) error {
		c.Loader = loader
		return nil
	}
}

// WithLocaleFiles loads number formats from YAML or JSON locale files.
func WithLocaleFiles(paths ...string) Option {
	return func(c *Config) error {
		if len(paths) == 0 {
			return nil
		}
		c.Loader = NewFileLoader(paths...)
		return nil
	}
}

// WithNumberFormat registers an inline number format for locale.
func WithNumberFormat(locale string, format NumberFormat) Option {
	return func(c *Config) error {
		locale = normalizeLocale(locale)
		if locale == "" {
			return fmt.Errorf("decimalfmt: number format requires a locale")
		}
		if c.formats == nil {
			c.formats = make(map[string]NumberFormat)
		}
		mergeNumberFormats(c.formats, map[string]NumberFormat{locale: format})
		return nil
	}
}

func WithFallbackResolver(resolver FallbackResolver) Option {
	return func(c *Config) error {
		c.Resolver = resolver
		return nil
	}
}

func WithFallback(locale string, fallbacks ...string) Option {
	return func(c *Config) error {
		if locale == "" {
			return nil
		}
		resolver, ok := c.Resolver.(*StaticFallbackResolver)
		if !ok {
			if c.Resolver != nil {
				return nil
			}
			resolver = NewStaticFallbackResolver()
			c.Resolver = resolver
		}
		resolver.Set(locale, fallbacks...)
		return nil
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithCLDR consults CLDR symbols for locales missing from the configured
// formats. A negative precision leaves CLDR specs without truncation.
func WithCLDR(precision int) Option {
	return func(c *Config) error {
		c.cldrEnabled = true
		c.cldrPrecision = &precision
		return nil
	}
}

// WithStrictFormats makes NewConfig fail on malformed locale entries instead
// of resolving them to DefaultFormatSpec.
func WithStrictFormats() Option {
	return func(c *Config) error {
		c.strict = true
		return nil
	}
}

// Provider returns the ConfigProvider assembled from the options
func (cfg *Config) Provider() ConfigProvider {
	if cfg == nil || cfg.provider == nil {
		return StaticProvider(DefaultFormatSpec)
	}
	return cfg.provider
}

// Catalog returns the catalog built from files and inline formats.
func (cfg *Config) Catalog() *Catalog {
	if cfg == nil {
		return nil
	}
	return cfg.catalog
}

// Binder returns a Binder over the configured provider.
func (cfg *Config) Binder() *Binder {
	if cfg == nil {
		return NewBinder(nil)
	}
	return NewBinder(cfg.Provider(), WithBinderLogger(cfg.Logger))
}

// cldrLookup applies the default locale before asking CLDR.
type cldrLookup struct {
	provider      *CLDRProvider
	defaultLocale string
}

func (l cldrLookup) Lookup(locale string) (FormatSpec, error) {
	if normalizeLocale(locale) == "" {
		locale = l.defaultLocale
	}
	return l.provider.Lookup(locale)
}
