package decimalfmt

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ConfigProvider resolves the FormatSpec for a locale. Resolve must be total:
// implementations return DefaultFormatSpec when locale data is missing or
// malformed, and must be safe to call concurrently.
type ConfigProvider interface {
	Resolve(locale string) FormatSpec
}

// ConfigProviderFunc adapts a function to ConfigProvider.
type ConfigProviderFunc func(locale string) FormatSpec

func (fn ConfigProviderFunc) Resolve(locale string) FormatSpec {
	if fn == nil {
		return DefaultFormatSpec
	}
	return fn(locale)
}

// StaticProvider resolves every locale to the same FormatSpec.
type StaticProvider FormatSpec

func (p StaticProvider) Resolve(string) FormatSpec {
	return FormatSpec(p)
}

// resolveOrDefault guards against nil providers.
func resolveOrDefault(provider ConfigProvider, locale string) FormatSpec {
	if provider == nil {
		return DefaultFormatSpec
	}
	return provider.Resolve(locale)
}

// SpecLookup is the strict lookup implemented by Catalog, CLDRProvider and
// ViperProvider. Errors wrap ErrMissingFormat or ErrMalformedFormat.
type SpecLookup interface {
	Lookup(locale string) (FormatSpec, error)
}

// ChainProvider asks each lookup in order and settles on the first one that
// knows the locale. A malformed entry ends the search.
type ChainProvider struct {
	lookups []SpecLookup
	logger  *zap.Logger
}

var _ ConfigProvider = &ChainProvider{}

func NewChainProvider(lookups ...SpecLookup) *ChainProvider {
	filtered := make([]SpecLookup, 0, len(lookups))
	for _, lookup := range lookups {
		if lookup == nil {
			continue
		}
		filtered = append(filtered, lookup)
	}
	return &ChainProvider{lookups: filtered, logger: zap.NewNop()}
}

// WithLogger sets the logger used to report fallbacks
func (p *ChainProvider) WithLogger(logger *zap.Logger) *ChainProvider {
	if logger != nil {
		p.logger = logger
	}
	return p
}

func (p *ChainProvider) Lookup(locale string) (FormatSpec, error) {
	if p == nil {
		return FormatSpec{}, fmt.Errorf("%w: no provider", ErrMissingFormat)
	}
	for _, lookup := range p.lookups {
		spec, err := lookup.Lookup(locale)
		if err == nil {
			return spec, nil
		}
		if !errors.Is(err, ErrMissingFormat) {
			return FormatSpec{}, err
		}
	}
	return FormatSpec{}, fmt.Errorf("%w for locale %q", ErrMissingFormat, locale)
}

func (p *ChainProvider) Resolve(locale string) FormatSpec {
	spec, err := p.Lookup(locale)
	if err != nil {
		if p != nil {
			p.logger.Debug("number format fallback", zap.String("locale", locale), zap.Error(err))
		}
		return DefaultFormatSpec
	}
	return spec
}
