package decimalfmt

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// cldrSample has seven integer digits so both grouping positions show up.
const cldrSample = 1234567.5

// CLDRProvider derives separator and delimiter from the CLDR data bundled
// with golang.org/x/text. Precision is not part of CLDR number symbols and
// is configured on the provider.
type CLDRProvider struct {
	precision Precision
	logger    *zap.Logger

	mu    sync.RWMutex
	cache map[string]FormatSpec
}

var _ ConfigProvider = &CLDRProvider{}

type CLDROption func(*CLDRProvider)

// WithCLDRPrecision sets the precision of every resolved spec. A negative
// value leaves precision unset.
func WithCLDRPrecision(digits int) CLDROption {
	return func(p *CLDRProvider) {
		if digits < 0 {
			p.precision = Precision{}
			return
		}
		p.precision = Digits(digits)
	}
}

func WithCLDRLogger(logger *zap.Logger) CLDROption {
	return func(p *CLDRProvider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func NewCLDRProvider(opts ...CLDROption) *CLDRProvider {
	provider := &CLDRProvider{
		precision: DefaultFormatSpec.Precision,
		logger:    zap.NewNop(),
		cache:     make(map[string]FormatSpec),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(provider)
	}
	return provider
}

func (p *CLDRProvider) Resolve(locale string) FormatSpec {
	spec, err := p.Lookup(locale)
	if err != nil {
		if p != nil {
			p.logger.Debug("cldr number format fallback", zap.String("locale", locale), zap.Error(err))
		}
		return DefaultFormatSpec
	}
	return spec
}

// Lookup prints a sample number with the locale's CLDR symbols and reads the
// separator and delimiter back out of the result. Successful lookups are
// cached per language tag.
func (p *CLDRProvider) Lookup(locale string) (FormatSpec, error) {
	if p == nil {
		return FormatSpec{}, fmt.Errorf("%w: no provider", ErrMissingFormat)
	}

	locale = normalizeLocale(locale)
	if locale == "" {
		return FormatSpec{}, fmt.Errorf("%w: empty locale", ErrMissingFormat)
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return FormatSpec{}, fmt.Errorf("%w for locale %q: %v", ErrMissingFormat, locale, err)
	}
	key := tag.String()

	p.mu.RLock()
	spec, ok := p.cache[key]
	p.mu.RUnlock()
	if ok {
		return spec, nil
	}

	spec, err = p.lookup(tag)
	if err != nil {
		return FormatSpec{}, fmt.Errorf("locale %q: %w", locale, err)
	}

	p.mu.Lock()
	p.cache[key] = spec
	p.mu.Unlock()

	return spec, nil
}

func (p *CLDRProvider) lookup(tag language.Tag) (FormatSpec, error) {
	printer := message.NewPrinter(tag)
	sample := printer.Sprintf("%v", number.Decimal(cldrSample,
		number.MinFractionDigits(1),
		number.MaxFractionDigits(1),
	))

	separator, delimiter, err := symbolsFromSample(sample)
	if err != nil {
		return FormatSpec{}, err
	}

	spec, err := (NumberFormat{Separator: &separator, Delimiter: &delimiter}).FormatSpec()
	if err != nil {
		return FormatSpec{}, err
	}
	spec.Precision = p.precision
	return spec, nil
}

// symbolsFromSample splits a printed sample into the non-digit runs found
// between digits. The last run is the separator, the others the delimiter.
func symbolsFromSample(sample string) (separator, delimiter string, err error) {
	var (
		runs    []string
		current strings.Builder
		inDigit bool
	)

	for _, r := range sample {
		if unicode.IsDigit(r) {
			if current.Len() > 0 && inDigit {
				runs = append(runs, current.String())
			}
			current.Reset()
			inDigit = true
			continue
		}
		if inDigit {
			current.WriteRune(r)
		}
	}

	switch len(runs) {
	case 0:
		return "", "", fmt.Errorf("%w: no separator in %q", ErrMalformedFormat, sample)
	case 1:
		return runs[0], "", nil
	}

	delimiter = runs[0]
	for _, run := range runs[1 : len(runs)-1] {
		if run != delimiter {
			return "", "", fmt.Errorf("%w: mixed delimiters in %q", ErrMalformedFormat, sample)
		}
	}
	return runs[len(runs)-1], delimiter, nil
}
