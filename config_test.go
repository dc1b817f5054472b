package decimalfmt

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if cfg.Logger == nil {
		t.Fatal("expected default logger")
	}
	if cfg.Resolver == nil {
		t.Fatal("expected fallback resolver")
	}
	if got := cfg.Provider().Resolve("it"); got != DefaultFormatSpec {
		t.Fatalf("Resolve(it) = %s; want default", got)
	}
}

func TestNewConfigWithLocaleFiles(t *testing.T) {
	cfg, err := NewConfig(
		WithLocaleFiles(filepath.Join("testdata", "locales", "formats.yml")),
		WithDefaultLocale("it"),
		WithFallback("rm", "it"),
		WithNumberFormat("en", NewNumberFormat(".", ",", 2)),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	provider := cfg.Provider()
	tests := []struct {
		locale   string
		expected FormatSpec
	}{
		{"it", FormatSpec{Separator: ",", Delimiter: "'", Precision: Digits(2)}},
		{"", FormatSpec{Separator: ",", Delimiter: "'", Precision: Digits(2)}},
		{"rm", FormatSpec{Separator: ",", Delimiter: "'", Precision: Digits(2)}},
		{"en-GB", FormatSpec{Separator: ".", Delimiter: ",", Precision: Digits(2)}},
		{"ja", DefaultFormatSpec},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			if got := provider.Resolve(tt.locale); got != tt.expected {
				t.Fatalf("Resolve(%q) = %s; want %s", tt.locale, got, tt.expected)
			}
		})
	}
}

func TestNewConfigLoaderError(t *testing.T) {
	loader := LoaderFunc(func() (map[string]NumberFormat, error) {
		return nil, errors.New("boom")
	})

	if _, err := NewConfig(WithLoader(loader)); err == nil {
		t.Fatal("expected loader error")
	}

	if _, err := NewConfig(WithNumberFormat(" ", NewNumberFormat(",", ".", 2))); err == nil {
		t.Fatal("expected error for blank locale")
	}
}

func TestNewConfigStrictFormats(t *testing.T) {
	path := filepath.Join("testdata", "locales", "broken.yml")

	cfg, err := NewConfig(WithLocaleFiles(path))
	if err != nil {
		t.Fatalf("lenient NewConfig: %v", err)
	}
	if got := cfg.Provider().Resolve("pt"); got != DefaultFormatSpec {
		t.Fatalf("Resolve(pt) = %s; want default", got)
	}

	if _, err := NewConfig(WithLocaleFiles(path), WithStrictFormats()); !errors.Is(err, ErrMalformedFormat) {
		t.Fatalf("strict NewConfig error = %v; want ErrMalformedFormat", err)
	}
}

func TestNewConfigWithCLDR(t *testing.T) {
	cfg, err := NewConfig(
		WithNumberFormat("it", NewNumberFormat(",", "'", 2)),
		WithDefaultLocale("de"),
		WithCLDR(1),
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	provider := cfg.Provider()
	if got := provider.Resolve("it"); got != (FormatSpec{Separator: ",", Delimiter: "'", Precision: Digits(2)}) {
		t.Fatalf("Resolve(it) = %s", got)
	}
	if got := provider.Resolve("de"); got != (FormatSpec{Separator: ",", Delimiter: ".", Precision: Digits(1)}) {
		t.Fatalf("Resolve(de) = %s", got)
	}
	if got := provider.Resolve(""); got.Delimiter != "." {
		t.Fatalf("Resolve(\"\") = %s; want de symbols", got)
	}
}

func TestConfigBinder(t *testing.T) {
	cfg, err := NewConfig(WithNumberFormat("it", NewNumberFormat(",", "'", 2)))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	store := NewMapStore(map[string]any{"total": decimal.RequireFromString("1234567.891")})
	accessors := cfg.Binder().Bind(store, "total")

	if got := accessors["formatted_total"].Get("it"); got != "1'234'567,89" {
		t.Fatalf("formatted_total = %q", got)
	}
}

func TestConfigNil(t *testing.T) {
	var cfg *Config
	if got := cfg.Provider().Resolve("it"); got != DefaultFormatSpec {
		t.Fatalf("nil config Resolve = %s", got)
	}
	if cfg.Catalog() != nil {
		t.Fatal("nil config should have no catalog")
	}
	if cfg.Binder() == nil {
		t.Fatal("nil config should still build a binder")
	}
}
