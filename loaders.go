package decimalfmt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// numberFormatPath is where locale files keep the number format, below the locale key.
var numberFormatPath = []string{"number", "format"}

// Loader retrieves the number formats used to seed a Catalog
type Loader interface {
	Load() (map[string]NumberFormat, error)
}

// LoaderFunc adapters allow bare functions to implement Loader interface
type LoaderFunc func() (map[string]NumberFormat, error)

func (fn LoaderFunc) Load() (map[string]NumberFormat, error) {
	return fn()
}

// FileLoader reads locale files in YAML or JSON. Keys present in later files
// override the same keys from earlier files.
type FileLoader struct {
	paths     []string
	overrides map[string]string
}

func NewFileLoader(paths ...string) *FileLoader {
	return &FileLoader{
		paths:     append([]string(nil), paths...),
		overrides: make(map[string]string),
	}
}

// AddOverride merges the entry for locale from path after all regular files.
func (l *FileLoader) AddOverride(locale, path string) *FileLoader {
	if l == nil {
		return l
	}
	if l.overrides == nil {
		l.overrides = make(map[string]string)
	}
	l.overrides[normalizeLocale(locale)] = path
	return l
}

func (l *FileLoader) Load() (map[string]NumberFormat, error) {
	if l == nil || len(l.paths) == 0 {
		return nil, errors.New("decimalfmt: no loader paths configured")
	}

	formats := make(map[string]NumberFormat)
	for _, path := range l.paths {
		decoded, err := readNumberFormats(path)
		if err != nil {
			return nil, err
		}
		mergeNumberFormats(formats, decoded)
	}

	locales := make([]string, 0, len(l.overrides))
	for locale := range l.overrides {
		locales = append(locales, locale)
	}
	sort.Strings(locales)

	for _, locale := range locales {
		if err := l.loadOverride(formats, locale, l.overrides[locale]); err != nil {
			return nil, err
		}
	}

	return formats, nil
}

func (l *FileLoader) loadOverride(base map[string]NumberFormat, locale, path string) error {
	decoded, err := readNumberFormats(path)
	if err != nil {
		return fmt.Errorf("decimalfmt: override for %q: %w", locale, err)
	}

	format, ok := decoded[locale]
	if !ok {
		return fmt.Errorf("decimalfmt: override %s: %w for locale %q", path, ErrMissingFormat, locale)
	}
	mergeNumberFormats(base, map[string]NumberFormat{locale: format})
	return nil
}

func readNumberFormats(path string) (map[string]NumberFormat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("decimalfmt: read %s: %w", path, err)
	}

	formats, err := DecodeNumberFormats(path, data)
	if err != nil {
		return nil, fmt.Errorf("decimalfmt: decode %s: %w", path, err)
	}
	return formats, nil
}

// DecodeNumberFormats decodes a locale file, picking the codec from the
// extension of path. Locales without a number.format entry are skipped.
func DecodeNumberFormats(path string, data []byte) (map[string]NumberFormat, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".json":
		return decodeNumberFormatsJSON(data)
	case ".yaml", ".yml":
		return decodeNumberFormatsYAML(data)
	default:
		return nil, fmt.Errorf("unsupported extension %s", ext)
	}
}

func decodeNumberFormatsYAML(data []byte) (map[string]NumberFormat, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("yaml parse error: %w", err)
	}

	formats := make(map[string]NumberFormat, len(raw))
	for locale, tree := range raw {
		if locale == "" {
			return nil, errors.New("empty locale")
		}
		value, ok := lookupPath(tree, numberFormatPath...)
		if !ok {
			continue
		}
		format, err := decodeNumberFormat(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", locale, err)
		}
		formats[normalizeLocale(locale)] = format
	}
	return formats, nil
}

func decodeNumberFormatsJSON(data []byte) (map[string]NumberFormat, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid json")
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New("json root must be an object")
	}

	formats := make(map[string]NumberFormat)
	var decodeErr error
	root.ForEach(func(key, value gjson.Result) bool {
		locale := key.String()
		if locale == "" {
			decodeErr = errors.New("empty locale")
			return false
		}
		entry := value.Get(strings.Join(numberFormatPath, "."))
		if !entry.Exists() {
			return true
		}
		format, err := decodeNumberFormat(entry.Value())
		if err != nil {
			decodeErr = fmt.Errorf("%s: %w", locale, err)
			return false
		}
		formats[normalizeLocale(locale)] = format
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return formats, nil
}

// decodeNumberFormat maps a raw separator/delimiter/precision tree onto a
// NumberFormat. Unknown keys are ignored; scalars are weakly typed so
// `precision: "2"` is accepted.
func decodeNumberFormat(raw any) (NumberFormat, error) {
	if _, ok := raw.(map[string]any); !ok {
		return NumberFormat{}, fmt.Errorf("%w: expected a mapping, got %T", ErrMalformedFormat, raw)
	}

	var format NumberFormat
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &format,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return NumberFormat{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return NumberFormat{}, fmt.Errorf("%w: %v", ErrMalformedFormat, err)
	}
	return format, nil
}

func lookupPath(tree any, keys ...string) (any, bool) {
	current := tree
	for _, key := range keys {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = node[key]; !ok {
			return nil, false
		}
	}
	return current, true
}

func mergeNumberFormats(dest, source map[string]NumberFormat) {
	for locale, format := range source {
		existing, ok := dest[locale]
		if !ok {
			dest[locale] = format.clone()
			continue
		}
		if format.Separator != nil {
			existing.Separator = format.clone().Separator
		}
		if format.Delimiter != nil {
			existing.Delimiter = format.clone().Delimiter
		}
		if format.Precision != nil {
			existing.Precision = format.clone().Precision
		}
		dest[locale] = existing
	}
}
