package decimalfmt

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// ViperProvider serves number formats kept in a viper instance under
// `<locale>.number.format`. The settings are snapshotted into a Catalog;
// Reload and Watch replace the snapshot atomically.
type ViperProvider struct {
	v        *viper.Viper
	opts     []CatalogOption
	logger   *zap.Logger
	snapshot atomic.Pointer[Catalog]

	mu        sync.Mutex
	listeners []func(*Catalog)
	watching  bool
}

var _ ConfigProvider = &ViperProvider{}

// NewViperProvider snapshots v. Catalog options apply to every snapshot.
func NewViperProvider(v *viper.Viper, opts ...CatalogOption) (*ViperProvider, error) {
	if v == nil {
		return nil, errors.New("decimalfmt: viper provider requires a viper instance")
	}

	provider := &ViperProvider{
		v:      v,
		opts:   opts,
		logger: zap.NewNop(),
	}

	if err := provider.Reload(); err != nil {
		return nil, err
	}
	return provider, nil
}

// WithLogger sets the logger used to report reloads
func (p *ViperProvider) WithLogger(logger *zap.Logger) *ViperProvider {
	if logger != nil {
		p.logger = logger
	}
	return p
}

func (p *ViperProvider) Resolve(locale string) FormatSpec {
	return p.Catalog().Resolve(locale)
}

func (p *ViperProvider) Lookup(locale string) (FormatSpec, error) {
	return p.Catalog().Lookup(locale)
}

// Catalog returns the current snapshot
func (p *ViperProvider) Catalog() *Catalog {
	if p == nil {
		return nil
	}
	return p.snapshot.Load()
}

// OnChange registers fn to run after every successful reload.
func (p *ViperProvider) OnChange(fn func(*Catalog)) {
	if p == nil || fn == nil {
		return
	}
	p.mu.Lock()
	p.listeners = append(p.listeners, fn)
	p.mu.Unlock()
}

// Reload rebuilds the snapshot from the current viper settings. On error the
// previous snapshot stays in place.
func (p *ViperProvider) Reload() error {
	formats, err := formatsFromSettings(p.v.AllSettings())
	if err != nil {
		return err
	}

	catalog := NewCatalog(formats, p.opts...)
	p.snapshot.Store(catalog)

	p.mu.Lock()
	listeners := slices.Clone(p.listeners)
	p.mu.Unlock()

	for _, listener := range listeners {
		listener(catalog)
	}
	return nil
}

// Watch reloads the snapshot whenever viper sees the config file change.
// The viper instance must have been loaded from a file.
func (p *ViperProvider) Watch() {
	p.mu.Lock()
	if p.watching {
		p.mu.Unlock()
		return
	}
	p.watching = true
	p.mu.Unlock()

	p.v.OnConfigChange(func(event fsnotify.Event) {
		if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
			return
		}
		if err := p.Reload(); err != nil {
			p.logger.Warn("number format reload failed", zap.String("file", event.Name), zap.Error(err))
			return
		}
		p.logger.Info("number formats reloaded", zap.String("file", event.Name), zap.Strings("locales", p.Catalog().Locales()))
	})
	p.v.WatchConfig()
}

func formatsFromSettings(settings map[string]any) (map[string]NumberFormat, error) {
	keys := make([]string, 0, len(settings))
	for key := range settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	formats := make(map[string]NumberFormat)
	var errs []error
	for _, key := range keys {
		value, ok := lookupPath(settings[key], numberFormatPath...)
		if !ok {
			continue
		}
		format, err := decodeNumberFormat(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("decimalfmt: %s: %w", key, err))
			continue
		}
		formats[normalizeLocale(key)] = format
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return formats, nil
}
