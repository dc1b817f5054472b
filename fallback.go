package decimalfmt

import "sync"

// FallbackResolver resolves the locales tried after a locale and its parents.
type FallbackResolver interface {
	Resolve(locale string) []string
}

// StaticFallbackResolver holds explicit fallback chains per locale.
type StaticFallbackResolver struct {
	mu     sync.RWMutex
	chains map[string][]string
}

var _ FallbackResolver = &StaticFallbackResolver{}

func NewStaticFallbackResolver() *StaticFallbackResolver {
	return &StaticFallbackResolver{chains: make(map[string][]string)}
}

// Set replaces the chain for locale. Duplicates and self references are dropped.
func (r *StaticFallbackResolver) Set(locale string, fallbacks ...string) {
	if r == nil {
		return
	}
	locale = normalizeLocale(locale)
	if locale == "" {
		return
	}

	chain := normalizeLocales(fallbacks, locale)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.chains == nil {
		r.chains = make(map[string][]string)
	}
	if len(chain) == 0 {
		delete(r.chains, locale)
		return
	}
	r.chains[locale] = chain
}

func (r *StaticFallbackResolver) Resolve(locale string) []string {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	chain := r.chains[normalizeLocale(locale)]
	if len(chain) == 0 {
		return nil
	}
	return append([]string(nil), chain...)
}
