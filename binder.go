package decimalfmt

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// FormattedPrefix is prepended to an attribute name to name its formatted view.
const FormattedPrefix = "formatted_"

// Binding declares a formatted view over a source attribute.
type Binding struct {
	SourceName    string
	FormattedName string
}

func NewBinding(name string) Binding {
	return Binding{SourceName: name, FormattedName: FormattedName(name)}
}

// FormattedName returns the view name for an attribute: total -> formatted_total.
func FormattedName(name string) string {
	return FormattedPrefix + name
}

// Bindings builds one Binding per distinct non-blank name, in first-seen order.
func Bindings(names ...string) []Binding {
	seen := make(map[string]struct{}, len(names))
	out := make([]Binding, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, NewBinding(name))
	}
	return out
}

// Accessor is the formatted getter/setter pair of one binding. The locale is
// passed on every call.
type Accessor struct {
	Binding
	Get func(locale string) string
	Set func(locale, input string)
}

// Accessors maps formatted names to their accessor pairs.
type Accessors map[string]Accessor

// Names returns the formatted names, sorted
func (a Accessors) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (a Accessors) Lookup(formattedName string) (Accessor, bool) {
	accessor, ok := a[formattedName]
	return accessor, ok
}

// FuncMap exposes every getter for locale as a template function named after
// the formatted attribute.
func (a Accessors) FuncMap(locale string) map[string]any {
	funcs := make(map[string]any, len(a))
	for name, accessor := range a {
		get := accessor.Get
		funcs[name] = func() string {
			return get(locale)
		}
	}
	return funcs
}

// Binder builds accessor pairs over an AttributeStore. It holds no state of
// its own beyond the provider and logger.
type Binder struct {
	config ConfigProvider
	logger *zap.Logger
}

type BinderOption func(*Binder)

func WithBinderLogger(logger *zap.Logger) BinderOption {
	return func(b *Binder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

func NewBinder(config ConfigProvider, opts ...BinderOption) *Binder {
	binder := &Binder{config: config, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(binder)
	}
	return binder
}

// Bind returns a fresh accessor map for names over store.
func Bind(names []string, store AttributeStore, config ConfigProvider) Accessors {
	return NewBinder(config).Bind(store, names...)
}

func (b *Binder) Bind(store AttributeStore, names ...string) Accessors {
	accessors := make(Accessors, len(names))
	b.BindInto(accessors, store, names...)
	return accessors
}

// BindInto registers the accessor pairs in an existing map. Binding a name
// again replaces its pair. Neither store nor the provider is touched.
func (b *Binder) BindInto(accessors Accessors, store AttributeStore, names ...string) {
	if accessors == nil || store == nil {
		return
	}
	for _, binding := range Bindings(names...) {
		accessors[binding.FormattedName] = b.accessor(binding, store)
	}
}

func (b *Binder) accessor(binding Binding, store AttributeStore) Accessor {
	source := binding.SourceName

	return Accessor{
		Binding: binding,
		Get: func(locale string) string {
			return Format(store.Get(source), resolveOrDefault(b.config, locale))
		},
		Set: func(locale, input string) {
			value := Parse(input, resolveOrDefault(b.config, locale))
			if _, ok := value.(decimal.Decimal); !ok {
				b.logger.Debug("formatted input stored unconverted",
					zap.String("attribute", source),
					zap.String("locale", locale),
					zap.String("input", input),
				)
			}
			b.store(store, source, value)
		},
	}
}

func (b *Binder) store(store AttributeStore, name string, value any) {
	setter, ok := store.(attributeSetter)
	if !ok {
		store.Set(name, value)
		return
	}
	if err := setter.TrySet(name, value); err != nil {
		b.logger.Debug("attribute write rejected", zap.String("attribute", name), zap.Error(err))
	}
}
