package decimalfmt

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/shopspring/decimal"
)

// AttributeStore is the host object's get/set-by-name access to its numeric
// attributes. Thread safety is the implementation's concern.
type AttributeStore interface {
	Get(name string) any
	Set(name string, value any)
}

// attributeSetter is implemented by stores that can report rejected writes.
type attributeSetter interface {
	TrySet(name string, value any) error
}

// AttributeStoreFuncs adapts a pair of functions to AttributeStore.
type AttributeStoreFuncs struct {
	GetFunc func(name string) any
	SetFunc func(name string, value any)
}

func (s AttributeStoreFuncs) Get(name string) any {
	if s.GetFunc == nil {
		return nil
	}
	return s.GetFunc(name)
}

func (s AttributeStoreFuncs) Set(name string, value any) {
	if s.SetFunc != nil {
		s.SetFunc(name, value)
	}
}

// MapStore is an in-memory AttributeStore safe for concurrent use.
type MapStore struct {
	mu     sync.RWMutex
	values map[string]any
}

var _ AttributeStore = &MapStore{}

func NewMapStore(initial map[string]any) *MapStore {
	values := make(map[string]any, len(initial))
	for name, value := range initial {
		values[name] = value
	}
	return &MapStore{values: values}
}

func (s *MapStore) Get(name string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[name]
}

func (s *MapStore) Set(name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]any)
	}
	s.values[name] = value
}

// Snapshot returns a copy of the stored values
func (s *MapStore) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.values))
	for name, value := range s.values {
		out[name] = value
	}
	return out
}

// StructStore exposes the exported fields of a struct as attributes. A field
// is named by its `decimal:"name"` tag, or else by its snake_case name
// (SubTotal -> sub_total). Fields tagged `decimal:"-"` are skipped.
type StructStore struct {
	target reflect.Value
	fields map[string][]int
}

var _ AttributeStore = &StructStore{}

func NewStructStore(target any) (*StructStore, error) {
	value := reflect.ValueOf(target)
	if value.Kind() != reflect.Pointer || value.IsNil() || value.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("decimalfmt: struct store requires a non-nil struct pointer, got %T", target)
	}

	elem := value.Elem()
	fields := make(map[string][]int)
	for _, field := range reflect.VisibleFields(elem.Type()) {
		if !field.IsExported() || field.Anonymous || throughPointer(elem.Type(), field.Index) {
			continue
		}

		name := snakeCase(field.Name)
		if tag, ok := field.Tag.Lookup("decimal"); ok {
			tag = strings.TrimSpace(strings.Split(tag, ",")[0])
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		if _, exists := fields[name]; exists && len(field.Index) > 1 {
			continue
		}
		fields[name] = field.Index
	}

	return &StructStore{target: elem, fields: fields}, nil
}

// Names returns the attribute names exposed by the store, sorted
func (s *StructStore) Names() []string {
	names := make([]string, 0, len(s.fields))
	for name := range s.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *StructStore) Get(name string) any {
	field, ok := s.field(name)
	if !ok {
		return nil
	}
	return field.Interface()
}

// Set stores value, dropping writes TrySet rejects.
func (s *StructStore) Set(name string, value any) {
	_ = s.TrySet(name, value)
}

// TrySet converts value into the field type. Decimals convert into
// decimal.Decimal, *decimal.Decimal, decimal.NullDecimal, floats, strings,
// and integer fields when they carry no fraction.
func (s *StructStore) TrySet(name string, value any) error {
	field, ok := s.field(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedField, name)
	}

	if value == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}

	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(field.Type()) {
		field.Set(rv)
		return nil
	}

	d, isDecimal := value.(decimal.Decimal)
	if !isDecimal {
		return fmt.Errorf("%w: %q cannot hold %T", ErrUnsupportedField, name, value)
	}

	switch field.Type() {
	case reflect.TypeOf(&decimal.Decimal{}):
		field.Set(reflect.ValueOf(&d))
		return nil
	case reflect.TypeOf(decimal.NullDecimal{}):
		field.Set(reflect.ValueOf(decimal.NewNullDecimal(d)))
		return nil
	}

	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		field.SetFloat(d.InexactFloat64())
	case reflect.String:
		field.SetString(canonicalString(d))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !d.IsInteger() || field.OverflowInt(d.IntPart()) {
			return fmt.Errorf("%w: %q cannot hold %s", ErrUnsupportedField, name, d)
		}
		field.SetInt(d.IntPart())
	default:
		return fmt.Errorf("%w: %q has type %s", ErrUnsupportedField, name, field.Type())
	}
	return nil
}

func (s *StructStore) field(name string) (reflect.Value, bool) {
	if s == nil {
		return reflect.Value{}, false
	}
	index, ok := s.fields[name]
	if !ok {
		return reflect.Value{}, false
	}
	return s.target.FieldByIndex(index), true
}

func throughPointer(t reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		field := t.Field(i)
		if field.Type.Kind() == reflect.Pointer {
			return true
		}
		t = field.Type
	}
	return false
}

// snakeCase turns Go field names into attribute names: SubTotal -> sub_total,
// TotalVAT -> total_vat.
func snakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
