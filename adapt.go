package jdoc

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"
)

const maxConvertDepth = 1000

var (
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()

	defaultRegistry = MustNewRegistry(Stdlib())
)

// FromNative converts an arbitrary Go value into a member using the standard
// library converters. See Registry.Convert for the rules.
func FromNative(v any) (Member, error) {
	return defaultRegistry.Convert(v)
}

// Convert turns v into a member:
//   - nil, nil pointers, nil maps and nil slices become null
//   - values whose exact type has a registered converter use it
//   - members are returned as they are
//   - strings, booleans, integers and floats become values
//   - encoding.TextMarshaler implementations become strings
//   - slices and arrays become arrays, converted element-wise
//   - maps with string keys become objects, keys in sorted order
//   - structs become objects of their exported fields in declaration order,
//     honouring json tag names and "-"
func (r *Registry) Convert(v any) (Member, error) {
	if v == nil {
		return Null(), nil
	}
	return r.convert(reflect.ValueOf(v), 0)
}

func (r *Registry) convert(v reflect.Value, depth int) (Member, error) {
	if depth > maxConvertDepth {
		return nil, fmt.Errorf("convert %s: nesting deeper than %d", v.Type(), maxConvertDepth)
	}
	if !v.IsValid() {
		return Null(), nil
	}

	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return Null(), nil
		}
		return r.convert(v.Elem(), depth+1)
	}

	if m, ok, err := r.lookup(v); ok || err != nil {
		return m, err
	}

	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return Null(), nil
		}
		// Only pointer receivers implement the interface: convert here,
		// otherwise the element would lose it.
		elem := v.Elem()
		if v.Type().Implements(memberType) && !elem.Type().Implements(memberType) {
			return v.Interface().(Member), nil
		}
		if v.Type().Implements(textMarshalerType) && !elem.Type().Implements(textMarshalerType) {
			return marshalText(v)
		}
		return r.convert(elem, depth+1)
	}

	if v.Type().Implements(memberType) {
		return v.Interface().(Member), nil
	}
	if v.Type().Implements(textMarshalerType) {
		return marshalText(v)
	}

	switch v.Kind() {
	case reflect.String:
		return String(v.String()), nil
	case reflect.Bool:
		return Bool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := v.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("convert %s: value %d overflows int64", v.Type(), u)
		}
		return Int(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return Float(v.Float()), nil
	case reflect.Slice:
		if v.IsNil() {
			return Null(), nil
		}
		return r.convertList(v, depth)
	case reflect.Array:
		return r.convertList(v, depth)
	case reflect.Map:
		if v.IsNil() {
			return Null(), nil
		}
		return r.convertMap(v, depth)
	case reflect.Struct:
		o := NewObject()
		if err := r.convertStruct(o, v, depth); err != nil {
			return nil, err
		}
		return o, nil
	}
	return nil, fmt.Errorf("convert %s: unsupported type", v.Type())
}

func (r *Registry) convertList(v reflect.Value, depth int) (Member, error) {
	a := make(Array, 0, v.Len())
	for i := range v.Len() {
		m, err := r.convert(v.Index(i), depth+1)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		a = append(a, m)
	}
	return a, nil
}

func (r *Registry) convertMap(v reflect.Value, depth int) (Member, error) {
	if v.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("convert %s: map keys must be strings", v.Type())
	}
	keys := v.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return strings.Compare(a.String(), b.String())
	})
	o := NewObject()
	for _, k := range keys {
		m, err := r.convert(v.MapIndex(k), depth+1)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k.String(), err)
		}
		o.Set(k.String(), m)
	}
	return o, nil
}

func (r *Registry) convertStruct(o *Object, v reflect.Value, depth int) error {
	t := v.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		name, skip := fieldName(f)
		if skip {
			continue
		}
		if !f.IsExported() {
			continue
		}
		fv := v.Field(i)
		if f.Anonymous && name == "" {
			inner := fv
			if inner.Kind() == reflect.Pointer {
				if inner.IsNil() {
					continue
				}
				inner = inner.Elem()
			}
			if inner.Kind() == reflect.Struct {
				if err := r.convertStruct(o, inner, depth+1); err != nil {
					return err
				}
				continue
			}
		}
		if name == "" {
			name = f.Name
		}
		m, err := r.convert(fv, depth+1)
		if err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
		o.Set(name, m)
	}
	return nil
}

// fieldName returns the json tag name of f, if any, and whether the field is
// excluded.
func fieldName(f reflect.StructField) (string, bool) {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		return "", false
	}
	if tag == "-" {
		return "", true
	}
	name, _, _ := strings.Cut(tag, ",")
	return name, false
}

func marshalText(v reflect.Value) (Member, error) {
	text, err := v.Interface().(encoding.TextMarshaler).MarshalText()
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", v.Type(), err)
	}
	return String(string(text)), nil
}
