package jdoc

import (
	"fmt"
	"reflect"
	"sync"
)

type converterEntry struct {
	fn reflect.Value
}

// Registry maps Go types to converters that turn values of that type into
// members. It is consulted by Convert before the built-in reflection rules.
// A Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[reflect.Type]converterEntry
}

func newRegistry() *Registry {
	return &Registry{entries: make(map[reflect.Type]converterEntry)}
}

var (
	memberType = reflect.TypeOf((*Member)(nil)).Elem()
	errorType  = reflect.TypeOf((*error)(nil)).Elem()
)

func validateConverterSignature(fn any) (reflect.Value, reflect.Type, error) {
	fnVal := reflect.ValueOf(fn)
	if fnVal.Kind() != reflect.Func {
		return fnVal, nil, fmt.Errorf("invalid converter signature (got %T)", fn)
	}
	typ := fnVal.Type()
	if typ.NumIn() != 1 || typ.NumOut() != 2 {
		return fnVal, nil, fmt.Errorf("invalid converter signature (expected 1 input, 2 outputs; got %d, %d)", typ.NumIn(), typ.NumOut())
	}
	if typ.Out(0) != memberType {
		return fnVal, nil, fmt.Errorf("invalid converter signature (first result must be jdoc.Member; got %s)", typ.Out(0))
	}
	if typ.Out(1) != errorType {
		return fnVal, nil, fmt.Errorf("invalid converter signature (second result must be error; got %s)", typ.Out(1))
	}
	return fnVal, typ.In(0), nil
}

// Register adds fn, which must have the form func(T) (Member, error), as the
// converter for values of exactly type T.
func (r *Registry) Register(fn any) error {
	fnVal, typ, err := validateConverterSignature(fn)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[typ]; exists {
		return fmt.Errorf("converter for %s already registered", typ)
	}
	r.entries[typ] = converterEntry{fn: fnVal}
	return nil
}

// lookup calls the converter registered for v's type, if any.
func (r *Registry) lookup(v reflect.Value) (Member, bool, error) {
	r.mu.RLock()
	ent, ok := r.entries[v.Type()]
	r.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	results := ent.fn.Call([]reflect.Value{v})
	if errVal := results[1].Interface(); errVal != nil {
		return nil, true, fmt.Errorf("convert %s: %w", v.Type(), errVal.(error))
	}
	m, _ := results[0].Interface().(Member)
	if m == nil {
		m = Null()
	}
	return m, true, nil
}
