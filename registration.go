package jdoc

// Registration is a deferred converter registration. Packages that know how to
// turn their types into members expose values of this type so callers opt in
// explicitly instead of relying on import side effects.
//
// For example, in a package "money":
//
//	var Amount = jdoc.NewConverter(func(a Amount) (jdoc.Member, error) { ... })
//
// Usage:
//
//	r, _ := jdoc.NewRegistry(jdoc.Stdlib(), money.Amount)
type Registration func(r *Registry) error

// NewConverter wraps a typed conversion function into a Registration.
func NewConverter[T any](fn func(T) (Member, error)) Registration {
	return func(r *Registry) error {
		return r.Register(fn)
	}
}

// Group groups multiple registrations into one.
func Group(regs ...Registration) Registration {
	return func(r *Registry) error { return Apply(r, regs...) }
}

// Apply applies registrations to an existing registry, stopping at the first
// error.
func Apply(r *Registry, regs ...Registration) error {
	for _, reg := range regs {
		if err := reg(r); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry constructs a registry and applies the provided registrations.
func NewRegistry(regs ...Registration) (*Registry, error) {
	r := newRegistry()
	if err := Apply(r, regs...); err != nil {
		return nil, err
	}
	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on error.
func MustNewRegistry(regs ...Registration) *Registry {
	r, err := NewRegistry(regs...)
	if err != nil {
		panic(err)
	}
	return r
}
