package jdoc

import (
	"iter"
	"slices"
	"strings"
)

// Object is an ordered collection of uniquely named members. Names are case
// sensitive. Setting an existing name replaces its member in place; setting a
// new name appends it. The zero Object is empty and ready to use.
//
// An Object may be serialized from several goroutines at once as long as no
// goroutine modifies it meanwhile.
type Object struct {
	names   []string
	members []Member
	index   map[string]int
}

func NewObject() *Object {
	return &Object{}
}

// ParseObject parses text holding a single JSON object.
func ParseObject(s string, opts ...ReaderOption) (*Object, error) {
	r := NewReader(strings.NewReader(s), opts...)
	if _, err := r.Advance(); err != nil {
		return nil, err
	}
	o, err := ReadObject(r)
	if err != nil {
		return nil, err
	}
	if err := r.expectEnd(); err != nil {
		return nil, err
	}
	return o, nil
}

// ReadObject reads an object from a reader positioned on its opening brace and
// leaves the reader on the closing brace. Later duplicate names overwrite
// earlier ones without moving them.
func ReadObject(r *Reader) (*Object, error) {
	if r.Token() != TokenStartObject {
		return nil, r.fail(ErrReadObject)
	}
	o := NewObject()
	for {
		ok, err := r.Advance()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if r.Token() == TokenEndObject {
			return o, nil
		}
		if r.Token() != TokenPairName {
			return nil, r.fail(ErrUnexpectedElement)
		}
		name, _ := r.Value().AsString()

		ok, err = r.Advance()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		m, err := r.Member()
		if err != nil {
			return nil, err
		}
		o.Set(name, m)
	}
	return nil, r.fail(ErrUnexpectedEnd)
}

func (o *Object) Kind() Kind { return KindObject }

func (o *Object) Len() int { return len(o.names) }

// Get returns the member stored under name.
func (o *Object) Get(name string) (Member, bool) {
	i, ok := o.index[name]
	if !ok {
		return nil, false
	}
	return o.members[i], true
}

// Set stores m under name. A nil member is stored as null.
func (o *Object) Set(name string, m Member) {
	if m == nil {
		m = Null()
	}
	if i, ok := o.index[name]; ok {
		o.members[i] = m
		return
	}
	if o.index == nil {
		o.index = make(map[string]int)
	}
	o.index[name] = len(o.names)
	o.names = append(o.names, name)
	o.members = append(o.members, m)
}

// Names returns the property names in insertion order.
func (o *Object) Names() []string {
	return slices.Clone(o.names)
}

// All iterates over the properties in insertion order.
func (o *Object) All() iter.Seq2[string, Member] {
	return func(yield func(string, Member) bool) {
		for i, name := range o.names {
			if !yield(name, o.members[i]) {
				return
			}
		}
	}
}

func (o *Object) WriteJSON(w *Writer) error {
	if err := w.WriteStartObject(); err != nil {
		return err
	}
	for i, name := range o.names {
		if i > 0 {
			if err := w.WriteValueDelimiter(); err != nil {
				return err
			}
		}
		if err := w.WritePropertyName(name); err != nil {
			return err
		}
		if err := o.members[i].WriteJSON(w); err != nil {
			return err
		}
	}
	return w.WriteEndObject()
}

func (o *Object) String() string {
	return Serialize(o)
}

// Equal reports whether both objects hold the same names with equal members.
// Property order is not compared.
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	if o.Len() != other.Len() {
		return false
	}
	for i, name := range o.names {
		m, ok := other.Get(name)
		if !ok || !Equal(o.members[i], m) {
			return false
		}
	}
	return true
}
