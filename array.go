package jdoc

import (
	"iter"
	"strings"
)

// Array is an ordered sequence of members. Members may be of mixed kinds and
// may repeat.
type Array []Member

func NewArray(members ...Member) Array {
	a := make(Array, 0, len(members))
	for _, m := range members {
		a.Add(m)
	}
	return a
}

// ParseArray parses text holding a single JSON array.
func ParseArray(s string, opts ...ReaderOption) (Array, error) {
	r := NewReader(strings.NewReader(s), opts...)
	if _, err := r.Advance(); err != nil {
		return nil, err
	}
	a, err := ReadArray(r)
	if err != nil {
		return nil, err
	}
	if err := r.expectEnd(); err != nil {
		return nil, err
	}
	return a, nil
}

// ReadArray reads an array from a reader positioned on its opening bracket and
// leaves the reader on the closing bracket.
func ReadArray(r *Reader) (Array, error) {
	if r.Token() != TokenStartArray {
		return nil, r.fail(ErrReadArray)
	}
	a := Array{}
	for {
		ok, err := r.Advance()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, r.fail(ErrUnexpectedEnd)
		}
		if r.Token() == TokenEndArray {
			return a, nil
		}
		m, err := r.Member()
		if err != nil {
			return nil, err
		}
		a = append(a, m)
	}
}

func (a Array) Kind() Kind { return KindArray }

func (a Array) Len() int { return len(a) }

// At returns the member at index i.
func (a Array) At(i int) Member { return a[i] }

// Add appends m. A nil member is stored as null.
func (a *Array) Add(m Member) {
	if m == nil {
		m = Null()
	}
	*a = append(*a, m)
}

func (a Array) All() iter.Seq2[int, Member] {
	return func(yield func(int, Member) bool) {
		for i, m := range a {
			if !yield(i, m) {
				return
			}
		}
	}
}

func (a Array) WriteJSON(w *Writer) error {
	if err := w.WriteStartArray(); err != nil {
		return err
	}
	for i, m := range a {
		if i > 0 {
			if err := w.WriteValueDelimiter(); err != nil {
				return err
			}
		}
		if m == nil {
			m = Null()
		}
		if err := m.WriteJSON(w); err != nil {
			return err
		}
	}
	return w.WriteEndArray()
}

func (a Array) String() string {
	return Serialize(a)
}

// Equal compares element-wise.
func (a Array) Equal(other Array) bool {
	if len(a) != len(other) {
		return false
	}
	for i := range a {
		if !Equal(a[i], other[i]) {
			return false
		}
	}
	return true
}
