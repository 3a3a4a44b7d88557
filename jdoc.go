// Package jdoc is a small JSON document codec. It parses text into an ordered
// document model (Object, Array, Value) with a single-pass reader and writes
// the model back with byte-stable formatting: integral floats keep a ".0"
// suffix, non-ASCII characters are escaped and date-like strings are printed
// with the precision they actually carry.
//
// Both single- and double-quoted strings are accepted on input; output always
// uses double quotes.
package jdoc

import (
	"io"
	"strings"
)

// Kind identifies the type of a document member.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBoolean
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Member is a node of the document tree: a Value, an *Object or an Array.
type Member interface {
	Kind() Kind
	WriteJSON(w *Writer) error
}

var (
	_ Member = Value{}
	_ Member = (*Object)(nil)
	_ Member = Array(nil)
)

// Serialize returns the canonical text of m. A nil member serializes as null.
func Serialize(m Member) string {
	var sb strings.Builder
	_ = Encode(&sb, m) // strings.Builder never fails
	return sb.String()
}

// Encode writes the canonical text of m to w.
func Encode(w io.Writer, m Member) error {
	if m == nil {
		m = Null()
	}
	return m.WriteJSON(NewWriter(w))
}

// Equal reports whether two members are equal. Values compare as described on
// Value.Equal, arrays element-wise and objects by their set of properties. A
// nil member is treated as null.
func Equal(a, b Member) bool {
	if a == nil {
		a = Null()
	}
	if b == nil {
		b = Null()
	}
	switch x := a.(type) {
	case Value:
		y, ok := b.(Value)
		return ok && x.Equal(y)
	case *Object:
		y, ok := b.(*Object)
		return ok && x.Equal(y)
	case Array:
		y, ok := b.(Array)
		return ok && x.Equal(y)
	default:
		return false
	}
}

// Parse parses a single top-level JSON term of any kind.
func Parse(s string, opts ...ReaderOption) (Member, error) {
	r := NewReader(strings.NewReader(s), opts...)
	ok, err := r.Advance()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, r.fail(ErrUnexpectedEnd)
	}
	m, err := r.Member()
	if err != nil {
		return nil, err
	}
	if err := r.expectEnd(); err != nil {
		return nil, err
	}
	return m, nil
}
