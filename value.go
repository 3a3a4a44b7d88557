package jdoc

import (
	"math"
	"strings"
	"time"
)

type valueType uint8

const (
	typeNull valueType = iota
	typeString
	typeDate
	typeInt
	typeFloat
	typeBool
)

// Value is an immutable scalar member: null, string, number or boolean.
// Numbers are held either as int64 or float64. A date is a string-kind value
// that keeps its time.Time and is written with date formatting rules.
//
// The zero Value is null.
type Value struct {
	typ valueType
	i   int64
	f   float64
	b   bool
	s   string
	t   time.Time
}

func Null() Value { return Value{} }

func String(s string) Value { return Value{typ: typeString, s: s} }

func Date(t time.Time) Value { return Value{typ: typeDate, t: t} }

func Int(i int64) Value { return Value{typ: typeInt, i: i} }

func Float(f float64) Value { return Value{typ: typeFloat, f: f} }

func Bool(b bool) Value { return Value{typ: typeBool, b: b} }

// ParseString classifies a decoded string literal. Text that matches
// yyyy-MM-dd or yyyy-MM-ddTHH:mm:ss[.fffffff][zone] exactly becomes a date
// value; anything else stays a plain string.
func ParseString(s string) Value {
	if t, ok := parseDate(s); ok {
		return Date(t)
	}
	return String(s)
}

// ParseNumber parses a JSON number lexeme with the same rules the reader
// applies inside documents.
func ParseNumber(s string, opts ...ReaderOption) (Value, error) {
	r := NewReader(strings.NewReader(s), opts...)
	ok, err := r.Advance()
	if err != nil {
		return Value{}, err
	}
	if !ok || r.tok != TokenValue || r.val.Kind() != KindNumber {
		return Value{}, r.fail(ErrInvalidNumber)
	}
	if err := r.expectEnd(); err != nil {
		return Value{}, err
	}
	return r.val, nil
}

func (v Value) Kind() Kind {
	switch v.typ {
	case typeString, typeDate:
		return KindString
	case typeInt, typeFloat:
		return KindNumber
	case typeBool:
		return KindBoolean
	default:
		return KindNull
	}
}

func (v Value) IsNull() bool { return v.typ == typeNull }

// IsDate reports whether the value holds a date.
func (v Value) IsDate() bool { return v.typ == typeDate }

// IsInt reports whether the value is a number stored as an integer.
func (v Value) IsInt() bool { return v.typ == typeInt }

// AsString returns the text of a string value. For dates it returns the
// serialized date text without quotes.
func (v Value) AsString() (string, bool) {
	switch v.typ {
	case typeString:
		return v.s, true
	case typeDate:
		return formatTime(v.t), true
	}
	return "", false
}

func (v Value) AsTime() (time.Time, bool) {
	return v.t, v.typ == typeDate
}

// AsInt returns the integer payload. Floats are not truncated: the second
// result is false for them.
func (v Value) AsInt() (int64, bool) {
	return v.i, v.typ == typeInt
}

// AsFloat returns any number as float64.
func (v Value) AsFloat() (float64, bool) {
	switch v.typ {
	case typeInt:
		return float64(v.i), true
	case typeFloat:
		return v.f, true
	}
	return 0, false
}

func (v Value) AsBool() (bool, bool) {
	return v.b, v.typ == typeBool
}

func (v Value) WriteJSON(w *Writer) error {
	switch v.typ {
	case typeString:
		return w.WriteString(v.s)
	case typeDate:
		return w.WriteTime(v.t)
	case typeInt:
		return w.WriteInt(v.i)
	case typeFloat:
		return w.WriteFloat(v.f)
	case typeBool:
		return w.WriteBool(v.b)
	default:
		return w.WriteNull()
	}
}

// String returns the serialized form of the value.
func (v Value) String() string {
	return Serialize(v)
}

// Equal compares two values of the same kind. Strings compare by their
// serialized text, so a date equals a string that prints the same way.
// Numbers compare as float64, so Int(10) equals Float(10).
func (v Value) Equal(other Value) bool {
	if v.Kind() != other.Kind() {
		return false
	}
	switch v.Kind() {
	case KindNull:
		return true
	case KindString:
		if v.typ == typeString && other.typ == typeString {
			return v.s == other.s
		}
		return v.String() == other.String()
	case KindNumber:
		a, _ := v.AsFloat()
		b, _ := other.AsFloat()
		return a == b || (math.IsNaN(a) && math.IsNaN(b))
	case KindBoolean:
		return v.b == other.b
	}
	return false
}
