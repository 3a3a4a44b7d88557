package jdoc

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Unmarshalers returns json/v2 unmarshalers that decode into the document
// model when the target is:
//   - *any    -> objects as *Object, arrays as Array; other values are left to
//     the default decoding
//   - *Member -> any JSON value as a member
//
// Strings and numbers inside decoded objects and arrays follow ParseString and
// ParseNumber, so dates are recognised and integers stay integers.
func Unmarshalers() *json.Unmarshalers {
	return json.JoinUnmarshalers(
		unmarshalAny(),
		unmarshalMember(),
	)
}

func unmarshalAny() *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *any) error {
		switch dec.PeekKind() {
		case '{', '[':
			m, err := decodeMember(dec)
			if err != nil {
				return err
			}
			*v = m
			return nil
		default:
			return json.SkipFunc
		}
	})
}

func unmarshalMember() *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *Member) error {
		m, err := decodeMember(dec)
		if err != nil {
			return err
		}
		*v = m
		return nil
	})
}

// decodeMember decodes the next JSON value from dec.
func decodeMember(dec *jsontext.Decoder) (Member, error) {
	switch dec.PeekKind() {
	case '{':
		return decodeObject(dec)
	case '[':
		return decodeArray(dec)
	case '"':
		tok, err := dec.ReadToken()
		if err != nil {
			return nil, fmt.Errorf("read string: %w", err)
		}
		return ParseString(tok.String()), nil
	case '0':
		raw, err := dec.ReadValue()
		if err != nil {
			return nil, fmt.Errorf("read number: %w", err)
		}
		v, err := ParseNumber(string(raw))
		if err != nil {
			return nil, fmt.Errorf("read number %s: %w", raw, err)
		}
		return v, nil
	case 't', 'f':
		tok, err := dec.ReadToken()
		if err != nil {
			return nil, fmt.Errorf("read boolean: %w", err)
		}
		return Bool(tok.Bool()), nil
	case 'n':
		if _, err := dec.ReadToken(); err != nil {
			return nil, fmt.Errorf("read null: %w", err)
		}
		return Null(), nil
	}
	// PeekKind reports an invalid kind on error; ReadToken surfaces it.
	tok, err := dec.ReadToken()
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("unexpected token %s", tok.Kind())
}

// decodeObject decodes a JSON object into an *Object.
func decodeObject(dec *jsontext.Decoder) (*Object, error) {
	if _, err := dec.ReadToken(); err != nil { // '{'
		return nil, fmt.Errorf("read object open: %w", err)
	}
	o := NewObject()
	for dec.PeekKind() != '}' {
		tok, err := dec.ReadToken()
		if err != nil {
			return nil, fmt.Errorf("read object key: %w", err)
		}
		name := tok.String()
		m, err := decodeMember(dec)
		if err != nil {
			return nil, fmt.Errorf("read value for key %q: %w", name, err)
		}
		o.Set(name, m)
	}
	if _, err := dec.ReadToken(); err != nil { // '}'
		return nil, fmt.Errorf("read object close: %w", err)
	}
	return o, nil
}

// decodeArray decodes a JSON array into an Array.
func decodeArray(dec *jsontext.Decoder) (Array, error) {
	if _, err := dec.ReadToken(); err != nil { // '['
		return nil, fmt.Errorf("read array open: %w", err)
	}
	a := Array{}
	for dec.PeekKind() != ']' {
		m, err := decodeMember(dec)
		if err != nil {
			return nil, fmt.Errorf("read array element: %w", err)
		}
		a = append(a, m)
	}
	if _, err := dec.ReadToken(); err != nil { // ']'
		return nil, fmt.Errorf("read array close: %w", err)
	}
	return a, nil
}

// MarshalJSONTo implements json.MarshalerTo.
func (o *Object) MarshalJSONTo(enc *jsontext.Encoder) error {
	return marshalMember(enc, o)
}

// UnmarshalJSONFrom implements json.UnmarshalerFrom.
func (o *Object) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	if k := dec.PeekKind(); k != '{' {
		return fmt.Errorf("cannot decode JSON %s into jdoc.Object", k)
	}
	res, err := decodeObject(dec)
	if err != nil {
		return err
	}
	*o = *res
	return nil
}

// MarshalJSONTo implements json.MarshalerTo.
func (a Array) MarshalJSONTo(enc *jsontext.Encoder) error {
	return marshalMember(enc, a)
}

// UnmarshalJSONFrom implements json.UnmarshalerFrom.
func (a *Array) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	if k := dec.PeekKind(); k != '[' {
		return fmt.Errorf("cannot decode JSON %s into jdoc.Array", k)
	}
	res, err := decodeArray(dec)
	if err != nil {
		return err
	}
	*a = res
	return nil
}

var (
	errNotScalar = errors.New("JSON value is not a scalar")
	errNonFinite = errors.New("NaN and Infinity have no JSON representation")
)

// MarshalJSONTo implements json.MarshalerTo.
func (v Value) MarshalJSONTo(enc *jsontext.Encoder) error {
	return marshalMember(enc, v)
}

// marshalMember writes the canonical text of m. jsontext only accepts
// standard JSON, so non-finite floats are rejected up front.
func marshalMember(enc *jsontext.Encoder, m Member) error {
	if err := checkFinite(m); err != nil {
		return err
	}
	return enc.WriteValue(jsontext.Value(Serialize(m)))
}

func checkFinite(m Member) error {
	switch x := m.(type) {
	case Value:
		if f, ok := x.AsFloat(); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return fmt.Errorf("cannot marshal %s: %w", Serialize(x), errNonFinite)
		}
	case *Object:
		for name, member := range x.All() {
			if err := checkFinite(member); err != nil {
				return fmt.Errorf("property %q: %w", name, err)
			}
		}
	case Array:
		for i, member := range x.All() {
			if err := checkFinite(member); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
	}
	return nil
}

// UnmarshalJSONFrom implements json.UnmarshalerFrom.
func (v *Value) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	if k := dec.PeekKind(); k == '{' || k == '[' {
		return fmt.Errorf("cannot decode into jdoc.Value: %w", errNotScalar)
	}
	m, err := decodeMember(dec)
	if err != nil {
		return err
	}
	*v = m.(Value)
	return nil
}
