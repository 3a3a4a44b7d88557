package jdoc

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fastjson"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "null", KindNull.String())
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		kind Kind
		want string
	}{
		{`{"a":1}`, KindObject, `{"a":1}`},
		{`[1]`, KindArray, `[1]`},
		{`"s"`, KindString, `"s"`},
		{` 12 `, KindNumber, `12`},
		{`-0.5`, KindNumber, `-0.5`},
		{`TRUE`, KindBoolean, `true`},
		{`null`, KindNull, `null`},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			m, err := Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, m.Kind())
			assert.Equal(t, tc.want, Serialize(m))
		})
	}

	t.Run("empty input", func(t *testing.T) {
		_, err := Parse("  ")
		require.ErrorIs(t, err, ErrUnexpectedEnd)
	})

	t.Run("trailing data", func(t *testing.T) {
		_, err := Parse(`1 2`)
		require.ErrorIs(t, err, ErrTrailingData)
	})

	t.Run("stray closer", func(t *testing.T) {
		_, err := Parse(`]`)
		require.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("unknown character", func(t *testing.T) {
		_, err := Parse(`x`)
		require.ErrorIs(t, err, ErrInvalidChar)
	})
}

func TestSerialize_Nil(t *testing.T) {
	assert.Equal(t, "null", Serialize(nil))
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, NewArray(Int(1), Bool(false))))
	assert.Equal(t, "[1,false]", buf.String())
}

func TestEqual(t *testing.T) {
	o := NewObject()
	o.Set("a", Int(1))

	assert.True(t, Equal(nil, Null()))
	assert.True(t, Equal(Null(), nil))
	assert.False(t, Equal(o, NewArray()))
	assert.False(t, Equal(NewArray(), Int(1)))
	assert.True(t, Equal(o, o))
	assert.True(t, Equal(String("2000-01-01"), Date(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))))
}

var documents = []string{
	`{}`,
	`[]`,
	`[[],[1],[1,2]]`,
	`{"a":1,"b":[true,false,null],"c":{"d":"e"}}`,
	`{"int":9223372036854775807,"min":-9223372036854775808,"f":10.0,"big":1E+100,"small":1.5E-07}`,
	`{"s":"quote\" tab\t nl\n bs\\ \u00e9 \ud83d\ude00 \u0001"}`,
	`["2000-01-01","2000-01-01T10:20:30","2000-01-01T10:20:30.1234567","2000-01-01T10:20:30-05:00"]`,
	`{"nested":[{"x":[{"y":[]}]}]}`,
}

func TestRoundTrip(t *testing.T) {
	for _, doc := range documents {
		t.Run(doc, func(t *testing.T) {
			m, err := Parse(doc)
			require.NoError(t, err)

			out := Serialize(m)
			assert.Equal(t, doc, out)
			require.NoError(t, fastjson.Validate(out))

			again, err := Parse(out)
			require.NoError(t, err)
			assert.True(t, Equal(m, again))
			assert.Equal(t, out, Serialize(again))
		})
	}
}

func TestRoundTrip_Normalizes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{` { 'a' : 1 , "b" : [ 1 , 2 ] } `, `{"a":1,"b":[1,2]}`},
		{`[NULL,True,FALSE]`, `[null,true,false]`},
		{`[10.0,1e2,1.50]`, `[10.0,100.0,1.5]`},
		{`["\/"]`, `["/"]`},
		{`["a'b"]`, `["a'b"]`},
		{`{"a":1,"a":2}`, `{"a":2}`},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			m, err := Parse(tc.in)
			require.NoError(t, err)
			out := Serialize(m)
			assert.Equal(t, tc.want, out)

			again, err := Parse(out)
			require.NoError(t, err)
			assert.Equal(t, out, Serialize(again))
		})
	}
}
