package jdoc

import (
	"math"
	"testing"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unmarshal(t *testing.T, src string) any {
	t.Helper()
	var out any
	err := json.Unmarshal([]byte(src), &out, json.WithUnmarshalers(Unmarshalers()))
	require.NoError(t, err)
	return out
}

func assertObject(t *testing.T, v any) *Object {
	t.Helper()
	o, ok := v.(*Object)
	require.True(t, ok, "expected *Object, got %T", v)
	return o
}

func assertArray(t *testing.T, v any) Array {
	t.Helper()
	a, ok := v.(Array)
	require.True(t, ok, "expected Array, got %T", v)
	return a
}

func TestUnmarshalers(t *testing.T) {
	t.Run("empty object -> empty Object", func(t *testing.T) {
		o := assertObject(t, unmarshal(t, `{}`))
		require.Equal(t, 0, o.Len())
	})

	t.Run("empty array -> empty Array", func(t *testing.T) {
		a := assertArray(t, unmarshal(t, `[]`))
		require.Equal(t, 0, a.Len())
	})

	t.Run("ordering preserved and integers kept", func(t *testing.T) {
		o := assertObject(t, unmarshal(t, `{"b":1,"a":2.5}`))
		require.Equal(t, []string{"b", "a"}, o.Names())
		b, _ := o.Get("b")
		require.Equal(t, Int(1), b)
		a, _ := o.Get("a")
		require.Equal(t, Float(2.5), a)
	})

	t.Run("nested members and dates", func(t *testing.T) {
		a := assertArray(t, unmarshal(t, `[1,{"at":"2000-01-01","s":"x"},[null,true]]`))
		require.Equal(t, 3, a.Len())
		o := assertObject(t, a[1])
		at, _ := o.Get("at")
		require.True(t, at.(Value).IsDate())
		s, _ := o.Get("s")
		require.Equal(t, String("x"), s)
		require.Equal(t, NewArray(Null(), Bool(true)), a[2])
	})

	t.Run("scalars left to default decoding", func(t *testing.T) {
		require.Equal(t, float64(123), unmarshal(t, `123`))
		require.Equal(t, "s", unmarshal(t, `"s"`))
	})

	t.Run("member target accepts scalars", func(t *testing.T) {
		var m Member
		err := json.Unmarshal([]byte(`"2000-01-01T10:00:00Z"`), &m, json.WithUnmarshalers(Unmarshalers()))
		require.NoError(t, err)
		want := Date(time.Date(2000, 1, 1, 10, 0, 0, 0, time.UTC))
		require.True(t, Equal(want, m))
	})

	t.Run("member struct field", func(t *testing.T) {
		var doc struct {
			Name string `json:"name"`
			Body Member `json:"body"`
		}
		err := json.Unmarshal([]byte(`{"name":"n","body":{"k":[1]}}`), &doc, json.WithUnmarshalers(Unmarshalers()))
		require.NoError(t, err)
		require.Equal(t, "n", doc.Name)
		require.Equal(t, `{"k":[1]}`, Serialize(doc.Body))
	})

	t.Run("invalid json fails", func(t *testing.T) {
		var out any
		err := json.Unmarshal([]byte(`{"a":}`), &out, json.WithUnmarshalers(Unmarshalers()))
		require.Error(t, err)
	})
}

func TestObject_JSON(t *testing.T) {
	t.Run("unmarshal", func(t *testing.T) {
		var o Object
		require.NoError(t, json.Unmarshal([]byte(`{"x":1,"y":"2000-01-01"}`), &o))
		require.Equal(t, []string{"x", "y"}, o.Names())
	})

	t.Run("unmarshal rejects arrays", func(t *testing.T) {
		var o Object
		require.Error(t, json.Unmarshal([]byte(`[1]`), &o))
	})

	t.Run("marshal round trip", func(t *testing.T) {
		o, err := ParseObject(`{"a":[1,2.5,"é"],"b":{"c":null},"d":"2000-01-01T10:20:30"}`)
		require.NoError(t, err)

		data, err := json.Marshal(o)
		require.NoError(t, err)

		back, err := ParseObject(string(data))
		require.NoError(t, err)
		assert.True(t, o.Equal(back), string(data))
	})
}

func TestArray_JSON(t *testing.T) {
	var a Array
	require.NoError(t, json.Unmarshal([]byte(`[1,"a",{"b":false}]`), &a))
	require.Equal(t, 3, a.Len())
	require.Equal(t, Int(1), a[0])

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `[1,"a",{"b":false}]`, string(data))

	require.Error(t, json.Unmarshal([]byte(`{}`), &a))
}

func TestValue_JSON(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte(`12`), &v))
	require.Equal(t, Int(12), v)

	require.NoError(t, json.Unmarshal([]byte(`null`), &v))
	require.True(t, v.IsNull())

	require.ErrorIs(t, json.Unmarshal([]byte(`[1]`), &v), errNotScalar)

	data, err := json.Marshal(Float(10))
	require.NoError(t, err)
	assert.Equal(t, "10.0", string(data))
}

func TestMarshal_NonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := json.Marshal(Float(f))
		require.ErrorIs(t, err, errNonFinite, "%v", f)
	}

	o := NewObject()
	o.Set("list", NewArray(Int(1), Float(math.Inf(1))))
	_, err := json.Marshal(o)
	require.ErrorIs(t, err, errNonFinite)
	assert.Contains(t, err.Error(), `property "list": index 1`)

	_, err = json.Marshal(NewArray(Float(math.NaN())))
	require.ErrorIs(t, err, errNonFinite)
}
