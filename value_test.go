package jdoc

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Kind(t *testing.T) {
	assert.Equal(t, KindNull, Value{}.Kind())
	assert.Equal(t, KindNull, Null().Kind())
	assert.Equal(t, KindString, String("a").Kind())
	assert.Equal(t, KindString, Date(time.Now()).Kind())
	assert.Equal(t, KindNumber, Int(1).Kind())
	assert.Equal(t, KindNumber, Float(1).Kind())
	assert.Equal(t, KindBoolean, Bool(false).Kind())
}

func TestValue_Accessors(t *testing.T) {
	s, ok := String("x").AsString()
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	s, ok = Date(time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)).AsString()
	assert.True(t, ok)
	assert.Equal(t, "2000-01-02", s)

	_, ok = Int(1).AsString()
	assert.False(t, ok)

	i, ok := Int(7).AsInt()
	assert.True(t, ok)
	assert.Equal(t, int64(7), i)

	_, ok = Float(7).AsInt()
	assert.False(t, ok)

	f, ok := Int(7).AsFloat()
	assert.True(t, ok)
	assert.Equal(t, 7.0, f)

	b, ok := Bool(true).AsBool()
	assert.True(t, ok)
	assert.True(t, b)

	ts := time.Date(2000, 1, 2, 3, 4, 5, 0, time.UTC)
	got, ok := Date(ts).AsTime()
	assert.True(t, ok)
	assert.Equal(t, ts, got)

	assert.True(t, Null().IsNull())
	assert.False(t, String("").IsNull())
}

func TestValue_Equal(t *testing.T) {
	cases := []struct {
		name  string
		a, b  Value
		equal bool
	}{
		{"null", Null(), Null(), true},
		{"int and float", Int(10), Float(10.0), true},
		{"different numbers", Int(10), Float(10.5), false},
		{"nan", Float(math.NaN()), Float(math.NaN()), true},
		{"strings", String("a"), String("a"), true},
		{"case sensitive", String("a"), String("A"), false},
		{"string and date", String("2000-01-01"), Date(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)), true},
		{"string and dated time", String("2000-01-01T00:00:00"), Date(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)), false},
		{"booleans", Bool(true), Bool(true), true},
		{"different booleans", Bool(true), Bool(false), false},
		{"different kinds", String("1"), Int(1), false},
		{"null and empty string", Null(), String(""), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.equal, tc.a.Equal(tc.b))
			assert.Equal(t, tc.equal, tc.b.Equal(tc.a))
		})
	}
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "null", Null().String())
	assert.Equal(t, "10", Int(10).String())
	assert.Equal(t, "10.0", Float(10).String())
	assert.Equal(t, "1E+100", Float(1e100).String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, `"a\"b"`, String(`a"b`).String())
}

func TestValue_RoundTrip(t *testing.T) {
	t.Run("int64 extremes", func(t *testing.T) {
		for _, i := range []int64{math.MaxInt64, math.MinInt64, 0, -1} {
			v, err := ParseNumber(Int(i).String())
			require.NoError(t, err)
			got, ok := v.AsInt()
			require.True(t, ok)
			assert.Equal(t, i, got)
		}
	})

	t.Run("floats keep their value", func(t *testing.T) {
		for _, f := range []float64{10, 1e100, 0.1, -2.5e-9, 123456.789, math.MaxFloat64, math.SmallestNonzeroFloat64} {
			v, err := ParseNumber(Float(f).String())
			require.NoError(t, err)
			assert.False(t, v.IsInt())
			got, _ := v.AsFloat()
			assert.Equal(t, f, got)
		}
	})

	t.Run("escaped strings", func(t *testing.T) {
		s := "quote\" newline\n backslash\\ letteré apostrophe'   \U0001F600"
		a, err := ParseArray("[" + String(s).String() + "]")
		require.NoError(t, err)
		got, ok := a[0].(Value).AsString()
		require.True(t, ok)
		assert.Equal(t, s, got)
	})

	t.Run("dates", func(t *testing.T) {
		zone := time.FixedZone("", -90*60)
		for _, ts := range []time.Time{
			time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC),
			time.Date(2024, 2, 29, 1, 2, 3, 456_700_000, time.UTC),
			time.Date(2024, 2, 29, 1, 2, 3, 0, zone),
		} {
			a, err := ParseArray("[" + Date(ts).String() + "]")
			require.NoError(t, err)
			v := a[0].(Value)
			require.True(t, v.IsDate(), ts.String())
			got, _ := v.AsTime()
			assert.True(t, ts.Equal(got), "want %s got %s", ts, got)
			assert.True(t, Date(ts).Equal(v))
		}
	})

	t.Run("dates below one tick", func(t *testing.T) {
		for _, ts := range []time.Time{
			time.Date(2000, 1, 1, 0, 0, 0, 50, time.UTC),
			time.Date(2000, 1, 1, 10, 20, 30, 1, time.UTC),
			time.Date(2000, 1, 1, 10, 20, 30, 123_456_789, time.FixedZone("", 60*60)),
		} {
			d := Date(ts)
			back, err := Parse(Serialize(d))
			require.NoError(t, err)
			assert.True(t, Equal(d, back), "%s reads back as %s", Serialize(d), Serialize(back))
			assert.Equal(t, Serialize(d), Serialize(back))
		}
	})
}

func TestParseString(t *testing.T) {
	assert.True(t, ParseString("2000-01-01").IsDate())
	assert.False(t, ParseString("hello").IsDate())
	assert.Equal(t, String("hello"), ParseString("hello"))
}
