package jdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type celsius float64

type point struct{ X, Y int }

func TestNewConverter(t *testing.T) {
	t.Run("convert wraps value", func(t *testing.T) {
		r, err := NewRegistry(NewConverter(func(c celsius) (Member, error) { return String("warm"), nil }))
		require.NoError(t, err)

		got, err := r.Convert(celsius(30))
		require.NoError(t, err)
		assert.Equal(t, String("warm"), got)
	})

	t.Run("error bubbles up", func(t *testing.T) {
		r, err := NewRegistry(NewConverter(func(c celsius) (Member, error) { return nil, assert.AnError }))
		require.NoError(t, err)

		got, err := r.Convert(celsius(30))
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, got)
	})

	t.Run("nil member becomes null", func(t *testing.T) {
		r, err := NewRegistry(NewConverter(func(c celsius) (Member, error) { return nil, nil }))
		require.NoError(t, err)

		got, err := r.Convert(celsius(30))
		require.NoError(t, err)
		assert.Equal(t, Null(), got)
	})
}

func TestGroup(t *testing.T) {
	t.Run("empty bundle succeeds", func(t *testing.T) {
		r, err := NewRegistry(Group())
		require.NoError(t, err)
		assert.NotNil(t, r)
	})

	t.Run("combines multiple converters", func(t *testing.T) {
		r, err := NewRegistry(Group(
			NewConverter(func(c celsius) (Member, error) { return String("C"), nil }),
			NewConverter(func(p point) (Member, error) { return String("P"), nil }),
		))
		require.NoError(t, err)

		gotC, err := r.Convert(celsius(1))
		require.NoError(t, err)
		assert.Equal(t, String("C"), gotC)

		gotP, err := r.Convert(point{})
		require.NoError(t, err)
		assert.Equal(t, String("P"), gotP)
	})

	t.Run("registration error stops processing", func(t *testing.T) {
		called := false
		_, err := NewRegistry(Group(
			Registration(func(r *Registry) error { return assert.AnError }),
			Registration(func(r *Registry) error { called = true; return nil }),
		))
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.False(t, called, "later registration ran after error")
	})
}

func TestApply(t *testing.T) {
	t.Run("empty registration list succeeds", func(t *testing.T) {
		r := newRegistry()
		err := Apply(r)
		assert.NoError(t, err)
	})

	t.Run("applies all registrations", func(t *testing.T) {
		count := 0
		r := newRegistry()
		err := Apply(r,
			Registration(func(r *Registry) error { count++; return nil }),
			Registration(func(r *Registry) error { count++; return nil }),
		)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("registration error stops processing", func(t *testing.T) {
		called := false
		r := newRegistry()
		err := Apply(r,
			Registration(func(r *Registry) error { return assert.AnError }),
			Registration(func(r *Registry) error { called = true; return nil }),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.False(t, called, "later registration ran after error")
	})
}

func TestNewRegistry(t *testing.T) {
	t.Run("empty registry falls back to reflection", func(t *testing.T) {
		r, err := NewRegistry()
		require.NoError(t, err)

		got, err := r.Convert(point{X: 1, Y: 2})
		require.NoError(t, err)
		assert.Equal(t, `{"X":1,"Y":2}`, Serialize(got))
	})

	t.Run("duplicate converter returns error", func(t *testing.T) {
		conv := NewConverter(func(c celsius) (Member, error) { return Null(), nil })
		r, err := NewRegistry(conv, conv)
		require.Error(t, err)
		assert.Nil(t, r)
	})

	t.Run("registration error returns error", func(t *testing.T) {
		r, err := NewRegistry(Registration(func(r *Registry) error { return assert.AnError }))
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, r)
	})

	t.Run("must variant panics on error", func(t *testing.T) {
		assert.Panics(t, func() {
			MustNewRegistry(Registration(func(r *Registry) error { return assert.AnError }))
		})
	})
}
