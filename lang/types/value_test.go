package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruth(t *testing.T) {
	falsey := []Value{Nil, False}
	for _, v := range falsey {
		assert.Equal(t, False, v.Truth(), "%v", v)
	}

	truthy := []Value{
		True,
		Float(0),
		Float(1),
		Float(math.NaN()),
		String(""),
		String("x"),
	}
	for _, v := range truthy {
		assert.Equal(t, True, v.Truth(), "%v", v)
	}
}

func TestFloatString(t *testing.T) {
	cases := map[float64]string{
		7:     "7",
		0:     "0",
		-3:    "-3",
		2.5:   "2.5",
		0.125: "0.125",
		1e6:   "1000000",
	}
	for in, want := range cases {
		assert.Equal(t, want, Float(in).String())
	}
	assert.Equal(t, "NaN", Float(math.NaN()).String())
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "nil", Nil.String())
	assert.Equal(t, "true", True.String())
	assert.Equal(t, "false", False.String())
	assert.Equal(t, "hi", String("hi").String())
}

func TestEqual(t *testing.T) {
	nan := Float(math.NaN())

	// reflexive for every value, including NaN
	for _, v := range []Value{Nil, True, False, Float(0), Float(1.5), nan, String(""), String("x")} {
		require.True(t, Equal(v, v), "%v == %v", v, v)
	}

	assert.True(t, Equal(Float(1), Float(1)))
	assert.False(t, Equal(Float(1), Float(2)))
	assert.True(t, Equal(String("a"), String("a")))
	assert.False(t, Equal(String("a"), String("b")))

	// no type coercion across types
	assert.False(t, Equal(Float(0), False))
	assert.False(t, Equal(String("1"), Float(1)))
	assert.False(t, Equal(Nil, False))
}
