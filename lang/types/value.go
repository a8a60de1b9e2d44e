// Package types defines the runtime values manipulated by the
// interpreter.
package types

import (
	"math"
	"strconv"
)

// Value is the interface implemented by any Lox runtime value.
type Value interface {
	// String returns the Lox string representation of the value, the one
	// produced by a print statement.
	String() string

	// Type returns a short string describing the value's type.
	Type() string

	// Truth returns the truth value: nil and false are falsey, every
	// other value is truthy.
	Truth() Bool
}

// NilType is the type of nil. Its only legal value is Nil. (We represent
// it as a number, not struct{}, so that Nil may be constant.)
type NilType byte

// Nil is the nil value of the language.
const Nil = NilType(0)

var _ Value = Nil

func (NilType) String() string { return "nil" }
func (NilType) Type() string   { return "nil" }
func (NilType) Truth() Bool    { return False }

// Bool is a boolean value.
type Bool bool

// The two Bool values.
const (
	True  Bool = true
	False Bool = false
)

var _ Value = False

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }
func (b Bool) Type() string   { return "bool" }
func (b Bool) Truth() Bool    { return b }

// Float is a Lox number, a 64-bit float.
type Float float64

var _ Value = Float(0)

// String prints integer-valued numbers without a trailing decimal part.
func (f Float) String() string {
	v := float64(f)
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (f Float) Type() string { return "number" }

// Truth reports true for every number, including 0 and NaN.
func (f Float) Truth() Bool { return True }

// String is a Lox string value.
type String string

var _ Value = String("")

func (s String) String() string { return string(s) }
func (s String) Type() string   { return "string" }

// Truth reports true for every string, including the empty one.
func (s String) Truth() Bool { return True }

// Equal reports whether two values are equal per the language semantics:
// no type coercion, values of different types are never equal, and NaN
// equals NaN so that equality stays reflexive. Callables and instances
// compare by identity.
func Equal(x, y Value) bool {
	xf, xok := x.(Float)
	yf, yok := y.(Float)
	if xok && yok {
		if math.IsNaN(float64(xf)) && math.IsNaN(float64(yf)) {
			return true
		}
		return xf == yf
	}
	if xok != yok {
		return false
	}
	return x == y
}
