package interp

import (
	"fmt"

	"github.com/dolthub/swiss"
	"github.com/mna/lox/lang/loxerr"
	"github.com/mna/lox/lang/token"
	"github.com/mna/lox/lang/types"
)

// Environment is a frame mapping variable names to values, linked to its
// enclosing frame. Frames are shared: any closure that captured a frame
// keeps it alive and observes mutations done through other references to
// it.
type Environment struct {
	values    *swiss.Map[string, types.Value]
	enclosing *Environment
}

// NewEnvironment creates an environment enclosed by the given one, nil for
// the globals frame.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    swiss.NewMap[string, types.Value](8),
		enclosing: enclosing,
	}
}

// Define binds name to value in this frame, overwriting any previous
// binding of the name.
func (e *Environment) Define(name string, v types.Value) {
	e.values.Put(name, v)
}

// Get returns the value bound to name, searching enclosing frames outward.
func (e *Environment) Get(name token.Token) (types.Value, error) {
	if v, ok := e.values.Get(name.Lexeme); ok {
		return v, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, loxerr.Runtimef(name, "Undefined variable '%s'.", name.Lexeme)
}

// Assign rebinds name in the nearest enclosing frame that defines it.
func (e *Environment) Assign(name token.Token, v types.Value) error {
	if e.values.Has(name.Lexeme) {
		e.values.Put(name.Lexeme, v)
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, v)
	}
	return loxerr.Runtimef(name, "Undefined variable '%s'.", name.Lexeme)
}

// GetAt reads name directly in the frame depth levels up the chain, with
// no fallback and no search.
func (e *Environment) GetAt(depth int, name string) types.Value {
	v, ok := e.ancestor(depth).values.Get(name)
	if !ok {
		panic(fmt.Sprintf("unresolved variable %s at depth %d", name, depth))
	}
	return v
}

// AssignAt writes name directly in the frame depth levels up the chain.
func (e *Environment) AssignAt(depth int, name token.Token, v types.Value) {
	e.ancestor(depth).values.Put(name.Lexeme, v)
}

// ancestor walks exactly depth enclosing links. A depth past the end of
// the chain is a resolver bug, not a user error, and panics.
func (e *Environment) ancestor(depth int) *Environment {
	env := e
	for i := 0; i < depth; i++ {
		env = env.enclosing
	}
	return env
}
