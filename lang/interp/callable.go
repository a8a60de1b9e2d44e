package interp

import (
	"errors"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/types"
)

// returnSignal is the control transfer raised by a return statement. It
// travels through the regular error returns so that block environments are
// restored during the unwind, and is caught at the function call boundary,
// where it surfaces as the call's value.
type returnSignal struct {
	value types.Value
}

func (*returnSignal) Error() string { return "return" }

// Callable is implemented by values that may be the operand of a call
// expression: user functions, classes and natives.
type Callable interface {
	types.Value

	// Name returns the callable's name, for diagnostics.
	Name() string

	// Arity returns the number of declared parameters.
	Arity() int

	// Call invokes the callable with the already-evaluated arguments,
	// whose count matches Arity.
	Call(i *Interpreter, args []types.Value) (types.Value, error)
}

// Function is a user-defined function bound to the environment in force at
// its declaration, its closure.
type Function struct {
	decl    *ast.FuncStmt
	closure *Environment
}

var _ Callable = (*Function)(nil)

func (f *Function) String() string    { return "<fn " + f.decl.Name.Lexeme + ">" }
func (f *Function) Type() string      { return "function" }
func (f *Function) Truth() types.Bool { return types.True }
func (f *Function) Name() string      { return f.decl.Name.Lexeme }
func (f *Function) Arity() int        { return len(f.decl.Params) }

// Call binds the arguments to the parameters in a fresh frame enclosed by
// the closure and executes the body. A bare return yields nil, as does
// falling off the end of the body.
func (f *Function) Call(i *Interpreter, args []types.Value) (types.Value, error) {
	env := NewEnvironment(f.closure)
	for ix, param := range f.decl.Params {
		env.Define(param.Lexeme, args[ix])
	}

	err := i.execBlock(f.decl.Body, env)
	var ret *returnSignal
	if errors.As(err, &ret) {
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}
	return types.Nil, nil
}
