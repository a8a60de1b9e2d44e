// Package interp implements the tree-walking evaluator that executes a
// resolved Lox AST against a chain of environments.
package interp

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/dolthub/swiss"
	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/loxerr"
	"github.com/mna/lox/lang/token"
	"github.com/mna/lox/lang/types"
)

// Interpreter executes statements and holds the mutable evaluation state:
// the globals frame, the current environment pointer and the depth side
// table produced by the resolver.
type Interpreter struct {
	// Stdout is the writer print statements write to. If nil, os.Stdout.
	Stdout io.Writer

	// MaxCallDepth limits the number of nested function calls; exceeding
	// it fails the call with a "Stack overflow." runtime error. A value
	// <= 0 means no limit.
	MaxCallDepth int

	globals *Environment
	env     *Environment
	depths  map[ast.Expr]int
	calls   int
	stdout  io.Writer
}

// New creates an interpreter with the native functions defined in its
// globals frame.
func New() *Interpreter {
	globals := NewEnvironment(nil)
	defineNatives(globals)
	return &Interpreter{
		globals: globals,
		env:     globals,
		depths:  make(map[ast.Expr]int),
	}
}

// Globals returns the globals environment.
func (i *Interpreter) Globals() *Environment {
	return i.globals
}

// Interpret executes the statements in order. The depth side table from
// the resolver is merged into the interpreter's own, so a REPL can feed
// resolved lines incrementally. Execution stops at the first runtime
// error, which is reported through rep.
func (i *Interpreter) Interpret(stmts []ast.Stmt, depths map[ast.Expr]int, rep *loxerr.Reporter) {
	i.stdout = i.Stdout
	if i.stdout == nil {
		i.stdout = os.Stdout
	}
	for e, d := range depths {
		i.depths[e] = d
	}

	for _, s := range stmts {
		if err := i.exec(s); err != nil {
			var rerr *loxerr.RuntimeError
			if !errors.As(err, &rerr) {
				// a return outside any function is rejected by the resolver
				panic(fmt.Sprintf("unexpected error %T escaped top-level execution", err))
			}
			rep.Runtime(rerr)
			return
		}
	}
}

func (i *Interpreter) exec(stmt ast.Stmt) error {
	switch stmt := stmt.(type) {
	case *ast.ExprStmt:
		_, err := i.eval(stmt.Expr)
		return err

	case *ast.PrintStmt:
		v, err := i.eval(stmt.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.stdout, v.String())
		return nil

	case *ast.VarStmt:
		var v types.Value = types.Nil
		if stmt.Initializer != nil {
			var err error
			if v, err = i.eval(stmt.Initializer); err != nil {
				return err
			}
		}
		i.env.Define(stmt.Name.Lexeme, v)
		return nil

	case *ast.BlockStmt:
		return i.execBlock(stmt.Stmts, NewEnvironment(i.env))

	case *ast.IfStmt:
		cond, err := i.eval(stmt.Cond)
		if err != nil {
			return err
		}
		if bool(cond.Truth()) {
			return i.exec(stmt.Then)
		}
		if stmt.Else != nil {
			return i.exec(stmt.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := i.eval(stmt.Cond)
			if err != nil {
				return err
			}
			if !bool(cond.Truth()) {
				return nil
			}
			if err := i.exec(stmt.Body); err != nil {
				return err
			}
		}

	case *ast.FuncStmt:
		// the function captures the environment in force at its
		// declaration
		i.env.Define(stmt.Name.Lexeme, &Function{decl: stmt, closure: i.env})
		return nil

	case *ast.ReturnStmt:
		var v types.Value = types.Nil
		if stmt.Value != nil {
			var err error
			if v, err = i.eval(stmt.Value); err != nil {
				return err
			}
		}
		return &returnSignal{value: v}

	case *ast.ClassStmt:
		methods := swiss.NewMap[string, *Function](8)
		for _, m := range stmt.Methods {
			methods.Put(m.Name.Lexeme, &Function{decl: m, closure: i.env})
		}
		i.env.Define(stmt.Name.Lexeme, &Class{name: stmt.Name.Lexeme, methods: methods})
		return nil
	}
	panic(fmt.Sprintf("unexpected stmt %T", stmt))
}

// execBlock runs the statements in env and restores the previous current
// environment on every exit path, normal or unwinding.
func (i *Interpreter) execBlock(stmts []ast.Stmt, env *Environment) error {
	prev := i.env
	defer func() { i.env = prev }()

	i.env = env
	for _, s := range stmts {
		if err := i.exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) eval(expr ast.Expr) (types.Value, error) {
	switch expr := expr.(type) {
	case *ast.LiteralExpr:
		switch v := expr.Value.(type) {
		case nil:
			return types.Nil, nil
		case bool:
			return types.Bool(v), nil
		case float64:
			return types.Float(v), nil
		case string:
			return types.String(v), nil
		}
		panic(fmt.Sprintf("unexpected literal %T", expr.Value))

	case *ast.GroupingExpr:
		return i.eval(expr.Expr)

	case *ast.UnaryExpr:
		right, err := i.eval(expr.Right)
		if err != nil {
			return nil, err
		}
		switch expr.Op.Type {
		case token.BANG:
			return !right.Truth(), nil
		case token.MINUS:
			f, ok := right.(types.Float)
			if !ok {
				return nil, loxerr.NewRuntime(expr.Op, "Operand must be a number.")
			}
			return -f, nil
		}
		panic(fmt.Sprintf("unexpected unary operator %v", expr.Op.Type))

	case *ast.BinaryExpr:
		return i.binary(expr)

	case *ast.LogicalExpr:
		left, err := i.eval(expr.Left)
		if err != nil {
			return nil, err
		}
		if expr.Op.Type == token.OR {
			if bool(left.Truth()) {
				return left, nil
			}
		} else if !bool(left.Truth()) {
			return left, nil
		}
		return i.eval(expr.Right)

	case *ast.VariableExpr:
		if d, ok := i.depths[expr]; ok {
			return i.env.GetAt(d, expr.Name.Lexeme), nil
		}
		return i.globals.Get(expr.Name)

	case *ast.AssignExpr:
		v, err := i.eval(expr.Value)
		if err != nil {
			return nil, err
		}
		if d, ok := i.depths[expr]; ok {
			i.env.AssignAt(d, expr.Name, v)
			return v, nil
		}
		if err := i.globals.Assign(expr.Name, v); err != nil {
			return nil, err
		}
		return v, nil

	case *ast.CallExpr:
		return i.call(expr)

	case *ast.GetExpr:
		obj, err := i.eval(expr.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, loxerr.NewRuntime(expr.Name, "Only instances have properties.")
		}
		return inst.Get(expr.Name)

	case *ast.SetExpr:
		obj, err := i.eval(expr.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, loxerr.NewRuntime(expr.Name, "Only instances have fields.")
		}
		v, err := i.eval(expr.Value)
		if err != nil {
			return nil, err
		}
		inst.Set(expr.Name, v)
		return v, nil
	}
	panic(fmt.Sprintf("unexpected expr %T", expr))
}

func (i *Interpreter) binary(expr *ast.BinaryExpr) (types.Value, error) {
	left, err := i.eval(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.eval(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Type {
	case token.BANG_EQUAL:
		return types.Bool(!types.Equal(left, right)), nil
	case token.EQUAL_EQUAL:
		return types.Bool(types.Equal(left, right)), nil

	case token.PLUS:
		switch l := left.(type) {
		case types.Float:
			if r, ok := right.(types.Float); ok {
				return l + r, nil
			}
		case types.String:
			if r, ok := right.(types.String); ok {
				return l + r, nil
			}
		}
		return nil, loxerr.NewRuntime(expr.Op, "Operands must be two numbers or two strings.")
	}

	l, r, err := numberOperands(expr.Op, left, right)
	if err != nil {
		return nil, err
	}
	switch expr.Op.Type {
	case token.GREATER:
		return types.Bool(l > r), nil
	case token.GREATER_EQUAL:
		return types.Bool(l >= r), nil
	case token.LESS:
		return types.Bool(l < r), nil
	case token.LESS_EQUAL:
		return types.Bool(l <= r), nil
	case token.MINUS:
		return types.Float(l - r), nil
	case token.STAR:
		return types.Float(l * r), nil
	case token.SLASH:
		// division by zero does not raise, it yields NaN
		if r == 0 {
			return types.Float(math.NaN()), nil
		}
		return types.Float(l / r), nil
	}
	panic(fmt.Sprintf("unexpected binary operator %v", expr.Op.Type))
}

func numberOperands(op token.Token, left, right types.Value) (float64, float64, error) {
	l, lok := left.(types.Float)
	r, rok := right.(types.Float)
	if !lok || !rok {
		return 0, 0, loxerr.NewRuntime(op, "Operands must be numbers.")
	}
	return float64(l), float64(r), nil
}

func (i *Interpreter) call(expr *ast.CallExpr) (types.Value, error) {
	callee, err := i.eval(expr.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]types.Value, 0, len(expr.Args))
	for _, a := range expr.Args {
		v, err := i.eval(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, loxerr.NewRuntime(expr.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, loxerr.Runtimef(expr.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}

	if i.MaxCallDepth > 0 && i.calls >= i.MaxCallDepth {
		return nil, loxerr.NewRuntime(expr.Paren, "Stack overflow.")
	}
	i.calls++
	defer func() { i.calls-- }()
	return fn.Call(i, args)
}
