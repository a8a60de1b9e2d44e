// Package resolver implements the static resolution pass that runs
// between parsing and interpretation. It walks the AST once and computes,
// for each variable use, the lexical distance to the scope that binds it,
// and diagnoses a small set of static errors (reading a local in its own
// initializer, redeclaring a local, returning from top-level code).
//
// The global scope is represented by an empty scope stack: names that
// resolve in no lexical scope get no depth entry and are looked up
// dynamically in the globals environment by the interpreter.
package resolver

import (
	"fmt"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/loxerr"
	"github.com/mna/lox/lang/token"
)

// Resolve walks the statements and returns the side table mapping each
// resolved Variable and Assign expression to its depth, the number of
// enclosing scopes to skip at the use site. The table is keyed by node
// identity: two uses of the same name are distinct entries. Static errors
// are reported through rep and never stop the pass; the caller must check
// rep.HadError before executing the result.
func Resolve(stmts []ast.Stmt, rep *loxerr.Reporter) map[ast.Expr]int {
	r := resolver{rep: rep, depths: make(map[ast.Expr]int)}
	r.stmts(stmts)
	return r.depths
}

// funcType tracks what kind of function body is being resolved, to
// validate return statements.
type funcType int

const (
	funcNone funcType = iota
	funcFunction
	funcMethod
)

type resolver struct {
	rep    *loxerr.Reporter
	depths map[ast.Expr]int

	// scopes is the stack of lexical scopes, innermost last. Each scope
	// maps a name to its defined flag: false between declaration and the
	// end of its initializer, true afterwards.
	scopes  []map[string]bool
	current funcType
}

func (r *resolver) stmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.stmt(s)
	}
}

func (r *resolver) stmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.ExprStmt:
		r.expr(stmt.Expr)

	case *ast.PrintStmt:
		r.expr(stmt.Expr)

	case *ast.VarStmt:
		r.declare(stmt.Name)
		if stmt.Initializer != nil {
			r.expr(stmt.Initializer)
		}
		r.define(stmt.Name)

	case *ast.BlockStmt:
		r.beginScope()
		r.stmts(stmt.Stmts)
		r.endScope()

	case *ast.IfStmt:
		r.expr(stmt.Cond)
		r.stmt(stmt.Then)
		if stmt.Else != nil {
			r.stmt(stmt.Else)
		}

	case *ast.WhileStmt:
		r.expr(stmt.Cond)
		r.stmt(stmt.Body)

	case *ast.FuncStmt:
		// the name is defined before the body so the function can call
		// itself
		r.declare(stmt.Name)
		r.define(stmt.Name)
		r.function(stmt, funcFunction)

	case *ast.ReturnStmt:
		if r.current == funcNone {
			r.rep.ErrorAt(stmt.Keyword, "Can't return from top-level code.")
		}
		if stmt.Value != nil {
			r.expr(stmt.Value)
		}

	case *ast.ClassStmt:
		r.declare(stmt.Name)
		r.define(stmt.Name)
		for _, m := range stmt.Methods {
			r.function(m, funcMethod)
		}

	default:
		panic(fmt.Sprintf("unexpected stmt %T", stmt))
	}
}

func (r *resolver) expr(expr ast.Expr) {
	switch expr := expr.(type) {
	case *ast.LiteralExpr:
		// nothing to resolve

	case *ast.GroupingExpr:
		r.expr(expr.Expr)

	case *ast.UnaryExpr:
		r.expr(expr.Right)

	case *ast.BinaryExpr:
		r.expr(expr.Left)
		r.expr(expr.Right)

	case *ast.LogicalExpr:
		r.expr(expr.Left)
		r.expr(expr.Right)

	case *ast.VariableExpr:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][expr.Name.Lexeme]; ok && !defined {
				r.rep.ErrorAt(expr.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(expr, expr.Name)

	case *ast.AssignExpr:
		r.expr(expr.Value)
		r.resolveLocal(expr, expr.Name)

	case *ast.CallExpr:
		r.expr(expr.Callee)
		for _, a := range expr.Args {
			r.expr(a)
		}

	case *ast.GetExpr:
		// the property name is a runtime lookup, only the object resolves
		r.expr(expr.Object)

	case *ast.SetExpr:
		r.expr(expr.Value)
		r.expr(expr.Object)

	default:
		panic(fmt.Sprintf("unexpected expr %T", expr))
	}
}

func (r *resolver) function(fn *ast.FuncStmt, ft funcType) {
	enclosing := r.current
	r.current = ft

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.stmts(fn.Body)
	r.endScope()

	r.current = enclosing
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare inserts the name in the innermost scope with its defined flag
// off. Globals (empty stack) are not tracked and may be redeclared.
func (r *resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.rep.ErrorAt(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal walks the scopes innermost-out and records the depth of the
// first scope that binds the name. No hit means a global: no entry is
// recorded.
func (r *resolver) resolveLocal(e ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.depths[e] = len(r.scopes) - 1 - i
			return
		}
	}
}
