package ast

import (
	"github.com/mna/lox/lang/token"
)

type (
	// ExprStmt is an expression evaluated for its side effects.
	ExprStmt struct {
		Expr Expr
	}

	// PrintStmt evaluates its expression and prints the stringified
	// value followed by a newline.
	PrintStmt struct {
		Expr Expr
	}

	// VarStmt declares a variable, with an optional initializer.
	VarStmt struct {
		Name        token.Token
		Initializer Expr // may be nil, the variable then starts as nil
	}

	// BlockStmt is a braced list of statements with its own scope.
	BlockStmt struct {
		Stmts []Stmt
	}

	// IfStmt selects a branch on the truthiness of its condition.
	IfStmt struct {
		Cond Expr
		Then Stmt
		Else Stmt // may be nil
	}

	// WhileStmt loops while its condition is truthy. The parser also
	// lowers for loops to this form.
	WhileStmt struct {
		Cond Expr
		Body Stmt
	}

	// FuncStmt declares a named function (or a method, inside a class
	// body).
	FuncStmt struct {
		Name   token.Token
		Params []token.Token
		Body   []Stmt
	}

	// ReturnStmt unwinds to the nearest enclosing function call. Keyword
	// is the return token, kept to blame resolution errors on.
	ReturnStmt struct {
		Keyword token.Token
		Value   Expr // may be nil, the call then yields nil
	}

	// ClassStmt declares a class with its methods.
	ClassStmt struct {
		Name    token.Token
		Methods []*FuncStmt
	}
)

func (*ExprStmt) stmt()   {}
func (*PrintStmt) stmt()  {}
func (*VarStmt) stmt()    {}
func (*BlockStmt) stmt()  {}
func (*IfStmt) stmt()     {}
func (*WhileStmt) stmt()  {}
func (*FuncStmt) stmt()   {}
func (*ReturnStmt) stmt() {}
func (*ClassStmt) stmt()  {}
