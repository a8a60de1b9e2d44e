package ast

import (
	"github.com/mna/lox/lang/token"
)

type (
	// LiteralExpr is a literal nil, boolean, number or string.
	LiteralExpr struct {
		// Value is nil, a bool, a float64 or a string.
		Value any
	}

	// GroupingExpr is a parenthesized expression.
	GroupingExpr struct {
		Expr Expr
	}

	// UnaryExpr is a prefix operator applied to an operand, e.g. -x.
	UnaryExpr struct {
		Op    token.Token // BANG or MINUS
		Right Expr
	}

	// BinaryExpr is a binary arithmetic, comparison or equality
	// expression, e.g. x + y.
	BinaryExpr struct {
		Left  Expr
		Op    token.Token
		Right Expr
	}

	// LogicalExpr is a short-circuiting and/or expression.
	LogicalExpr struct {
		Left  Expr
		Op    token.Token // AND or OR
		Right Expr
	}

	// VariableExpr is a reference to a variable by name.
	VariableExpr struct {
		Name token.Token
	}

	// AssignExpr assigns a value to a variable.
	AssignExpr struct {
		Name  token.Token
		Value Expr
	}

	// CallExpr invokes a callee with arguments, e.g. f(x, y). Paren is
	// the closing parenthesis, kept to blame call-site errors on.
	CallExpr struct {
		Callee Expr
		Paren  token.Token
		Args   []Expr
	}

	// GetExpr reads a property from an object, e.g. x.y.
	GetExpr struct {
		Object Expr
		Name   token.Token
	}

	// SetExpr writes a property on an object, e.g. x.y = z.
	SetExpr struct {
		Object Expr
		Name   token.Token
		Value  Expr
	}
)

func (*LiteralExpr) expr()  {}
func (*GroupingExpr) expr() {}
func (*UnaryExpr) expr()    {}
func (*BinaryExpr) expr()   {}
func (*LogicalExpr) expr()  {}
func (*VariableExpr) expr() {}
func (*AssignExpr) expr()   {}
func (*CallExpr) expr()     {}
func (*GetExpr) expr()      {}
func (*SetExpr) expr()      {}
