package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mna/lox/lang/token"
)

// Printer pretty-prints AST nodes as Lisp-style S-expressions.
type Printer struct {
	// Output is the io.Writer to print to.
	Output io.Writer
}

// Print writes each top-level statement as an S-expression on its own
// line.
func (p *Printer) Print(stmts []Stmt) error {
	for _, s := range stmts {
		if _, err := fmt.Fprintln(p.Output, FormatStmt(s)); err != nil {
			return err
		}
	}
	return nil
}

// FormatStmt renders a single statement as an S-expression.
func FormatStmt(s Stmt) string {
	var b strings.Builder
	writeStmt(&b, s)
	return b.String()
}

// FormatExpr renders a single expression as an S-expression.
func FormatExpr(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeStmt(b *strings.Builder, s Stmt) {
	switch s := s.(type) {
	case *ExprStmt:
		b.WriteString("(; ")
		writeExpr(b, s.Expr)
		b.WriteByte(')')

	case *PrintStmt:
		b.WriteString("(print ")
		writeExpr(b, s.Expr)
		b.WriteByte(')')

	case *VarStmt:
		b.WriteString("(var ")
		b.WriteString(s.Name.Lexeme)
		if s.Initializer != nil {
			b.WriteString(" = ")
			writeExpr(b, s.Initializer)
		}
		b.WriteByte(')')

	case *BlockStmt:
		b.WriteString("(block")
		for _, st := range s.Stmts {
			b.WriteByte(' ')
			writeStmt(b, st)
		}
		b.WriteByte(')')

	case *IfStmt:
		if s.Else == nil {
			b.WriteString("(if ")
		} else {
			b.WriteString("(if-else ")
		}
		writeExpr(b, s.Cond)
		b.WriteByte(' ')
		writeStmt(b, s.Then)
		if s.Else != nil {
			b.WriteByte(' ')
			writeStmt(b, s.Else)
		}
		b.WriteByte(')')

	case *WhileStmt:
		b.WriteString("(while ")
		writeExpr(b, s.Cond)
		b.WriteByte(' ')
		writeStmt(b, s.Body)
		b.WriteByte(')')

	case *FuncStmt:
		b.WriteString("(fun ")
		b.WriteString(s.Name.Lexeme)
		b.WriteString(" (")
		for i, p := range s.Params {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(p.Lexeme)
		}
		b.WriteByte(')')
		for _, st := range s.Body {
			b.WriteByte(' ')
			writeStmt(b, st)
		}
		b.WriteByte(')')

	case *ReturnStmt:
		if s.Value == nil {
			b.WriteString("(return)")
			return
		}
		b.WriteString("(return ")
		writeExpr(b, s.Value)
		b.WriteByte(')')

	case *ClassStmt:
		b.WriteString("(class ")
		b.WriteString(s.Name.Lexeme)
		for _, m := range s.Methods {
			b.WriteByte(' ')
			writeStmt(b, m)
		}
		b.WriteByte(')')

	default:
		panic(fmt.Sprintf("unexpected stmt %T", s))
	}
}

func writeExpr(b *strings.Builder, e Expr) {
	switch e := e.(type) {
	case *LiteralExpr:
		switch v := e.Value.(type) {
		case nil:
			b.WriteString("nil")
		case bool:
			b.WriteString(strconv.FormatBool(v))
		case float64:
			b.WriteString(token.FormatNum(v))
		case string:
			b.WriteString(v)
		default:
			panic(fmt.Sprintf("unexpected literal %T", v))
		}

	case *GroupingExpr:
		b.WriteString("(group ")
		writeExpr(b, e.Expr)
		b.WriteByte(')')

	case *UnaryExpr:
		b.WriteByte('(')
		b.WriteString(e.Op.Lexeme)
		b.WriteByte(' ')
		writeExpr(b, e.Right)
		b.WriteByte(')')

	case *BinaryExpr:
		writeBinary(b, e.Op.Lexeme, e.Left, e.Right)

	case *LogicalExpr:
		writeBinary(b, e.Op.Lexeme, e.Left, e.Right)

	case *VariableExpr:
		b.WriteString(e.Name.Lexeme)

	case *AssignExpr:
		b.WriteString("(= ")
		b.WriteString(e.Name.Lexeme)
		b.WriteByte(' ')
		writeExpr(b, e.Value)
		b.WriteByte(')')

	case *CallExpr:
		b.WriteString("(call ")
		writeExpr(b, e.Callee)
		for _, a := range e.Args {
			b.WriteByte(' ')
			writeExpr(b, a)
		}
		b.WriteByte(')')

	case *GetExpr:
		b.WriteString("(get ")
		writeExpr(b, e.Object)
		b.WriteByte(' ')
		b.WriteString(e.Name.Lexeme)
		b.WriteByte(')')

	case *SetExpr:
		b.WriteString("(set ")
		writeExpr(b, e.Object)
		b.WriteByte(' ')
		b.WriteString(e.Name.Lexeme)
		b.WriteByte(' ')
		writeExpr(b, e.Value)
		b.WriteByte(')')

	default:
		panic(fmt.Sprintf("unexpected expr %T", e))
	}
}

func writeBinary(b *strings.Builder, op string, left, right Expr) {
	b.WriteByte('(')
	b.WriteString(op)
	b.WriteByte(' ')
	writeExpr(b, left)
	b.WriteByte(' ')
	writeExpr(b, right)
	b.WriteByte(')')
}
