package parser

import (
	"fmt"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/token"
)

// expression parses at the lowest precedence level. One method per level,
// each delegating to the next-higher one.
func (p *parser) expression() ast.Expr {
	return p.assignment()
}

// assignment parses the left-hand side as an expression first and rewrites
// it to an assignment target if an '=' follows. An invalid target is
// reported on the '=' but returns the left-hand side, so parsing recovers
// in place.
func (p *parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch e := expr.(type) {
		case *ast.VariableExpr:
			return &ast.AssignExpr{Name: e.Name, Value: value}
		case *ast.GetExpr:
			return &ast.SetExpr{Object: e.Object, Name: e.Name, Value: value}
		}
		p.error(equals, "Invalid assignment target.")
	}
	return expr
}

func (p *parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.OR) {
		op := p.previous()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: p.and()}
	}
	return expr
}

func (p *parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: p.equality()}
	}
	return expr
}

func (p *parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		op := p.previous()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: p.comparison()}
	}
	return expr
}

func (p *parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		op := p.previous()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: p.term()}
	}
	return expr
}

func (p *parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		op := p.previous()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: p.factor()}
	}
	return expr
}

func (p *parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR) {
		op := p.previous()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: p.unary()}
	}
	return expr
}

func (p *parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		return &ast.UnaryExpr{Op: op, Right: p.unary()}
	}
	return p.call()
}

func (p *parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(token.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENTIFIER, "Expect property name after '.'.")
			expr = &ast.GetExpr{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= maxArgs {
				p.error(p.peek(), fmt.Sprintf("Can't have more than %d arguments.", maxArgs))
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return &ast.CallExpr{Callee: callee, Paren: paren, Args: args}
}

func (p *parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return &ast.LiteralExpr{Value: false}
	case p.match(token.TRUE):
		return &ast.LiteralExpr{Value: true}
	case p.match(token.NIL):
		return &ast.LiteralExpr{Value: nil}
	case p.match(token.NUMBER):
		return &ast.LiteralExpr{Value: p.previous().Num}
	case p.match(token.STRING):
		return &ast.LiteralExpr{Value: p.previous().Str}
	case p.match(token.IDENTIFIER):
		return &ast.VariableExpr{Name: p.previous()}
	case p.match(token.LEFT_PAREN):
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
		return &ast.GroupingExpr{Expr: expr}
	}
	p.fail(p.peek(), "Expect expression.")
	panic("unreachable")
}
