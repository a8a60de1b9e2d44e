package parser

import (
	"fmt"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/token"
)

// declaration parses one declaration or statement. On a parse error it
// synchronizes and returns nil so that parsing resumes at the next
// declaration.
func (p *parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if e := recover(); e != nil {
			if e != errPanicMode {
				panic(e)
			}
			p.synchronize()
			stmt = nil
		}
	}()

	switch {
	case p.match(token.CLASS):
		return p.classDecl()
	case p.match(token.FUN):
		return p.function("function")
	case p.match(token.VAR):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *parser) classDecl() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect class name.")
	p.consume(token.LEFT_BRACE, "Expect '{' before class body.")

	var methods []*ast.FuncStmt
	for !p.check(token.RIGHT_BRACE) && !p.atEnd() {
		methods = append(methods, p.function("method"))
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after class body.")
	return &ast.ClassStmt{Name: name, Methods: methods}
}

// function parses a named function once the fun keyword (or, for methods,
// nothing) has been consumed. kind is "function" or "method", used in the
// error messages.
func (p *parser) function(kind string) *ast.FuncStmt {
	name := p.consume(token.IDENTIFIER, fmt.Sprintf("Expect %s name.", kind))
	p.consume(token.LEFT_PAREN, fmt.Sprintf("Expect '(' after %s name.", kind))

	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= maxArgs {
				p.error(p.peek(), fmt.Sprintf("Can't have more than %d parameters.", maxArgs))
			}
			params = append(params, p.consume(token.IDENTIFIER, "Expect parameter name."))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after parameters.")

	p.consume(token.LEFT_BRACE, fmt.Sprintf("Expect '{' before %s body.", kind))
	return &ast.FuncStmt{Name: name, Params: params, Body: p.block()}
}

func (p *parser) varDecl() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect variable name.")

	var init ast.Expr
	if p.match(token.EQUAL) {
		init = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.VarStmt{Name: name, Initializer: init}
}

func (p *parser) statement() ast.Stmt {
	switch {
	case p.match(token.FOR):
		return p.forStmt()
	case p.match(token.IF):
		return p.ifStmt()
	case p.match(token.PRINT):
		return p.printStmt()
	case p.match(token.RETURN):
		return p.returnStmt()
	case p.match(token.WHILE):
		return p.whileStmt()
	case p.match(token.LEFT_BRACE):
		return &ast.BlockStmt{Stmts: p.block()}
	default:
		return p.exprStmt()
	}
}

// forStmt lowers for (init; cond; incr) body to
// { init; while (cond) { body; incr; } } with absent clauses omitted and
// the condition defaulting to true.
func (p *parser) forStmt() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'for'.")

	var init ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		// no initializer
	case p.match(token.VAR):
		init = p.varDecl()
	default:
		init = p.exprStmt()
	}

	var cond ast.Expr
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after loop condition.")

	var incr ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		incr = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if incr != nil {
		body = &ast.BlockStmt{Stmts: []ast.Stmt{body, &ast.ExprStmt{Expr: incr}}}
	}
	if cond == nil {
		cond = &ast.LiteralExpr{Value: true}
	}
	body = &ast.WhileStmt{Cond: cond, Body: body}
	if init != nil {
		body = &ast.BlockStmt{Stmts: []ast.Stmt{init, body}}
	}
	return body
}

func (p *parser) ifStmt() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after if condition.")

	then := p.statement()
	var els ast.Stmt
	if p.match(token.ELSE) {
		els = p.statement()
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: els}
}

func (p *parser) printStmt() ast.Stmt {
	value := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after value.")
	return &ast.PrintStmt{Expr: value}
}

func (p *parser) returnStmt() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after return value.")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *parser) whileStmt() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")
	return &ast.WhileStmt{Cond: cond, Body: p.statement()}
}

// block parses the statements of a braced block; the opening brace is
// already consumed.
func (p *parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.atEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after block.")
	return stmts
}

func (p *parser) exprStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")
	return &ast.ExprStmt{Expr: expr}
}
