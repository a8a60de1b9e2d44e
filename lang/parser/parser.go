// Package parser implements the recursive descent parser that transforms
// Lox tokens into an abstract syntax tree.
package parser

import (
	"context"
	"errors"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/loxerr"
	"github.com/mna/lox/lang/scanner"
	"github.com/mna/lox/lang/token"
)

// Parse parses the token stream into a list of statements. Parse errors
// are reported through rep; on an error the parser synchronizes to the
// next statement boundary and continues, so the returned list holds every
// statement that could be recovered. The caller must check rep.HadError
// before executing the result.
func Parse(toks []token.Token, rep *loxerr.Reporter) []ast.Stmt {
	p := parser{toks: toks, rep: rep}
	var stmts []ast.Stmt
	for !p.atEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// ParseFiles is a helper that scans and parses each source file and
// returns the statements grouped by the file at the same index. Scan and
// parse errors are reported through rep; a file read error aborts and is
// returned.
func ParseFiles(ctx context.Context, rep *loxerr.Reporter, files ...string) ([][]ast.Stmt, error) {
	tokens, err := scanner.ScanFiles(ctx, rep, files...)
	if err != nil {
		return nil, err
	}
	res := make([][]ast.Stmt, len(tokens))
	for i, toks := range tokens {
		res[i] = Parse(toks, rep)
	}
	return res, nil
}

// maxArgs bounds the number of call arguments and function parameters.
const maxArgs = 255

// errPanicMode is the panic value raised on a parse error and recovered at
// the declaration level, where the parser synchronizes.
var errPanicMode = errors.New("panic")

type parser struct {
	toks    []token.Token
	rep     *loxerr.Reporter
	current int
}

func (p *parser) peek() token.Token {
	return p.toks[p.current]
}

func (p *parser) previous() token.Token {
	return p.toks[p.current-1]
}

func (p *parser) atEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *parser) advance() token.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) check(t token.Type) bool {
	return !p.atEnd() && p.peek().Type == t
}

// match consumes the current token if it is one of the given types.
func (p *parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// consume returns the current token and advances if it is of type t,
// otherwise it reports msg and panics with errPanicMode.
func (p *parser) consume(t token.Type, msg string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	p.fail(p.peek(), msg)
	panic("unreachable")
}

// error reports a diagnostic blaming tok without entering panic mode; the
// parser keeps going from where it is.
func (p *parser) error(tok token.Token, msg string) {
	p.rep.ErrorAt(tok, msg)
}

// fail reports a diagnostic and panics with errPanicMode, to be recovered
// at the declaration level.
func (p *parser) fail(tok token.Token, msg string) {
	p.rep.ErrorAt(tok, msg)
	panic(errPanicMode)
}

// synchronize discards tokens until just after a semicolon or just before
// a token that starts a statement, the safe points to resume parsing
// declarations.
func (p *parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}
		switch p.peek().Type {
		case token.CLASS, token.FOR, token.FUN, token.IF, token.PRINT,
			token.RETURN, token.VAR, token.WHILE:
			return
		}
		p.advance()
	}
}
