// Package scanner implements the lexical scanner that transforms Lox
// source text into tokens.
package scanner

import (
	"context"
	"os"
	"strconv"

	"github.com/mna/lox/lang/loxerr"
	"github.com/mna/lox/lang/token"
)

// Scan tokenizes src and returns the tokens, always terminated by an EOF
// token. Malformed lexemes are reported through rep and produce no token;
// scanning resumes at the next character.
func Scan(src []byte, rep *loxerr.Reporter) []token.Token {
	s := scanner{src: src, rep: rep, line: 1}
	return s.scan()
}

// ScanFiles is a helper that tokenizes each source file and returns the
// tokens grouped by the file at the same index. Scan errors are reported
// through rep; a file read error aborts and is returned.
func ScanFiles(ctx context.Context, rep *loxerr.Reporter, files ...string) ([][]token.Token, error) {
	toks := make([][]token.Token, len(files))
	for i, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		toks[i] = Scan(b, rep)
	}
	return toks, nil
}

// scanner tokenizes a single source buffer. Lox source is ASCII; bytes
// outside the recognized set are reported as unexpected characters.
type scanner struct {
	src  []byte
	rep  *loxerr.Reporter
	toks []token.Token

	start   int // offset of the start of the current lexeme
	current int // reading offset
	line    int
}

func (s *scanner) scan() []token.Token {
	for !s.atEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.toks = append(s.toks, token.Token{Type: token.EOF, Line: s.line})
	return s.toks
}

func (s *scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(token.LEFT_PAREN)
	case ')':
		s.addToken(token.RIGHT_PAREN)
	case '{':
		s.addToken(token.LEFT_BRACE)
	case '}':
		s.addToken(token.RIGHT_BRACE)
	case ',':
		s.addToken(token.COMMA)
	case '.':
		s.addToken(token.DOT)
	case '-':
		s.addToken(token.MINUS)
	case '+':
		s.addToken(token.PLUS)
	case ';':
		s.addToken(token.SEMICOLON)
	case '*':
		s.addToken(token.STAR)

	case '!':
		if s.match('=') {
			s.addToken(token.BANG_EQUAL)
		} else {
			s.addToken(token.BANG)
		}
	case '=':
		if s.match('=') {
			s.addToken(token.EQUAL_EQUAL)
		} else {
			s.addToken(token.EQUAL)
		}
	case '>':
		if s.match('=') {
			s.addToken(token.GREATER_EQUAL)
		} else {
			s.addToken(token.GREATER)
		}
	case '<':
		if s.match('=') {
			s.addToken(token.LESS_EQUAL)
		} else {
			s.addToken(token.LESS)
		}

	case '/':
		if s.match('/') {
			// line comment, no token
			for s.peek() != '\n' && !s.atEnd() {
				s.current++
			}
		} else {
			s.addToken(token.SLASH)
		}

	case ' ', '\t', '\r':
		// skip whitespace

	case '\n':
		s.line++

	case '"':
		s.string()

	default:
		switch {
		case isDigit(c):
			s.number()
		case isAlpha(c):
			s.identifier()
		default:
			s.rep.Errorf(s.line, "Unexpected character: %c", c)
		}
	}
}

// string scans a string literal; the opening quote is already consumed.
// Strings may span multiple lines.
func (s *scanner) string() {
	for s.peek() != '"' && !s.atEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.current++
	}
	if s.atEnd() {
		s.rep.Error(s.line, "Unterminated string.")
		return
	}
	s.current++ // closing quote
	s.addLiteral(token.STRING, 0, string(s.src[s.start+1:s.current-1]))
}

// number scans an integer or decimal literal. The decimal point requires a
// digit after it, otherwise the dot is left for the next token.
func (s *scanner) number() {
	for isDigit(s.peek()) {
		s.current++
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.current++
		for isDigit(s.peek()) {
			s.current++
		}
	}
	f, _ := strconv.ParseFloat(string(s.src[s.start:s.current]), 64)
	s.addLiteral(token.NUMBER, f, "")
}

func (s *scanner) identifier() {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.current++
	}
	s.addToken(token.LookupKw(string(s.src[s.start:s.current])))
}

func (s *scanner) atEnd() bool {
	return s.current >= len(s.src)
}

func (s *scanner) advance() byte {
	c := s.src[s.current]
	s.current++
	return c
}

// match advances only if the next byte is the expected one.
func (s *scanner) match(expected byte) bool {
	if s.atEnd() || s.src[s.current] != expected {
		return false
	}
	s.current++
	return true
}

// peek returns the next byte without advancing, or 0 at EOF.
func (s *scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.current]
}

func (s *scanner) peekNext() byte {
	if s.current+1 >= len(s.src) {
		return 0
	}
	return s.src[s.current+1]
}

func (s *scanner) addToken(t token.Type) {
	s.addLiteral(t, 0, "")
}

func (s *scanner) addLiteral(t token.Type, num float64, str string) {
	s.toks = append(s.toks, token.Token{
		Type:   t,
		Lexeme: string(s.src[s.start:s.current]),
		Line:   s.line,
		Num:    num,
		Str:    str,
	})
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}
