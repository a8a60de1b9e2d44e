// Package loxerr defines the diagnostics produced by the scanner, parser,
// resolver and interpreter, and the Reporter sink that aggregates them.
package loxerr

import (
	"fmt"
	"io"
	"os"

	"github.com/mna/lox/lang/token"
)

// Error is a compile-time diagnostic tied to a source line.
type Error struct {
	Line  int
	Where string // "", " at end" or " at 'lexeme'"
	Msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, e.Where, e.Msg)
}

// RuntimeError is a fault raised during evaluation, blaming a token.
type RuntimeError struct {
	Tok token.Token
	Msg string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Msg, e.Tok.Line)
}

// NewRuntime creates a runtime error blaming tok.
func NewRuntime(tok token.Token, msg string) *RuntimeError {
	return &RuntimeError{Tok: tok, Msg: msg}
}

// Runtimef creates a runtime error blaming tok with a formatted message.
func Runtimef(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Tok: tok, Msg: fmt.Sprintf(format, args...)}
}

// Reporter is the sink for the diagnostics of a whole run. Each diagnostic
// is printed to Stderr as it is reported and flips the corresponding flag.
// Execution must not proceed past a phase once HadError reports true; the
// REPL resets the flags between lines.
type Reporter struct {
	// Stderr is the writer diagnostics are printed to. If nil, os.Stderr.
	Stderr io.Writer

	hadError        bool
	hadRuntimeError bool
}

// Error reports a compile-time diagnostic with no token context.
func (r *Reporter) Error(line int, msg string) {
	r.report(&Error{Line: line, Msg: msg})
}

// Errorf reports a compile-time diagnostic with a formatted message.
func (r *Reporter) Errorf(line int, format string, args ...any) {
	r.report(&Error{Line: line, Msg: fmt.Sprintf(format, args...)})
}

// ErrorAt reports a compile-time diagnostic blaming tok.
func (r *Reporter) ErrorAt(tok token.Token, msg string) {
	where := fmt.Sprintf(" at '%s'", tok.Lexeme)
	if tok.Type == token.EOF {
		where = " at end"
	}
	r.report(&Error{Line: tok.Line, Where: where, Msg: msg})
}

// Runtime reports a runtime fault.
func (r *Reporter) Runtime(e *RuntimeError) {
	fmt.Fprintln(r.stderr(), e)
	r.hadRuntimeError = true
}

// HadError returns true if any compile-time diagnostic was reported since
// the last Reset.
func (r *Reporter) HadError() bool { return r.hadError }

// HadRuntimeError returns true if any runtime fault was reported since the
// last Reset.
func (r *Reporter) HadRuntimeError() bool { return r.hadRuntimeError }

// Reset clears both error flags.
func (r *Reporter) Reset() {
	r.hadError = false
	r.hadRuntimeError = false
}

func (r *Reporter) report(e *Error) {
	fmt.Fprintln(r.stderr(), e)
	r.hadError = true
}

func (r *Reporter) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}
