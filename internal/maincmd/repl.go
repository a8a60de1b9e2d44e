package maincmd

import (
	"bufio"
	"context"
	"fmt"

	"github.com/mna/lox/lang/interp"
	"github.com/mna/lox/lang/loxerr"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/resolver"
	"github.com/mna/lox/lang/scanner"
	"github.com/mna/mainer"
)

func (c *Cmd) Repl(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return Repl(ctx, stdio, c.MaxCallDepth)
}

// Repl runs the read-eval-print loop: each line from stdin is scanned,
// parsed, resolved and executed against a persistent interpreter, so
// globals and closures survive across lines. The error flags are cleared
// between lines and the loop ends at EOF.
func Repl(ctx context.Context, stdio mainer.Stdio, maxCallDepth int) error {
	rep := &loxerr.Reporter{Stderr: stdio.Stderr}
	it := interp.New()
	it.Stdout = stdio.Stdout
	it.MaxCallDepth = maxCallDepth

	sc := bufio.NewScanner(stdio.Stdin)
	fmt.Fprint(stdio.Stdout, "> ")
	for sc.Scan() {
		if ctx.Err() != nil {
			break
		}
		runLine(sc.Bytes(), it, rep)
		rep.Reset()
		fmt.Fprint(stdio.Stdout, "> ")
	}
	return sc.Err()
}

func runLine(src []byte, it *interp.Interpreter, rep *loxerr.Reporter) {
	toks := scanner.Scan(src, rep)
	stmts := parser.Parse(toks, rep)
	if rep.HadError() {
		return
	}
	depths := resolver.Resolve(stmts, rep)
	if rep.HadError() {
		return
	}
	it.Interpret(stmts, depths, rep)
}
