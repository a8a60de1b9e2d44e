package maincmd

import (
	"context"

	"github.com/mna/lox/lang/interp"
	"github.com/mna/lox/lang/loxerr"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/resolver"
	"github.com/mna/mainer"
)

func (c *Cmd) Interpret(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return InterpretFiles(ctx, stdio, c.MaxCallDepth, args...)
}

// InterpretFiles runs each source file through the full pipeline: scan,
// parse, resolve, execute. Execution does not proceed past a phase that
// reported errors.
func InterpretFiles(ctx context.Context, stdio mainer.Stdio, maxCallDepth int, files ...string) error {
	files, err := expandFileArgs(files)
	if err != nil {
		return printError(stdio, err)
	}

	rep := &loxerr.Reporter{Stderr: stdio.Stderr}
	stmtsByFile, err := parser.ParseFiles(ctx, rep, files...)
	if err != nil {
		return printError(stdio, err)
	}
	if rep.HadError() {
		return errCompile
	}

	it := interp.New()
	it.Stdout = stdio.Stdout
	it.MaxCallDepth = maxCallDepth

	for _, stmts := range stmtsByFile {
		depths := resolver.Resolve(stmts, rep)
		if rep.HadError() {
			return errCompile
		}
		it.Interpret(stmts, depths, rep)
		if rep.HadRuntimeError() {
			return errRuntime
		}
	}
	return nil
}
