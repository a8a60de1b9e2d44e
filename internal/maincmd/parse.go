package maincmd

import (
	"context"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/loxerr"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/mainer"
)

func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ParseFiles(ctx, stdio, args...)
}

// ParseFiles parses each source file and prints the AST as S-expressions,
// one top-level statement per line. Nothing is printed when any file has
// scan or parse errors.
func ParseFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
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

	printer := ast.Printer{Output: stdio.Stdout}
	for _, stmts := range stmtsByFile {
		if err := printer.Print(stmts); err != nil {
			return printError(stdio, err)
		}
	}
	return nil
}
