package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/lox/lang/loxerr"
	"github.com/mna/lox/lang/scanner"
	"github.com/mna/mainer"
)

func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(ctx, stdio, args...)
}

// TokenizeFiles scans each source file and prints one token per line, in
// the "TYPE LEXEME LITERAL" format. Scan diagnostics go to stderr and the
// valid tokens are still printed.
func TokenizeFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	files, err := expandFileArgs(files)
	if err != nil {
		return printError(stdio, err)
	}

	rep := &loxerr.Reporter{Stderr: stdio.Stderr}
	toksByFile, err := scanner.ScanFiles(ctx, rep, files...)
	if err != nil {
		return printError(stdio, err)
	}

	for _, toks := range toksByFile {
		for _, tok := range toks {
			fmt.Fprintln(stdio.Stdout, tok)
		}
	}
	if rep.HadError() {
		return errCompile
	}
	return nil
}
