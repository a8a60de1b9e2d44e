package scanner_test

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mna/lox/internal/filetest"
	"github.com/mna/lox/internal/maincmd"
	"github.com/mna/lox/lang/loxerr"
	"github.com/mna/lox/lang/scanner"
	"github.com/mna/lox/lang/token"
	"github.com/mna/mainer"
	"github.com/stretchr/testify/require"
)

var testUpdateScannerTests = flag.Bool("test.update-scanner-tests", false, "If set, replace expected scanner test results with actual results.")

func TestScan(t *testing.T) {
	ctx := context.Background()
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".lox") {
		t.Run(fi.Name(), func(t *testing.T) {
			var buf, ebuf bytes.Buffer
			stdio := mainer.Stdio{
				Stdout: &buf,
				Stderr: &ebuf,
			}

			// error is ignored, we just want it to be printed to ebuf
			_ = maincmd.TokenizeFiles(ctx, stdio, filepath.Join(srcDir, fi.Name()))
			filetest.DiffOutput(t, fi, buf.String(), resultDir, testUpdateScannerTests)
			filetest.DiffErrors(t, fi, ebuf.String(), resultDir, testUpdateScannerTests)
		})
	}
}

func TestScanDeterministic(t *testing.T) {
	src := []byte(`
var a = 1;
fun add(x, y) { return x + y; }
print add(a, 41.5) >= 2 and "s" != nil;
// comment
`)

	rep := &loxerr.Reporter{Stderr: &bytes.Buffer{}}
	first := scanner.Scan(src, rep)
	second := scanner.Scan(src, rep)
	require.False(t, rep.HadError())
	if d := cmp.Diff(first, second); d != "" {
		t.Errorf("token streams differ (-first +second):\n%s", d)
	}
}

func TestScanEOFOnly(t *testing.T) {
	rep := &loxerr.Reporter{Stderr: &bytes.Buffer{}}
	toks := scanner.Scan(nil, rep)
	require.Len(t, toks, 1)
	require.Equal(t, token.EOF, toks[0].Type)
	require.Equal(t, 1, toks[0].Line)
}

func TestScanMultilineString(t *testing.T) {
	rep := &loxerr.Reporter{Stderr: &bytes.Buffer{}}
	toks := scanner.Scan([]byte("\"a\nb\"\nx"), rep)
	require.False(t, rep.HadError())

	require.Equal(t, token.STRING, toks[0].Type)
	require.Equal(t, "a\nb", toks[0].Str)
	// the identifier after the two-line string is on line 3
	require.Equal(t, token.IDENTIFIER, toks[1].Type)
	require.Equal(t, 3, toks[1].Line)
}
