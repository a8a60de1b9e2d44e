package interp_test

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"testing"

	"github.com/mna/lox/internal/filetest"
	"github.com/mna/lox/internal/maincmd"
	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/interp"
	"github.com/mna/lox/lang/loxerr"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/resolver"
	"github.com/mna/lox/lang/scanner"
	"github.com/mna/lox/lang/token"
	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpdateInterpTests = flag.Bool("test.update-interp-tests", false, "If set, replace expected interpreter test results with actual results.")

func TestInterpretFiles(t *testing.T) {
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
			_ = maincmd.InterpretFiles(ctx, stdio, 0, filepath.Join(srcDir, fi.Name()))
			filetest.DiffOutput(t, fi, buf.String(), resultDir, testUpdateInterpTests)
			filetest.DiffErrors(t, fi, ebuf.String(), resultDir, testUpdateInterpTests)
		})
	}
}

// runSource executes src through the full pipeline against it (a new
// interpreter if nil) and returns the stdout and stderr contents.
func runSource(t *testing.T, it *interp.Interpreter, src string) (string, string, *loxerr.Reporter) {
	t.Helper()

	var out, ebuf bytes.Buffer
	rep := &loxerr.Reporter{Stderr: &ebuf}
	toks := scanner.Scan([]byte(src), rep)
	stmts := parser.Parse(toks, rep)
	require.False(t, rep.HadError(), "parse: %s", ebuf.String())
	depths := resolver.Resolve(stmts, rep)
	require.False(t, rep.HadError(), "resolve: %s", ebuf.String())

	if it == nil {
		it = interp.New()
	}
	it.Stdout = &out
	it.Interpret(stmts, depths, rep)
	return out.String(), ebuf.String(), rep
}

func TestInterpret(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		out     string
		err     string
	}{
		{
			name: "arithmetic precedence",
			src:  "print 1 + 2 * 3;",
			out:  "7\n",
		},
		{
			name: "block shadowing",
			src:  "var a = 1; { var a = 2; print a; } print a;",
			out:  "2\n1\n",
		},
		{
			name: "while loop",
			src:  "var i = 0; while (i < 3) { print i; i = i + 1; }",
			out:  "0\n1\n2\n",
		},
		{
			name: "concat",
			src:  `print "foo" + "bar";`,
			out:  "foobar\n",
		},
		{
			name: "comparisons",
			src:  "print 1 < 2; print 2 <= 2; print 3 > 4; print 4 >= 4;",
			out:  "true\ntrue\nfalse\ntrue\n",
		},
		{
			name: "unary",
			src:  `print -(3); print !0; print !nil; print !"";`,
			out:  "-3\nfalse\ntrue\nfalse\n",
		},
		{
			name: "truthiness of zero and empty string",
			src:  `if (0) print "zero"; if ("") print "empty"; if (nil) print "nil"; else print "no";`,
			out:  "zero\nempty\nno\n",
		},
		{
			name: "nan equality is reflexive",
			src:  "print 0/0 == 0/0;",
			out:  "true\n",
		},
		{
			name: "division by zero yields NaN",
			src:  "print 1/0; print 10/4;",
			out:  "NaN\n2.5\n",
		},
		{
			name: "no type coercion in equality",
			src:  `print 1 == "1"; print nil == false; print nil == nil;`,
			out:  "false\nfalse\ntrue\n",
		},
		{
			name: "assignment is an expression",
			src:  "var a = 1; print a = 2; print a;",
			out:  "2\n2\n",
		},
		{
			name: "stringify integer-valued number",
			src:  "print 3.0; print 2.5;",
			out:  "3\n2.5\n",
		},
		{
			name: "fib",
			src:  "fun fib(n) { if (n < 2) return n; return fib(n - 1) + fib(n - 2); } print fib(10);",
			out:  "55\n",
		},
		{
			name: "bare return yields nil",
			src:  "fun f() { return; } print f();",
			out:  "nil\n",
		},
		{
			name: "fall off the end yields nil",
			src:  "fun f() { 1 + 1; } print f();",
			out:  "nil\n",
		},
		{
			name: "function stringify",
			src:  "fun f() {} print f; print clock;",
			out:  "<fn f>\n<native fn>\n",
		},
		{
			name: "plus type error",
			src:  `print "hi" + 1;`,
			err:  "Operands must be two numbers or two strings.\n[line 1]\n",
		},
		{
			name: "arith type error",
			src:  `print 1 - "x";`,
			err:  "Operands must be numbers.\n[line 1]\n",
		},
		{
			name: "negate type error",
			src:  `print -"x";`,
			err:  "Operand must be a number.\n[line 1]\n",
		},
		{
			name: "undefined variable",
			src:  "print x;",
			err:  "Undefined variable 'x'.\n[line 1]\n",
		},
		{
			name: "undefined assign",
			src:  "x = 1;",
			err:  "Undefined variable 'x'.\n[line 1]\n",
		},
		{
			name: "not callable",
			src:  `"abc"();`,
			err:  "Can only call functions and classes.\n[line 1]\n",
		},
		{
			name: "arity mismatch",
			src:  "fun f(a, b) { return a; } print f(1);",
			err:  "Expected 2 arguments but got 1.\n[line 1]\n",
		},
		{
			name: "runtime error stops execution",
			src:  "print 1;\nprint -\"x\";\nprint 2;",
			out:  "1\n",
			err:  "Operand must be a number.\n[line 2]\n",
		},
		{
			name: "class and instance",
			src:  "class C { m() { return 42; } } var c = C(); print C; print c; print c.m(); print c.m;",
			out:  "C\nC instance\n42\n<fn m>\n",
		},
		{
			name: "fields shadow methods",
			src:  "class C { m() { return 1; } } var c = C(); c.m = 2; print c.m;",
			out:  "2\n",
		},
		{
			name: "undefined property",
			src:  "class C {} var c = C(); print c.missing;",
			err:  "Undefined property 'missing'.\n[line 1]\n",
		},
		{
			name: "property on non-instance",
			src:  "var a = 1; print a.b;",
			err:  "Only instances have properties.\n[line 1]\n",
		},
		{
			name: "field on non-instance",
			src:  "var a = 1; a.b = 2;",
			err:  "Only instances have fields.\n[line 1]\n",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, errOut, rep := runSource(t, nil, c.src)
			assert.Equal(t, c.out, out)
			assert.Equal(t, c.err, errOut)
			assert.Equal(t, c.err != "", rep.HadRuntimeError())
		})
	}
}

func TestClosureCapture(t *testing.T) {
	src := `
fun mk() {
  var n = 0;
  fun inc() {
    n = n + 1;
    return n;
  }
  return inc;
}
var c = mk();
print c();
print c();
print c();
`
	out, errOut, rep := runSource(t, nil, src)
	require.False(t, rep.HadRuntimeError(), errOut)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestClosuresShareFrame(t *testing.T) {
	src := `
var add;
var get;
{
  var shared = 0;
  fun a() { shared = shared + 1; }
  fun b() { return shared; }
  add = a;
  get = b;
}
add();
add();
print get();
`
	out, errOut, rep := runSource(t, nil, src)
	require.False(t, rep.HadRuntimeError(), errOut)
	assert.Equal(t, "2\n", out)
}

func TestShortCircuit(t *testing.T) {
	src := `
var x = 0;
fun side() { x = x + 1; return true; }
var a = false and side();
var b = true or side();
print x;
print a;
print b;
print nil or "fallback";
print 1 and 2;
`
	out, errOut, rep := runSource(t, nil, src)
	require.False(t, rep.HadRuntimeError(), errOut)
	assert.Equal(t, "0\nfalse\ntrue\nfallback\n2\n", out)
}

func TestEnvRestoredAfterRuntimeError(t *testing.T) {
	// the same interpreter keeps executing after a runtime error (as the
	// REPL does): the environment pointer must have been restored during
	// the unwind out of the block
	it := interp.New()
	_, _, rep := runSource(t, it, "var a = 1;")
	require.False(t, rep.HadRuntimeError())

	_, errOut, rep := runSource(t, it, `{ var a = 2; print -"x"; }`)
	require.True(t, rep.HadRuntimeError())
	require.Equal(t, "Operand must be a number.\n[line 1]\n", errOut)

	out, _, rep := runSource(t, it, "print a;")
	require.False(t, rep.HadRuntimeError())
	assert.Equal(t, "1\n", out)
}

func TestClock(t *testing.T) {
	out, errOut, rep := runSource(t, nil, "print clock() > 0;")
	require.False(t, rep.HadRuntimeError(), errOut)
	assert.Equal(t, "true\n", out)

	_, errOut, rep = runSource(t, nil, "clock(1);")
	require.True(t, rep.HadRuntimeError())
	assert.Equal(t, "Expected 0 arguments but got 1.\n[line 1]\n", errOut)
}

func TestMaxCallDepth(t *testing.T) {
	it := interp.New()
	it.MaxCallDepth = 8

	_, errOut, rep := runSource(t, it, "fun boom() { boom(); } boom();")
	require.True(t, rep.HadRuntimeError())
	assert.Equal(t, "Stack overflow.\n[line 1]\n", errOut)
}

func TestClassMethodNames(t *testing.T) {
	it := interp.New()
	_, errOut, rep := runSource(t, it, "class C { b() {} a() {} c() {} }")
	require.False(t, rep.HadRuntimeError(), errOut)

	v, err := it.Globals().Get(token.Token{Type: token.IDENTIFIER, Lexeme: "C", Line: 1})
	require.NoError(t, err)
	class, ok := v.(*interp.Class)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, class.MethodNames())
}

func TestDepthTableIsPerNode(t *testing.T) {
	// two distinct uses of the same name resolve to different depths
	src := `
var x = "global";
{
  print x;
  var x = "local";
  print x;
}
`
	var ebuf bytes.Buffer
	rep := &loxerr.Reporter{Stderr: &ebuf}
	toks := scanner.Scan([]byte(src), rep)
	stmts := parser.Parse(toks, rep)
	require.False(t, rep.HadError(), ebuf.String())
	depths := resolver.Resolve(stmts, rep)
	require.False(t, rep.HadError(), ebuf.String())

	block := stmts[1].(*ast.BlockStmt)
	first := block.Stmts[0].(*ast.PrintStmt).Expr
	second := block.Stmts[2].(*ast.PrintStmt).Expr
	_, ok := depths[first]
	assert.False(t, ok, "first use is the global")
	assert.Equal(t, 0, depths[second])

	var out bytes.Buffer
	it := interp.New()
	it.Stdout = &out
	it.Interpret(stmts, depths, rep)
	require.False(t, rep.HadRuntimeError(), ebuf.String())
	assert.Equal(t, "global\nlocal\n", out.String())
}
