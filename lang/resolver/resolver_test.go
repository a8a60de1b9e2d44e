package resolver_test

import (
	"bytes"
	"testing"

	"github.com/mna/lox/lang/ast"
	"github.com/mna/lox/lang/loxerr"
	"github.com/mna/lox/lang/parser"
	"github.com/mna/lox/lang/resolver"
	"github.com/mna/lox/lang/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveSource(t *testing.T, src string) ([]ast.Stmt, map[ast.Expr]int, *loxerr.Reporter, *bytes.Buffer) {
	t.Helper()
	var ebuf bytes.Buffer
	rep := &loxerr.Reporter{Stderr: &ebuf}
	toks := scanner.Scan([]byte(src), rep)
	stmts := parser.Parse(toks, rep)
	require.False(t, rep.HadError(), "parse: %s", ebuf.String())
	depths := resolver.Resolve(stmts, rep)
	return stmts, depths, rep, &ebuf
}

func TestResolveBlockDepths(t *testing.T) {
	src := `
var a = 1;
{
  var b = 2;
  {
    print a;
    print b;
    b = 3;
  }
}
`
	stmts, depths, rep, ebuf := resolveSource(t, src)
	require.False(t, rep.HadError(), ebuf.String())

	outer := stmts[1].(*ast.BlockStmt)
	inner := outer.Stmts[1].(*ast.BlockStmt)
	useA := inner.Stmts[0].(*ast.PrintStmt).Expr
	useB := inner.Stmts[1].(*ast.PrintStmt).Expr
	asgB := inner.Stmts[2].(*ast.ExprStmt).Expr

	// a is a global: resolved dynamically, no depth entry
	_, ok := depths[useA]
	assert.False(t, ok)

	// b is one scope up from the inner block, and its read and write
	// resolve to the same frame
	assert.Equal(t, 1, depths[useB])
	assert.Equal(t, 1, depths[asgB])
}

func TestResolveParams(t *testing.T) {
	src := `fun f(x) { return x; }`
	stmts, depths, rep, ebuf := resolveSource(t, src)
	require.False(t, rep.HadError(), ebuf.String())

	fn := stmts[0].(*ast.FuncStmt)
	ret := fn.Body[0].(*ast.ReturnStmt).Value
	d, ok := depths[ret]
	require.True(t, ok)
	assert.Equal(t, 0, d)
}

func TestResolveClosure(t *testing.T) {
	src := `
fun outer() {
  var n = 0;
  fun inner() {
    n = n + 1;
  }
}
`
	stmts, depths, rep, ebuf := resolveSource(t, src)
	require.False(t, rep.HadError(), ebuf.String())

	outer := stmts[0].(*ast.FuncStmt)
	inner := outer.Body[1].(*ast.FuncStmt)
	asg := inner.Body[0].(*ast.ExprStmt).Expr.(*ast.AssignExpr)
	use := asg.Value.(*ast.BinaryExpr).Left

	assert.Equal(t, 1, depths[asg])
	assert.Equal(t, 1, depths[use])
}

func TestResolveOwnInitializer(t *testing.T) {
	_, _, rep, ebuf := resolveSource(t, "{ var a = a; }")
	require.True(t, rep.HadError())
	assert.Contains(t, ebuf.String(), "Can't read local variable in its own initializer.")
}

func TestResolveGlobalSelfInit(t *testing.T) {
	// globals are not tracked by the resolver, a global may refer to a
	// previous binding of its own name
	_, _, rep, ebuf := resolveSource(t, "var a = 1; var a = a;")
	require.False(t, rep.HadError(), ebuf.String())
}

func TestResolveDuplicateLocal(t *testing.T) {
	_, _, rep, ebuf := resolveSource(t, "{ var a = 1; var a = 2; }")
	require.True(t, rep.HadError())
	assert.Contains(t, ebuf.String(), "Already a variable with this name in this scope.")
}

func TestResolveTopLevelReturn(t *testing.T) {
	_, _, rep, ebuf := resolveSource(t, "return 1;")
	require.True(t, rep.HadError())
	assert.Equal(t, "[line 1] Error at 'return': Can't return from top-level code.\n", ebuf.String())
}

func TestResolveReturnInMethod(t *testing.T) {
	_, _, rep, ebuf := resolveSource(t, "class C { m() { return 1; } }")
	require.False(t, rep.HadError(), ebuf.String())
}
