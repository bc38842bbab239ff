package resolver

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Retsam/klox/internal/ast"
	"github.com/Retsam/klox/internal/diag"
	"github.com/Retsam/klox/internal/parser"
	"github.com/Retsam/klox/internal/scanner"
)

// recordingTarget stands in for the interpreter: it just remembers
// every (expr, depth) pair the resolver computed.
type recordingTarget struct {
	depths map[ast.Expr]int
}

func newRecordingTarget() *recordingTarget {
	return &recordingTarget{depths: make(map[ast.Expr]int)}
}

func (r *recordingTarget) Resolve(expr ast.Expr, depth int) {
	r.depths[expr] = depth
}

func resolve(t *testing.T, source string) (*recordingTarget, *diag.Reporter, []ast.Stmt) {
	t.Helper()
	var buf bytes.Buffer
	reporter := diag.New(&buf)
	toks := scanner.New(source, reporter).ScanTokens()
	stmts := parser.New(toks, reporter).Parse()
	require.False(t, reporter.HadError(), "source failed to parse: %s", buf.String())

	target := newRecordingTarget()
	New(target, reporter).Resolve(stmts)
	return target, reporter, stmts
}

func TestResolveLocalVariableDistance(t *testing.T) {
	target, r, stmts := resolve(t, `
		var a = "global";
		{
			var a = "local";
			print a;
		}
	`)
	require.False(t, r.HadError())

	block := stmts[1].(*ast.Block)
	printStmt := block.Statements[1].(*ast.Print)
	variable := printStmt.Expr.(*ast.Variable)
	require.Equal(t, 0, target.depths[variable])
}

func TestResolveSelfReferentialInitializerIsError(t *testing.T) {
	_, r, _ := resolve(t, `
		var a = "outer";
		{
			var a = a;
		}
	`)
	require.True(t, r.HadError())
}

func TestResolveDuplicateLocalDeclarationIsError(t *testing.T) {
	_, r, _ := resolve(t, `
		{
			var a = 1;
			var a = 2;
		}
	`)
	require.True(t, r.HadError())
}

func TestResolveReturnOutsideFunctionIsError(t *testing.T) {
	_, r, _ := resolve(t, `return 1;`)
	require.True(t, r.HadError())
}

func TestResolveReturnValueFromInitializerIsError(t *testing.T) {
	_, r, _ := resolve(t, `
		class Foo {
			init() {
				return 1;
			}
		}
	`)
	require.True(t, r.HadError())
}

func TestResolveBreakOutsideLoopIsError(t *testing.T) {
	_, r, _ := resolve(t, `break;`)
	require.True(t, r.HadError())
}

func TestResolveBreakInsideNestedFunctionInsideLoopIsError(t *testing.T) {
	// A break inside a function body defined within a loop does not
	// refer to the enclosing loop: it must still be rejected.
	_, r, _ := resolve(t, `
		while (true) {
			fun f() {
				break;
			}
		}
	`)
	require.True(t, r.HadError())
}

func TestResolveThisOutsideClassIsError(t *testing.T) {
	_, r, _ := resolve(t, `
		fun f() {
			print this;
		}
	`)
	require.True(t, r.HadError())
}

func TestResolveSuperOutsideSubclassIsError(t *testing.T) {
	_, r, _ := resolve(t, `
		class Foo {
			bar() {
				super.bar();
			}
		}
	`)
	require.True(t, r.HadError())
}

func TestResolveClassInheritingFromItselfIsError(t *testing.T) {
	_, r, _ := resolve(t, `class Foo < Foo {}`)
	require.True(t, r.HadError())
}

func TestResolveSuperResolvesThroughTwoScopes(t *testing.T) {
	target, r, stmts := resolve(t, `
		class Animal {
			speak() { print "..."; }
		}
		class Dog < Animal {
			speak() {
				super.speak();
			}
		}
	`)
	require.False(t, r.HadError())

	dog := stmts[1].(*ast.Class)
	method := dog.Methods[0]
	exprStmt := method.Body[0].(*ast.Expression)
	callExpr := exprStmt.Expr.(*ast.Call)
	superExpr := callExpr.Callee.(*ast.Super)
	require.Equal(t, 2, target.depths[superExpr])
}
