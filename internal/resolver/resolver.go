// Package resolver performs the static, single pass over a parsed
// program that binds every variable reference to a lexical hop
// distance, which the interpreter later uses for environment lookups.
package resolver

import (
	"github.com/Retsam/klox/internal/ast"
	"github.com/Retsam/klox/internal/diag"
	"github.com/Retsam/klox/internal/token"
)

type functionType int

const (
	functionNone functionType = iota
	functionFunction
	functionMethod
	functionInitializer
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// state is whether a declared name has had its initializer resolved yet.
type state int

const (
	declared state = iota
	defined
)

// Resolves is the narrow interface the interpreter exposes back to the
// resolver: recording a hop distance for an expression node.
type Resolves interface {
	Resolve(expr ast.Expr, depth int)
}

// Resolver walks a program once, maintaining a stack of lexical
// scopes that mirrors the block/function/class/method nesting the
// interpreter will build at runtime.
type Resolver struct {
	target          Resolves
	reporter        *diag.Reporter
	scopes          []map[string]state
	currentFunction functionType
	currentClass    classType
	loopDepth       int
}

// New creates a Resolver that records distances into target and
// reports static errors through reporter.
func New(target Resolves, reporter *diag.Reporter) *Resolver {
	return &Resolver{target: target, reporter: reporter}
}

// Resolve walks every statement in the program.
func (r *Resolver) Resolve(statements []ast.Stmt) {
	for _, stmt := range statements {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	stmt.Accept(r)
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	expr.Accept(r)
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, map[string]state{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, exists := scope[name.Lexeme]; exists {
		r.reporter.ErrorAtToken(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = declared
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = defined
}

func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.target.Resolve(expr, len(r.scopes)-1-i)
			return
		}
	}
	// Not found in any scope: treated as global.
}

func (r *Resolver) resolveFunction(fn *ast.Function, kind functionType) {
	enclosingFunction := r.currentFunction
	enclosingLoopDepth := r.loopDepth
	r.currentFunction = kind
	r.loopDepth = 0
	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.Resolve(fn.Body)
	r.endScope()
	r.currentFunction = enclosingFunction
	r.loopDepth = enclosingLoopDepth
}

// --- statements ---

func (r *Resolver) VisitBlockStmt(stmt *ast.Block) interface{} {
	r.beginScope()
	r.Resolve(stmt.Statements)
	r.endScope()
	return nil
}

func (r *Resolver) VisitVarStmt(stmt *ast.Var) interface{} {
	r.declare(stmt.Name)
	r.resolveExpr(stmt.Initializer)
	r.define(stmt.Name)
	return nil
}

func (r *Resolver) VisitExpressionStmt(stmt *ast.Expression) interface{} {
	r.resolveExpr(stmt.Expr)
	return nil
}

func (r *Resolver) VisitIfStmt(stmt *ast.If) interface{} {
	r.resolveExpr(stmt.Condition)
	r.resolveStmt(stmt.ThenBranch)
	if stmt.ElseBranch != nil {
		r.resolveStmt(stmt.ElseBranch)
	}
	return nil
}

func (r *Resolver) VisitPrintStmt(stmt *ast.Print) interface{} {
	r.resolveExpr(stmt.Expr)
	return nil
}

func (r *Resolver) VisitReturnStmt(stmt *ast.Return) interface{} {
	if r.currentFunction == functionNone {
		r.reporter.ErrorAtToken(stmt.Keyword, "Can't return from top-level code.")
	}
	if stmt.Value != nil {
		if r.currentFunction == functionInitializer {
			r.reporter.ErrorAtToken(stmt.Keyword, "Can't return a value from an initializer.")
		}
		r.resolveExpr(stmt.Value)
	}
	return nil
}

func (r *Resolver) VisitWhileStmt(stmt *ast.While) interface{} {
	r.resolveExpr(stmt.Condition)
	r.loopDepth++
	r.resolveStmt(stmt.Body)
	r.loopDepth--
	return nil
}

func (r *Resolver) VisitBreakStmt(stmt *ast.Break) interface{} {
	if r.loopDepth == 0 {
		r.reporter.ErrorAtToken(stmt.Keyword, "Can't break outside of a loop.")
	}
	return nil
}

func (r *Resolver) VisitFunctionStmt(stmt *ast.Function) interface{} {
	r.declare(stmt.Name)
	r.define(stmt.Name)
	r.resolveFunction(stmt, functionFunction)
	return nil
}

func (r *Resolver) VisitClassStmt(stmt *ast.Class) interface{} {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(stmt.Name)
	r.define(stmt.Name)

	if stmt.Superclass != nil {
		if stmt.Superclass.Name.Lexeme == stmt.Name.Lexeme {
			r.reporter.ErrorAtToken(stmt.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = classSubclass
		r.resolveExpr(stmt.Superclass)
		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = defined
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = defined

	for _, method := range stmt.Methods {
		kind := functionMethod
		if method.Name.Lexeme == "init" {
			kind = functionInitializer
		}
		r.resolveFunction(method, kind)
	}

	r.endScope()
	if stmt.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
	return nil
}

// --- expressions ---

func (r *Resolver) VisitVariableExpr(expr *ast.Variable) interface{} {
	if len(r.scopes) > 0 {
		if st, ok := r.scopes[len(r.scopes)-1][expr.Name.Lexeme]; ok && st == declared {
			r.reporter.ErrorAtToken(expr.Name, "Can't read local variable in its own initializer.")
		}
	}
	r.resolveLocal(expr, expr.Name)
	return nil
}

func (r *Resolver) VisitAssignExpr(expr *ast.Assign) interface{} {
	r.resolveExpr(expr.Value)
	r.resolveLocal(expr, expr.Name)
	return nil
}

func (r *Resolver) VisitBinaryExpr(expr *ast.Binary) interface{} {
	r.resolveExpr(expr.Left)
	r.resolveExpr(expr.Right)
	return nil
}

func (r *Resolver) VisitLogicalExpr(expr *ast.Logical) interface{} {
	r.resolveExpr(expr.Left)
	r.resolveExpr(expr.Right)
	return nil
}

func (r *Resolver) VisitGroupingExpr(expr *ast.Grouping) interface{} {
	r.resolveExpr(expr.Expression)
	return nil
}

func (r *Resolver) VisitLiteralExpr(expr *ast.Literal) interface{} {
	return nil
}

func (r *Resolver) VisitUnaryExpr(expr *ast.Unary) interface{} {
	r.resolveExpr(expr.Right)
	return nil
}

func (r *Resolver) VisitCallExpr(expr *ast.Call) interface{} {
	r.resolveExpr(expr.Callee)
	for _, arg := range expr.Args {
		r.resolveExpr(arg)
	}
	return nil
}

func (r *Resolver) VisitGetExpr(expr *ast.Get) interface{} {
	r.resolveExpr(expr.Object)
	return nil
}

func (r *Resolver) VisitSetExpr(expr *ast.Set) interface{} {
	r.resolveExpr(expr.Value)
	r.resolveExpr(expr.Object)
	return nil
}

func (r *Resolver) VisitThisExpr(expr *ast.This) interface{} {
	if r.currentClass == classNone {
		r.reporter.ErrorAtToken(expr.Keyword, "Can't use 'this' outside of a class.")
		return nil
	}
	r.resolveLocal(expr, expr.Keyword)
	return nil
}

func (r *Resolver) VisitSuperExpr(expr *ast.Super) interface{} {
	switch {
	case r.currentClass == classNone:
		r.reporter.ErrorAtToken(expr.Keyword, "Can't use 'super' outside of a class.")
	case r.currentClass != classSubclass:
		r.reporter.ErrorAtToken(expr.Keyword, "Can't use 'super' in a class with no superclass.")
	default:
		r.resolveLocal(expr, expr.Keyword)
	}
	return nil
}
