// Package ast defines the expression and statement node types produced
// by the parser and walked by the resolver and interpreter.
package ast

import "github.com/Retsam/klox/internal/token"

// Expr is the interface implemented by every expression node.
type Expr interface {
	Accept(visitor ExprVisitor) interface{}
}

// ExprVisitor is implemented by any pass that walks expressions:
// the resolver, the interpreter, and the pretty-printer.
type ExprVisitor interface {
	VisitBinaryExpr(expr *Binary) interface{}
	VisitLogicalExpr(expr *Logical) interface{}
	VisitGroupingExpr(expr *Grouping) interface{}
	VisitLiteralExpr(expr *Literal) interface{}
	VisitUnaryExpr(expr *Unary) interface{}
	VisitVariableExpr(expr *Variable) interface{}
	VisitAssignExpr(expr *Assign) interface{}
	VisitCallExpr(expr *Call) interface{}
	VisitGetExpr(expr *Get) interface{}
	VisitSetExpr(expr *Set) interface{}
	VisitThisExpr(expr *This) interface{}
	VisitSuperExpr(expr *Super) interface{}
}

// Binary is a two-operand expression such as `a + b` or the comma
// operator `a, b` (which evaluates both and yields the right operand).
type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (e *Binary) Accept(v ExprVisitor) interface{} { return v.VisitBinaryExpr(e) }

// Logical is `and`/`or`, which short-circuit and so cannot reuse Binary.
type Logical struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (e *Logical) Accept(v ExprVisitor) interface{} { return v.VisitLogicalExpr(e) }

// Grouping is a parenthesized expression.
type Grouping struct {
	Expression Expr
}

func (e *Grouping) Accept(v ExprVisitor) interface{} { return v.VisitGroupingExpr(e) }

// Literal is a scanned literal value, or nil for the `nil` keyword.
type Literal struct {
	Value interface{}
}

func (e *Literal) Accept(v ExprVisitor) interface{} { return v.VisitLiteralExpr(e) }

// Unary is `-x` or `!x`.
type Unary struct {
	Operator token.Token
	Right    Expr
}

func (e *Unary) Accept(v ExprVisitor) interface{} { return v.VisitUnaryExpr(e) }

// Variable is a bare identifier used as an expression.
type Variable struct {
	Name token.Token
}

func (e *Variable) Accept(v ExprVisitor) interface{} { return v.VisitVariableExpr(e) }

// Assign is `name = value`.
type Assign struct {
	Name  token.Token
	Value Expr
}

func (e *Assign) Accept(v ExprVisitor) interface{} { return v.VisitAssignExpr(e) }

// Call is `callee(args...)`. Paren is the closing `)`, used for error
// line reporting.
type Call struct {
	Callee Expr
	Paren  token.Token
	Args   []Expr
}

func (e *Call) Accept(v ExprVisitor) interface{} { return v.VisitCallExpr(e) }

// Get is a property read, `object.name`.
type Get struct {
	Object Expr
	Name   token.Token
}

func (e *Get) Accept(v ExprVisitor) interface{} { return v.VisitGetExpr(e) }

// Set is a property write, `object.name = value`.
type Set struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

func (e *Set) Accept(v ExprVisitor) interface{} { return v.VisitSetExpr(e) }

// This is the `this` keyword used inside a method body.
type This struct {
	Keyword token.Token
}

func (e *This) Accept(v ExprVisitor) interface{} { return v.VisitThisExpr(e) }

// Super is `super.method` used inside a subclass method body.
type Super struct {
	Keyword token.Token
	Method  token.Token
}

func (e *Super) Accept(v ExprVisitor) interface{} { return v.VisitSuperExpr(e) }
