package ast

import (
	"fmt"
	"strings"
)

// Printer renders a program back to a parenthesized textual form for
// the `--debug` CLI flag. Like the resolver and the interpreter, it
// implements both ExprVisitor and StmtVisitor on the same type.
type Printer struct{}

// Print renders a full program, one line per top-level statement.
func (p *Printer) Print(statements []Stmt) string {
	var b strings.Builder
	for _, stmt := range statements {
		b.WriteString(stmt.Accept(p).(string))
		b.WriteByte('\n')
	}
	return b.String()
}

func (p *Printer) parenthesize(name string, exprs ...Expr) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteByte(' ')
		if e == nil {
			b.WriteString("nil")
			continue
		}
		b.WriteString(e.Accept(p).(string))
	}
	b.WriteByte(')')
	return b.String()
}

func (p *Printer) VisitBinaryExpr(e *Binary) interface{} {
	return p.parenthesize(e.Operator.Lexeme, e.Left, e.Right)
}

func (p *Printer) VisitLogicalExpr(e *Logical) interface{} {
	return p.parenthesize(e.Operator.Lexeme, e.Left, e.Right)
}

func (p *Printer) VisitGroupingExpr(e *Grouping) interface{} {
	return p.parenthesize("group", e.Expression)
}

func (p *Printer) VisitLiteralExpr(e *Literal) interface{} {
	if e.Value == nil {
		return "nil"
	}
	return fmt.Sprintf("%v", e.Value)
}

func (p *Printer) VisitUnaryExpr(e *Unary) interface{} {
	return p.parenthesize(e.Operator.Lexeme, e.Right)
}

func (p *Printer) VisitVariableExpr(e *Variable) interface{} {
	return e.Name.Lexeme
}

func (p *Printer) VisitAssignExpr(e *Assign) interface{} {
	return p.parenthesize("= "+e.Name.Lexeme, e.Value)
}

func (p *Printer) VisitCallExpr(e *Call) interface{} {
	return p.parenthesize("call", append([]Expr{e.Callee}, e.Args...)...)
}

func (p *Printer) VisitGetExpr(e *Get) interface{} {
	return p.parenthesize("get "+e.Name.Lexeme, e.Object)
}

func (p *Printer) VisitSetExpr(e *Set) interface{} {
	return p.parenthesize("set "+e.Name.Lexeme, e.Object, e.Value)
}

func (p *Printer) VisitThisExpr(e *This) interface{} {
	return "this"
}

func (p *Printer) VisitSuperExpr(e *Super) interface{} {
	return "(super " + e.Method.Lexeme + ")"
}

func (p *Printer) VisitExpressionStmt(s *Expression) interface{} {
	return p.parenthesize(";", s.Expr)
}

func (p *Printer) VisitPrintStmt(s *Print) interface{} {
	return p.parenthesize("print", s.Expr)
}

func (p *Printer) VisitVarStmt(s *Var) interface{} {
	return p.parenthesize("var "+s.Name.Lexeme, s.Initializer)
}

func (p *Printer) VisitBlockStmt(s *Block) interface{} {
	var b strings.Builder
	b.WriteString("(block")
	for _, stmt := range s.Statements {
		b.WriteByte(' ')
		b.WriteString(stmt.Accept(p).(string))
	}
	b.WriteByte(')')
	return b.String()
}

func (p *Printer) VisitIfStmt(s *If) interface{} {
	if s.ElseBranch == nil {
		return fmt.Sprintf("(if %s %s)", s.Condition.Accept(p), s.ThenBranch.Accept(p))
	}
	return fmt.Sprintf("(if %s %s %s)", s.Condition.Accept(p), s.ThenBranch.Accept(p), s.ElseBranch.Accept(p))
}

func (p *Printer) VisitWhileStmt(s *While) interface{} {
	return fmt.Sprintf("(while %s %s)", s.Condition.Accept(p), s.Body.Accept(p))
}

func (p *Printer) VisitBreakStmt(s *Break) interface{} {
	return "(break)"
}

func (p *Printer) VisitFunctionStmt(s *Function) interface{} {
	var b strings.Builder
	fmt.Fprintf(&b, "(fun %s (", s.Name.Lexeme)
	for i, param := range s.Params {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(param.Lexeme)
	}
	b.WriteString(")")
	for _, stmt := range s.Body {
		b.WriteByte(' ')
		b.WriteString(stmt.Accept(p).(string))
	}
	b.WriteByte(')')
	return b.String()
}

func (p *Printer) VisitReturnStmt(s *Return) interface{} {
	if s.Value == nil {
		return "(return)"
	}
	return p.parenthesize("return", s.Value)
}

func (p *Printer) VisitClassStmt(s *Class) interface{} {
	var b strings.Builder
	fmt.Fprintf(&b, "(class %s", s.Name.Lexeme)
	if s.Superclass != nil {
		fmt.Fprintf(&b, " < %s", s.Superclass.Name.Lexeme)
	}
	for _, m := range s.Methods {
		b.WriteByte(' ')
		b.WriteString(m.Accept(p).(string))
	}
	b.WriteByte(')')
	return b.String()
}
