// Package interpreter walks a resolved program, maintaining a chain of
// lexical environments, and evaluates it for effect (print, and
// mutation of instance/environment state).
package interpreter

import (
	"fmt"
	"io"

	"github.com/Retsam/klox/internal/ast"
	"github.com/Retsam/klox/internal/token"
)

// Interpreter walks statements and expressions, maintaining a single
// "current environment" pointer that moves as execution enters and
// leaves scopes.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	locals      map[ast.Expr]int
	stdout      io.Writer
}

// New creates an Interpreter whose print statements write to stdout
// and whose globals contains the single built-in, clock.
func New(stdout io.Writer) *Interpreter {
	globals := NewEnvironment()
	globals.Define("clock", nativeClock{})
	return &Interpreter{
		globals:     globals,
		environment: globals,
		locals:      make(map[ast.Expr]int),
		stdout:      stdout,
	}
}

// Resolve records the hop distance the resolver computed for expr; it
// implements resolver.Resolves.
func (i *Interpreter) Resolve(expr ast.Expr, depth int) {
	i.locals[expr] = depth
}

// Interpret runs every statement in the program. Runtime errors abort
// the run and are returned to the caller for reporting; they never
// panic past this call.
func (i *Interpreter) Interpret(statements []ast.Stmt) (err *RuntimeError) {
	defer func() {
		if r := recover(); r != nil {
			if re, ok := r.(*RuntimeError); ok {
				err = re
				return
			}
			panic(r)
		}
	}()

	for _, stmt := range statements {
		i.execute(stmt)
	}
	return nil
}

func (i *Interpreter) execute(stmt ast.Stmt) {
	stmt.Accept(i)
}

func (i *Interpreter) evaluate(expr ast.Expr) interface{} {
	return expr.Accept(i)
}

func (i *Interpreter) executeBlock(statements []ast.Stmt, env *Environment) {
	previous := i.environment
	defer func() { i.environment = previous }()
	i.environment = env
	for _, stmt := range statements {
		i.execute(stmt)
	}
}

func (i *Interpreter) lookUpVariable(name token.Token, expr ast.Expr) interface{} {
	if distance, ok := i.locals[expr]; ok {
		return i.environment.GetAt(distance, name.Lexeme)
	}
	v, ok := i.globals.Get(name)
	if !ok {
		panic(&RuntimeError{Token: name, Message: fmt.Sprintf("Undefined variable '%s'.", name.Lexeme)})
	}
	return v
}

// --- statements ---

func (i *Interpreter) VisitExpressionStmt(stmt *ast.Expression) interface{} {
	i.evaluate(stmt.Expr)
	return nil
}

func (i *Interpreter) VisitPrintStmt(stmt *ast.Print) interface{} {
	value := i.evaluate(stmt.Expr)
	fmt.Fprintln(i.stdout, stringify(value))
	return nil
}

func (i *Interpreter) VisitVarStmt(stmt *ast.Var) interface{} {
	value := i.evaluate(stmt.Initializer)
	i.environment.Define(stmt.Name.Lexeme, value)
	return nil
}

func (i *Interpreter) VisitBlockStmt(stmt *ast.Block) interface{} {
	i.executeBlock(stmt.Statements, NewChildEnvironment(i.environment))
	return nil
}

func (i *Interpreter) VisitIfStmt(stmt *ast.If) interface{} {
	if isTruthy(i.evaluate(stmt.Condition)) {
		i.execute(stmt.ThenBranch)
	} else if stmt.ElseBranch != nil {
		i.execute(stmt.ElseBranch)
	}
	return nil
}

func (i *Interpreter) VisitWhileStmt(stmt *ast.While) (result interface{}) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(breakSignal); ok {
				return
			}
			panic(r)
		}
	}()
	for isTruthy(i.evaluate(stmt.Condition)) {
		i.execute(stmt.Body)
	}
	return nil
}

func (i *Interpreter) VisitBreakStmt(stmt *ast.Break) interface{} {
	panic(breakSignal{})
}

func (i *Interpreter) VisitFunctionStmt(stmt *ast.Function) interface{} {
	function := &LoxFunction{declaration: stmt, closure: i.environment}
	i.environment.Define(stmt.Name.Lexeme, function)
	return nil
}

func (i *Interpreter) VisitReturnStmt(stmt *ast.Return) interface{} {
	var value interface{}
	if stmt.Value != nil {
		value = i.evaluate(stmt.Value)
	}
	panic(returnSignal{value: value})
}

func (i *Interpreter) VisitClassStmt(stmt *ast.Class) interface{} {
	var superclass *LoxClass
	if stmt.Superclass != nil {
		sc := i.evaluate(stmt.Superclass)
		var ok bool
		superclass, ok = sc.(*LoxClass)
		if !ok {
			panic(&RuntimeError{Token: stmt.Superclass.Name, Message: "Superclass must be a class."})
		}
	}

	i.environment.Define(stmt.Name.Lexeme, nil)

	methodEnv := i.environment
	if superclass != nil {
		methodEnv = NewChildEnvironment(i.environment)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*LoxFunction, len(stmt.Methods))
	for _, method := range stmt.Methods {
		methods[method.Name.Lexeme] = &LoxFunction{
			declaration:   method,
			closure:       methodEnv,
			isInitializer: method.Name.Lexeme == "init",
		}
	}

	class := &LoxClass{Name: stmt.Name.Lexeme, Superclass: superclass, Methods: methods}
	i.environment.Assign(stmt.Name, class)
	return nil
}

// --- expressions ---

func (i *Interpreter) VisitLiteralExpr(expr *ast.Literal) interface{} {
	return expr.Value
}

func (i *Interpreter) VisitGroupingExpr(expr *ast.Grouping) interface{} {
	return i.evaluate(expr.Expression)
}

func (i *Interpreter) VisitUnaryExpr(expr *ast.Unary) interface{} {
	right := i.evaluate(expr.Right)
	switch expr.Operator.Type {
	case token.Minus:
		return -checkNumberOperand(expr.Operator, right)
	case token.Bang:
		return !isTruthy(right)
	}
	return nil
}

func (i *Interpreter) VisitLogicalExpr(expr *ast.Logical) interface{} {
	left := i.evaluate(expr.Left)
	if expr.Operator.Type == token.Or {
		if isTruthy(left) {
			return left
		}
	} else {
		if !isTruthy(left) {
			return left
		}
	}
	return i.evaluate(expr.Right)
}

func (i *Interpreter) VisitBinaryExpr(expr *ast.Binary) interface{} {
	left := i.evaluate(expr.Left)
	right := i.evaluate(expr.Right)

	switch expr.Operator.Type {
	case token.Comma:
		return right
	case token.Plus:
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs
			}
			panic(&RuntimeError{Token: expr.Operator, Message: "Operands must be two numbers or two strings."})
		}
		if ln, ok := left.(float64); ok {
			if rn, ok := right.(float64); ok {
				return ln + rn
			}
		}
		panic(&RuntimeError{Token: expr.Operator, Message: "Operands must be two numbers or two strings."})
	case token.Minus:
		l, r := checkNumberOperands(expr.Operator, left, right)
		return l - r
	case token.Star:
		l, r := checkNumberOperands(expr.Operator, left, right)
		return l * r
	case token.Slash:
		l, r := checkNumberOperands(expr.Operator, left, right)
		return l / r
	case token.Greater:
		l, r := checkNumberOperands(expr.Operator, left, right)
		return l > r
	case token.GreaterEqual:
		l, r := checkNumberOperands(expr.Operator, left, right)
		return l >= r
	case token.Less:
		l, r := checkNumberOperands(expr.Operator, left, right)
		return l < r
	case token.LessEqual:
		l, r := checkNumberOperands(expr.Operator, left, right)
		return l <= r
	case token.EqualEqual:
		return isEqual(left, right)
	case token.BangEqual:
		return !isEqual(left, right)
	}
	return nil
}

func (i *Interpreter) VisitVariableExpr(expr *ast.Variable) interface{} {
	return i.lookUpVariable(expr.Name, expr)
}

func (i *Interpreter) VisitAssignExpr(expr *ast.Assign) interface{} {
	value := i.evaluate(expr.Value)
	if distance, ok := i.locals[expr]; ok {
		i.environment.AssignAt(distance, expr.Name, value)
		return value
	}
	if !i.globals.Assign(expr.Name, value) {
		panic(&RuntimeError{Token: expr.Name, Message: fmt.Sprintf("Undefined variable '%s'.", expr.Name.Lexeme)})
	}
	return value
}

func (i *Interpreter) VisitCallExpr(expr *ast.Call) interface{} {
	callee := i.evaluate(expr.Callee)

	args := make([]interface{}, len(expr.Args))
	for idx, a := range expr.Args {
		args[idx] = i.evaluate(a)
	}

	fn, ok := callee.(Callable)
	if !ok {
		panic(&RuntimeError{Token: expr.Paren, Message: "Can only call functions and classes."})
	}
	if len(args) != fn.Arity() {
		panic(&RuntimeError{Token: expr.Paren, Message: fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args))})
	}
	return fn.Call(i, args)
}

func (i *Interpreter) VisitGetExpr(expr *ast.Get) interface{} {
	object := i.evaluate(expr.Object)
	instance, ok := object.(*LoxInstance)
	if !ok {
		panic(&RuntimeError{Token: expr.Name, Message: "Only instances have properties."})
	}
	value, ok := instance.Get(expr.Name)
	if !ok {
		panic(&RuntimeError{Token: expr.Name, Message: fmt.Sprintf("Undefined property '%s'.", expr.Name.Lexeme)})
	}
	return value
}

func (i *Interpreter) VisitSetExpr(expr *ast.Set) interface{} {
	object := i.evaluate(expr.Object)
	instance, ok := object.(*LoxInstance)
	if !ok {
		panic(&RuntimeError{Token: expr.Name, Message: "Only instances have fields."})
	}
	value := i.evaluate(expr.Value)
	instance.Set(expr.Name, value)
	return value
}

func (i *Interpreter) VisitThisExpr(expr *ast.This) interface{} {
	return i.lookUpVariable(expr.Keyword, expr)
}

func (i *Interpreter) VisitSuperExpr(expr *ast.Super) interface{} {
	distance := i.locals[expr]
	superclass := i.environment.GetAt(distance, "super").(*LoxClass)
	object := i.environment.GetAt(distance-1, "this").(*LoxInstance)

	method := superclass.FindMethod(expr.Method.Lexeme)
	if method == nil {
		panic(&RuntimeError{Token: expr.Method, Message: fmt.Sprintf("Undefined property '%s'.", expr.Method.Lexeme)})
	}
	return method.Bind(object)
}

func checkNumberOperand(operator token.Token, operand interface{}) float64 {
	if n, ok := operand.(float64); ok {
		return n
	}
	panic(&RuntimeError{Token: operator, Message: "Operand must be a number."})
}

func checkNumberOperands(operator token.Token, left, right interface{}) (float64, float64) {
	ln, lok := left.(float64)
	rn, rok := right.(float64)
	if lok && rok {
		return ln, rn
	}
	panic(&RuntimeError{Token: operator, Message: "Operands must be numbers."})
}
