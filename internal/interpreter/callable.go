package interpreter

import (
	"time"

	"github.com/Retsam/klox/internal/ast"
	"github.com/Retsam/klox/internal/token"
)

// nativeClock is the sole built-in: zero arity, returns seconds since
// an arbitrary epoch with subsecond resolution.
type nativeClock struct{}

func (nativeClock) Arity() int { return 0 }

func (nativeClock) Call(i *Interpreter, args []interface{}) interface{} {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}

func (nativeClock) String() string { return "<native fn>" }

// LoxFunction is a user-defined function or method: a declaration plus
// the environment that existed when it was declared.
type LoxFunction struct {
	declaration   *ast.Function
	closure       *Environment
	isInitializer bool
}

func (f *LoxFunction) Arity() int { return len(f.declaration.Params) }

func (f *LoxFunction) String() string {
	return "<fn " + f.declaration.Name.Lexeme + ">"
}

// Bind returns a copy of f whose closure gains a fresh environment
// defining "this" as instance, per spec.md §4.4's method binding rule.
func (f *LoxFunction) Bind(instance *LoxInstance) *LoxFunction {
	env := NewChildEnvironment(f.closure)
	env.Define("this", instance)
	return &LoxFunction{declaration: f.declaration, closure: env, isInitializer: f.isInitializer}
}

// Call runs the function body in a fresh environment enclosed by its
// closure (never the caller's environment), binding parameters to
// arguments in order. A Return unwind supplies the result; normal
// completion yields nil, except in an initializer, which always
// yields the receiver bound at "this" in its own closure.
func (f *LoxFunction) Call(i *Interpreter, args []interface{}) (result interface{}) {
	env := NewChildEnvironment(f.closure)
	for idx, param := range f.declaration.Params {
		env.Define(param.Lexeme, args[idx])
	}

	if f.isInitializer {
		defer func() {
			result = f.closure.GetAt(0, "this")
		}()
	}

	defer func() {
		if r := recover(); r != nil {
			if ret, ok := r.(returnSignal); ok {
				if !f.isInitializer {
					result = ret.value
				}
				return
			}
			panic(r)
		}
	}()

	i.executeBlock(f.declaration.Body, env)
	return nil
}

// returnSignal is the non-local control-flow value a Return statement
// unwinds the call stack with. It is not a Value, since any Value
// (including nil) is a legitimate return value.
type returnSignal struct {
	value interface{}
}

// breakSignal unwinds to the nearest enclosing While, mirroring
// returnSignal's shape.
type breakSignal struct{}

// LoxClass is a runtime class value: its method table and an optional
// superclass for single inheritance.
type LoxClass struct {
	Name       string
	Superclass *LoxClass
	Methods    map[string]*LoxFunction
}

func (c *LoxClass) String() string { return c.Name }

func (c *LoxClass) FindMethod(name string) *LoxFunction {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Arity is init's arity if the class (or an ancestor) defines one,
// else zero.
func (c *LoxClass) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call constructs a new instance and, if an initializer exists, binds
// and invokes it before returning the instance.
func (c *LoxClass) Call(i *Interpreter, args []interface{}) interface{} {
	instance := &LoxInstance{class: c, fields: make(map[string]interface{})}
	if init := c.FindMethod("init"); init != nil {
		init.Bind(instance).Call(i, args)
	}
	return instance
}

// LoxInstance is an instance of a LoxClass: a field table created
// lazily on first assignment, plus the class it was constructed from.
type LoxInstance struct {
	class  *LoxClass
	fields map[string]interface{}
}

func (inst *LoxInstance) String() string {
	return inst.class.Name + " instance"
}

// Get reads a field first, then a bound method, per spec.md §4.4's
// Get-expression evaluation rule.
func (inst *LoxInstance) Get(name token.Token) (interface{}, bool) {
	if v, ok := inst.fields[name.Lexeme]; ok {
		return v, true
	}
	if m := inst.class.FindMethod(name.Lexeme); m != nil {
		return m.Bind(inst), true
	}
	return nil, false
}

// Set assigns a field, creating it on first assignment.
func (inst *LoxInstance) Set(name token.Token, value interface{}) {
	inst.fields[name.Lexeme] = value
}
