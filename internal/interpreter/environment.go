package interpreter

import "github.com/Retsam/klox/internal/token"

// Environment is one lexical scope frame: a name-to-value mapping plus
// an optional link to the enclosing scope. The chain is rooted at a
// single global environment.
type Environment struct {
	values map[string]interface{}
	outer  *Environment
}

// NewEnvironment creates the root (global) environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]interface{})}
}

// NewChildEnvironment creates a scope nested inside outer: a block,
// call frame, class body, or bound-method frame.
func NewChildEnvironment(outer *Environment) *Environment {
	return &Environment{values: make(map[string]interface{}), outer: outer}
}

// Define binds name to value in this environment, shadowing any
// binding of the same name in an enclosing scope.
func (e *Environment) Define(name string, value interface{}) {
	e.values[name] = value
}

// Get reads name, searching outward through enclosing scopes.
func (e *Environment) Get(name token.Token) (interface{}, bool) {
	if v, ok := e.values[name.Lexeme]; ok {
		return v, true
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, false
}

// Assign overwrites an existing binding of name, searching outward.
// It reports whether name was found anywhere in the chain.
func (e *Environment) Assign(name token.Token, value interface{}) bool {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = value
		return true
	}
	if e.outer != nil {
		return e.outer.Assign(name, value)
	}
	return false
}

// ancestor walks outward distance hops, as computed by the resolver.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.outer
	}
	return env
}

// GetAt reads name from the environment exactly distance hops out.
func (e *Environment) GetAt(distance int, name string) interface{} {
	return e.ancestor(distance).values[name]
}

// AssignAt overwrites name in the environment exactly distance hops out.
func (e *Environment) AssignAt(distance int, name token.Token, value interface{}) {
	e.ancestor(distance).values[name.Lexeme] = value
}
