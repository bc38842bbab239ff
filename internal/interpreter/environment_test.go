package interpreter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Retsam/klox/internal/token"
)

func tok(name string) token.Token {
	return token.Token{Type: token.Identifier, Lexeme: name}
}

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment()
	env.Define("x", float64(1))
	v, ok := env.Get(tok("x"))
	require.True(t, ok)
	require.Equal(t, float64(1), v)
}

func TestEnvironmentGetMissingReturnsFalse(t *testing.T) {
	env := NewEnvironment()
	_, ok := env.Get(tok("missing"))
	require.False(t, ok)
}

func TestEnvironmentChildShadowsParent(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("x", "outer")
	inner := NewChildEnvironment(outer)
	inner.Define("x", "inner")

	v, ok := inner.Get(tok("x"))
	require.True(t, ok)
	require.Equal(t, "inner", v)

	v, ok = outer.Get(tok("x"))
	require.True(t, ok)
	require.Equal(t, "outer", v)
}

func TestEnvironmentChildReadsThroughToParent(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("x", "outer")
	inner := NewChildEnvironment(outer)

	v, ok := inner.Get(tok("x"))
	require.True(t, ok)
	require.Equal(t, "outer", v)
}

func TestEnvironmentAssignWritesNearestBinding(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("x", "outer")
	inner := NewChildEnvironment(outer)

	ok := inner.Assign(tok("x"), "changed")
	require.True(t, ok)

	v, _ := outer.Get(tok("x"))
	require.Equal(t, "changed", v)
}

func TestEnvironmentAssignUndefinedFails(t *testing.T) {
	env := NewEnvironment()
	ok := env.Assign(tok("nope"), 1)
	require.False(t, ok)
}

func TestEnvironmentGetAtAndAssignAt(t *testing.T) {
	grandparent := NewEnvironment()
	grandparent.Define("x", "grandparent")
	parent := NewChildEnvironment(grandparent)
	child := NewChildEnvironment(parent)

	require.Equal(t, "grandparent", child.GetAt(2, "x"))

	child.AssignAt(2, tok("x"), "rewritten")
	require.Equal(t, "rewritten", grandparent.values["x"])
}
