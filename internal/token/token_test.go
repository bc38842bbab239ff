package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeStringKnown(t *testing.T) {
	require.Equal(t, "LEFT_PAREN", LeftParen.String())
	require.Equal(t, "BREAK", Break.String())
	require.Equal(t, "EOF", EOF.String())
}

func TestTypeStringUnknown(t *testing.T) {
	require.Equal(t, "UNKNOWN", Type(255).String())
}

func TestKeywordsMapping(t *testing.T) {
	require.Equal(t, Break, Keywords["break"])
	require.Equal(t, While, Keywords["while"])
	_, ok := Keywords["notakeyword"]
	require.False(t, ok)
}

func TestTokenString(t *testing.T) {
	tok := Token{Type: Number, Lexeme: "3", Literal: float64(3), Line: 1}
	require.Equal(t, "NUMBER 3 3", tok.String())
}
