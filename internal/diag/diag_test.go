package diag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Retsam/klox/internal/token"
)

func TestErrorFormatsScanDiagnostic(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.Error(3, "Unexpected character.")
	require.True(t, r.HadError())
	require.Equal(t, "[line 3] Error: Unexpected character.\n", buf.String())
}

func TestErrorAtTokenMidToken(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.ErrorAtToken(token.Token{Type: token.Identifier, Lexeme: "foo", Line: 7}, "Expect ';' after value.")
	require.Equal(t, "[line 7] Error at 'foo': Expect ';' after value.\n", buf.String())
}

func TestErrorAtTokenEOF(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.ErrorAtToken(token.Token{Type: token.EOF, Line: 9}, "Expect expression.")
	require.Equal(t, "[line 9] Error at end: Expect expression.\n", buf.String())
}

func TestResetClearsState(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.Error(1, "boom")
	require.True(t, r.HadError())
	require.Error(t, r.Err())

	r.Reset()
	require.False(t, r.HadError())
	require.NoError(t, r.Err())
}

func TestErrAccumulatesMultiple(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.Error(1, "first")
	r.Error(2, "second")
	require.Error(t, r.Err())
	require.Contains(t, r.Err().Error(), "first")
	require.Contains(t, r.Err().Error(), "second")
}
