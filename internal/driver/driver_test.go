package driver

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestDriver(stdout, stderr *bytes.Buffer) *Driver {
	return New(Options{Stdout: stdout, Stderr: stderr})
}

func TestRunSourceHelloWorld(t *testing.T) {
	var stdout, stderr bytes.Buffer
	d := newTestDriver(&stdout, &stderr)
	d.RunSource(`print "hi";`)
	require.False(t, d.HadError())
	require.False(t, d.HadRuntimeError())
	require.Equal(t, "hi\n", stdout.String())
}

func TestRunSourceStaticErrorFormat(t *testing.T) {
	var stdout, stderr bytes.Buffer
	d := newTestDriver(&stdout, &stderr)
	d.RunSource(`print "unterminated;`)
	require.True(t, d.HadError())
	require.Contains(t, stderr.String(), "[line 1] Error:")
}

func TestRunSourceRuntimeErrorFormat(t *testing.T) {
	var stdout, stderr bytes.Buffer
	d := newTestDriver(&stdout, &stderr)
	d.RunSource(`print nope;`)
	require.False(t, d.HadError())
	require.True(t, d.HadRuntimeError())
	require.Contains(t, stderr.String(), "Undefined variable 'nope'.")
	require.Contains(t, stderr.String(), "[line 1]")
}

func TestRunSourceResetsErrorStateBetweenLines(t *testing.T) {
	var stdout, stderr bytes.Buffer
	d := newTestDriver(&stdout, &stderr)
	d.RunSource(`print ;`)
	require.True(t, d.HadError())

	d.RunSource(`print "fine";`)
	require.False(t, d.HadError())
	require.Equal(t, "fine\n", stdout.String())
}

func TestRunFileMissingReturnsUsageExit(t *testing.T) {
	var stdout, stderr bytes.Buffer
	d := newTestDriver(&stdout, &stderr)
	code := d.RunFile(filepath.Join(t.TempDir(), "does-not-exist.klox"))
	require.Equal(t, ExitUsage, code)
}

func TestRunFileStaticErrorExitCode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.klox")
	require.NoError(t, os.WriteFile(path, []byte(`print;`), 0o644))

	var stdout, stderr bytes.Buffer
	d := newTestDriver(&stdout, &stderr)
	code := d.RunFile(path)
	require.Equal(t, ExitStaticError, code)
}

func TestRunFileRuntimeErrorExitCode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runtime.klox")
	require.NoError(t, os.WriteFile(path, []byte(`print undefinedThing;`), 0o644))

	var stdout, stderr bytes.Buffer
	d := newTestDriver(&stdout, &stderr)
	code := d.RunFile(path)
	require.Equal(t, ExitRuntime, code)
}

func TestRunFileSuccessExitCode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.klox")
	require.NoError(t, os.WriteFile(path, []byte(`print "ok";`), 0o644))

	var stdout, stderr bytes.Buffer
	d := newTestDriver(&stdout, &stderr)
	code := d.RunFile(path)
	require.Equal(t, ExitOK, code)
	require.Equal(t, "ok\n", stdout.String())
}

func TestRunSourceDebugPrintsAST(t *testing.T) {
	var stdout, stderr bytes.Buffer
	d := New(Options{Stdout: &stdout, Stderr: &stderr, Debug: true})
	d.RunSource(`print 1 + 2;`)
	require.False(t, d.HadError())
	require.Equal(t, "(print (+ 1 2))\n", stdout.String())
}
