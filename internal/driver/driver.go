// Package driver orchestrates the scan -> parse -> resolve -> evaluate
// pipeline behind a single struct, per spec.md §9's explicit redesign
// note: the teacher's package-level hadError/hadRuntimeError globals
// become per-Driver state here instead (its testMode global has no
// counterpart; see Options).
package driver

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Retsam/klox/internal/ast"
	"github.com/Retsam/klox/internal/diag"
	"github.com/Retsam/klox/internal/interpreter"
	"github.com/Retsam/klox/internal/parser"
	"github.com/Retsam/klox/internal/resolver"
	"github.com/Retsam/klox/internal/scanner"
)

// Exit codes, per spec.md §6.
const (
	ExitOK          = 0
	ExitUsage       = 64
	ExitStaticError = 65
	ExitRuntime     = 70
)

// Options configures a Driver. Stdout/Stderr default to os.Stdout and
// os.Stderr respectively when left nil.
//
// spec.md §6 describes a "test-mode flag" that suppresses the CLI's
// non-zero os.Exit calls so diagnostics can be captured; here that's
// structural instead of a flag. RunFile/RunPrompt/RunSource never call
// os.Exit themselves -- only cmd/klox's main does, using the exit code
// RunFile/RunPrompt return. A test constructs a Driver and calls
// RunSource/RunFile directly, so it never exercises os.Exit at all.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	Debug  bool
	Logger *logrus.Logger
}

// Driver owns a single interpreter instance and the error state of one
// CLI invocation (or, across REPL lines, one process).
type Driver struct {
	opts            Options
	reporter        *diag.Reporter
	interp          *interpreter.Interpreter
	hadRuntimeError bool
}

// New constructs a Driver ready to run source.
func New(opts Options) *Driver {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	return &Driver{
		opts:     opts,
		reporter: diag.New(opts.Stderr),
		interp:   interpreter.New(opts.Stdout),
	}
}

// HadError reports whether the last RunSource call recorded a static error.
func (d *Driver) HadError() bool { return d.reporter.HadError() }

// HadRuntimeError reports whether the last RunSource call raised a runtime error.
func (d *Driver) HadRuntimeError() bool { return d.hadRuntimeError }

func (d *Driver) log(args ...interface{}) {
	if d.opts.Logger != nil {
		d.opts.Logger.Debug(args...)
	}
}

// RunSource runs one chunk of source text (a whole file, or one REPL
// line) through the full pipeline. It never calls os.Exit; callers
// derive an exit code from HadError/HadRuntimeError.
func (d *Driver) RunSource(source string) {
	d.reporter.Reset()
	d.hadRuntimeError = false

	toks := scanner.New(source, d.reporter).ScanTokens()
	d.log(fmt.Sprintf("scanned %d tokens", len(toks)))

	statements := parser.New(toks, d.reporter).Parse()
	d.log(fmt.Sprintf("parsed %d statements, hadError=%v", len(statements), d.reporter.HadError()))
	if d.reporter.HadError() {
		return
	}

	if d.opts.Debug {
		fmt.Fprint(d.opts.Stdout, (&ast.Printer{}).Print(statements))
		return
	}

	resolver.New(d.interp, d.reporter).Resolve(statements)
	d.log("resolved")
	if d.reporter.HadError() {
		return
	}

	if err := d.interp.Interpret(statements); err != nil {
		fmt.Fprintln(d.opts.Stderr, err.Error())
		d.hadRuntimeError = true
	}
	d.log("evaluated")
}

// exitCode derives the process exit code from the last run's state,
// per spec.md §6.
func (d *Driver) exitCode() int {
	switch {
	case d.HadError():
		return ExitStaticError
	case d.HadRuntimeError():
		return ExitRuntime
	default:
		return ExitOK
	}
}

// RunFile reads path as UTF-8 source, runs it, and returns the process
// exit code. It never calls os.Exit; the caller decides what to do
// with the returned code.
func (d *Driver) RunFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(d.opts.Stderr, "Error reading file: %v\n", err)
		return ExitUsage
	}
	d.RunSource(string(source))
	return d.exitCode()
}
