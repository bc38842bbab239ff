// Package diag collects and formats the static diagnostics (scan,
// parse, and resolve errors) that every front-end stage reports
// through. It replaces the teacher's scattered per-file
// `io.Writer`-plus-`fmt.Sprintf` duplication with one shared reporter
// so the scanner, parser, and resolver agree on formatting and so the
// driver can inspect "did anything go wrong" without package-level
// state.
package diag

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"

	"github.com/Retsam/klox/internal/token"
)

// Reporter accumulates static errors and writes each one, bit-exact,
// to the configured writer as it is reported.
type Reporter struct {
	w        io.Writer
	hadError bool
	errs     *multierror.Error
}

// New creates a Reporter that writes diagnostics to w.
func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Reset clears accumulated state so the same Reporter can be reused
// across REPL lines without constructing a fresh one each time.
func (r *Reporter) Reset() {
	r.hadError = false
	r.errs = nil
}

// HadError reports whether any diagnostic has been recorded since the
// last Reset.
func (r *Reporter) HadError() bool {
	return r.hadError
}

// Err returns the accumulated static errors as a single error, or nil
// if none were recorded.
func (r *Reporter) Err() error {
	return r.errs.ErrorOrNil()
}

// Error reports a scan-time error, which has no associated token.
func (r *Reporter) Error(line int, message string) {
	r.report(line, "", message)
}

// ErrorAtToken reports a parse- or resolve-time error at a specific
// token, formatting the end-of-file case distinctly per spec.
func (r *Reporter) ErrorAtToken(tok token.Token, message string) {
	if tok.Type == token.EOF {
		r.report(tok.Line, " at end", message)
		return
	}
	r.report(tok.Line, fmt.Sprintf(" at '%s'", tok.Lexeme), message)
}

func (r *Reporter) report(line int, where, message string) {
	formatted := fmt.Sprintf("[line %d] Error%s: %s", line, where, message)
	fmt.Fprintln(r.w, formatted)
	r.hadError = true
	r.errs = multierror.Append(r.errs, fmt.Errorf("%s", formatted))
}
