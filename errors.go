// errors.go — user-facing error wrapping and caret-snippet rendering.
//
// Grounded on the teacher's errors.go: the same job (turn a located failure
// into a Python-style snippet with a caret under the offending column) and
// the same shape of typed errors (*ParseError, *RuntimeError), one per
// pipeline stage, rather than a single Error{Kind} struct. `BlameError` is
// new here — it renders a contract violation (spec §4.5, §7) with the
// offending path and polarity alongside the usual snippet.
package nickel

import (
	"fmt"
	"strings"
)

// ParseError is produced by the lexer/parser (lexer.go, parser.go).
type ParseError struct {
	Pos *Span
	Msg string
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse error: %s", e.Msg) }

// RuntimeError is a located evaluation failure: unbound identifier, type
// mismatch outside a contract, missing/extra record field, merge conflict,
// blackhole recursion, import failure (spec §4.2, §4.3, §4.4, §7).
type RuntimeError struct {
	Pos *Span
	Msg string
}

func (e *RuntimeError) Error() string { return fmt.Sprintf("runtime error: %s", e.Msg) }

func newRuntimeError(pos *Span, format string, args ...any) *RuntimeError {
	return &RuntimeError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// BlameError is a contract violation (spec §4.5 "blame"): it carries the
// label that was assumed at the point of failure, so the snippet can report
// both the failing value's position and which party (caller/provider) is at
// fault.
type BlameError struct {
	Label *Label
	Msg   string
}

func (e *BlameError) Error() string {
	party := "provider"
	if e.Label.Polarity == PolarityNegative {
		party = "caller"
	}
	return fmt.Sprintf("contract broken by the %s: %s (expected %s)", party, e.Msg, e.Label.Tag)
}

// WrapErrorWithName renders err, if it is one of this package's located
// error types, into a multi-line snippet naming srcName and pointing a caret
// at the failing position; any other error is returned unchanged.
func WrapErrorWithName(err error, srcName string, sm *SourceMap) error {
	switch e := err.(type) {
	case *ParseError:
		return fmt.Errorf("%s", renderAt(sm, e.Pos, "PARSE ERROR", srcName, e.Msg))
	case *RuntimeError:
		return fmt.Errorf("%s", renderAt(sm, e.Pos, "RUNTIME ERROR", srcName, e.Msg))
	case *BlameError:
		party := "provider"
		if e.Label.Polarity == PolarityNegative {
			party = "caller"
		}
		header := fmt.Sprintf("CONTRACT ERROR (path %s, blaming the %s)", e.Label.PathString(), party)
		return fmt.Errorf("%s", renderAt(sm, e.Label.Span, header, srcName, e.Msg))
	default:
		return err
	}
}

// renderAt renders a located message, falling back to a bare "HEADER: msg"
// when pos is nil (an internal error raised with no source position).
func renderAt(sm *SourceMap, pos *Span, header, srcName, msg string) string {
	if pos == nil {
		return fmt.Sprintf("%s: %s\n", header, msg)
	}
	line, col := sm.LineCol(pos.Source, pos.Start)
	return prettyErrorStringLabeled(sm.Text(pos.Source), header, srcName, line, col, msg)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// prettyErrorStringLabeled builds a Python-like snippet with a header and a
// caret under the 1-based (line, col), showing one line of context on
// either side when available.
func prettyErrorStringLabeled(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	caretPad := maxInt(col-1, 0)
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
