package parser

import (
	"fmt"

	"github.com/vpoulailleau/boxaro/pkg/diagram"
	bxerrors "github.com/vpoulailleau/boxaro/pkg/errors"
)

// Severity ranks a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic reports a problem found on one source line.
type Diagnostic struct {
	Line     int    // 1-based line number
	Text     string // Offending line, without indentation
	Severity Severity
	Err      error // Coded error from pkg/errors
}

// Code returns the error code of the diagnostic.
func (d Diagnostic) Code() bxerrors.Code { return bxerrors.GetCode(d.Err) }

// String formats the diagnostic as "line N: message: text".
func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %q", d.Line, bxerrors.UserMessage(d.Err), d.Text)
}

// Result is the outcome of a parse.
type Result struct {
	Diagram     *diagram.Diagram
	Diagnostics []Diagnostic
}

// Errors returns the error-severity diagnostics.
func (r *Result) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// HasErrors reports whether any diagnostic has error severity.
func (r *Result) HasErrors() bool { return len(r.Errors()) > 0 }
