package errors

import (
	"fmt"

	"pir/internal/ast"
)

// Level represents the severity of a diagnostic.
type Level string

const (
	Error   Level = "error"
	Warning Level = "warning"
)

// Diagnostic is one validator or lint finding. Lint diagnostics are not
// errors: they never abort a pipeline stage and are returned alongside a
// successful result.
type Diagnostic struct {
	Level    Level
	Code     string // stable code like PIRW01
	Message  string
	Symbol   string       // the symbol the finding is about, "" when none
	Position ast.Position // zero value when no span is derivable
	Length   int          // length of the offending region, 0 when unknown
}

// HasPosition reports whether a source span was derivable for this
// diagnostic.
func (d Diagnostic) HasPosition() bool {
	return d.Position.Line > 0
}

func (d Diagnostic) String() string {
	if d.Symbol != "" {
		return fmt.Sprintf("%s[%s]: %s (%s)", d.Level, d.Code, d.Message, d.Symbol)
	}
	return fmt.Sprintf("%s[%s]: %s", d.Level, d.Code, d.Message)
}
