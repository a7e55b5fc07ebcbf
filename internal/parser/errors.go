package parser

import "fmt"

// ParseError is one recoverable parser diagnostic. The parser keeps going
// after recording one so that editors can surface every problem in a file,
// but Parse refuses to return a syntax tree once any were recorded.
type ParseError struct {
	Message  string
	Expected string // token description the parser was looking for
	Position Position
}

// SyntaxError is the terminal form of a failed parse: malformed text with a
// span and an expected-token description. No partial syntax tree accompanies
// it.
type SyntaxError struct {
	Message  string
	Expected string
	Position Position
	Length   int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: syntax error: %s", e.Position.Line, e.Position.Column, e.Message)
}

// UnsupportedVersionError reports a version token whose major version this
// parser does not understand.
type UnsupportedVersionError struct {
	Version  string
	Major    int
	Position Position
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("%d:%d: unsupported format version %s (supported major: %d)",
		e.Position.Line, e.Position.Column, e.Version, SupportedMajor)
}
