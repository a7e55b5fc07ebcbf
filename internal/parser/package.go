package parser

import "pir/internal/ast"

// ParseSource parses a PIR-TXT document and reports every problem it found.
// The returned tree is best-effort; tooling (the LSP server) wants both the
// tree and the full error list.
func ParseSource(path string, source string) (*ast.File, []ParseError, []ScanError) {
	scanner := NewScanner(source)
	tokens := scanner.ScanTokens()

	parser := NewParser(path, tokens)
	file := parser.ParseFile()

	parseErrors := parser.errors
	if parser.versionErr != nil {
		parseErrors = append(parseErrors, ParseError{
			Message:  parser.versionErr.Error(),
			Position: parser.versionErr.Position,
		})
	}
	return file, parseErrors, scanner.errors
}

// Parse is the all-or-nothing entry point: on any scan or parse problem it
// returns a nil tree and the first error as a *SyntaxError (or
// *UnsupportedVersionError for a version mismatch).
func Parse(path string, source string) (*ast.File, error) {
	scanner := NewScanner(source)
	tokens := scanner.ScanTokens()

	parser := NewParser(path, tokens)
	file := parser.ParseFile()

	if len(scanner.errors) > 0 {
		first := scanner.errors[0]
		return nil, &SyntaxError{
			Message:  first.Message,
			Position: first.Position,
			Length:   first.Length,
		}
	}
	if len(parser.errors) > 0 {
		first := parser.errors[0]
		return nil, &SyntaxError{
			Message:  first.Message,
			Expected: first.Expected,
			Position: first.Position,
			Length:   1,
		}
	}
	if parser.versionErr != nil {
		return nil, parser.versionErr
	}
	return file, nil
}
