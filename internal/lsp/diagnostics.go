package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	pirerrors "pir/internal/errors"
	"pir/internal/parser"
)

// ConvertParseErrors transforms parser errors into LSP diagnostics for
// editor display. Parse errors carry a point position only, so the span
// is widened slightly for visibility.
func ConvertParseErrors(parseErrors []parser.ParseError) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic

	for _, parseErr := range parseErrors {
		diagnostic := protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{
					Line:      zeroBased(parseErr.Position.Line),
					Character: zeroBased(parseErr.Position.Column),
				},
				End: protocol.Position{
					Line:      zeroBased(parseErr.Position.Line),
					Character: uint32(parseErr.Position.Column + 5),
				},
			},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("pir-parser"),
			Message:  parseErr.Message,
		}
		diagnostics = append(diagnostics, diagnostic)
	}

	return diagnostics
}

// ConvertScanErrors transforms scanner errors into LSP diagnostics.
// These cover tokenization issues like invalid escapes and unterminated
// strings.
func ConvertScanErrors(scanErrors []parser.ScanError) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic

	for _, scanErr := range scanErrors {
		endChar := uint32(scanErr.Position.Column - 1 + scanErr.Length)
		if scanErr.Length == 0 {
			endChar = uint32(scanErr.Position.Column + 3)
		}

		diagnostic := protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{
					Line:      zeroBased(scanErr.Position.Line),
					Character: zeroBased(scanErr.Position.Column),
				},
				End: protocol.Position{
					Line:      zeroBased(scanErr.Position.Line),
					Character: endChar,
				},
			},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("pir-scanner"),
			Message:  scanErr.Message,
		}
		diagnostics = append(diagnostics, diagnostic)
	}

	return diagnostics
}

// ConvertSemanticDiagnostics transforms validator and lint diagnostics
// into LSP diagnostics, preserving the error/warning split.
func ConvertSemanticDiagnostics(diags []pirerrors.Diagnostic) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic

	for _, d := range diags {
		severity := protocol.DiagnosticSeverityError
		if d.Level == pirerrors.Warning {
			severity = protocol.DiagnosticSeverityWarning
		}

		rng := protocol.Range{}
		if d.HasPosition() {
			length := d.Length
			if length == 0 {
				length = 1
			}
			rng = protocol.Range{
				Start: protocol.Position{
					Line:      zeroBased(d.Position.Line),
					Character: zeroBased(d.Position.Column),
				},
				End: protocol.Position{
					Line:      zeroBased(d.Position.Line),
					Character: uint32(d.Position.Column - 1 + length),
				},
			}
		}

		code := d.Code
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    rng,
			Severity: ptrSeverity(severity),
			Source:   ptrString("pir-lint"),
			Code:     &protocol.IntegerOrString{Value: code},
			Message:  d.Message,
		})
	}

	return diagnostics
}

// Line and column numbers are 1-based in the compiler and 0-based on the
// LSP wire.
func zeroBased(n int) uint32 {
	if n <= 0 {
		return 0
	}
	return uint32(n - 1)
}
