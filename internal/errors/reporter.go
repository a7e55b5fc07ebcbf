package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Reporter handles consistent terminal formatting of diagnostics against
// the original source text.
type Reporter struct {
	filename string
	lines    []string
}

func NewReporter(filename, source string) *Reporter {
	return &Reporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// Format renders a diagnostic with Rust-like styling: a header line, the
// source line, and a caret marker under the offending span. Diagnostics
// without a derivable span get the header only.
func (r *Reporter) Format(d Diagnostic) string {
	var result strings.Builder

	levelColor := r.levelColor(d.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	result.WriteString(fmt.Sprintf("%s[%s]: %s\n", levelColor(string(d.Level)), d.Code, d.Message))

	if !d.HasPosition() {
		if d.Symbol != "" {
			result.WriteString(fmt.Sprintf("  %s %s\n", dim("-->"), d.Symbol))
		}
		return result.String()
	}

	lineNumberWidth := len(fmt.Sprintf("%d", d.Position.Line))
	if lineNumberWidth < 3 {
		lineNumberWidth = 3
	}
	indent := strings.Repeat(" ", lineNumberWidth)

	result.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n",
		indent, dim("-->"), r.filename, d.Position.Line, d.Position.Column))
	result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if d.Position.Line <= len(r.lines) && d.Position.Line > 0 {
		lineContent := r.lines[d.Position.Line-1]
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			bold(fmt.Sprintf("%*d", lineNumberWidth, d.Position.Line)),
			dim("│"),
			lineContent))

		marker := strings.Repeat(" ", max(0, d.Position.Column-1)) +
			strings.Repeat("^", max(1, d.Length))
		result.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), levelColor(marker)))
	}

	return result.String()
}

func (r *Reporter) levelColor(level Level) func(a ...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow).SprintFunc()
	default:
		return color.New(color.FgRed).SprintFunc()
	}
}
