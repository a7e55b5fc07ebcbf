package errors

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"pir/internal/ast"
)

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Level:   Warning,
		Code:    CodeUnusedSection,
		Message: `section "persona" is declared but never emitted`,
		Symbol:  "persona",
	}

	s := d.String()
	assert.Contains(t, s, "warning")
	assert.Contains(t, s, "PIRW01")
	assert.Contains(t, s, "persona")
}

func TestIsWarning(t *testing.T) {
	assert.True(t, IsWarning(CodeUnusedSection))
	assert.True(t, IsWarning(CodeSchemaCollision))
	assert.False(t, IsWarning(CodeDuplicateSymbol))
	assert.False(t, IsWarning(CodeUnknownSymbol))
}

func TestGetDescription(t *testing.T) {
	for _, code := range []string{
		CodeDuplicateSymbol, CodeUnknownSymbol, CodeInvalidEnumSet,
		CodeUnusedSection, CodeUnusedInput, CodeChannelViolation,
		CodeIncompleteSwitch, CodeSchemaCollision,
	} {
		assert.NotEmpty(t, GetDescription(code), "code %s needs a description", code)
	}
}

func TestReporterFormatWithSpan(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	source := "module @demo v1 {\n  @orphan { text = \"a\" }\n}"
	r := NewReporter("demo.pir", source)

	out := r.Format(Diagnostic{
		Level:    Warning,
		Code:     CodeUnusedSection,
		Message:  `section "orphan" is declared but never emitted`,
		Symbol:   "orphan",
		Position: ast.Position{Filename: "demo.pir", Line: 2, Column: 4},
		Length:   6,
	})

	assert.Contains(t, out, "warning[PIRW01]")
	assert.Contains(t, out, "demo.pir:2:4")
	assert.Contains(t, out, `@orphan { text = "a" }`)
	assert.Contains(t, out, "^^^^^^", "caret marker should span the symbol")
}

func TestReporterFormatWithoutSpan(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	r := NewReporter("demo.pir", "module @demo v1 {\n}")

	out := r.Format(Diagnostic{
		Level:   Error,
		Code:    CodeDuplicateSymbol,
		Message: `duplicate symbol "x"`,
		Symbol:  "x",
	})

	assert.Contains(t, out, "error[PIR001]")
	assert.Equal(t, 2, len(strings.Split(strings.TrimRight(out, "\n"), "\n")),
		"header and symbol pointer only when no span is derivable")
}
