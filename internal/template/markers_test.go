package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLiteralOnly(t *testing.T) {
	segments, err := Extract("no markers here")
	require.NoError(t, err)

	require.Len(t, segments, 1)
	assert.Equal(t, Segment{Kind: Literal, Text: "no markers here"}, segments[0])
}

func TestExtractMixed(t *testing.T) {
	segments, err := Extract("Cover {{ inputs.topic }} using {{ sections.format }}.")
	require.NoError(t, err)

	assert.Equal(t, []Segment{
		{Kind: Literal, Text: "Cover "},
		{Kind: InputRef, Text: "topic"},
		{Kind: Literal, Text: " using "},
		{Kind: SectionRef, Text: "format"},
		{Kind: Literal, Text: "."},
	}, segments)
}

func TestExtractMarkerSpacing(t *testing.T) {
	// Whitespace inside the braces is not significant.
	tight, err := Extract("{{inputs.topic}}")
	require.NoError(t, err)
	loose, err := Extract("{{  inputs.topic  }}")
	require.NoError(t, err)

	assert.Equal(t, tight, loose)
}

func TestExtractLoneBraceIsLiteral(t *testing.T) {
	segments, err := Extract("a { b } c")
	require.NoError(t, err)

	require.Len(t, segments, 1)
	assert.Equal(t, "a { b } c", segments[0].Text, "single braces stay literal text")
}

func TestExtractUnknownNamespace(t *testing.T) {
	_, err := Extract("{{ slots.greeting }}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slots")
}

func TestExtractMalformedMarker(t *testing.T) {
	_, err := Extract("{{ inputs.topic")
	require.Error(t, err)
}

func TestExtractEmpty(t *testing.T) {
	segments, err := Extract("")
	require.NoError(t, err)
	assert.Nil(t, segments)
}

func TestReferencesFirstAppearanceOrder(t *testing.T) {
	segments, err := Extract("{{ inputs.b }} {{ inputs.a }} {{ inputs.b }} {{ sections.s }}")
	require.NoError(t, err)

	inputs, sections := References(segments)
	assert.Equal(t, []string{"b", "a"}, inputs, "duplicates collapse, order is first appearance")
	assert.Equal(t, []string{"s"}, sections)
}

func TestCanonicalNormalizesMarkerSpacing(t *testing.T) {
	got, err := Canonical("intro {{inputs.topic}} and {{  sections.persona  }} outro")
	require.NoError(t, err)
	assert.Equal(t, "intro {{ inputs.topic }} and {{ sections.persona }} outro", got)
}

func TestCanonicalIsAFixedPoint(t *testing.T) {
	once, err := Canonical("{{inputs.a}}{{ sections.b }}tail")
	require.NoError(t, err)
	twice, err := Canonical(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestCanonicalLeavesLiteralsUntouched(t *testing.T) {
	got, err := Canonical("a { lone brace and   spacing stay }")
	require.NoError(t, err)
	assert.Equal(t, "a { lone brace and   spacing stay }", got)
}

func TestCanonicalRejectsMalformedMarkers(t *testing.T) {
	_, err := Canonical("{{ inputs.topic")
	require.Error(t, err)
}
