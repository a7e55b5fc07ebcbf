package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pir/internal/errors"
)

func TestUnusedSection(t *testing.T) {
	// Declaring persona and format but emitting only format must report
	// exactly one UnusedSection naming persona.
	diags := analyzeSource(t, `module @demo v1 {
  @persona { channel = "system", text = "You are helpful." }
  @format { channel = "system", text = "Answer in bullet points." }
  "system" { sec @format }
}`)

	unused := diagnosticsWithCode(diags, errors.CodeUnusedSection)
	require.Len(t, unused, 1)
	assert.Equal(t, errors.Warning, unused[0].Level)
	assert.Equal(t, "persona", unused[0].Symbol)
}

func TestUnusedSectionFiresPerSection(t *testing.T) {
	diags := analyzeSource(t, `module @demo v1 {
  @a { text = "1" }
  @b { text = "2" }
  "system" { lit "nothing emitted" }
}`)

	unused := diagnosticsWithCode(diags, errors.CodeUnusedSection)
	require.Len(t, unused, 2)
	assert.Equal(t, "a", unused[0].Symbol)
	assert.Equal(t, "b", unused[1].Symbol)
}

func TestUnusedSectionSeesSwitchArms(t *testing.T) {
	// An emission buried in a switch arm still counts.
	diags := analyzeSource(t, `module @demo v1 {
  tone : enum("a", "b") { }
  @extra { text = "detail" }
  "user" {
    switch tone {
      case "a" { sec @extra }
      else { lit "plain" }
    }
  }
}`)

	assert.Empty(t, diagnosticsWithCode(diags, errors.CodeUnusedSection))
}

func TestUnusedInput(t *testing.T) {
	diags := analyzeSource(t, `module @demo v1 {
  topic : string { }
  audience : string { }
  "user" { in topic }
}`)

	unused := diagnosticsWithCode(diags, errors.CodeUnusedInput)
	require.Len(t, unused, 1)
	assert.Equal(t, "audience", unused[0].Symbol)
}

func TestSwitchSubjectCountsAsUse(t *testing.T) {
	diags := analyzeSource(t, `module @demo v1 {
  tone : enum("a", "b") { }
  "user" {
    switch tone {
      case "a" { lit "A" }
      else { lit "B" }
    }
  }
}`)

	assert.Empty(t, diagnosticsWithCode(diags, errors.CodeUnusedInput))
}

func TestChannelViolation(t *testing.T) {
	diags := analyzeSource(t, `module @demo v1 {
  @persona { channel = "system", text = "You are helpful." }
  "user" { sec @persona }
}`)

	violations := diagnosticsWithCode(diags, errors.CodeChannelViolation)
	require.Len(t, violations, 1)
	assert.Equal(t, "persona", violations[0].Symbol)
	assert.Contains(t, violations[0].Message, `"system"`)
	assert.Contains(t, violations[0].Message, `"user"`)
}

func TestChannelViolationSuppressesUnused(t *testing.T) {
	// A section emitted only on the wrong channel is still used; only the
	// channel mismatch is reported.
	diags := analyzeSource(t, `module @demo v1 {
  @persona { channel = "system", text = "You are helpful." }
  "user" { sec @persona }
}`)

	assert.Empty(t, diagnosticsWithCode(diags, errors.CodeUnusedSection))
	assert.Len(t, diagnosticsWithCode(diags, errors.CodeChannelViolation), 1)
}

func TestChannelViolationOnInputs(t *testing.T) {
	diags := analyzeSource(t, `module @demo v1 {
  topic : string { channel = "user" }
  "system" { in topic }
}`)

	violations := diagnosticsWithCode(diags, errors.CodeChannelViolation)
	require.Len(t, violations, 1)
	assert.Equal(t, "topic", violations[0].Symbol)
}

func TestNoChannelMeansAnyChannel(t *testing.T) {
	diags := analyzeSource(t, `module @demo v1 {
  @shared { text = "applies everywhere" }
  "system" { sec @shared }
  "user" { sec @shared }
}`)

	assert.Empty(t, diagnosticsWithCode(diags, errors.CodeChannelViolation))
}

func TestIncompleteSwitch(t *testing.T) {
	diags := analyzeSource(t, `module @demo v1 {
  tone : enum("formal", "casual", "terse") { }
  "user" {
    switch tone {
      case "formal" { lit "F" }
    }
  }
}`)

	incomplete := diagnosticsWithCode(diags, errors.CodeIncompleteSwitch)
	require.Len(t, incomplete, 1)
	assert.Equal(t, "tone", incomplete[0].Symbol)
	assert.Contains(t, incomplete[0].Message, "casual, terse")
}

func TestSwitchWithElseIsComplete(t *testing.T) {
	diags := analyzeSource(t, `module @demo v1 {
  tone : enum("formal", "casual") { }
  "user" {
    switch tone {
      case "formal" { lit "F" }
      else { lit "other" }
    }
  }
}`)

	assert.Empty(t, diagnosticsWithCode(diags, errors.CodeIncompleteSwitch))
}

func TestSwitchCoveringEveryValueIsComplete(t *testing.T) {
	diags := analyzeSource(t, `module @demo v1 {
  tone : enum("formal", "casual") { }
  "user" {
    switch tone {
      case "formal" { lit "F" }
      case "casual" { lit "C" }
    }
  }
}`)

	assert.Empty(t, diagnosticsWithCode(diags, errors.CodeIncompleteSwitch))
}

func TestSchemaCollision(t *testing.T) {
	diags := analyzeSource(t, `module @demo v1 {
  @first {
    text = "a"
    output = { key = "verdict" kind = "string" }
  }
  @second {
    text = "b"
    output = { key = "verdict" kind = "string" }
  }
  "system" {
    sec @first
    sec @second
  }
}`)

	collisions := diagnosticsWithCode(diags, errors.CodeSchemaCollision)
	require.Len(t, collisions, 1)
	assert.Equal(t, "second", collisions[0].Symbol, "the later declaration is flagged")
}

func TestSchemaCollisionKindConflict(t *testing.T) {
	diags := analyzeSource(t, `module @demo v1 {
  @first {
    text = "a"
    output = { key = "verdict" kind = "string" }
  }
  @second {
    text = "b"
    output = { key = "verdict" kind = "bool" }
  }
  "system" {
    sec @first
    sec @second
  }
}`)

	collisions := diagnosticsWithCode(diags, errors.CodeSchemaCollision)
	require.Len(t, collisions, 1)
	assert.Contains(t, collisions[0].Message, "string")
	assert.Contains(t, collisions[0].Message, "bool")
}

func TestDistinctOutputKeysDoNotCollide(t *testing.T) {
	diags := analyzeSource(t, `module @demo v1 {
  @first {
    text = "a"
    output = { key = "verdict" kind = "string" }
  }
  @second {
    text = "b"
    output = { key = "confidence" kind = "number" }
  }
  "system" {
    sec @first
    sec @second
  }
}`)

	assert.Empty(t, diagnosticsWithCode(diags, errors.CodeSchemaCollision))
}
