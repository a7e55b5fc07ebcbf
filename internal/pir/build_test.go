package pir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pir/internal/parser"
)

func buildSource(t *testing.T, source string) (*Module, error) {
	t.Helper()
	file, err := parser.Parse("build.pir", source)
	require.NoError(t, err, "source should be syntactically valid")
	return FromFile(file)
}

func TestBuildInputKinds(t *testing.T) {
	m, err := buildSource(t, `module @demo v1 {
  a : string { }
  b : number { }
  c : bool { }
  d : enum("x", "y") { }
}`)
	require.NoError(t, err)
	require.Len(t, m.Inputs, 4)

	assert.Equal(t, KindString, m.Inputs[0].Kind)
	assert.Equal(t, KindNumber, m.Inputs[1].Kind)
	assert.Equal(t, KindBool, m.Inputs[2].Kind)
	assert.Equal(t, KindEnum, m.Inputs[3].Kind)
	assert.Equal(t, []string{"x", "y"}, m.Inputs[3].Enum)
}

func TestBuildRejectsUnknownKind(t *testing.T) {
	_, err := buildSource(t, `module @demo v1 {
  a : blob { }
}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blob")
}

func TestBuildEnumRequiresValueSet(t *testing.T) {
	_, err := buildSource(t, `module @demo v1 {
  a : enum { }
}`)
	require.Error(t, err, "enum without a parenthesized value set must be rejected")
}

func TestBuildNonEnumRejectsValueSet(t *testing.T) {
	_, err := buildSource(t, `module @demo v1 {
  a : string("x") { }
}`)
	require.Error(t, err, "a value set is only meaningful on enum")
}

func TestBuildSectionOutput(t *testing.T) {
	m, err := buildSource(t, `module @demo v1 {
  @answer {
    text = "…"
    output = {
      key = "verdict"
      kind = "bool"
      required
      desc = "final verdict"
    }
  }
}`)
	require.NoError(t, err)
	require.Len(t, m.Sections, 1)

	output := m.Sections[0].Output
	require.NotNil(t, output)
	assert.Equal(t, "verdict", output.Key)
	assert.Equal(t, KindBool, output.Kind)
	assert.True(t, output.Required)
	assert.Equal(t, "final verdict", output.Description)
}

func TestBuildOutputRequiresKey(t *testing.T) {
	_, err := buildSource(t, `module @demo v1 {
  @answer {
    text = "…"
    output = {
      kind = "string"
    }
  }
}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key")
}

func TestBuildHints(t *testing.T) {
	m, err := buildSource(t, `module @demo v1 {
  a : string {
    hints = {
      max_len = 120
      style = "short"
      pinned
      nested = {
        deep = true
      }
    }
  }
}`)
	require.NoError(t, err)

	hints := m.Inputs[0].Hints
	require.Len(t, hints, 4)

	assert.Equal(t, HintNumber(120), hints.Get("max_len"))
	assert.Equal(t, HintString("short"), hints.Get("style"))
	assert.Equal(t, HintBool(true), hints.Get("pinned"), "a bare key is a true flag")

	nested, ok := hints.Get("nested").(HintMap)
	require.True(t, ok, "nested hint should be a map")
	assert.Equal(t, HintBool(true), nested.Get("deep"))
}

func TestBuildHintOrderPreserved(t *testing.T) {
	m, err := buildSource(t, `module @demo v1 {
  a : string {
    hints = { z = 1 a = 2 m = 3 }
  }
}`)
	require.NoError(t, err)

	hints := m.Inputs[0].Hints
	require.Len(t, hints, 3)
	assert.Equal(t, "z", hints[0].Key)
	assert.Equal(t, "a", hints[1].Key)
	assert.Equal(t, "m", hints[2].Key)
}

func TestBuildSlotOptions(t *testing.T) {
	m, err := buildSource(t, `module @demo v1 {
  slot greeting {
    optimizable
    opts = {
      warm = "Hello there!"
      brisk = "Hi."
    }
  }
}`)
	require.NoError(t, err)
	require.Len(t, m.Slots, 1)

	slot := m.Slots[0]
	assert.True(t, slot.Optimizable)
	require.Len(t, slot.Options, 2)
	assert.Equal(t, SlotOption{ID: "warm", Text: "Hello there!"}, slot.Options[0])
	assert.Equal(t, SlotOption{ID: "brisk", Text: "Hi."}, slot.Options[1])
}

func TestBuildDuplicateRenderBlock(t *testing.T) {
	_, err := buildSource(t, `module @demo v1 {
  render { strict }
  render { }
}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render")
}

func TestBuildDuplicateSymbolsSurviveBuild(t *testing.T) {
	// Symbol-table violations are the validator's job: a module with
	// duplicate names must still build so it can be printed back out.
	m, err := buildSource(t, `module @demo v1 {
  topic : string { }
  topic : number { }
}`)
	require.NoError(t, err)
	assert.Len(t, m.Inputs, 2)
}
