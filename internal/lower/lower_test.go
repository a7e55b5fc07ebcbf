package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pir/internal/pir"
	"pir/internal/semantic"
	"pir/internal/template"
)

func samplePromptSpec() *pir.PromptSpec {
	return &pir.PromptSpec{
		Name:    "qa.summarize",
		Version: "v1",
		Inputs: []pir.Input{
			{Name: "document", Kind: pir.KindString, Channel: "user", Required: true},
			{Name: "length", Kind: pir.KindEnum, Enum: []string{"short", "long"}},
		},
		Sections: []pir.Section{
			{Name: "persona", Channel: "system", Text: "You summarize documents.", Optimizable: true},
			{Name: "format", Channel: "system", Text: "Use plain prose."},
		},
		System: "{{ sections.persona }}\n{{ sections.format }}",
		User:   "Summarize ({{ inputs.length }}):\n{{ inputs.document }}",
		Engine: "builtin",
		Strict: true,
	}
}

func TestLowerProducesModule(t *testing.T) {
	m, err := Lower(samplePromptSpec())
	require.NoError(t, err)

	assert.Equal(t, "qa.summarize", m.Name)
	assert.Equal(t, "v1", m.Version)
	assert.Len(t, m.Inputs, 2)
	assert.Len(t, m.Sections, 2)
	require.Len(t, m.Messages, 2)
	assert.Equal(t, "system", m.Messages[0].Channel)
	assert.Equal(t, "user", m.Messages[1].Channel)
	require.NotNil(t, m.Render)
	assert.True(t, m.Render.Strict)

	// The system template splices into section refs around a literal.
	ops := m.Messages[0].Ops
	require.Len(t, ops, 3)
	assert.Equal(t, &pir.EmitSection{Name: "persona"}, ops[0])
	assert.Equal(t, &pir.EmitLit{Text: "\n"}, ops[1])
	assert.Equal(t, &pir.EmitSection{Name: "format"}, ops[2])
}

func TestLowerDefaultsVersion(t *testing.T) {
	spec := samplePromptSpec()
	spec.Version = ""

	m, err := Lower(spec)
	require.NoError(t, err)
	assert.Equal(t, "v1", m.Version)
}

func TestLoweredModuleValidates(t *testing.T) {
	m, err := Lower(samplePromptSpec())
	require.NoError(t, err)

	analyzer := semantic.NewAnalyzer()
	diags := analyzer.Analyze(m, nil)
	assert.True(t, semantic.Valid(diags), "lowered module must validate, got: %v", diags)
}

func TestLowerRejectsUndeclaredSectionEmbed(t *testing.T) {
	spec := samplePromptSpec()
	spec.System = "{{ sections.ghost }}"

	_, err := Lower(spec)
	require.Error(t, err)

	var unsupported *UnsupportedConstructError
	require.ErrorAs(t, err, &unsupported)
	assert.Contains(t, unsupported.Detail, "ghost")
}

func TestLowerRejectsCrossChannelEmbed(t *testing.T) {
	spec := samplePromptSpec()
	spec.User = "{{ sections.persona }}"

	_, err := Lower(spec)
	require.Error(t, err)

	var unsupported *UnsupportedConstructError
	require.ErrorAs(t, err, &unsupported)
	assert.Contains(t, unsupported.Detail, "persona")
}

func TestLowerDoesNotAliasSpecMemory(t *testing.T) {
	spec := samplePromptSpec()
	m, err := Lower(spec)
	require.NoError(t, err)

	m.Inputs[0].Name = "mutated"
	m.Sections[0].Text = "mutated"
	assert.Equal(t, "document", spec.Inputs[0].Name)
	assert.Equal(t, "You summarize documents.", spec.Sections[0].Text)
}

func TestLiftLowerInverse(t *testing.T) {
	spec := samplePromptSpec()

	m, err := Lower(spec)
	require.NoError(t, err)

	got, err := Lift(m)
	require.NoError(t, err)

	assert.Equal(t, spec, got, "lift(lower(s)) must equal s")
}

func TestLiftLowerNormalizesMarkerSpacing(t *testing.T) {
	// Marker whitespace is not significant, so lowering reads tight
	// markers and lifting hands back template.Canonical's spacing. One
	// pass lands every template on the normal form; after that the
	// round trip is the identity.
	spec := samplePromptSpec()
	spec.System = "{{sections.persona}}\n{{  sections.format }}"
	spec.User = "Summarize ({{inputs.length}}):\n{{inputs.document}}"

	m, err := Lower(spec)
	require.NoError(t, err)
	got, err := Lift(m)
	require.NoError(t, err)

	wantSystem, err := template.Canonical(spec.System)
	require.NoError(t, err)
	wantUser, err := template.Canonical(spec.User)
	require.NoError(t, err)
	assert.Equal(t, wantSystem, got.System)
	assert.Equal(t, wantUser, got.User)

	m2, err := Lower(got)
	require.NoError(t, err)
	again, err := Lift(m2)
	require.NoError(t, err)
	assert.Equal(t, got, again, "canonical templates round-trip unchanged")
}

func TestLiftRejectsSlots(t *testing.T) {
	m, err := Lower(samplePromptSpec())
	require.NoError(t, err)
	m.Slots = []pir.Slot{{Name: "greeting"}}

	_, err = Lift(m)
	require.Error(t, err)

	var notLiftable *NotLiftableError
	require.ErrorAs(t, err, &notLiftable)
	assert.Equal(t, "slot declarations", notLiftable.Feature)
}

func TestLiftRejectsSwitchOps(t *testing.T) {
	m, err := Lower(samplePromptSpec())
	require.NoError(t, err)
	m.Messages[1].Ops = append(m.Messages[1].Ops, &pir.Switch{
		Input: "length",
		Cases: []pir.SwitchCase{{Value: "short", Ops: []pir.EmitOp{&pir.EmitLit{Text: "x"}}}},
	})

	_, err = Lift(m)
	require.Error(t, err)

	var notLiftable *NotLiftableError
	require.ErrorAs(t, err, &notLiftable)
	assert.Equal(t, "switch operations", notLiftable.Feature)
}

func TestLiftRejectsExtraChannels(t *testing.T) {
	m, err := Lower(samplePromptSpec())
	require.NoError(t, err)
	m.Messages = append(m.Messages, pir.Message{Channel: "tool"})

	_, err = Lift(m)
	require.Error(t, err)

	var notLiftable *NotLiftableError
	require.ErrorAs(t, err, &notLiftable)
	assert.Contains(t, notLiftable.Feature, "tool")
}

func TestLiftRequiresBothMessages(t *testing.T) {
	m, err := Lower(samplePromptSpec())
	require.NoError(t, err)
	m.Messages = m.Messages[:1] // drop the user message

	_, err = Lift(m)
	require.Error(t, err)

	var notLiftable *NotLiftableError
	require.ErrorAs(t, err, &notLiftable)
	assert.Equal(t, "missing user message", notLiftable.Feature)
}

func TestLiftRejectsDuplicateSystemMessages(t *testing.T) {
	m, err := Lower(samplePromptSpec())
	require.NoError(t, err)
	m.Messages = append(m.Messages, pir.Message{Channel: "system"})

	_, err = Lift(m)
	require.Error(t, err)

	var notLiftable *NotLiftableError
	require.ErrorAs(t, err, &notLiftable)
	assert.Equal(t, "multiple system messages", notLiftable.Feature)
}
