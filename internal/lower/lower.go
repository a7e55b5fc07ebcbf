// Package lower converts between the flattened authoring view (PromptSpec)
// and the general IR module form. Lower and Lift are inverses over the
// liftable subset: one system and one user message, no slots, no switches.
package lower

import (
	"fmt"

	"pir/internal/pir"
	"pir/internal/template"
)

// UnsupportedConstructError reports a spec the lowering rules cannot
// express, naming the construct that caused the refusal.
type UnsupportedConstructError struct {
	Construct string
	Detail    string
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("unsupported construct %s: %s", e.Construct, e.Detail)
}

// Lower builds a full IR module from a PromptSpec: one input declaration
// per spec input, one section per spec section, a system and a user
// message spliced from the two template strings, and a render block.
func Lower(spec *pir.PromptSpec) (*pir.Module, error) {
	version := spec.Version
	if version == "" {
		version = "v1"
	}

	m := &pir.Module{
		Name:     spec.Name,
		Version:  version,
		Inputs:   cloneInputs(spec.Inputs),
		Sections: cloneSections(spec.Sections),
	}

	systemOps, err := spliceTemplate(spec, spec.System, "system")
	if err != nil {
		return nil, err
	}
	userOps, err := spliceTemplate(spec, spec.User, "user")
	if err != nil {
		return nil, err
	}

	m.Messages = []pir.Message{
		{Channel: "system", Ops: systemOps},
		{Channel: "user", Ops: userOps},
	}
	m.Render = &pir.RenderConfig{Engine: spec.Engine, Strict: spec.Strict}

	return m, nil
}

// spliceTemplate reconstructs emit-operations from a template string:
// literal runs interleaved with input and section markers. A section
// marker must name a declared section whose channel is consistent with the
// message being built; input markers are left to the validator.
func spliceTemplate(spec *pir.PromptSpec, text, channel string) ([]pir.EmitOp, error) {
	segments, err := template.Extract(text)
	if err != nil {
		return nil, &UnsupportedConstructError{Construct: "template", Detail: err.Error()}
	}

	var ops []pir.EmitOp
	for _, seg := range segments {
		switch seg.Kind {
		case template.Literal:
			ops = append(ops, &pir.EmitLit{Text: seg.Text})
		case template.InputRef:
			ops = append(ops, &pir.EmitInput{Name: seg.Text})
		case template.SectionRef:
			section := spec.Section(seg.Text)
			if section == nil {
				return nil, &UnsupportedConstructError{
					Construct: "section embed",
					Detail:    fmt.Sprintf("template embeds undeclared section %q", seg.Text),
				}
			}
			if section.Channel != "" && section.Channel != channel {
				return nil, &UnsupportedConstructError{
					Construct: "section embed",
					Detail: fmt.Sprintf("section %q (channel %q) embedded in the %s template",
						seg.Text, section.Channel, channel),
				}
			}
			ops = append(ops, &pir.EmitSection{Name: seg.Text})
		}
	}
	return ops, nil
}

func cloneInputs(inputs []pir.Input) []pir.Input {
	if inputs == nil {
		return nil
	}
	out := make([]pir.Input, len(inputs))
	for i, input := range inputs {
		out[i] = input
		out[i].Enum = append([]string(nil), input.Enum...)
		out[i].Hints = cloneHints(input.Hints)
	}
	return out
}

func cloneSections(sections []pir.Section) []pir.Section {
	if sections == nil {
		return nil
	}
	out := make([]pir.Section, len(sections))
	for i, section := range sections {
		out[i] = section
		if section.Output != nil {
			output := *section.Output
			out[i].Output = &output
		}
	}
	return out
}

func cloneHints(hints pir.HintMap) pir.HintMap {
	if hints == nil {
		return nil
	}
	out := make(pir.HintMap, len(hints))
	for i, entry := range hints {
		out[i] = entry
		if nested, ok := entry.Value.(pir.HintMap); ok {
			out[i].Value = cloneHints(nested)
		}
	}
	return out
}
