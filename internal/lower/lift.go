package lower

import (
	"fmt"
	"strings"

	"pir/internal/pir"
)

// NotLiftableError names the structural feature that blocks flattening a
// module back into a PromptSpec.
type NotLiftableError struct {
	Feature string
}

func (e *NotLiftableError) Error() string {
	return fmt.Sprintf("module is not liftable: %s", e.Feature)
}

// Lift recovers the flattened authoring view from a module. It is valid
// only for modules with exactly one system and one user message, no slot
// declarations, and no switch operations; anything else refuses with the
// blocking feature named. Templates come back with markers in canonical
// spacing (template.Canonical's form), since marker whitespace is not
// significant and the module does not record it.
func Lift(m *pir.Module) (*pir.PromptSpec, error) {
	if len(m.Slots) > 0 {
		return nil, &NotLiftableError{Feature: "slot declarations"}
	}

	var system, user *pir.Message
	for i := range m.Messages {
		msg := &m.Messages[i]
		switch msg.Channel {
		case "system":
			if system != nil {
				return nil, &NotLiftableError{Feature: "multiple system messages"}
			}
			system = msg
		case "user":
			if user != nil {
				return nil, &NotLiftableError{Feature: "multiple user messages"}
			}
			user = msg
		default:
			return nil, &NotLiftableError{Feature: fmt.Sprintf("message on channel %q", msg.Channel)}
		}
	}
	if system == nil {
		return nil, &NotLiftableError{Feature: "missing system message"}
	}
	if user == nil {
		return nil, &NotLiftableError{Feature: "missing user message"}
	}

	systemText, err := collapseOps(system.Ops)
	if err != nil {
		return nil, err
	}
	userText, err := collapseOps(user.Ops)
	if err != nil {
		return nil, err
	}

	spec := &pir.PromptSpec{
		Name:     m.Name,
		Version:  m.Version,
		Inputs:   cloneInputs(m.Inputs),
		Sections: cloneSections(m.Sections),
		System:   systemText,
		User:     userText,
	}
	if m.Render != nil {
		spec.Engine = m.Render.Engine
		spec.Strict = m.Render.Strict
	}
	return spec, nil
}

// collapseOps concatenates an emit sequence back into a single template
// string, markers in canonical spacing.
func collapseOps(ops []pir.EmitOp) (string, error) {
	var b strings.Builder
	for _, op := range ops {
		switch o := op.(type) {
		case *pir.EmitLit:
			b.WriteString(o.Text)
		case *pir.EmitInput:
			b.WriteString("{{ inputs." + o.Name + " }}")
		case *pir.EmitSection:
			b.WriteString("{{ sections." + o.Name + " }}")
		case *pir.Switch:
			return "", &NotLiftableError{Feature: "switch operations"}
		}
	}
	return b.String(), nil
}
