package semantic

import (
	"strings"

	"pir/internal/errors"
	"pir/internal/pir"
)

// Each lint is an independent pure pass over the validated module. The
// fixed order here, together with each lint emitting in declaration order,
// makes the combined diagnostic sequence deterministic.
var lintPasses = []func(*Analyzer) []errors.Diagnostic{
	lintUnusedSection,
	lintUnusedInput,
	lintChannelViolation,
	lintIncompleteSwitch,
	lintSchemaCollision,
}

// lintUnusedSection fires for a declared section that is never the target
// of an emit-section operation in any message. A section emitted only on
// the wrong channel still counts as used: ChannelViolation already covers
// that mistake and a second finding would be noise.
func lintUnusedSection(a *Analyzer) []errors.Diagnostic {
	emitted := make(map[string]bool)
	for _, msg := range a.module.Messages {
		walkOps(msg.Ops, func(op pir.EmitOp) {
			if sec, ok := op.(*pir.EmitSection); ok {
				emitted[sec.Name] = true
			}
		})
	}

	var diagnostics []errors.Diagnostic
	for _, section := range a.module.Sections {
		if !emitted[section.Name] {
			diagnostics = append(diagnostics, a.warnf(errors.CodeUnusedSection, section.Name,
				"section %q is declared but never emitted", section.Name))
		}
	}
	return diagnostics
}

// lintUnusedInput fires for a declared input that is never the target of
// an emit-input operation and never the subject of a switch condition.
func lintUnusedInput(a *Analyzer) []errors.Diagnostic {
	used := make(map[string]bool)
	for _, msg := range a.module.Messages {
		walkOps(msg.Ops, func(op pir.EmitOp) {
			switch o := op.(type) {
			case *pir.EmitInput:
				used[o.Name] = true
			case *pir.Switch:
				used[o.Input] = true
			}
		})
	}

	var diagnostics []errors.Diagnostic
	for _, input := range a.module.Inputs {
		if !used[input.Name] {
			diagnostics = append(diagnostics, a.warnf(errors.CodeUnusedInput, input.Name,
				"input %q is declared but never used", input.Name))
		}
	}
	return diagnostics
}

// lintChannelViolation fires when a section or input is emitted inside a
// message whose channel differs from the entity's declared channel. An
// entity with no declared channel may appear anywhere.
func lintChannelViolation(a *Analyzer) []errors.Diagnostic {
	var diagnostics []errors.Diagnostic
	for _, msg := range a.module.Messages {
		channel := msg.Channel
		walkOps(msg.Ops, func(op pir.EmitOp) {
			switch o := op.(type) {
			case *pir.EmitSection:
				section := a.module.Section(o.Name)
				if section != nil && section.Channel != "" && section.Channel != channel {
					diagnostics = append(diagnostics, a.warnf(errors.CodeChannelViolation, o.Name,
						"section %q (channel %q) is emitted in a %q message", o.Name, section.Channel, channel))
				}
			case *pir.EmitInput:
				input := a.module.Input(o.Name)
				if input != nil && input.Channel != "" && input.Channel != channel {
					diagnostics = append(diagnostics, a.warnf(errors.CodeChannelViolation, o.Name,
						"input %q (channel %q) is emitted in a %q message", o.Name, input.Channel, channel))
				}
			}
		})
	}
	return diagnostics
}

// lintIncompleteSwitch fires when a switch over an enumeration-typed input
// lacks an else branch and does not cover every declared value.
func lintIncompleteSwitch(a *Analyzer) []errors.Diagnostic {
	var diagnostics []errors.Diagnostic
	for _, msg := range a.module.Messages {
		walkOps(msg.Ops, func(op pir.EmitOp) {
			sw, ok := op.(*pir.Switch)
			if !ok || sw.HasElse {
				return
			}
			input := a.module.Input(sw.Input)
			if input == nil || input.Kind != pir.KindEnum {
				return
			}

			covered := make(map[string]bool, len(sw.Cases))
			for _, c := range sw.Cases {
				covered[c.Value] = true
			}
			var missing []string
			for _, v := range input.Enum {
				if !covered[v] {
					missing = append(missing, v)
				}
			}
			if len(missing) > 0 {
				diagnostics = append(diagnostics, a.warnf(errors.CodeIncompleteSwitch, sw.Input,
					"switch over %q does not cover: %s", sw.Input, strings.Join(missing, ", ")))
			}
		})
	}
	return diagnostics
}

// lintSchemaCollision fires when two or more sections declare an output
// descriptor with the same key, or conflicting kinds for the same key. The
// finding lands on the later declaration, in declaration order.
func lintSchemaCollision(a *Analyzer) []errors.Diagnostic {
	var diagnostics []errors.Diagnostic
	claimed := make(map[string]*pir.Section)
	for i := range a.module.Sections {
		section := &a.module.Sections[i]
		if section.Output == nil {
			continue
		}
		key := section.Output.Key
		prev, ok := claimed[key]
		if !ok {
			claimed[key] = section
			continue
		}
		if prev.Output.Kind != section.Output.Kind {
			diagnostics = append(diagnostics, a.warnf(errors.CodeSchemaCollision, section.Name,
				"output key %q is declared as %s by %q but as %s by %q",
				key, prev.Output.Kind, prev.Name, section.Output.Kind, section.Name))
		} else {
			diagnostics = append(diagnostics, a.warnf(errors.CodeSchemaCollision, section.Name,
				"output key %q is already claimed by section %q", key, prev.Name))
		}
	}
	return diagnostics
}
