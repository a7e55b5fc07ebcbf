package pir

import (
	"fmt"
	"strings"

	"pir/internal/ast"
)

// FromFile converts a syntax tree into an IR module. The conversion checks
// attribute shapes (known keys, value types) but resolves no symbols; a
// module referencing undeclared names still builds so it can be printed
// back out and diagnosed by the validator.
func FromFile(f *ast.File) (*Module, error) {
	m := &Module{
		Name:    strings.Join(f.Name.Parts, "."),
		Version: f.Version,
	}

	for _, item := range f.Items {
		switch decl := item.(type) {
		case *ast.InputDecl:
			input, err := buildInput(decl)
			if err != nil {
				return nil, err
			}
			m.Inputs = append(m.Inputs, *input)
		case *ast.SectionDecl:
			section, err := buildSection(decl)
			if err != nil {
				return nil, err
			}
			m.Sections = append(m.Sections, *section)
		case *ast.SlotDecl:
			slot, err := buildSlot(decl)
			if err != nil {
				return nil, err
			}
			m.Slots = append(m.Slots, *slot)
		case *ast.MessageBlock:
			m.Messages = append(m.Messages, Message{
				Channel: decl.Channel.Value,
				Ops:     buildOps(decl.Ops),
			})
		case *ast.RenderBlock:
			if m.Render != nil {
				return nil, buildErr(decl.Pos, "module declares more than one render block")
			}
			render, err := buildRender(decl)
			if err != nil {
				return nil, err
			}
			m.Render = render
		}
	}

	return m, nil
}

func buildInput(decl *ast.InputDecl) (*Input, error) {
	input := &Input{Name: decl.Name.Value}

	kind, ok := KindFromName(decl.Kind.Name.Value)
	if !ok {
		return nil, buildErr(decl.Kind.Pos, "unknown input kind %q", decl.Kind.Name.Value)
	}
	input.Kind = kind

	if kind == KindEnum {
		if decl.Kind.Values == nil {
			return nil, buildErr(decl.Kind.Pos, "enum kind requires a parenthesized value set")
		}
		for _, v := range decl.Kind.Values {
			input.Enum = append(input.Enum, v.Value)
		}
	} else if decl.Kind.Values != nil {
		return nil, buildErr(decl.Kind.Pos, "%s kind does not take a value set", kind)
	}

	for _, attr := range decl.Attrs {
		switch attr.Key.Value {
		case "channel":
			s, err := stringAttr(attr)
			if err != nil {
				return nil, err
			}
			input.Channel = s
		case "required":
			b, err := flagAttr(attr)
			if err != nil {
				return nil, err
			}
			input.Required = b
		case "optimizable":
			b, err := flagAttr(attr)
			if err != nil {
				return nil, err
			}
			input.Optimizable = b
		case "hints":
			h, err := hintsAttr(attr)
			if err != nil {
				return nil, err
			}
			input.Hints = h
		default:
			return nil, buildErr(attr.Pos, "unknown input attribute %q", attr.Key.Value)
		}
	}

	return input, nil
}

func buildSection(decl *ast.SectionDecl) (*Section, error) {
	section := &Section{Name: decl.Name.Value}

	for _, attr := range decl.Attrs {
		switch attr.Key.Value {
		case "channel":
			s, err := stringAttr(attr)
			if err != nil {
				return nil, err
			}
			section.Channel = s
		case "text":
			s, err := stringAttr(attr)
			if err != nil {
				return nil, err
			}
			section.Text = s
		case "desc":
			s, err := stringAttr(attr)
			if err != nil {
				return nil, err
			}
			section.Description = s
		case "optimizable":
			b, err := flagAttr(attr)
			if err != nil {
				return nil, err
			}
			section.Optimizable = b
		case "output":
			out, err := buildOutput(attr)
			if err != nil {
				return nil, err
			}
			section.Output = out
		default:
			return nil, buildErr(attr.Pos, "unknown section attribute %q", attr.Key.Value)
		}
	}

	return section, nil
}

func buildOutput(attr ast.Attr) (*OutputField, error) {
	items, err := mapAttr(attr)
	if err != nil {
		return nil, err
	}

	out := &OutputField{Kind: KindString}
	for _, item := range items {
		switch item.Key.Value {
		case "key":
			s, err := stringAttr(item)
			if err != nil {
				return nil, err
			}
			out.Key = s
		case "kind":
			s, err := stringAttr(item)
			if err != nil {
				return nil, err
			}
			kind, ok := KindFromName(s)
			if !ok {
				return nil, buildErr(item.Pos, "unknown output kind %q", s)
			}
			out.Kind = kind
		case "required":
			b, err := flagAttr(item)
			if err != nil {
				return nil, err
			}
			out.Required = b
		case "desc":
			s, err := stringAttr(item)
			if err != nil {
				return nil, err
			}
			out.Description = s
		default:
			return nil, buildErr(item.Pos, "unknown output attribute %q", item.Key.Value)
		}
	}

	if out.Key == "" {
		return nil, buildErr(attr.Pos, "output descriptor requires a key")
	}
	return out, nil
}

func buildSlot(decl *ast.SlotDecl) (*Slot, error) {
	slot := &Slot{Name: decl.Name.Value}

	for _, attr := range decl.Attrs {
		switch attr.Key.Value {
		case "optimizable":
			b, err := flagAttr(attr)
			if err != nil {
				return nil, err
			}
			slot.Optimizable = b
		case "opts":
			items, err := mapAttr(attr)
			if err != nil {
				return nil, err
			}
			for _, item := range items {
				text, err := stringAttr(item)
				if err != nil {
					return nil, err
				}
				slot.Options = append(slot.Options, SlotOption{ID: item.Key.Value, Text: text})
			}
		case "hints":
			h, err := hintsAttr(attr)
			if err != nil {
				return nil, err
			}
			slot.Hints = h
		default:
			return nil, buildErr(attr.Pos, "unknown slot attribute %q", attr.Key.Value)
		}
	}

	return slot, nil
}

func buildRender(decl *ast.RenderBlock) (*RenderConfig, error) {
	render := &RenderConfig{}

	for _, attr := range decl.Attrs {
		switch attr.Key.Value {
		case "engine":
			s, err := stringAttr(attr)
			if err != nil {
				return nil, err
			}
			render.Engine = s
		case "strict":
			b, err := flagAttr(attr)
			if err != nil {
				return nil, err
			}
			render.Strict = b
		default:
			return nil, buildErr(attr.Pos, "unknown render attribute %q", attr.Key.Value)
		}
	}

	return render, nil
}

func buildOps(ops []ast.EmitOp) []EmitOp {
	var result []EmitOp
	for _, op := range ops {
		switch o := op.(type) {
		case *ast.EmitLit:
			result = append(result, &EmitLit{Text: o.Text.Value})
		case *ast.EmitSection:
			result = append(result, &EmitSection{Name: o.Name.Value})
		case *ast.EmitInput:
			result = append(result, &EmitInput{Name: o.Name.Value})
		case *ast.SwitchOp:
			sw := &Switch{Input: o.Input.Value, HasElse: o.HasElse}
			for _, c := range o.Cases {
				sw.Cases = append(sw.Cases, SwitchCase{Value: c.Value.Value, Ops: buildOps(c.Ops)})
			}
			if o.HasElse {
				sw.Else = buildOps(o.Else)
			}
			result = append(result, sw)
		}
	}
	return result
}

func buildHint(value ast.Value) (Hint, error) {
	switch v := value.(type) {
	case *ast.StringLit:
		return HintString(v.Value), nil
	case *ast.NumberLit:
		return HintNumber(v.Value), nil
	case *ast.BoolLit:
		return HintBool(v.Value), nil
	case *ast.MapLit:
		var m HintMap
		for _, item := range v.Items {
			if item.Value == nil {
				m = append(m, HintEntry{Key: item.Key.Value, Value: HintBool(true)})
				continue
			}
			h, err := buildHint(item.Value)
			if err != nil {
				return nil, err
			}
			m = append(m, HintEntry{Key: item.Key.Value, Value: h})
		}
		return m, nil
	default:
		return nil, buildErr(value.NodePos(), "unsupported hint value")
	}
}

func stringAttr(attr ast.Attr) (string, error) {
	lit, ok := attr.Value.(*ast.StringLit)
	if !ok {
		return "", buildErr(attr.Pos, "attribute %q requires a string value", attr.Key.Value)
	}
	return lit.Value, nil
}

func flagAttr(attr ast.Attr) (bool, error) {
	if attr.Value == nil {
		return true, nil
	}
	lit, ok := attr.Value.(*ast.BoolLit)
	if !ok {
		return false, buildErr(attr.Pos, "attribute %q is a flag and takes no value", attr.Key.Value)
	}
	return lit.Value, nil
}

func mapAttr(attr ast.Attr) ([]ast.Attr, error) {
	lit, ok := attr.Value.(*ast.MapLit)
	if !ok {
		return nil, buildErr(attr.Pos, "attribute %q requires a nested block value", attr.Key.Value)
	}
	return lit.Items, nil
}

func hintsAttr(attr ast.Attr) (HintMap, error) {
	if attr.Value == nil {
		return nil, buildErr(attr.Pos, "attribute %q requires a nested block value", attr.Key.Value)
	}
	h, err := buildHint(attr.Value)
	if err != nil {
		return nil, err
	}
	m, ok := h.(HintMap)
	if !ok {
		return nil, buildErr(attr.Pos, "attribute %q requires a nested block value", attr.Key.Value)
	}
	return m, nil
}

func buildErr(pos ast.Position, format string, args ...any) error {
	where := fmt.Sprintf("%d:%d", pos.Line, pos.Column)
	if pos.Filename != "" {
		where = pos.Filename + ":" + where
	}
	return fmt.Errorf("%s: %s", where, fmt.Sprintf(format, args...))
}
