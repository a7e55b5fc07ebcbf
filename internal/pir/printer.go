package pir

import (
	"fmt"
	"strings"

	"pir/internal/ast"
)

// Print renders a module in canonical PIR-TXT. The output is a pure
// function of the module value: groups in fixed sequence, declarations in
// declaration order, attribute keys in a fixed order per entity, two-space
// indentation. Re-parsing and re-printing the result is a no-op.
func Print(m *Module) string {
	p := &printer{}

	header := "module @" + m.Name
	if m.Version != "" {
		header += " " + m.Version
	}
	p.line("%s {", header)
	p.indent++

	for i := range m.Inputs {
		p.printInput(&m.Inputs[i])
	}
	for i := range m.Sections {
		p.printSection(&m.Sections[i])
	}
	for i := range m.Slots {
		p.printSlot(&m.Slots[i])
	}
	for i := range m.Messages {
		p.printMessage(&m.Messages[i])
	}
	if m.Render != nil {
		p.printRender(m.Render)
	}

	p.indent--
	p.line("}")
	return p.b.String()
}

type printer struct {
	b      strings.Builder
	indent int
}

func (p *printer) line(format string, args ...any) {
	p.b.WriteString(strings.Repeat("  ", p.indent))
	fmt.Fprintf(&p.b, format, args...)
	p.b.WriteByte('\n')
}

func (p *printer) printInput(input *Input) {
	kind := input.Kind.String()
	if input.Kind == KindEnum {
		vals := make([]string, len(input.Enum))
		for i, v := range input.Enum {
			vals[i] = ast.Quote(v)
		}
		kind = fmt.Sprintf("enum(%s)", strings.Join(vals, ", "))
	}

	p.openBlock("%s : %s", input.Name, kind)
	p.stringAttr("channel", input.Channel)
	p.flag("required", input.Required)
	p.flag("optimizable", input.Optimizable)
	p.hints("hints", input.Hints)
	p.closeBlock()
}

func (p *printer) printSection(section *Section) {
	p.openBlock("@%s", section.Name)
	p.stringAttr("channel", section.Channel)
	p.stringAttr("text", section.Text)
	p.stringAttr("desc", section.Description)
	p.flag("optimizable", section.Optimizable)
	if section.Output != nil {
		p.openBlock("output =")
		p.line("key = %s", ast.Quote(section.Output.Key))
		p.line("kind = %s", ast.Quote(section.Output.Kind.String()))
		p.flag("required", section.Output.Required)
		p.stringAttr("desc", section.Output.Description)
		p.closeBlock()
	}
	p.closeBlock()
}

func (p *printer) printSlot(slot *Slot) {
	p.openBlock("slot %s", slot.Name)
	p.flag("optimizable", slot.Optimizable)
	if len(slot.Options) > 0 {
		p.openBlock("opts =")
		for _, opt := range slot.Options {
			p.line("%s = %s", opt.ID, ast.Quote(opt.Text))
		}
		p.closeBlock()
	}
	p.hints("hints", slot.Hints)
	p.closeBlock()
}

func (p *printer) printMessage(msg *Message) {
	p.openBlock("%s", ast.Quote(msg.Channel))
	p.printOps(msg.Ops)
	p.closeBlock()
}

func (p *printer) printOps(ops []EmitOp) {
	for _, op := range ops {
		switch o := op.(type) {
		case *EmitLit:
			p.line("lit %s", ast.Quote(o.Text))
		case *EmitSection:
			p.line("sec @%s", o.Name)
		case *EmitInput:
			p.line("in %s", o.Name)
		case *Switch:
			p.openBlock("switch %s", o.Input)
			for _, c := range o.Cases {
				p.openBlock("case %s", ast.Quote(c.Value))
				p.printOps(c.Ops)
				p.closeBlock()
			}
			if o.HasElse {
				p.openBlock("else")
				p.printOps(o.Else)
				p.closeBlock()
			}
			p.closeBlock()
		}
	}
}

func (p *printer) printRender(render *RenderConfig) {
	p.openBlock("render")
	p.stringAttr("engine", render.Engine)
	p.flag("strict", render.Strict)
	p.closeBlock()
}

func (p *printer) openBlock(format string, args ...any) {
	p.line("%s {", fmt.Sprintf(format, args...))
	p.indent++
}

func (p *printer) closeBlock() {
	p.indent--
	p.line("}")
}

func (p *printer) stringAttr(key, value string) {
	if value == "" {
		return
	}
	p.line("%s = %s", key, ast.Quote(value))
}

func (p *printer) flag(key string, on bool) {
	if on {
		p.line("%s", key)
	}
}

func (p *printer) hints(key string, m HintMap) {
	if len(m) == 0 {
		return
	}
	p.openBlock("%s =", key)
	p.hintEntries(m)
	p.closeBlock()
}

func (p *printer) hintEntries(m HintMap) {
	for _, e := range m {
		switch v := e.Value.(type) {
		case HintString:
			p.line("%s = %s", e.Key, ast.Quote(string(v)))
		case HintNumber:
			p.line("%s = %s", e.Key, ast.FormatNumber(float64(v)))
		case HintBool:
			p.line("%s = %t", e.Key, bool(v))
		case HintMap:
			p.openBlock("%s =", e.Key)
			p.hintEntries(v)
			p.closeBlock()
		}
	}
}
