package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Quote renders a string literal with the escape set the scanner accepts:
// quote, backslash, and newline.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteByte(s[i])
		}
	}
	b.WriteByte('"')
	return b.String()
}

// FormatNumber renders a numeric attribute value as plain decimal digits,
// the only number form the scanner reads. Precision -1 keeps the shortest
// decimal that parses back to the same float64.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (f *File) String() string {
	var b strings.Builder
	b.WriteString("module @")
	b.WriteString(f.Name.String())
	if f.Version != "" {
		b.WriteString(" " + f.Version)
	}
	b.WriteString(" {\n")
	for _, item := range f.Items {
		b.WriteString("  " + strings.ReplaceAll(item.String(), "\n", "\n  ") + "\n")
	}
	b.WriteString("}")
	return b.String()
}

func (q *QualName) String() string {
	return strings.Join(q.Parts, ".")
}

func (d *InputDecl) String() string {
	return fmt.Sprintf("%s : %s %s", d.Name.Value, d.Kind.String(), attrBlock(d.Attrs))
}

func (k *KindExpr) String() string {
	if k.Values == nil {
		return k.Name.Value
	}
	vals := make([]string, len(k.Values))
	for i, v := range k.Values {
		vals[i] = Quote(v.Value)
	}
	return fmt.Sprintf("%s(%s)", k.Name.Value, strings.Join(vals, ", "))
}

func (d *SectionDecl) String() string {
	return fmt.Sprintf("@%s %s", d.Name.Value, attrBlock(d.Attrs))
}

func (d *SlotDecl) String() string {
	return fmt.Sprintf("slot %s %s", d.Name.Value, attrBlock(d.Attrs))
}

func (m *MessageBlock) String() string {
	var b strings.Builder
	b.WriteString(Quote(m.Channel.Value) + " {")
	for _, op := range m.Ops {
		b.WriteString("\n  " + strings.ReplaceAll(op.String(), "\n", "\n  "))
	}
	if len(m.Ops) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

func (r *RenderBlock) String() string {
	return "render " + attrBlock(r.Attrs)
}

func (a *Attr) String() string {
	if a.Value == nil {
		return a.Key.Value
	}
	return fmt.Sprintf("%s = %s", a.Key.Value, a.Value.String())
}

func (s *StringLit) String() string {
	return Quote(s.Value)
}

func (n *NumberLit) String() string {
	return FormatNumber(n.Value)
}

func (b *BoolLit) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

func (m *MapLit) String() string {
	return attrBlock(m.Items)
}

func (e *EmitLit) String() string {
	return "lit " + Quote(e.Text.Value)
}

func (e *EmitSection) String() string {
	return "sec @" + e.Name.Value
}

func (e *EmitInput) String() string {
	return "in " + e.Name.Value
}

func (s *SwitchOp) String() string {
	var b strings.Builder
	b.WriteString("switch " + s.Input.Value + " {")
	for _, c := range s.Cases {
		b.WriteString("\n  " + strings.ReplaceAll(c.String(), "\n", "\n  "))
	}
	if s.HasElse {
		b.WriteString("\n  else " + strings.ReplaceAll(opBlock(s.Else), "\n", "\n  "))
	}
	b.WriteString("\n}")
	return b.String()
}

func (c *SwitchCase) String() string {
	return "case " + Quote(c.Value.Value) + " " + opBlock(c.Ops)
}

func (i *Ident) String() string {
	return i.Value
}

func attrBlock(attrs []Attr) string {
	if len(attrs) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{")
	for _, a := range attrs {
		b.WriteString("\n  " + strings.ReplaceAll(a.String(), "\n", "\n  "))
	}
	b.WriteString("\n}")
	return b.String()
}

func opBlock(ops []EmitOp) string {
	if len(ops) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{")
	for _, op := range ops {
		b.WriteString("\n  " + strings.ReplaceAll(op.String(), "\n", "\n  "))
	}
	b.WriteString("\n}")
	return b.String()
}
