// Package pir holds the in-memory prompt intermediate representation.
// A Module is constructed once, by the parser or by lowering, and treated
// as a value afterwards: transformations return new modules instead of
// mutating in place, so validation results never go stale.
package pir

// Kind is the closed set of scalar kinds an input or output field may have.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// KindFromName maps a kind name from the textual format back to its Kind.
func KindFromName(name string) (Kind, bool) {
	switch name {
	case "string":
		return KindString, true
	case "number":
		return KindNumber, true
	case "bool":
		return KindBool, true
	case "enum":
		return KindEnum, true
	default:
		return 0, false
	}
}

// Hint is the closed variant for optimizer-hint values: string, number,
// boolean, or a nested ordered map. The order of a HintMap is the order the
// author wrote, which keeps printing deterministic without sorting.
type Hint interface {
	hint()
}

type HintString string
type HintNumber float64
type HintBool bool

type HintEntry struct {
	Key   string
	Value Hint
}

type HintMap []HintEntry

func (HintString) hint() {}
func (HintNumber) hint() {}
func (HintBool) hint()   {}
func (HintMap) hint()    {}

// Get returns the value for key, or nil.
func (m HintMap) Get(key string) Hint {
	for _, e := range m {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

// Input is a declared render-time placeholder.
type Input struct {
	Name        string
	Kind        Kind
	Enum        []string // non-empty iff Kind == KindEnum
	Channel     string
	Required    bool
	Optimizable bool
	Hints       HintMap
}

// OutputField describes one key of the module's response contract, claimed
// by the section that declares it.
type OutputField struct {
	Key         string
	Kind        Kind
	Required    bool
	Description string
}

// Section is a named, reusable block of template text. The text is opaque
// to the core beyond embed-marker extraction.
type Section struct {
	Name        string
	Channel     string
	Text        string
	Description string
	Optimizable bool
	Output      *OutputField
}

// SlotOption is one candidate wording of a slot.
type SlotOption struct {
	ID   string
	Text string
}

// Slot is a discrete choice point among fixed candidate wordings.
type Slot struct {
	Name        string
	Options     []SlotOption
	Optimizable bool
	Hints       HintMap
}

// EmitOp is one operation in a message: literal text, a section reference,
// an input reference, or a branch over an enumeration input.
type EmitOp interface {
	emitOp()
}

type EmitLit struct {
	Text string
}

type EmitSection struct {
	Name string
}

type EmitInput struct {
	Name string
}

type SwitchCase struct {
	Value string
	Ops   []EmitOp
}

type Switch struct {
	Input   string
	Cases   []SwitchCase
	Else    []EmitOp
	HasElse bool
}

// Branch returns the op sequence selected by an input value, falling back
// to the else branch when present. The second result is false when no
// branch applies.
func (s *Switch) Branch(value string) ([]EmitOp, bool) {
	for _, c := range s.Cases {
		if c.Value == value {
			return c.Ops, true
		}
	}
	if s.HasElse {
		return s.Else, true
	}
	return nil, false
}

func (*EmitLit) emitOp()     {}
func (*EmitSection) emitOp() {}
func (*EmitInput) emitOp()   {}
func (*Switch) emitOp()      {}

// Message is an ordered emit sequence tagged with a channel.
type Message struct {
	Channel string
	Ops     []EmitOp
}

// RenderConfig names the template engine and its strictness. When Strict is
// set, referencing an undefined variable at render time is an error instead
// of empty output.
type RenderConfig struct {
	Engine string
	Strict bool
}

// Module is the top-level IR unit. Each group preserves declaration order;
// the canonical printer emits groups in a fixed sequence (inputs, sections,
// slots, messages, render).
type Module struct {
	Name    string
	Version string

	Inputs   []Input
	Sections []Section
	Slots    []Slot
	Messages []Message
	Render   *RenderConfig
}

// Input returns the declared input named name, or nil.
func (m *Module) Input(name string) *Input {
	for i := range m.Inputs {
		if m.Inputs[i].Name == name {
			return &m.Inputs[i]
		}
	}
	return nil
}

// Section returns the declared section named name, or nil.
func (m *Module) Section(name string) *Section {
	for i := range m.Sections {
		if m.Sections[i].Name == name {
			return &m.Sections[i]
		}
	}
	return nil
}

// Slot returns the declared slot named name, or nil.
func (m *Module) Slot(name string) *Slot {
	for i := range m.Slots {
		if m.Slots[i].Name == name {
			return &m.Slots[i]
		}
	}
	return nil
}
