package ast

// File is the root of a parsed PIR-TXT document: one module declaration
// holding its items in source order. The parser performs no symbol
// resolution, so a File may reference names that do not exist; that is the
// validator's concern.
type File struct {
	Pos    Position
	EndPos Position

	Name    QualName
	Version string // "" when the module carries no version token
	Items   []ModuleItem
}

// QualName is a dotted module name such as qa.summarize.
type QualName struct {
	Pos    Position
	EndPos Position
	Parts  []string
}

// ModuleItem is anything that may appear in a module body.
type ModuleItem interface {
	Node
	moduleItem()
}

// InputDecl declares a render-time placeholder: name : kind { attrs }.
type InputDecl struct {
	Pos    Position
	EndPos Position

	Name  Ident
	Kind  KindExpr
	Attrs []Attr
}

// KindExpr is a scalar kind, possibly with an enumeration value set.
type KindExpr struct {
	Pos    Position
	EndPos Position

	Name   Ident       // string | number | bool | enum
	Values []StringLit // non-nil only for enum(...)
}

// SectionDecl declares a named template text block: @name { attrs }.
type SectionDecl struct {
	Pos    Position
	EndPos Position

	Name  Ident
	Attrs []Attr
}

// SlotDecl declares a discrete choice point: slot name { attrs }.
// The option set lives in the opts attribute as a nested map.
type SlotDecl struct {
	Pos    Position
	EndPos Position

	Name  Ident
	Attrs []Attr
}

// MessageBlock is an ordered emit-operation sequence tagged with a channel:
// "channel" { emit* }.
type MessageBlock struct {
	Pos    Position
	EndPos Position

	Channel StringLit
	Ops     []EmitOp
}

// RenderBlock carries the render configuration: render { attrs }.
type RenderBlock struct {
	Pos    Position
	EndPos Position

	Attrs []Attr
}

// Attr is a key = value pair or a bare flag (Value == nil).
type Attr struct {
	Pos    Position
	EndPos Position

	Key   Ident
	Value Value
}

// Value is the closed attribute-value variant: string, number, boolean, or
// a nested map (used for optimizer hints and slot option sets).
type Value interface {
	Node
	value()
}

type StringLit struct {
	Pos    Position
	EndPos Position
	Value  string // decoded, escapes resolved
}

type NumberLit struct {
	Pos    Position
	EndPos Position
	Value  float64
}

type BoolLit struct {
	Pos    Position
	EndPos Position
	Value  bool
}

type MapLit struct {
	Pos    Position
	EndPos Position
	Items  []Attr
}

// EmitOp is one operation inside a message block.
type EmitOp interface {
	Node
	emitOp()
}

// EmitLit emits literal text: lit "...".
type EmitLit struct {
	Pos    Position
	EndPos Position
	Text   StringLit
}

// EmitSection emits a section by reference: sec @name.
type EmitSection struct {
	Pos    Position
	EndPos Position
	Name   Ident
}

// EmitInput emits an input by reference: in name.
type EmitInput struct {
	Pos    Position
	EndPos Position
	Name   Ident
}

// SwitchOp branches over an enumeration-typed input:
// switch name { case "v" { emit* } ... else { emit* } }.
type SwitchOp struct {
	Pos    Position
	EndPos Position

	Input   Ident
	Cases   []SwitchCase
	Else    []EmitOp
	HasElse bool
}

type SwitchCase struct {
	Pos    Position
	EndPos Position

	Value StringLit
	Ops   []EmitOp
}

type Ident struct {
	Pos    Position
	EndPos Position
	Value  string
}

func (*InputDecl) moduleItem()    {}
func (*SectionDecl) moduleItem()  {}
func (*SlotDecl) moduleItem()     {}
func (*MessageBlock) moduleItem() {}
func (*RenderBlock) moduleItem()  {}

func (*StringLit) value() {}
func (*NumberLit) value() {}
func (*BoolLit) value()   {}
func (*MapLit) value()    {}

func (*EmitLit) emitOp()     {}
func (*EmitSection) emitOp() {}
func (*EmitInput) emitOp()   {}
func (*SwitchOp) emitOp()    {}
