package pir

import "fmt"

type SymbolKind int

const (
	SymbolInput SymbolKind = iota
	SymbolSection
	SymbolSlot
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolInput:
		return "input"
	case SymbolSection:
		return "section"
	case SymbolSlot:
		return "slot"
	default:
		return "symbol"
	}
}

type Symbol struct {
	Name  string
	Kind  SymbolKind
	Index int // position within the module's group slice
}

// SymbolTable resolves names within one module scope. It never spans
// modules: cross-module reuse means copying, not sharing.
type SymbolTable struct {
	symbols map[string]*Symbol
	order   []string
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Symbol)}
}

func (st *SymbolTable) declare(name string, kind SymbolKind, index int) (*Symbol, error) {
	if existing, ok := st.symbols[name]; ok {
		return nil, &DuplicateSymbolError{Name: name, Kind: kind, Existing: existing.Kind}
	}
	symbol := &Symbol{Name: name, Kind: kind, Index: index}
	st.symbols[name] = symbol
	st.order = append(st.order, name)
	return symbol, nil
}

func (st *SymbolTable) DeclareInput(name string, index int) (*Symbol, error) {
	return st.declare(name, SymbolInput, index)
}

func (st *SymbolTable) DeclareSection(name string, index int) (*Symbol, error) {
	return st.declare(name, SymbolSection, index)
}

func (st *SymbolTable) DeclareSlot(name string, index int) (*Symbol, error) {
	return st.declare(name, SymbolSlot, index)
}

func (st *SymbolTable) Resolve(name string) (*Symbol, error) {
	if symbol, ok := st.symbols[name]; ok {
		return symbol, nil
	}
	return nil, &UnknownSymbolError{Name: name}
}

// Names returns every declared name in declaration order.
func (st *SymbolTable) Names() []string {
	return st.order
}

// BuildSymbols indexes every declared name of m. Duplicates are collected
// rather than aborting; the table keeps the first declaration of each name
// so later passes can keep resolving.
func BuildSymbols(m *Module) (*SymbolTable, []error) {
	st := NewSymbolTable()
	var errs []error

	for i, input := range m.Inputs {
		if _, err := st.DeclareInput(input.Name, i); err != nil {
			errs = append(errs, err)
		}
	}
	for i, section := range m.Sections {
		if _, err := st.DeclareSection(section.Name, i); err != nil {
			errs = append(errs, err)
		}
	}
	for i, slot := range m.Slots {
		if _, err := st.DeclareSlot(slot.Name, i); err != nil {
			errs = append(errs, err)
		}
	}

	return st, errs
}

// DuplicateSymbolError reports a name declared twice within one module.
type DuplicateSymbolError struct {
	Name     string
	Kind     SymbolKind
	Existing SymbolKind
}

func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("duplicate symbol %q: %s conflicts with existing %s", e.Name, e.Kind, e.Existing)
}

// UnknownSymbolError reports a reference to a name absent from the module.
type UnknownSymbolError struct {
	Name string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol %q", e.Name)
}
