package template

import (
	"fmt"
	"sort"
)

type ErrorKind int

const (
	// MissingVariable: the template references a variable with no binding
	// while strict rendering is on.
	MissingVariable ErrorKind = iota
	// UnknownVariable: a binding key the template does not reference, or
	// that is not a declared input, while unknown-input enforcement is on.
	UnknownVariable
)

func (k ErrorKind) String() string {
	switch k {
	case MissingVariable:
		return "missing variable"
	default:
		return "unknown variable"
	}
}

// TemplateError is propagated verbatim to callers, tagged with the symbol
// that produced the offending placeholder where derivable.
type TemplateError struct {
	Kind     ErrorKind
	Variable string
	Symbol   string // owning section/input symbol, "" when not derivable
}

func (e *TemplateError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("%s %q in %q", e.Kind, e.Variable, e.Symbol)
	}
	return fmt.Sprintf("%s %q", e.Kind, e.Variable)
}

// Options carries the strictness switches of one render call. Strict comes
// from the module's render configuration; EnforceUnknownInputs is the
// separate mode that rejects binding keys the template does not reference
// or the module does not declare.
type Options struct {
	Strict               bool
	EnforceUnknownInputs bool
	DeclaredInputs       []string
	Sections             map[string]string // resolved section texts by name
	Symbol               string            // owning symbol for error tagging
}

// Renderer is the boundary to the template engine. The default Engine
// substitutes markers itself; adapters for external engines satisfy the
// same interface.
type Renderer interface {
	Render(text string, bindings map[string]string, opts Options) (string, error)
}

// Engine is the built-in marker-substitution renderer.
type Engine struct{}

func (Engine) Render(text string, bindings map[string]string, opts Options) (string, error) {
	return Render(text, bindings, opts)
}

// Render substitutes input and section markers in text. A missing binding
// yields empty output, or a MissingVariable error under strict rendering.
func Render(text string, bindings map[string]string, opts Options) (string, error) {
	segments, err := Extract(text)
	if err != nil {
		return "", err
	}

	if opts.EnforceUnknownInputs {
		if err := checkUnknownInputs(segments, bindings, opts); err != nil {
			return "", err
		}
	}

	var out []byte
	for _, seg := range segments {
		switch seg.Kind {
		case Literal:
			out = append(out, seg.Text...)
		case InputRef:
			value, ok := bindings[seg.Text]
			if !ok && opts.Strict {
				return "", &TemplateError{Kind: MissingVariable, Variable: seg.Text, Symbol: opts.Symbol}
			}
			out = append(out, value...)
		case SectionRef:
			value, ok := opts.Sections[seg.Text]
			if !ok && opts.Strict {
				return "", &TemplateError{Kind: MissingVariable, Variable: seg.Text, Symbol: seg.Text}
			}
			out = append(out, value...)
		}
	}
	return string(out), nil
}

// checkUnknownInputs rejects any binding key that the template does not
// reference or that is not declared as an input.
func checkUnknownInputs(segments []Segment, bindings map[string]string, opts Options) error {
	referenced, _ := References(segments)
	refSet := make(map[string]bool, len(referenced))
	for _, name := range referenced {
		refSet[name] = true
	}
	declared := make(map[string]bool, len(opts.DeclaredInputs))
	for _, name := range opts.DeclaredInputs {
		declared[name] = true
	}

	// Binding keys are checked in sorted order so the reported variable is
	// deterministic.
	for _, name := range sortedKeys(bindings) {
		if !refSet[name] || !declared[name] {
			return &TemplateError{Kind: UnknownVariable, Variable: name, Symbol: opts.Symbol}
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
