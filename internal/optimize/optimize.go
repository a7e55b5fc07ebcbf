// Package optimize defines the boundary toward optimizer backends. The
// core does not implement any search algorithm itself: backends consume
// a PromptSpec plus lint feedback and return a rewritten spec, and the
// core's job is to police that rewrite. Entities not flagged optimizable
// are frozen and must come back byte-identical.
package optimize

import (
	"fmt"
	"sort"

	"pir/internal/errors"
	"pir/internal/pir"
)

// Evaluator is the execution surface a backend may use to measure
// candidate rewrites. Implementations live in the calling harness.
type Evaluator interface {
	Run(messages []pir.Message) (string, error)
	Score(output, label string) float64
}

// Backend is a single optimizer strategy. It must only alter entities
// whose optimizable flag is set.
type Backend interface {
	Optimize(spec *pir.PromptSpec, feedback []errors.Diagnostic, eval Evaluator) (*pir.PromptSpec, error)
}

// Constructor builds a fresh backend instance per optimize call.
type Constructor func() Backend

// Registry maps backend names to constructors. It is a plain value owned
// by the calling application, not process-wide state, so tests can build
// isolated registries without registration leaking between them.
type Registry struct {
	backends map[string]Constructor
}

func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]Constructor)}
}

// Register adds a named backend. Registering the same name twice is an
// error rather than a silent overwrite.
func (r *Registry) Register(name string, ctor Constructor) error {
	if _, exists := r.backends[name]; exists {
		return fmt.Errorf("backend '%s' already registered", name)
	}
	r.backends[name] = ctor
	return nil
}

func (r *Registry) Lookup(name string) (Constructor, bool) {
	ctor, ok := r.backends[name]
	return ctor, ok
}

// Names returns the registered backend names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnknownBackendError is returned when an optimize call names a backend
// the registry does not hold.
type UnknownBackendError struct {
	Name string
}

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("unknown optimizer backend '%s'", e.Name)
}

// FrozenViolationError reports a backend that altered a non-optimizable
// entity.
type FrozenViolationError struct {
	Entity string
	Name   string
}

func (e *FrozenViolationError) Error() string {
	return fmt.Sprintf("optimizer altered frozen %s '%s'", e.Entity, e.Name)
}

// Optimize resolves a backend from the registry, runs it, and verifies
// the frozen-region contract on the result. A violation discards the
// backend's output.
func Optimize(reg *Registry, name string, spec *pir.PromptSpec, feedback []errors.Diagnostic, eval Evaluator) (*pir.PromptSpec, error) {
	ctor, ok := reg.Lookup(name)
	if !ok {
		return nil, &UnknownBackendError{Name: name}
	}
	out, err := ctor().Optimize(spec, feedback, eval)
	if err != nil {
		return nil, err
	}
	if err := CheckFrozen(spec, out); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckFrozen compares two specs and reports the first non-optimizable
// entity whose content changed. Optimizable entities may differ freely;
// frozen sections must keep byte-identical text and frozen inputs must
// keep their declared shape.
func CheckFrozen(before, after *pir.PromptSpec) error {
	for i := range before.Sections {
		sec := &before.Sections[i]
		if sec.Optimizable {
			continue
		}
		got := after.Section(sec.Name)
		if got == nil {
			return &FrozenViolationError{Entity: "section", Name: sec.Name}
		}
		if got.Text != sec.Text || got.Channel != sec.Channel {
			return &FrozenViolationError{Entity: "section", Name: sec.Name}
		}
	}
	for i := range before.Inputs {
		in := &before.Inputs[i]
		if in.Optimizable {
			continue
		}
		got := after.Input(in.Name)
		if got == nil {
			return &FrozenViolationError{Entity: "input", Name: in.Name}
		}
		if got.Kind != in.Kind || got.Channel != in.Channel || got.Required != in.Required {
			return &FrozenViolationError{Entity: "input", Name: in.Name}
		}
		if !equalStrings(got.Enum, in.Enum) {
			return &FrozenViolationError{Entity: "input", Name: in.Name}
		}
	}
	return nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
