// Package semantic validates IR modules and runs the lint engine.
// Validation findings and lint warnings share one diagnostic stream;
// nothing here aborts on a finding, so every problem in a module is
// reported in a single pass.
package semantic

import (
	"fmt"

	"pir/internal/ast"
	"pir/internal/errors"
	"pir/internal/pir"
)

type Analyzer struct {
	module      *pir.Module
	symbols     *pir.SymbolTable
	spans       spanIndex
	diagnostics []errors.Diagnostic
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze validates m and runs every lint. The file argument supplies
// source spans for diagnostics and may be nil for modules built by
// lowering rather than parsing. The returned sequence is deterministic:
// validator findings first, then lints in a fixed order, each emitting in
// module declaration order.
func (a *Analyzer) Analyze(m *pir.Module, file *ast.File) []errors.Diagnostic {
	a.module = m
	a.spans = buildSpanIndex(file)
	a.diagnostics = nil

	a.checkSymbols()
	a.checkEnumSets()
	a.checkReferences()

	for _, lint := range lintPasses {
		a.diagnostics = append(a.diagnostics, lint(a)...)
	}

	return a.diagnostics
}

// Valid reports whether a diagnostic set contains no error-level findings.
func Valid(diagnostics []errors.Diagnostic) bool {
	for _, d := range diagnostics {
		if d.Level == errors.Error {
			return false
		}
	}
	return true
}

func (a *Analyzer) checkSymbols() {
	symbols, errs := pir.BuildSymbols(a.module)
	a.symbols = symbols
	for _, err := range errs {
		dup, ok := err.(*pir.DuplicateSymbolError)
		if !ok {
			continue
		}
		a.errorf(errors.CodeDuplicateSymbol, dup.Name, "%s", dup.Error())
	}
}

func (a *Analyzer) checkEnumSets() {
	for _, input := range a.module.Inputs {
		if input.Kind != pir.KindEnum {
			continue
		}
		if len(input.Enum) == 0 {
			a.errorf(errors.CodeInvalidEnumSet, input.Name,
				"input %q declares an enum kind with no values", input.Name)
			continue
		}
		seen := make(map[string]bool, len(input.Enum))
		for _, v := range input.Enum {
			if seen[v] {
				a.errorf(errors.CodeInvalidEnumSet, input.Name,
					"input %q repeats enum value %q", input.Name, v)
			}
			seen[v] = true
		}
	}
}

// checkReferences resolves every emit-operation target. Unresolved names
// surface as UnknownSymbol diagnostics, never as aborts, so a module can
// be inspected and printed while still broken.
func (a *Analyzer) checkReferences() {
	for _, msg := range a.module.Messages {
		walkOps(msg.Ops, func(op pir.EmitOp) {
			switch o := op.(type) {
			case *pir.EmitSection:
				a.checkReference(o.Name, pir.SymbolSection, "emit-section")
			case *pir.EmitInput:
				a.checkReference(o.Name, pir.SymbolInput, "emit-input")
			case *pir.Switch:
				a.checkReference(o.Input, pir.SymbolInput, "switch")
			}
		})
	}
}

func (a *Analyzer) checkReference(name string, want pir.SymbolKind, context string) {
	symbol, err := a.symbols.Resolve(name)
	if err != nil {
		a.errorf(errors.CodeUnknownSymbol, name,
			"%s references undeclared name %q", context, name)
		return
	}
	if symbol.Kind != want {
		a.errorf(errors.CodeUnknownSymbol, name,
			"%s references %s %q where a %s is required", context, symbol.Kind, name, want)
	}
}

func (a *Analyzer) errorf(code, symbol, format string, args ...any) {
	a.report(errors.Error, code, symbol, format, args...)
}

func (a *Analyzer) warnf(code, symbol, format string, args ...any) errors.Diagnostic {
	d := a.diagnostic(errors.Warning, code, symbol, format, args...)
	return d
}

func (a *Analyzer) report(level errors.Level, code, symbol, format string, args ...any) {
	a.diagnostics = append(a.diagnostics, a.diagnostic(level, code, symbol, format, args...))
}

func (a *Analyzer) diagnostic(level errors.Level, code, symbol, format string, args ...any) errors.Diagnostic {
	d := errors.Diagnostic{
		Level:   level,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Symbol:  symbol,
	}
	if span, ok := a.spans[symbol]; ok {
		d.Position = span.pos
		d.Length = span.length
	}
	return d
}

// walkOps visits every op in sequence order, descending into switch arms.
func walkOps(ops []pir.EmitOp, visit func(pir.EmitOp)) {
	for _, op := range ops {
		visit(op)
		if sw, ok := op.(*pir.Switch); ok {
			for _, c := range sw.Cases {
				walkOps(c.Ops, visit)
			}
			walkOps(sw.Else, visit)
		}
	}
}

type span struct {
	pos    ast.Position
	length int
}

type spanIndex map[string]span

// buildSpanIndex records where each declared name sits in the original
// parse, so diagnostics can point at source. Lowered modules have no
// source and get an empty index.
func buildSpanIndex(file *ast.File) spanIndex {
	index := make(spanIndex)
	if file == nil {
		return index
	}
	for _, item := range file.Items {
		switch decl := item.(type) {
		case *ast.InputDecl:
			index[decl.Name.Value] = span{pos: decl.Name.Pos, length: len(decl.Name.Value)}
		case *ast.SectionDecl:
			index[decl.Name.Value] = span{pos: decl.Name.Pos, length: len(decl.Name.Value)}
		case *ast.SlotDecl:
			index[decl.Name.Value] = span{pos: decl.Name.Pos, length: len(decl.Name.Value)}
		}
	}
	return index
}
