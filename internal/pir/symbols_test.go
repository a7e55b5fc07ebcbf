package pir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolTableDeclareAndResolve(t *testing.T) {
	st := NewSymbolTable()

	_, err := st.DeclareInput("topic", 0)
	require.NoError(t, err)
	_, err = st.DeclareSection("persona", 0)
	require.NoError(t, err)
	_, err = st.DeclareSlot("greeting", 0)
	require.NoError(t, err)

	sym, err := st.Resolve("persona")
	require.NoError(t, err)
	assert.Equal(t, SymbolSection, sym.Kind)
	assert.Equal(t, "persona", sym.Name)
}

func TestSymbolTableSingleNamespace(t *testing.T) {
	// Inputs, sections, and slots share one namespace: a section may not
	// reuse an input's name.
	st := NewSymbolTable()

	_, err := st.DeclareInput("persona", 0)
	require.NoError(t, err)

	_, err = st.DeclareSection("persona", 0)
	require.Error(t, err)

	var dup *DuplicateSymbolError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "persona", dup.Name)
	assert.Equal(t, SymbolInput, dup.Existing, "the error names the surviving declaration's kind")
}

func TestSymbolTableResolveUnknown(t *testing.T) {
	st := NewSymbolTable()

	_, err := st.Resolve("ghost")
	require.Error(t, err)

	var unknown *UnknownSymbolError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "ghost", unknown.Name)
}

func TestBuildSymbolsCollectsEveryDuplicate(t *testing.T) {
	m := &Module{
		Name:    "demo",
		Version: "v1",
		Inputs: []Input{
			{Name: "a", Kind: KindString},
			{Name: "a", Kind: KindNumber},
		},
		Sections: []Section{
			{Name: "a", Text: "x"},
			{Name: "b", Text: "y"},
		},
	}

	table, errs := BuildSymbols(m)
	assert.Len(t, errs, 2, "both later declarations of 'a' are duplicates")

	// First declaration wins.
	sym, err := table.Resolve("a")
	require.NoError(t, err)
	assert.Equal(t, SymbolInput, sym.Kind)

	sym, err = table.Resolve("b")
	require.NoError(t, err)
	assert.Equal(t, SymbolSection, sym.Kind)
}

func TestSymbolTableNamesInDeclarationOrder(t *testing.T) {
	st := NewSymbolTable()
	st.DeclareInput("z", 0)
	st.DeclareSection("a", 0)
	st.DeclareSlot("m", 0)

	assert.Equal(t, []string{"z", "a", "m"}, st.Names())
}
