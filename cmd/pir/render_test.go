package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pir/internal/pir"
	"pir/internal/template"
)

func TestCheckDeclaredInputsSortedReporting(t *testing.T) {
	module := &pir.Module{
		Name: "demo",
		Inputs: []pir.Input{
			{Name: "topic", Kind: pir.KindString},
		},
	}
	bindings := map[string]string{
		"zeta":  "1",
		"topic": "2",
		"alpha": "3",
	}

	// Map iteration order varies, so the first offending key must come
	// from a sorted walk.
	for i := 0; i < 10; i++ {
		err := checkDeclaredInputs(module, bindings)
		require.Error(t, err)

		var terr *template.TemplateError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, template.UnknownVariable, terr.Kind)
		assert.Equal(t, "alpha", terr.Variable)
	}
}

func TestCheckDeclaredInputsAcceptsDeclaredKeys(t *testing.T) {
	module := &pir.Module{
		Name: "demo",
		Inputs: []pir.Input{
			{Name: "topic", Kind: pir.KindString},
			{Name: "tone", Kind: pir.KindString},
		},
	}

	err := checkDeclaredInputs(module, map[string]string{"topic": "x", "tone": "y"})
	assert.NoError(t, err)
}
