// Package schema assembles the module's response contract from section
// output descriptors. The contract is a derived artifact: it is rebuilt
// from the sections on demand and never stored in the IR.
package schema

import (
	"github.com/santhosh-tekuri/jsonschema/v6"

	"pir/internal/pir"
)

// Assemble builds a JSON Schema document from output fields in
// declaration order. Key collisions are the lint engine's concern, not
// assembly's: the last declaration wins here so a non-conforming module
// still yields an inspectable document.
func Assemble(fields []pir.OutputField) map[string]any {
	properties := make(map[string]any, len(fields))
	var required []any

	for _, field := range fields {
		prop := map[string]any{
			"type": jsonType(field.Kind),
		}
		if field.Description != "" {
			prop["description"] = field.Description
		}
		properties[field.Key] = prop
		if field.Required {
			required = append(required, field.Key)
		}
	}

	doc := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		doc["required"] = required
	}
	return doc
}

// Compile sanity-checks an assembled document against the JSON Schema
// grammar.
func Compile(doc map[string]any) error {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("contract.json", doc); err != nil {
		return err
	}
	_, err := c.Compile("contract.json")
	return err
}

// Validate checks an instance document against an assembled contract.
func Validate(doc map[string]any, instance any) error {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("contract.json", doc); err != nil {
		return err
	}
	compiled, err := c.Compile("contract.json")
	if err != nil {
		return err
	}
	return compiled.Validate(instance)
}

func jsonType(kind pir.Kind) string {
	switch kind {
	case pir.KindNumber:
		return "number"
	case pir.KindBool:
		return "boolean"
	default:
		return "string"
	}
}
