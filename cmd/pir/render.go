package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pir/internal/pir"
	"pir/internal/template"
)

var (
	renderBindings string
	renderEnforce  bool
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a module's messages with input bindings",
	Long: `Bindings come from a YAML file of scalar values keyed by input name.
A nested "slots" map selects one option id per slot; the chosen option
text is then addressable like a section from templates.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		module, _, _, err := loadModule(args[0])
		if err != nil {
			return err
		}

		bindings, slotChoices, err := loadBindings(renderBindings)
		if err != nil {
			return err
		}

		if renderEnforce {
			if err := checkDeclaredInputs(module, bindings); err != nil {
				return err
			}
		}

		sections := make(map[string]string, len(module.Sections))
		for i := range module.Sections {
			sections[module.Sections[i].Name] = module.Sections[i].Text
		}

		// Slots and sections share one symbol namespace, so a resolved
		// slot option can safely be addressed like a section.
		for slot, optionID := range slotChoices {
			decl := module.Slot(slot)
			if decl == nil {
				return fmt.Errorf("unknown slot '%s' in bindings", slot)
			}
			resolved := ""
			for _, opt := range decl.Options {
				if opt.ID == optionID {
					resolved = opt.Text
					break
				}
			}
			if resolved == "" {
				return fmt.Errorf("slot '%s' has no option '%s'", slot, optionID)
			}
			sections[slot] = resolved
		}

		declared := make([]string, len(module.Inputs))
		for i := range module.Inputs {
			declared[i] = module.Inputs[i].Name
		}

		strict := module.Render != nil && module.Render.Strict
		r := messageRenderer{
			module:   module,
			bindings: bindings,
			opts: template.Options{
				Strict:         strict,
				DeclaredInputs: declared,
				Sections:       sections,
			},
		}

		for _, msg := range module.Messages {
			text, err := r.renderOps(msg.Ops)
			if err != nil {
				return err
			}
			fmt.Printf("=== %s ===\n%s\n", msg.Channel, text)
		}
		return nil
	},
}

// checkDeclaredInputs rejects binding keys that name no declared input.
// Keys are checked in sorted order so the reported key is deterministic.
func checkDeclaredInputs(module *pir.Module, bindings map[string]string) error {
	keys := make([]string, 0, len(bindings))
	for name := range bindings {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	for _, name := range keys {
		if module.Input(name) == nil {
			return &template.TemplateError{Kind: template.UnknownVariable, Variable: name}
		}
	}
	return nil
}

type messageRenderer struct {
	module   *pir.Module
	bindings map[string]string
	opts     template.Options
}

func (r *messageRenderer) renderOps(ops []pir.EmitOp) (string, error) {
	var b strings.Builder
	for _, op := range ops {
		switch op := op.(type) {
		case *pir.EmitLit:
			b.WriteString(op.Text)
		case *pir.EmitInput:
			value, ok := r.bindings[op.Name]
			if !ok && r.opts.Strict {
				return "", &template.TemplateError{Kind: template.MissingVariable, Variable: op.Name}
			}
			b.WriteString(value)
		case *pir.EmitSection:
			text, ok := r.opts.Sections[op.Name]
			if !ok {
				return "", fmt.Errorf("message emits undeclared section '%s'", op.Name)
			}
			opts := r.opts
			opts.Symbol = op.Name
			rendered, err := template.Render(text, r.bindings, opts)
			if err != nil {
				return "", err
			}
			b.WriteString(rendered)
		case *pir.Switch:
			value, ok := r.bindings[op.Input]
			if !ok && r.opts.Strict {
				return "", &template.TemplateError{Kind: template.MissingVariable, Variable: op.Input}
			}
			branch, ok := op.Branch(value)
			if !ok {
				continue
			}
			text, err := r.renderOps(branch)
			if err != nil {
				return "", err
			}
			b.WriteString(text)
		}
	}
	return b.String(), nil
}

// loadBindings reads the YAML bindings file. Scalars become input
// bindings; the reserved "slots" key holds slot option selections.
func loadBindings(path string) (map[string]string, map[string]string, error) {
	bindings := make(map[string]string)
	slots := make(map[string]string)
	if path == "" {
		return bindings, slots, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read bindings: %w", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse bindings: %w", err)
	}

	for key, value := range doc {
		if key == "slots" {
			nested, ok := value.(map[string]any)
			if !ok {
				return nil, nil, fmt.Errorf("'slots' must be a mapping of slot name to option id")
			}
			for slot, option := range nested {
				slots[slot] = fmt.Sprint(option)
			}
			continue
		}
		bindings[key] = fmt.Sprint(value)
	}
	return bindings, slots, nil
}

func init() {
	renderCmd.Flags().StringVarP(&renderBindings, "bindings", "b", "",
		"YAML file with input bindings")
	renderCmd.Flags().BoolVar(&renderEnforce, "enforce-unknown-inputs", false,
		"Reject binding keys that are not declared inputs")
	rootCmd.AddCommand(renderCmd)
}
