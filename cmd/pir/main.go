// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pir/internal/ast"
	"pir/internal/parser"
	"pir/internal/pir"
)

var rootCmd = &cobra.Command{
	Use:   "pir",
	Short: "Prompt IR toolchain",
	Long: `pir works on modules in the PIR textual format:

  pir fmt     Reprint a module in canonical form
  pir lint    Validate a module and run the lint passes
  pir diff    Compare two modules by their canonical text
  pir render  Render a module's messages with input bindings`,
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadModule reads, parses, and builds one module file. The parse tree
// and raw source are returned alongside for diagnostics rendering.
func loadModule(path string) (*pir.Module, *ast.File, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	source := string(data)

	file, err := parser.Parse(path, source)
	if err != nil {
		return nil, nil, "", err
	}

	module, err := pir.FromFile(file)
	if err != nil {
		return nil, nil, "", err
	}

	return module, file, source, nil
}
