package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pir/internal/pir"
)

var fmtWrite bool

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Reprint a module in canonical form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		module, _, _, err := loadModule(path)
		if err != nil {
			return err
		}

		out := pir.Print(module)
		if fmtWrite {
			return os.WriteFile(path, []byte(out), 0o644)
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false,
		"Write the canonical form back to the file instead of stdout")
	rootCmd.AddCommand(fmtCmd)
}
