package main

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"pir/internal/pir"
)

var diffCmd = &cobra.Command{
	Use:   "diff <file> <file>",
	Short: "Compare two modules by their canonical text",
	Long: `Both modules are reprinted canonically before comparing, so formatting
differences in the source files never show up in the diff.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		left, _, _, err := loadModule(args[0])
		if err != nil {
			return err
		}
		right, _, _, err := loadModule(args[1])
		if err != nil {
			return err
		}

		diff := difflib.UnifiedDiff{
			A:        difflib.SplitLines(pir.Print(left)),
			B:        difflib.SplitLines(pir.Print(right)),
			FromFile: args[0],
			ToFile:   args[1],
			Context:  3,
		}
		text, err := difflib.GetUnifiedDiffString(diff)
		if err != nil {
			return err
		}
		if text == "" {
			return nil
		}
		fmt.Print(text)
		return fmt.Errorf("modules differ")
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
