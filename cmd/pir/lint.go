package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pirerrors "pir/internal/errors"
	"pir/internal/semantic"
)

var lintCmd = &cobra.Command{
	Use:   "lint <file>",
	Short: "Validate a module and run the lint passes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		module, file, source, err := loadModule(path)
		if err != nil {
			return err
		}

		analyzer := semantic.NewAnalyzer()
		diagnostics := analyzer.Analyze(module, file)

		reporter := pirerrors.NewReporter(path, source)
		for _, d := range diagnostics {
			fmt.Print(reporter.Format(d))
		}

		errorCount := 0
		for _, d := range diagnostics {
			if d.Level == pirerrors.Error {
				errorCount++
			}
		}
		if errorCount > 0 {
			return fmt.Errorf("%d error(s) found", errorCount)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
