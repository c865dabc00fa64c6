package main

import (
	"fmt"
	"os"

	"github.com/lswang2/liberty-parser/liberty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var checkCmd = &cobra.Command{
	Use:   "check <library.lib>",
	Short: "Parse and lint a liberty file",
	Long: "Parse a liberty file and run the built-in lint rules against it. " +
		"Errors always fail the command; warnings fail it only with --strict.",
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("strict", false, "Treat warnings as errors")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	verbose := viper.GetBool("verbose")
	strict, _ := cmd.Flags().GetBool("strict")

	src, err := readLibertyFile(path)
	if err != nil {
		return err
	}

	library, err := liberty.Parse(src)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	diags := liberty.Validate(library)

	var errorCount, warningCount int
	for _, d := range diags {
		switch d.Severity {
		case liberty.Error:
			errorCount++
		case liberty.Warning:
			warningCount++
		case liberty.Info:
			if !verbose {
				continue
			}
		}
		fmt.Fprintf(os.Stderr, "[lint] %s\n", d)
	}

	if errorCount > 0 || (strict && warningCount > 0) {
		return fmt.Errorf("%s: %d error(s), %d warning(s)", path, errorCount, warningCount)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "[lint] %s: %d warning(s)\n", path, warningCount)
	}
	return nil
}
