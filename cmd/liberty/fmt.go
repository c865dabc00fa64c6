package main

import (
	"fmt"
	"os"

	"github.com/lswang2/liberty-parser/liberty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <library.lib>",
	Short: "Reformat a liberty file canonically",
	Long: "Parse a liberty file and print it back in canonical form: attributes sorted by key, " +
		"two-space indentation, normalized spacing. Files ending in .gz are decompressed and " +
		"recompressed transparently.",
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().StringP("output", "o", "", "Write the result to this file instead of stdout")
	fmtCmd.Flags().BoolP("write", "w", false, "Rewrite the input file in place")
	fmtCmd.Flags().Bool("check", false, "Exit non-zero when the input is not canonically formatted")

	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	path := args[0]
	verbose := viper.GetBool("verbose")
	output, _ := cmd.Flags().GetString("output")
	write, _ := cmd.Flags().GetBool("write")
	check, _ := cmd.Flags().GetBool("check")

	src, err := readLibertyFile(path)
	if err != nil {
		return err
	}

	library, err := liberty.Parse(src)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[parse] %s: library %q (%d cells)\n",
			path, libraryName(library), len(library.GetGroups("cell", "")))
	}

	text := library.Format() + "\n"

	switch {
	case check:
		if string(src) != text {
			return fmt.Errorf("%s is not canonically formatted", path)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "[check] %s is canonically formatted\n", path)
		}
	case write:
		if err := replaceFile(path, text); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "[write] rewrote %s\n", path)
	case output != "":
		if err := writeLibertyFile(output, text); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "[write] wrote %s\n", output)
		}
	default:
		fmt.Print(text)
	}
	return nil
}

// libraryName returns the first argument of the root group, or its type name
// when it has none.
func libraryName(g *liberty.Group) string {
	if len(g.Args) > 0 {
		return g.Args[0]
	}
	return g.Name
}
